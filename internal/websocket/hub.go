package websocket

import (
	"errors"
	"sync"

	"github.com/dafibh/pennywise/pennywise-backend/internal/event"
	"github.com/rs/zerolog/log"
)

// ErrClientClosed is returned when attempting to send to a closed client
var ErrClientClosed = errors.New("client is closed")

// ClientInterface defines the interface that clients must implement
type ClientInterface interface {
	ID() string
	Send(data []byte) error
	Close() error
}

// subscription is a client and the entities it listens to. No entities means all.
type subscription struct {
	client   ClientInterface
	entities map[event.Entity]bool
}

func (s subscription) wants(e event.Event) bool {
	return len(s.entities) == 0 || s.entities[e.Entity]
}

// Hub tracks the connected WebSocket clients.
// It is safe for concurrent use.
type Hub struct {
	clients map[string]subscription
	mu      sync.RWMutex
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]subscription),
	}
}

// Register adds a client to the hub. When entities are given the client
// only receives events about those entities.
func (h *Hub) Register(client ClientInterface, entities ...event.Entity) {
	sub := subscription{client: client}
	if len(entities) > 0 {
		sub.entities = make(map[event.Entity]bool, len(entities))
		for _, e := range entities {
			sub.entities[e] = true
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client.ID()] = sub

	log.Debug().Str("client_id", client.ID()).Int("entities", len(entities)).Msg("WebSocket client registered")
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(client ClientInterface) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.ID()]; ok {
		delete(h.clients, client.ID())
		log.Debug().Str("client_id", client.ID()).Msg("WebSocket client unregistered")
	}
}

// Broadcast sends an event to every client subscribed to its entity
func (h *Hub) Broadcast(e event.Event) {
	data, err := e.ToJSON()
	if err != nil {
		log.Error().Err(err).Str("event_type", e.Type).Msg("Failed to serialize event")
		return
	}

	// Copy clients to avoid holding lock during send
	h.mu.RLock()
	clients := make([]ClientInterface, 0, len(h.clients))
	for _, sub := range h.clients {
		if sub.wants(e) {
			clients = append(clients, sub.client)
		}
	}
	h.mu.RUnlock()

	if len(clients) == 0 {
		return
	}

	for _, client := range clients {
		go func(c ClientInterface) {
			if err := c.Send(data); err != nil {
				log.Warn().Err(err).Str("client_id", c.ID()).Msg("Failed to send to client")
			}
		}(client)
	}

	log.Debug().
		Str("event_type", e.Type).
		Int("client_count", len(clients)).
		Msg("Broadcast event")
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// CloseAll disconnects and forgets every client
func (h *Hub) CloseAll() {
	h.mu.Lock()
	clients := h.clients
	h.clients = make(map[string]subscription)
	h.mu.Unlock()

	for _, sub := range clients {
		_ = sub.client.Close()
	}
}
