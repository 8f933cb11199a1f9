package handler

import (
	"net/http"
	"strings"

	"github.com/dafibh/pennywise/pennywise-backend/internal/event"
	"github.com/dafibh/pennywise/pennywise-backend/internal/websocket"
	ws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// WebSocketHandler handles WebSocket connections
type WebSocketHandler struct {
	hub            *websocket.Hub
	allowedOrigins map[string]bool
	upgrader       ws.Upgrader
}

// NewWebSocketHandler creates a new WebSocketHandler
func NewWebSocketHandler(hub *websocket.Hub, allowedOrigins []string) *WebSocketHandler {
	originMap := make(map[string]bool)
	for _, origin := range allowedOrigins {
		originMap[origin] = true
	}

	h := &WebSocketHandler{
		hub:            hub,
		allowedOrigins: originMap,
	}

	h.upgrader = ws.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}

	return h
}

// checkOrigin validates the request origin against allowed origins
func (h *WebSocketHandler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		// same-origin or non-browser client
		return true
	}

	if h.allowedOrigins[origin] || h.allowedOrigins["*"] {
		return true
	}

	log.Warn().
		Str("origin", origin).
		Msg("WebSocket connection rejected: origin not allowed")
	return false
}

// HandleWS handles WebSocket connection requests at GET /ws.
// Clients receive every tracker event, or only those named in ?entities=alert,budget.
func (h *WebSocketHandler) HandleWS(c echo.Context) error {
	entities, err := parseEntities(c.QueryParam("entities"))
	if err != nil {
		return NewValidationError(c, "Invalid event filter", []ValidationError{
			{Field: "entities", Message: err.Error()},
		})
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		log.Error().Err(err).Msg("WebSocket upgrade failed")
		return err
	}

	client := websocket.NewClient(conn, h.hub)
	h.hub.Register(client, entities...)

	log.Info().
		Str("client_id", client.ID()).
		Str("entities", c.QueryParam("entities")).
		Int("clients", h.hub.ClientCount()).
		Msg("WebSocket client connected")

	go client.WritePump()
	go client.ReadPump()

	return nil
}

func parseEntities(raw string) ([]event.Entity, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var entities []event.Entity
	for _, name := range strings.Split(raw, ",") {
		e, err := event.ParseEntity(strings.ToLower(strings.TrimSpace(name)))
		if err != nil {
			return nil, err
		}
		entities = append(entities, e)
	}
	return entities, nil
}
