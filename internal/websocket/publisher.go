package websocket

import "github.com/dafibh/pennywise/pennywise-backend/internal/event"

var _ event.Publisher = (*Hub)(nil)

// Publish implements event.Publisher by broadcasting to every client
func (h *Hub) Publish(e event.Event) {
	h.Broadcast(e)
}
