// If you are AI: This file implements the WebSocket handler for document change events.
// Handles GET /ws/events?doc={name} requests and manages subscriber lifecycle.

package events

import (
	"net/http"

	"flvedit/internal/core/workspace"

	"github.com/gorilla/websocket"
)

// Handler handles event stream requests.
type Handler struct {
	registry *workspace.Registry
	upgrader websocket.Upgrader
}

// NewHandler creates a new event stream handler.
func NewHandler(registry *workspace.Registry) *Handler {
	return &Handler{
		registry: registry,
		upgrader: websocket.Upgrader{
			// The editor UI is served from other origins during development.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// ServeHTTP upgrades the connection and streams JSON events for one document.
// Endpoint: GET /ws/events?doc={name}
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	name := r.URL.Query().Get("doc")
	if name == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if _, err := h.registry.Get(name); err != nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	hub := h.registry.Hub()
	if hub == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	// Subscribe before the upgrade completes so no event published after the
	// client sees 101 is missed.
	busSub := hub.Subscribe(name)
	defer hub.Unsubscribe(busSub)

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade failed, response already sent
		return
	}
	defer conn.Close()

	NewSubscriber(conn, busSub).Run(r.Context())
}

// RegisterRoutes registers event stream routes on the given mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/ws/events", h.ServeHTTP)
}
