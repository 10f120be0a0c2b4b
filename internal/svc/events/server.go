// If you are AI: This file provides event stream service integration.
// The service is integrated into the main HTTP server.

package events

import (
	"net/http"

	"flvedit/internal/core/workspace"
)

// Service provides document change notifications over WebSocket.
type Service struct {
	handler *Handler
}

// NewService creates a new event stream service.
func NewService(registry *workspace.Registry) *Service {
	return &Service{
		handler: NewHandler(registry),
	}
}

// RegisterRoutes registers event stream routes on the provided mux.
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	s.handler.RegisterRoutes(mux)
}
