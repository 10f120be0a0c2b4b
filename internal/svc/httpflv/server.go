// If you are AI: This file provides FLV download service integration.
// The service is integrated into the main HTTP server.

package httpflv

import (
	"net/http"

	"flvedit/internal/core/workspace"
)

// Service provides FLV document download functionality.
type Service struct {
	handler *Handler
}

// NewService creates a new FLV download service.
func NewService(registry *workspace.Registry) *Service {
	return &Service{
		handler: NewHandler(registry),
	}
}

// RegisterRoutes registers FLV download routes on the provided mux.
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	s.handler.RegisterRoutes(mux)
}
