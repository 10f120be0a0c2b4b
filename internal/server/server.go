// If you are AI: This file implements the HTTP server lifecycle and routing.
// Health, API, event and download routes share one mux on the configured port.

package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"flvedit/internal/config"
	"flvedit/internal/core/workspace"
	"flvedit/internal/svc/api"
	"flvedit/internal/svc/events"
	"flvedit/internal/svc/health"
	"flvedit/internal/svc/httpflv"
)

// Server wraps the HTTP server and its dependencies.
type Server struct {
	httpServer *http.Server
	registry   *workspace.Registry
}

// New creates a new server instance over the given documents.
// The server is not started until Start is called.
func New(cfg *config.Config, registry *workspace.Registry) *Server {
	mux := http.NewServeMux()

	health.New(registry).RegisterRoutes(mux)
	api.NewService(registry).RegisterRoutes(mux)
	events.NewService(registry).RegisterRoutes(mux)
	httpflv.NewService(registry).RegisterRoutes(mux)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.HTTPPort),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		registry:   registry,
	}
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Start begins serving HTTP requests.
// This method blocks until the server is stopped or encounters an error.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server with a timeout.
// Returns an error if shutdown fails or times out.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ShutdownWithTimeout stops the server, giving open requests and event
// streams shutdownTimeout to drain.
func (s *Server) ShutdownWithTimeout() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.Shutdown(ctx)
}
