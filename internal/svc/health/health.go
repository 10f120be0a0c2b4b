// If you are AI: This file implements the health and readiness endpoints for monitoring and integration tests.
// Readiness fails while any open document could not decode its header.

package health

import (
	"encoding/json"
	"net/http"

	"flvedit/internal/core/container"
	"flvedit/internal/core/workspace"
)

// Service provides health check functionality.
type Service struct {
	registry *workspace.Registry
}

// Status is the body of /readyz.
type Status struct {
	Ready     bool     `json:"ready"`
	Documents int      `json:"documents"`
	Broken    []string `json:"broken,omitempty"` // documents without a valid FLV header
}

// New creates a new health service over the open documents.
func New(registry *workspace.Registry) *Service {
	return &Service{registry: registry}
}

// RegisterRoutes adds /healthz and /readyz to the provided mux.
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)
}

// handleHealth responds to liveness checks.
// Returns 200 OK to indicate the server is running.
func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// handleReady reports 200 when every open document has a header, 503 otherwise.
func (s *Service) handleReady(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	st := s.status()
	code := http.StatusOK
	if !st.Ready {
		code = http.StatusServiceUnavailable
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(st)
}

// status inspects every open document.
func (s *Service) status() Status {
	st := Status{Ready: true}
	if s.registry == nil {
		return st
	}
	for _, name := range s.registry.List() {
		doc, err := s.registry.Get(name)
		if err != nil {
			continue
		}
		st.Documents++
		doc.View(func(ct *container.Container) error {
			if ct.Header() == nil {
				st.Broken = append(st.Broken, name)
				st.Ready = false
			}
			return nil
		})
	}
	return st
}
