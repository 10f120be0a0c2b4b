// If you are AI: This file provides HTTP API service integration.
// The API exposes open documents for inspection and edits; every request goes through the workspace.

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"flvedit/internal/core/container"
	"flvedit/internal/core/remove"
	"flvedit/internal/core/workspace"
)

// Service provides HTTP API functionality.
type Service struct {
	registry  *workspace.Registry
	startTime int64
}

// ErrorResponse represents an API error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// errBadRequest marks malformed query parameters or bodies.
var errBadRequest = errors.New("bad request")

// NewService creates a new API service.
func NewService(registry *workspace.Registry) *Service {
	return &Service{
		registry:  registry,
		startTime: getCurrentTime(),
	}
}

// RegisterRoutes registers API routes on the provided mux.
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/server", s.handleServer)
	mux.HandleFunc("/api/documents", s.handleDocuments)
	mux.HandleFunc("/api/tags", s.handleTags)
	mux.HandleFunc("/api/tree", s.handleTree)
	mux.HandleFunc("/api/raw", s.handleRaw)
	mux.HandleFunc("/api/delete", s.handleDelete)
	mux.HandleFunc("/api/poke", s.handlePoke)
	mux.HandleFunc("/api/reload", s.handleReload)
	mux.HandleFunc("/api/close", s.handleClose)
	mux.HandleFunc("/api/locate", s.handleLocate)
}

// getCurrentTime returns current Unix timestamp.
// Extracted for testability.
func getCurrentTime() int64 {
	return time.Now().Unix()
}

// document resolves the doc query parameter.
func (s *Service) document(r *http.Request) (*workspace.Document, error) {
	name := r.URL.Query().Get("doc")
	if name == "" {
		return nil, fmt.Errorf("%w: doc is required", errBadRequest)
	}
	return s.registry.Get(name)
}

// target parses either header=1 or index=N. It returns header == true or a tag index.
func target(r *http.Request) (header bool, index int, err error) {
	q := r.URL.Query()
	if q.Get("header") == "1" || q.Get("header") == "true" {
		return true, 0, nil
	}
	raw := q.Get("index")
	if raw == "" {
		return false, 0, fmt.Errorf("%w: index or header=1 is required", errBadRequest)
	}
	index, err = strconv.Atoi(raw)
	if err != nil {
		return false, 0, fmt.Errorf("%w: index %q is not a number", errBadRequest, raw)
	}
	return false, index, nil
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, container.ErrInvalidByte),
		errors.Is(err, container.ErrOffsetOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, workspace.ErrNotFound),
		errors.Is(err, container.ErrNoSuchTag),
		errors.Is(err, container.ErrNoHeader),
		errors.Is(err, container.ErrNotMapped),
		errors.Is(err, remove.ErrIndexOutOfRange):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeJSON writes a JSON response.
func (s *Service) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func (s *Service) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, ErrorResponse{Error: message})
}

// writeErr writes err with the status statusFor picks.
func (s *Service) writeErr(w http.ResponseWriter, err error) {
	s.writeError(w, statusFor(err), err.Error())
}
