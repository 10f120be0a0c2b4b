// If you are AI: This file implements the mutating HTTP API handlers: delete, poke, reload and close.
// Byte values are validated before the workspace is touched.

package api

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"flvedit/internal/core/container"
	"flvedit/internal/core/workspace"
)

// DeleteRequest is the body of POST /api/delete.
type DeleteRequest struct {
	Doc   string `json:"doc"`
	Index *int   `json:"index"`
}

// DeleteResponse reports the strategy used and the new tag count.
type DeleteResponse struct {
	Strategy string `json:"strategy"`
	Tags     int    `json:"tags"`
}

// PokeRequest is the body of POST /api/poke. Value is one hex byte, e.g. "af".
type PokeRequest struct {
	Doc    string `json:"doc"`
	Offset *int64 `json:"offset"`
	Value  string `json:"value"`
}

// PokeResponse echoes the written byte.
type PokeResponse struct {
	Offset int64 `json:"offset"`
	Value  int   `json:"value"`
}

// ReloadRequest is the body of POST /api/reload.
type ReloadRequest struct {
	Doc string `json:"doc"`
}

// ReloadResponse reports the tag and issue counts after reload.
type ReloadResponse struct {
	Tags   int `json:"tags"`
	Issues int `json:"issues"`
}

// decodeBody decodes a JSON request body into v.
func decodeBody(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: invalid request body", errBadRequest)
	}
	return nil
}

// CloseRequest is the body of POST /api/close.
type CloseRequest struct {
	Doc string `json:"doc"`
}

// handleDelete handles POST /api/delete.
func (s *Service) handleDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req DeleteRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeErr(w, err)
		return
	}
	if req.Doc == "" || req.Index == nil {
		s.writeError(w, http.StatusBadRequest, "doc and index are required")
		return
	}
	doc, err := s.registry.Get(req.Doc)
	if err != nil {
		s.writeErr(w, err)
		return
	}

	strategy, err := doc.DeleteTag(*req.Index)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	response := DeleteResponse{Strategy: strategy}
	response.Tags, _ = doc.Counts()
	s.writeJSON(w, http.StatusOK, response)
}

// handlePoke handles POST /api/poke.
func (s *Service) handlePoke(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req PokeRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeErr(w, err)
		return
	}
	if req.Doc == "" || req.Offset == nil {
		s.writeError(w, http.StatusBadRequest, "doc and offset are required")
		return
	}
	value, err := container.ParseByte(req.Value)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	doc, err := s.registry.Get(req.Doc)
	if err != nil {
		s.writeErr(w, err)
		return
	}

	if err := doc.Poke(*req.Offset, value); err != nil {
		s.writeErr(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, PokeResponse{Offset: *req.Offset, Value: int(value)})
}

// handleReload handles POST /api/reload.
func (s *Service) handleReload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req ReloadRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeErr(w, err)
		return
	}
	doc, err := s.registry.Get(req.Doc)
	if err != nil {
		s.writeErr(w, err)
		return
	}

	if err := doc.Reload(); err != nil {
		s.writeErr(w, err)
		return
	}
	var response ReloadResponse
	response.Tags, response.Issues = doc.Counts()
	s.writeJSON(w, http.StatusOK, response)
}

// handleClose handles POST /api/close. The file on disk is left untouched.
func (s *Service) handleClose(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req CloseRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeErr(w, err)
		return
	}
	if req.Doc == "" {
		s.writeError(w, http.StatusBadRequest, "doc is required")
		return
	}
	if !s.registry.Close(req.Doc) {
		s.writeErr(w, fmt.Errorf("%w: %s", workspace.ErrNotFound, req.Doc))
		return
	}
	log.Printf("api: closed %s", req.Doc)
	w.WriteHeader(http.StatusNoContent)
}
