// If you are AI: This file implements the HTTP handler for FLV document downloads.
// Handles GET /flv/{doc} requests by writing the decoded header and tags in file order.

package httpflv

import (
	"bytes"
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	"flvedit/internal/core/container"
	"flvedit/internal/core/workspace"
)

// Handler handles FLV download requests.
type Handler struct {
	registry *workspace.Registry
}

// NewHandler creates a new FLV download handler.
func NewHandler(registry *workspace.Registry) *Handler {
	return &Handler{
		registry: registry,
	}
}

// ServeHTTP writes the current bytes of one document.
// Endpoint: GET /flv/{doc}
// Bytes after the last decoded tag are not included, so a file with a
// truncated tail downloads as a well-formed FLV.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	// Parse path: /flv/{doc}
	name := strings.TrimPrefix(r.URL.Path, "/flv/")
	if name == r.URL.Path || name == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	doc, err := h.registry.Get(name)
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	// Copy under the read lock; the response is written after it is released.
	var data []byte
	doc.View(func(ct *container.Container) error {
		if ct.Header() != nil {
			data = ct.Reassemble()
		}
		return nil
	})
	if data == nil {
		// Nothing decodable to serve
		w.WriteHeader(http.StatusUnprocessableEntity)
		return
	}

	filename := path.Base(doc.Path())
	if !strings.HasSuffix(filename, ".flv") {
		filename += ".flv"
	}
	w.Header().Set("Content-Type", "video/x-flv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Cache-Control", "no-cache")
	http.ServeContent(w, r, filename, time.Time{}, bytes.NewReader(data))
}

// RegisterRoutes registers FLV download routes on the given mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/flv/", h.ServeHTTP)
}
