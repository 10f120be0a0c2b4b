// If you are AI: This file implements GET /api/locate, which maps a file offset to its field.

package api

import (
	"fmt"
	"net/http"
	"strconv"

	"flvedit/internal/core/container"
)

// handleLocate handles GET /api/locate?doc=&offset=. Offsets accept 0x prefixes.
func (s *Service) handleLocate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	doc, err := s.document(r)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	raw := r.URL.Query().Get("offset")
	offset, err := strconv.ParseInt(raw, 0, 64)
	if err != nil {
		s.writeErr(w, fmt.Errorf("%w: offset %q is not a number", errBadRequest, raw))
		return
	}

	var loc container.Location
	err = doc.View(func(ct *container.Container) error {
		l, err := ct.Locate(offset)
		loc = l
		return err
	})
	if err != nil {
		s.writeErr(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, loc)
}
