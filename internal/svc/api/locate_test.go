// If you are AI: This file contains unit tests for the offset lookup and close handlers.

package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"flvedit/internal/core/container"
)

func TestHandleLocate(t *testing.T) {
	service, _ := newTestService(t)

	w := get(service, "/api/locate?doc=a&offset=0x2b")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	var loc container.Location
	if err := json.NewDecoder(w.Body).Decode(&loc); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if loc.Index != 1 || strings.Join(loc.Path, "/") != "tag_info/video_info/cts" {
		t.Errorf("Unexpected location: %+v", loc)
	}
	if loc.Start != 43 || loc.Size != 3 || loc.Row != 3 {
		t.Errorf("Unexpected span: %+v", loc)
	}

	w = get(service, "/api/locate?doc=a&offset=4")
	loc = container.Location{}
	json.NewDecoder(w.Body).Decode(&loc)
	if loc.Index != -1 || strings.Join(loc.Path, "/") != "flv_header/type_flags" {
		t.Errorf("Header location = %+v", loc)
	}

	cases := map[string]int{
		"/api/locate?doc=a&offset=50":   http.StatusNotFound,
		"/api/locate?doc=a&offset=zz":   http.StatusBadRequest,
		"/api/locate?doc=a":             http.StatusBadRequest,
		"/api/locate?offset=1":          http.StatusBadRequest,
		"/api/locate?doc=nope&offset=1": http.StatusNotFound,
	}
	for target, want := range cases {
		if w := get(service, target); w.Code != want {
			t.Errorf("%s: expected %d, got %d", target, want, w.Code)
		}
	}
}

func TestHandleClose(t *testing.T) {
	service, _ := newTestService(t)

	if w := post(service, "/api/close", `{"doc":"a"}`); w.Code != http.StatusNoContent {
		t.Fatalf("Expected status 204, got %d: %s", w.Code, w.Body.String())
	}
	if service.registry.Count() != 0 {
		t.Errorf("Expected no open documents, got %d", service.registry.Count())
	}
	if w := get(service, "/api/tags?doc=a"); w.Code != http.StatusNotFound {
		t.Errorf("Closed document: expected 404, got %d", w.Code)
	}

	cases := map[string]int{
		`{"doc":"a"}`: http.StatusNotFound,
		`{}`:          http.StatusBadRequest,
		`{`:           http.StatusBadRequest,
	}
	for body, want := range cases {
		if w := post(service, "/api/close", body); w.Code != want {
			t.Errorf("%s: expected %d, got %d", body, want, w.Code)
		}
	}
	if w := get(service, "/api/close"); w.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET: expected 405, got %d", w.Code)
	}
}
