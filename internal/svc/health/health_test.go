// If you are AI: This file contains unit tests for the health service.

package health

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"flvedit/internal/core/bus"
	"flvedit/internal/core/protocol/flv"
	"flvedit/internal/core/protocol/flv/flvtest"
	"flvedit/internal/core/remove"
	"flvedit/internal/core/workspace"
)

// serve runs one GET against a mux with the health routes.
func serve(s *Service, target string) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	s.RegisterRoutes(mux)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", target, nil))
	return w
}

func TestHealthz(t *testing.T) {
	if w := serve(New(nil), "/healthz"); w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
}

func TestReadyz(t *testing.T) {
	dir := t.TempDir()
	registry := workspace.NewRegistry(flv.DecodeOptions{}, remove.Selector{}, bus.NewHub())
	if _, err := registry.Open("good", flvtest.Scenario().WriteFile(t, dir, "good.flv")); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	s := New(registry)

	w := serve(s, "/readyz")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	bad := filepath.Join(dir, "bad.flv")
	if err := os.WriteFile(bad, []byte("not an flv file"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := registry.Open("bad", bad); err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	w = serve(s, "/readyz")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("Expected status 503, got %d", w.Code)
	}
	var st Status
	if err := json.NewDecoder(w.Body).Decode(&st); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if st.Ready || st.Documents != 2 || len(st.Broken) != 1 || st.Broken[0] != "bad" {
		t.Errorf("Unexpected status: %+v", st)
	}
}
