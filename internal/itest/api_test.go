// If you are AI: This file contains integration tests for editing a served document over HTTP.
// Tests verify that API edits reach the file and are announced on the event stream.

package itest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"flvedit/internal/core/bus"

	"github.com/gorilla/websocket"
)

// getJSON fetches url and decodes the body into v.
func getJSON(t *testing.T, url string, v interface{}) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET %s: status %d", url, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("GET %s: decode: %v", url, err)
	}
}

func TestServeEditRoundTrip(t *testing.T) {
	for _, strategy := range []string{"stream", "mmap"} {
		t.Run(strategy, func(t *testing.T) {
			port, file, _ := serveFixture(t, strategy)
			base := fmt.Sprintf("http://localhost:%d", port)
			before, _ := os.ReadFile(file)

			var docs struct {
				Documents []struct {
					Name string `json:"name"`
					Tags int    `json:"tags"`
				} `json:"documents"`
			}
			getJSON(t, base+"/api/documents", &docs)
			if len(docs.Documents) != 1 || docs.Documents[0].Name != "a.flv" || docs.Documents[0].Tags != 2 {
				t.Fatalf("Unexpected documents: %+v", docs)
			}

			wsURL := fmt.Sprintf("ws://localhost:%d/ws/events?doc=a.flv", port)
			conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
			if err != nil {
				t.Fatalf("Failed to connect WebSocket: %v", err)
			}
			defer conn.Close()

			body := strings.NewReader(`{"doc":"a.flv","index":0}`)
			resp, err := http.Post(base+"/api/delete", "application/json", body)
			if err != nil {
				t.Fatalf("POST /api/delete: %v", err)
			}
			resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("Expected status 200, got %d", resp.StatusCode)
			}

			conn.SetReadDeadline(time.Now().Add(5 * time.Second))
			var ev bus.Event
			if err := conn.ReadJSON(&ev); err != nil {
				t.Fatalf("Failed to read event: %v", err)
			}
			if ev.Kind != bus.EventDeleted || ev.Strategy != strategy || ev.Tags != 1 {
				t.Errorf("Unexpected event: %+v", ev)
			}

			after, _ := os.ReadFile(file)
			want := append(append([]byte(nil), before[:13]...), before[30:]...)
			if !bytes.Equal(after, want) {
				t.Errorf("File after delete = %x, want %x", after, want)
			}
		})
	}
}
