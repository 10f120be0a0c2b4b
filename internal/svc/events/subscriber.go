// If you are AI: This file implements the event subscriber that reads from the bus and writes JSON frames.
// Subscriber owns the WebSocket connection lifecycle once the upgrade is done.

package events

import (
	"context"
	"log"
	"time"

	"flvedit/internal/core/bus"
)

// writeTimeout bounds a single frame write to a stalled client.
const writeTimeout = 10 * time.Second

// WebSocketConn defines the WebSocket operations the subscriber needs.
// This allows for easier testing and abstraction.
type WebSocketConn interface {
	WriteJSON(v interface{}) error
	ReadMessage() (messageType int, p []byte, err error)
	SetWriteDeadline(t time.Time) error
	Close() error
}

// Subscriber forwards bus events of one document to a WebSocket client.
type Subscriber struct {
	conn          WebSocketConn
	busSubscriber *bus.Subscriber
	dropped       uint64 // drops already reported to the client
}

// NewSubscriber creates a subscriber writing events from busSub to conn.
func NewSubscriber(conn WebSocketConn, busSub *bus.Subscriber) *Subscriber {
	return &Subscriber{conn: conn, busSubscriber: busSub}
}

// Run writes one JSON frame per event until ctx is done, the client goes away
// or a write fails. The first frame after an overflow carries the number of
// events the client missed. Client frames are read and discarded so close frames and
// disconnects are noticed between events.
func (s *Subscriber) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		defer cancel()
		for {
			if _, _, err := s.conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		ev, err := s.busSubscriber.Next(ctx)
		if err != nil {
			return err
		}
		if n := s.busSubscriber.Dropped(); n > s.dropped {
			ev.Dropped = n - s.dropped
			s.dropped = n
			log.Printf("events: %s: slow client missed %d events", ev.Doc, ev.Dropped)
		}
		if err := s.write(ev); err != nil {
			return err
		}
	}
}

// write sends ev as one text frame.
func (s *Subscriber) write(ev bus.Event) error {
	if err := s.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}
	return s.conn.WriteJSON(ev)
}
