// If you are AI: This file defines Event, the unit flowing through the change bus.
// Events are small values; they are copied into subscriber buffers, never shared.

package bus

import (
	"fmt"
	"time"
)

// EventKind identifies what happened to a document.
type EventKind uint8

const (
	// EventReloaded is published after a document was decoded again from disk.
	EventReloaded EventKind = iota
	// EventDeleted is published after a tag was removed from the file.
	EventDeleted
	// EventPoked is published after a single byte was written.
	EventPoked
)

// Event describes one completed change to a document. Index, Offset and
// Value are always encoded so a zero is never mistaken for a missing field.
type Event struct {
	Kind     EventKind `json:"kind"`
	Doc      string    `json:"doc"`
	Tags     int       `json:"tags"`               // tag count after the change
	Issues   int       `json:"issues"`             // decode issues after the change
	Index    int       `json:"index"`              // deleted tag index
	Offset   int64     `json:"offset"`             // poked byte offset
	Value    int       `json:"value"`              // poked byte value
	Strategy string    `json:"strategy,omitempty"` // deletion strategy used
	Dropped  uint64    `json:"dropped,omitempty"`  // events lost before this one
	Time     time.Time `json:"time"`
}

// String returns a human-readable representation of the event kind.
func (k EventKind) String() string {
	switch k {
	case EventReloaded:
		return "reloaded"
	case EventDeleted:
		return "deleted"
	case EventPoked:
		return "poked"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind by name so JSON carries "deleted", not 1.
func (k EventKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name.
func (k *EventKind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "reloaded":
		*k = EventReloaded
	case "deleted":
		*k = EventDeleted
	case "poked":
		*k = EventPoked
	default:
		return fmt.Errorf("unknown event kind %q", b)
	}
	return nil
}
