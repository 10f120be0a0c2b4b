// If you are AI: This file implements a bounded ring buffer for subscriber event delivery.
// Both writePos and readPos increment freely (never masked). Only use the mask
// when indexing into the buffer array. The emptiness check readPos==writePos relies on
// both counters using the same domain.

package bus

import (
	"sync"
)

// BackpressureStrategy defines how the ring buffer handles overflow.
type BackpressureStrategy uint8

const (
	// BackpressureDropOldest drops the oldest event when buffer is full.
	BackpressureDropOldest BackpressureStrategy = iota
	// BackpressureDropNewest drops the newest event when buffer is full.
	BackpressureDropNewest
)

// RingBuffer is a bounded circular buffer of events.
// Lock expectations: a mutex guards positions and slots, so a drop-oldest
// writer never races a reader on the same slot.
type RingBuffer struct {
	mu       sync.Mutex
	buffer   []Event
	size     uint32 // power of 2
	mask     uint32 // size - 1
	writePos uint32
	readPos  uint32
	strategy BackpressureStrategy
	dropped  uint64
}

// NewRingBuffer creates a new ring buffer with the specified capacity.
// Capacity is rounded up to a power of 2 for efficient modulo via bitmask.
func NewRingBuffer(capacity uint32, strategy BackpressureStrategy) *RingBuffer {
	actualSize := uint32(1)
	for actualSize < capacity {
		actualSize <<= 1
	}

	return &RingBuffer{
		buffer:   make([]Event, actualSize),
		size:     actualSize,
		mask:     actualSize - 1,
		strategy: strategy,
	}
}

// Write stores an event.
// Returns false if the buffer was full and the event was dropped (DropNewest).
func (rb *RingBuffer) Write(ev Event) bool {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	// Unsigned subtraction works correctly even after uint32 wrap.
	if rb.writePos-rb.readPos >= rb.size {
		rb.dropped++
		if rb.strategy == BackpressureDropNewest {
			return false
		}
		rb.readPos++
	}

	rb.buffer[rb.writePos&rb.mask] = ev
	rb.writePos++
	return true
}

// Read returns the oldest buffered event, or false when the buffer is empty.
func (rb *RingBuffer) Read() (Event, bool) {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	if rb.readPos == rb.writePos {
		return Event{}, false
	}

	ev := rb.buffer[rb.readPos&rb.mask]
	rb.readPos++
	return ev, true
}

// Dropped returns the number of events dropped due to backpressure.
func (rb *RingBuffer) Dropped() uint64 {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	return rb.dropped
}
