// If you are AI: This file contains unit tests for the ring buffer.

package bus

import (
	"testing"
)

func TestRingBufferWriteRead(t *testing.T) {
	rb := NewRingBuffer(8, BackpressureDropOldest)

	if !rb.Write(Event{Kind: EventDeleted, Index: 3}) {
		t.Error("Write should succeed on empty buffer")
	}

	ev, ok := rb.Read()
	if !ok {
		t.Fatal("Read should succeed after write")
	}
	if ev.Kind != EventDeleted || ev.Index != 3 {
		t.Errorf("Read returned %+v", ev)
	}

	if _, ok := rb.Read(); ok {
		t.Error("Read should fail on empty buffer")
	}
}

func TestRingBufferDropOldest(t *testing.T) {
	rb := NewRingBuffer(4, BackpressureDropOldest)

	for i := 0; i < 4; i++ {
		if !rb.Write(Event{Index: i}) {
			t.Errorf("Write %d should succeed", i)
		}
	}
	if rb.Dropped() != 0 {
		t.Errorf("Expected nothing dropped yet, got %d", rb.Dropped())
	}

	if !rb.Write(Event{Index: 4}) {
		t.Error("Write should succeed (dropping oldest)")
	}
	if rb.Dropped() != 1 {
		t.Errorf("Expected 1 dropped, got %d", rb.Dropped())
	}

	// The oldest event (0) is gone; 1..4 remain in order.
	for want := 1; want <= 4; want++ {
		ev, ok := rb.Read()
		if !ok || ev.Index != want {
			t.Fatalf("Expected index %d, got %+v (ok=%v)", want, ev, ok)
		}
	}
}

func TestRingBufferDropNewest(t *testing.T) {
	rb := NewRingBuffer(4, BackpressureDropNewest)

	for i := 0; i < 4; i++ {
		rb.Write(Event{Index: i})
	}

	if rb.Write(Event{Index: 99}) {
		t.Error("Write should return false with drop newest when buffer is full")
	}
	if rb.Dropped() != 1 {
		t.Error("Dropped count should increase")
	}

	ev, _ := rb.Read()
	if ev.Index != 0 {
		t.Errorf("Expected oldest event kept, got %+v", ev)
	}
}

func TestRingBufferCapacityRounding(t *testing.T) {
	rb := NewRingBuffer(5, BackpressureDropOldest)
	for i := 0; i < 8; i++ {
		rb.Write(Event{Index: i})
	}
	if rb.Dropped() != 0 {
		t.Errorf("Expected capacity rounded to 8, dropped %d", rb.Dropped())
	}
	rb.Write(Event{Index: 8})
	if rb.Dropped() != 1 {
		t.Errorf("Expected a drop past 8 events, dropped %d", rb.Dropped())
	}
}

// TestRingBufferWrapAround verifies that the ring buffer works correctly after
// more events have been written+read than the buffer size.
func TestRingBufferWrapAround(t *testing.T) {
	rb := NewRingBuffer(4, BackpressureDropOldest)

	for round := 0; round < 3; round++ {
		for i := 0; i < 4; i++ {
			if !rb.Write(Event{Index: round*100 + i}) {
				t.Fatalf("Round %d write %d failed", round, i)
			}
		}
		for i := 0; i < 4; i++ {
			ev, ok := rb.Read()
			if !ok {
				t.Fatalf("Round %d read %d: buffer unexpectedly empty", round, i)
			}
			if ev.Index != round*100+i {
				t.Fatalf("Round %d read %d: expected %d, got %d", round, i, round*100+i, ev.Index)
			}
		}
		if _, ok := rb.Read(); ok {
			t.Fatalf("Round %d: buffer should be empty after draining", round)
		}
	}
}
