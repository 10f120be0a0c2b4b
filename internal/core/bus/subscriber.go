// If you are AI: This file defines the Subscriber that receives events from one topic.
// Delivery goes through a ring buffer; a one-slot notify channel wakes the reader.

package bus

import (
	"context"
)

// Subscriber represents a consumer of events from a topic.
// Each subscriber has its own ring buffer so a slow reader never blocks publishing.
type Subscriber struct {
	id     uint64
	topic  string
	buffer *RingBuffer
	notify chan struct{}
}

// NewSubscriber creates a new subscriber with the specified buffer capacity and strategy.
func NewSubscriber(id uint64, topic string, capacity uint32, strategy BackpressureStrategy) *Subscriber {
	return &Subscriber{
		id:     id,
		topic:  topic,
		buffer: NewRingBuffer(capacity, strategy),
		notify: make(chan struct{}, 1),
	}
}

// ID returns the unique subscriber identifier.
func (s *Subscriber) ID() uint64 {
	return s.id
}

// Topic returns the document name the subscriber listens to.
func (s *Subscriber) Topic() string {
	return s.topic
}

// deliver buffers ev and wakes the reader without blocking.
func (s *Subscriber) deliver(ev Event) {
	s.buffer.Write(ev)
	select {
	case s.notify <- struct{}{}:
	default:
	}
}

// Next blocks until an event is available or ctx is done.
func (s *Subscriber) Next(ctx context.Context) (Event, error) {
	for {
		if ev, ok := s.buffer.Read(); ok {
			return ev, nil
		}
		select {
		case <-s.notify:
		case <-ctx.Done():
			return Event{}, ctx.Err()
		}
	}
}

// Dropped returns the number of events dropped due to backpressure.
func (s *Subscriber) Dropped() uint64 {
	return s.buffer.Dropped()
}
