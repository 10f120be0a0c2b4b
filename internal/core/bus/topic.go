// If you are AI: This file implements the Topic type that fans events out to subscribers.
// One topic exists per document; publishing never blocks on slow subscribers.

package bus

import (
	"sync"
)

// Topic carries the events of one document to any number of subscribers.
// Lock expectations: Uses mutex for subscriber management; fanout copies the
// subscriber list under a read lock and writes outside it.
type Topic struct {
	name        string
	mu          sync.RWMutex
	subscribers map[uint64]*Subscriber
	nextSubID   uint64
}

// NewTopic creates a new topic with the given document name.
func NewTopic(name string) *Topic {
	return &Topic{
		name:        name,
		subscribers: make(map[uint64]*Subscriber),
		nextSubID:   1,
	}
}

// Name returns the topic's document name.
func (t *Topic) Name() string {
	return t.name
}

// AttachSubscriber attaches a new subscriber to the topic.
func (t *Topic) AttachSubscriber(capacity uint32, strategy BackpressureStrategy) *Subscriber {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := t.nextSubID
	t.nextSubID++

	sub := NewSubscriber(id, t.name, capacity, strategy)
	t.subscribers[id] = sub
	return sub
}

// DetachSubscriber detaches a subscriber from the topic.
func (t *Topic) DetachSubscriber(id uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.subscribers, id)
}

// Publish delivers an event to all subscribers.
func (t *Topic) Publish(ev Event) {
	t.mu.RLock()
	subs := make([]*Subscriber, 0, len(t.subscribers))
	for _, sub := range t.subscribers {
		subs = append(subs, sub)
	}
	t.mu.RUnlock()

	for _, sub := range subs {
		sub.deliver(ev)
	}
}

// SubscriberCount returns the number of active subscribers.
func (t *Topic) SubscriberCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.subscribers)
}
