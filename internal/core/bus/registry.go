// If you are AI: This file implements the Hub, which maps document names to topics.
// Topics are created on first subscribe or publish and dropped when the last subscriber leaves.

package bus

import (
	"sort"
	"sync"
)

// DefaultCapacity is the per-subscriber buffer size used by Subscribe.
const DefaultCapacity = 64

// Hub manages the lifecycle of topics.
// Lock expectations: Mutex-protected for concurrent access.
type Hub struct {
	mu     sync.RWMutex
	topics map[string]*Topic
}

// NewHub creates a new event hub.
func NewHub() *Hub {
	return &Hub{
		topics: make(map[string]*Topic),
	}
}

// Get retrieves a topic by name, returning nil if not found.
func (h *Hub) Get(name string) *Topic {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.topics[name]
}

// Subscribe attaches a drop-oldest subscriber of DefaultCapacity to the named topic.
func (h *Hub) Subscribe(name string) *Subscriber {
	h.mu.Lock()
	defer h.mu.Unlock()

	topic, exists := h.topics[name]
	if !exists {
		topic = NewTopic(name)
		h.topics[name] = topic
	}
	return topic.AttachSubscriber(DefaultCapacity, BackpressureDropOldest)
}

// Unsubscribe detaches sub and removes its topic once nobody listens.
func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	topic, ok := h.topics[sub.Topic()]
	if !ok {
		return
	}
	topic.DetachSubscriber(sub.ID())
	if topic.SubscriberCount() == 0 {
		delete(h.topics, sub.Topic())
	}
}

// Publish delivers ev to the subscribers of ev.Doc. Events for a document
// nobody listens to are discarded.
func (h *Hub) Publish(ev Event) {
	if topic := h.Get(ev.Doc); topic != nil {
		topic.Publish(ev)
	}
}

// Count returns the number of topics in the hub.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics)
}

// List returns the names of documents that currently have listeners, sorted.
func (h *Hub) List() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	names := make([]string, 0, len(h.topics))
	for name := range h.topics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
