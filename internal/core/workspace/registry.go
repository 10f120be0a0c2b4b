// If you are AI: This file implements the Registry that maps document names to open documents.

package workspace

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"flvedit/internal/core/bus"
	"flvedit/internal/core/protocol/flv"
	"flvedit/internal/core/remove"
)

var (
	// ErrNotFound is returned for an unknown document name.
	ErrNotFound = errors.New("document not found")
	// ErrExists is returned when opening a name that is already taken.
	ErrExists = errors.New("document already open")
)

// Registry manages open documents.
// Lock expectations: Mutex-protected for concurrent access.
type Registry struct {
	mu       sync.RWMutex
	docs     map[string]*Document
	opts     flv.DecodeOptions
	selector remove.Selector
	hub      *bus.Hub
}

// NewRegistry creates a registry whose documents share decode options,
// strategy selection and the event hub.
func NewRegistry(opts flv.DecodeOptions, selector remove.Selector, hub *bus.Hub) *Registry {
	return &Registry{
		docs:     make(map[string]*Document),
		opts:     opts,
		selector: selector,
		hub:      hub,
	}
}

// Open loads path under name.
func (r *Registry) Open(name, path string) (*Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.docs[name]; exists {
		return nil, fmt.Errorf("%w: %s", ErrExists, name)
	}
	doc, err := Open(name, path, r.opts, r.selector, r.hub)
	if err != nil {
		return nil, err
	}
	r.docs[name] = doc
	return doc, nil
}

// Get returns the named document.
func (r *Registry) Get(name string) (*Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, ok := r.docs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return doc, nil
}

// Close forgets the named document. It reports whether it was open.
func (r *Registry) Close(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.docs[name]; !ok {
		return false
	}
	delete(r.docs, name)
	return true
}

// Count returns the number of open documents.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.docs)
}

// List returns the open document names in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.docs))
	for name := range r.docs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Hub returns the event hub, which may be nil.
func (r *Registry) Hub() *bus.Hub {
	return r.hub
}
