// If you are AI: This file implements Document, the serialization point for all access to one FLV file.
// Every mutation holds the write lock, ends with a full reload, and publishes one event.

package workspace

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"flvedit/internal/core/bus"
	"flvedit/internal/core/container"
	"flvedit/internal/core/protocol/flv"
	"flvedit/internal/core/remove"
)

// Document binds a file path to its current decoded container.
// Lock expectations: readers go through View; Reload, DeleteTag and Poke
// take the write lock for the whole operation.
type Document struct {
	name     string
	path     string
	opts     flv.DecodeOptions
	selector remove.Selector
	hub      *bus.Hub

	mu sync.RWMutex
	ct *container.Container
}

// Open loads path and returns a document named name. hub may be nil.
func Open(name, path string, opts flv.DecodeOptions, selector remove.Selector, hub *bus.Hub) (*Document, error) {
	ct, err := container.Load(path, opts)
	if err != nil {
		return nil, err
	}
	return &Document{
		name:     name,
		path:     path,
		opts:     opts,
		selector: selector,
		hub:      hub,
		ct:       ct,
	}, nil
}

// Name returns the document name.
func (d *Document) Name() string { return d.name }

// Path returns the backing file path.
func (d *Document) Path() string { return d.path }

// View calls fn with the current container under the read lock.
// fn must not retain the container after it returns.
func (d *Document) View(fn func(*container.Container) error) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return fn(d.ct)
}

// Counts returns the current tag and decode issue counts.
func (d *Document) Counts() (tags, issues int) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.ct.Len(), len(d.ct.Issues())
}

// Reload decodes the file again and publishes EventReloaded.
func (d *Document) Reload() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.reload(); err != nil {
		return err
	}
	d.publish(bus.Event{Kind: bus.EventReloaded})
	return nil
}

// reload replaces the container. Callers hold the write lock.
func (d *Document) reload() error {
	ct, err := container.Load(d.path, d.opts)
	if err != nil {
		return fmt.Errorf("reload %s: %w", d.name, err)
	}
	d.ct = ct
	return nil
}

// DeleteTag removes tag index from the file using the strategy the selector
// picks for the current file size, then reloads. It returns the strategy name.
// A failed deletion still reloads so the model reflects whatever is on disk.
func (d *Document) DeleteTag(index int) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	header, tags := d.ct.Spans()
	s := d.selector.Select(d.ct.Size())
	err := s.Delete(d.path, header, tags, index)
	if errors.Is(err, remove.ErrIndexOutOfRange) {
		return s.Name(), err
	}
	if err != nil {
		log.Printf("workspace: %s: delete tag %d using %s failed: %v", d.name, index, s.Name(), err)
		var re *remove.Error
		if errors.As(err, &re) && re.Indeterminate {
			log.Printf("workspace: %s: file may be corrupted", d.name)
		}
		if rerr := d.reload(); rerr != nil {
			log.Printf("workspace: %v", rerr)
		}
		return s.Name(), err
	}

	log.Printf("workspace: %s: deleted tag %d using %s", d.name, index, s.Name())
	if err := d.reload(); err != nil {
		return s.Name(), err
	}
	d.publish(bus.Event{Kind: bus.EventDeleted, Index: index, Strategy: s.Name()})
	return s.Name(), nil
}

// Poke writes one byte at an absolute file offset, then reloads.
func (d *Document) Poke(offset int64, value byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.ct.Poke(offset, value); err != nil {
		return err
	}
	log.Printf("workspace: %s: wrote 0x%02x at 0x%x", d.name, value, offset)
	if err := d.reload(); err != nil {
		return err
	}
	d.publish(bus.Event{Kind: bus.EventPoked, Offset: offset, Value: int(value)})
	return nil
}

// publish fills the document fields of ev and hands it to the hub.
// Callers hold the write lock.
func (d *Document) publish(ev bus.Event) {
	if d.hub == nil {
		return
	}
	ev.Doc = d.name
	ev.Tags = d.ct.Len()
	ev.Issues = len(d.ct.Issues())
	ev.Time = time.Now()
	d.hub.Publish(ev)
}
