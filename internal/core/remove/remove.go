// If you are AI: This file defines the tag deletion contract shared by both physical strategies.
// Strategies only see byte spans from an already decoded model; they never re-parse the file.

package remove

import (
	"errors"
	"fmt"
)

var (
	// ErrIndexOutOfRange is returned when the tag index is not in the span list.
	ErrIndexOutOfRange = errors.New("tag index out of range")
	// ErrMMapUnsupported is returned by MMapShift on platforms without mmap.
	ErrMMapUnsupported = errors.New("mmap shift not supported on this platform")
	// ErrShortCopy is returned when fewer bytes than a span's size could be copied.
	ErrShortCopy = errors.New("short copy")
)

// Span is a byte range of the file.
type Span struct {
	Offset int64
	Size   int64
}

// End returns the offset of the first byte after the span.
func (s Span) End() int64 {
	return s.Offset + s.Size
}

// Strategy removes the tag at index from the file at path. header is the
// header span (zero Size when the file has none) and tags lists every decoded
// tag in file order. After success the file equals the header followed by
// every other tag in original order.
type Strategy interface {
	Name() string
	Delete(path string, header Span, tags []Span, index int) error
}

// Error reports the IO operation that failed during a deletion.
// Indeterminate is set when the file may already have been partially rewritten.
type Error struct {
	Op            string
	Path          string
	Indeterminate bool
	Err           error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("remove: %s %s: %v", e.Op, e.Path, e.Err)
	if e.Indeterminate {
		msg += " (file state indeterminate)"
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// checkIndex validates index against tags.
func checkIndex(tags []Span, index int) error {
	if index < 0 || index >= len(tags) {
		return fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, index, len(tags))
	}
	return nil
}

// dataEnd returns the end of the last decoded span. Bytes past it were never
// decoded and are dropped by every strategy.
func dataEnd(header Span, tags []Span) int64 {
	end := header.End()
	for _, t := range tags {
		if t.End() > end {
			end = t.End()
		}
	}
	return end
}
