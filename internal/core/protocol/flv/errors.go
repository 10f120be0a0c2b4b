// If you are AI: This file defines decode errors for the FLV header and tag stream.
// Structural errors stop a scan; back-link warnings may be tolerated by the caller.

package flv

import (
	"errors"
	"fmt"
)

var (
	ErrCorruptHeader    = errors.New("flv: corrupt header")
	ErrCorruptTag       = errors.New("flv: corrupt tag")
	ErrBackLinkMismatch = errors.New("flv: previous tag size mismatch")
)

// CorruptTagError describes a tag that could not be decoded structurally.
type CorruptTagError struct {
	Offset int64  // absolute offset of the tag
	Reason string // which part of the tag failed
	Err    error  // underlying cause, may be nil
}

// Error implements the error interface.
func (e *CorruptTagError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("flv: corrupt tag at 0x%x: %s", e.Offset, e.Reason)
	}
	return fmt.Sprintf("flv: corrupt tag at 0x%x: %s: %v", e.Offset, e.Reason, e.Err)
}

// Unwrap returns the underlying cause.
func (e *CorruptTagError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrCorruptTag) match.
func (e *CorruptTagError) Is(target error) bool {
	return target == ErrCorruptTag
}

// BackLinkError reports a trailing PreviousTagSize that disagrees with the tag size.
type BackLinkError struct {
	Offset int64 // absolute offset of the back-link field
	Got    uint32
	Want   uint32
}

// Error implements the error interface.
func (e *BackLinkError) Error() string {
	return fmt.Sprintf("flv: previous tag size at 0x%x is %d, want %d", e.Offset, e.Got, e.Want)
}

// Is makes errors.Is(err, ErrBackLinkMismatch) match.
func (e *BackLinkError) Is(target error) bool {
	return target == ErrBackLinkMismatch
}
