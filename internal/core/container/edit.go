// If you are AI: This file implements single-byte write-through edits.
// Input is validated before the file is touched; decoded fields stay stale until the next load.

package container

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"flvedit/internal/core/protocol/flv"
)

var (
	// ErrInvalidByte is returned for edit input that is not one hex byte.
	ErrInvalidByte = errors.New("invalid byte value")
	// ErrOffsetOutOfRange is returned for an edit outside the file.
	ErrOffsetOutOfRange = errors.New("offset out of range")
	// ErrNoBackingFile is returned when editing a container decoded from memory.
	ErrNoBackingFile = errors.New("container has no backing file")
)

// ParseByte parses one or two hex digits, with an optional 0x prefix.
func ParseByte(s string) (byte, error) {
	v := strings.TrimSpace(s)
	v = strings.TrimPrefix(strings.TrimPrefix(v, "0x"), "0X")
	if v == "" || len(v) > 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidByte, s)
	}
	n, err := strconv.ParseUint(v, 16, 8)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidByte, s)
	}
	return byte(n), nil
}

// Poke writes b at the absolute file offset and patches the raw buffer of the
// header or tag that owns the offset. Cached trees for that owner are dropped.
func (ct *Container) Poke(offset int64, b byte) error {
	if ct.path == "" {
		return ErrNoBackingFile
	}
	if offset < 0 || offset >= ct.size {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrOffsetOutOfRange, offset, ct.size)
	}

	f, err := os.OpenFile(ct.path, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	if _, err := f.WriteAt([]byte{b}, offset); err != nil {
		f.Close()
		return fmt.Errorf("write byte: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close file: %w", err)
	}

	ct.patch(offset, b)
	return nil
}

// patch mirrors a written byte into the in-memory raw buffers.
func (ct *Container) patch(offset int64, b byte) {
	ct.mu.Lock()
	defer ct.mu.Unlock()

	if offset < flv.HeaderSize {
		if ct.header != nil {
			ct.header.Raw[offset] = b
			ct.headerTree = nil
		}
		return
	}
	i := ct.Find(offset)
	if i < 0 {
		return
	}
	t := ct.tags[i]
	t.Raw[offset-t.Offset] = b
	delete(ct.trees, i)
}
