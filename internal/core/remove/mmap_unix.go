//go:build unix

// If you are AI: This file implements the in-place mmap shift strategy for unix platforms.
// It is not atomic: a failure after the mapping is established leaves the file indeterminate.

package remove

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// mmapSupported reports whether MMapShift can run on this platform.
const mmapSupported = true

// MMapShift maps the file read-write, moves the bytes after the deleted tag
// down over it, and truncates. Nothing before the deleted tag is written.
type MMapShift struct{}

// Name returns "mmap".
func (MMapShift) Name() string { return "mmap" }

// Delete implements Strategy.
func (MMapShift) Delete(path string, header Span, tags []Span, index int) error {
	if err := checkIndex(tags, index); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return &Error{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return &Error{Op: "stat", Path: path, Err: err}
	}
	size := st.Size()
	last := dataEnd(header, tags)
	if last > size {
		return &Error{Op: "stat", Path: path, Err: fmt.Errorf("decoded data ends at %d, file has %d bytes", last, size)}
	}

	start := tags[index].Offset
	end := tags[index].End()
	tail := last - end

	if tail > 0 {
		data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
		if err != nil {
			return &Error{Op: "mmap", Path: path, Err: err}
		}
		copy(data[start:start+tail], data[end:last])
		if err := unix.Msync(data, unix.MS_SYNC); err != nil {
			unix.Munmap(data)
			return &Error{Op: "msync", Path: path, Indeterminate: true, Err: err}
		}
		if err := unix.Munmap(data); err != nil {
			return &Error{Op: "munmap", Path: path, Indeterminate: true, Err: err}
		}
	}

	if err := f.Truncate(start + tail); err != nil {
		return &Error{Op: "truncate", Path: path, Indeterminate: tail > 0, Err: err}
	}
	return nil
}
