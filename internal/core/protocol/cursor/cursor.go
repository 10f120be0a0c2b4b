// If you are AI: This file implements a big-endian byte cursor over a random-access source.
// Reads are served from a sliding window so file-backed decoding avoids per-field syscalls.

package cursor

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"
)

// windowSize is the minimum number of bytes fetched per window refill.
const windowSize = 64 * 1024

// ErrNegativeSeek is returned when seeking before the start of the source.
var ErrNegativeSeek = errors.New("cursor: negative position")

// Cursor reads fixed-width big-endian values from an io.ReaderAt.
// It is not safe for concurrent use.
type Cursor struct {
	src  io.ReaderAt
	size int64
	pos  int64

	window    []byte
	windowOff int64
}

// New creates a cursor over src, which holds exactly size bytes.
func New(src io.ReaderAt, size int64) *Cursor {
	return &Cursor{src: src, size: size}
}

// FromBytes creates a cursor over an in-memory buffer.
func FromBytes(b []byte) *Cursor {
	return &Cursor{
		src:    bytes.NewReader(b),
		size:   int64(len(b)),
		window: b,
	}
}

// Pos returns the current absolute position.
func (c *Cursor) Pos() int64 {
	return c.pos
}

// Len returns the total size of the source.
func (c *Cursor) Len() int64 {
	return c.size
}

// Remaining returns the number of bytes between the position and the end.
func (c *Cursor) Remaining() int64 {
	if c.pos >= c.size {
		return 0
	}
	return c.size - c.pos
}

// AtEnd reports whether no bytes are left to read.
func (c *Cursor) AtEnd() bool {
	return c.pos >= c.size
}

// Seek moves the cursor to an absolute position.
// Seeking past the end is allowed; the next read reports io.EOF.
func (c *Cursor) Seek(pos int64) error {
	if pos < 0 {
		return ErrNegativeSeek
	}
	c.pos = pos
	return nil
}

// Limit caps reads at the absolute position end until the returned func is
// called. Reads that would cross end fail as they would at the end of the source.
func (c *Cursor) Limit(end int64) (restore func()) {
	prev := c.size
	if end < c.size {
		c.size = end
	}
	return func() { c.size = prev }
}

// peek returns a view of the next n bytes without advancing.
// The returned slice is only valid until the next read.
func (c *Cursor) peek(n int) ([]byte, error) {
	if n == 0 {
		return nil, nil
	}
	if c.pos >= c.size {
		return nil, io.EOF
	}
	if int64(n) > c.size-c.pos {
		return nil, io.ErrUnexpectedEOF
	}

	start := c.pos - c.windowOff
	if start >= 0 && start+int64(n) <= int64(len(c.window)) {
		return c.window[start : start+int64(n)], nil
	}

	want := n
	if want < windowSize {
		want = windowSize
	}
	if int64(want) > c.size-c.pos {
		want = int(c.size - c.pos)
	}
	buf := make([]byte, want)
	read, err := c.src.ReadAt(buf, c.pos)
	if read < n {
		if err == nil || err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}
	c.window = buf[:read]
	c.windowOff = c.pos
	return c.window[:n], nil
}

// Bytes reads n bytes and returns a copy of them.
func (c *Cursor) Bytes(n int) ([]byte, error) {
	b, err := c.peek(n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b)
	c.pos += int64(n)
	return out, nil
}

// U8 reads one byte.
func (c *Cursor) U8() (byte, error) {
	b, err := c.peek(1)
	if err != nil {
		return 0, err
	}
	c.pos++
	return b[0], nil
}

// U16 reads a 2-byte big-endian unsigned integer.
func (c *Cursor) U16() (uint16, error) {
	b, err := c.peek(2)
	if err != nil {
		return 0, err
	}
	c.pos += 2
	return binary.BigEndian.Uint16(b), nil
}

// U24 reads a 3-byte big-endian unsigned integer.
func (c *Cursor) U24() (uint32, error) {
	b, err := c.peek(3)
	if err != nil {
		return 0, err
	}
	c.pos += 3
	return Uint24(b), nil
}

// I24 reads a 3-byte big-endian two's complement integer.
func (c *Cursor) I24() (int32, error) {
	v, err := c.U24()
	if err != nil {
		return 0, err
	}
	return Int24(v), nil
}

// U32 reads a 4-byte big-endian unsigned integer.
func (c *Cursor) U32() (uint32, error) {
	b, err := c.peek(4)
	if err != nil {
		return 0, err
	}
	c.pos += 4
	return binary.BigEndian.Uint32(b), nil
}

// F64 reads an 8-byte big-endian IEEE-754 double.
func (c *Cursor) F64() (float64, error) {
	b, err := c.peek(8)
	if err != nil {
		return 0, err
	}
	c.pos += 8
	return math.Float64frombits(binary.BigEndian.Uint64(b)), nil
}

// Uint24 decodes the first three bytes of b as a big-endian value.
func Uint24(b []byte) uint32 {
	return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
}

// Int24 sign-extends a 24-bit value.
func Int24(v uint32) int32 {
	if v&0x800000 != 0 {
		return int32(v | 0xFF000000)
	}
	return int32(v)
}
