// If you are AI: This file implements FLV file header decoding.
// The header occupies the first 13 bytes, including the leading back-link.

package flv

import (
	"encoding/binary"
	"fmt"

	"flvedit/internal/core/protocol/cursor"
)

// Header represents a decoded FLV file header.
type Header struct {
	Signature   string
	Version     byte
	Flags       byte
	DataOffset  uint32
	PrevTagSize uint32
	Raw         []byte // the 13 header bytes as read from offset 0
}

// HasAudio reports whether the audio presence bit is set.
func (h *Header) HasAudio() bool {
	return h.Flags&FlagAudio != 0
}

// HasVideo reports whether the video presence bit is set.
func (h *Header) HasVideo() bool {
	return h.Flags&FlagVideo != 0
}

// Offset is always 0; present so headers and tags share a span shape.
func (h *Header) Offset() int64 {
	return 0
}

// Size returns the byte length of the header including the first back-link.
func (h *Header) Size() int64 {
	return HeaderSize
}

// DecodeHeader reads the 13-byte header from the start of the source.
// A short read or a wrong signature yields ErrCorruptHeader.
func DecodeHeader(c *cursor.Cursor) (*Header, error) {
	if err := c.Seek(0); err != nil {
		return nil, err
	}
	raw, err := c.Bytes(HeaderSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptHeader, err)
	}
	if string(raw[0:3]) != Signature {
		return nil, fmt.Errorf("%w: signature %q", ErrCorruptHeader, raw[0:3])
	}

	return &Header{
		Signature:   string(raw[0:3]),
		Version:     raw[3],
		Flags:       raw[4],
		DataOffset:  binary.BigEndian.Uint32(raw[5:9]),
		PrevTagSize: binary.BigEndian.Uint32(raw[9:13]),
		Raw:         raw,
	}, nil
}
