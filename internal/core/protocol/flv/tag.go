// If you are AI: This file implements FLV tag decoding.
// Format: tag type (1) + data size (3) + timestamp lower (3) + timestamp upper (1) + stream ID (3) + data (N) + previous tag size (4)

package flv

import (
	"fmt"
	"io"

	"flvedit/internal/core/protocol/amf0"
	"flvedit/internal/core/protocol/cursor"
)

// Tag represents one decoded FLV tag and the raw bytes it was read from.
type Tag struct {
	Offset      int64
	Type        byte
	DataSize    uint32
	Timestamp   uint32
	StreamID    uint32
	Payload     Payload
	PrevTagSize uint32
	Raw         []byte // 11 + DataSize + 4 bytes starting at Offset
}

// DecodeOptions tunes how strictly DecodeTag treats inconsistencies.
type DecodeOptions struct {
	// LenientBackLinks keeps tags whose trailing PreviousTagSize disagrees
	// with their size and reports the mismatch as a *BackLinkError.
	LenientBackLinks bool
}

// Size returns the full byte length of the tag: header, payload, and back-link.
func (t *Tag) Size() int64 {
	return TagHeaderSize + int64(t.DataSize) + BackLinkSize
}

// End returns the offset of the first byte after the tag.
func (t *Tag) End() int64 {
	return t.Offset + t.Size()
}

// BackLinkOffset returns the absolute offset of the trailing PreviousTagSize.
func (t *Tag) BackLinkOffset() int64 {
	return t.Offset + TagHeaderSize + int64(t.DataSize)
}

// Audio returns the audio payload, or nil for other tag types.
func (t *Tag) Audio() *AudioPayload {
	a, _ := t.Payload.(*AudioPayload)
	return a
}

// Video returns the video payload, or nil for other tag types.
func (t *Tag) Video() *VideoPayload {
	v, _ := t.Payload.(*VideoPayload)
	return v
}

// Script returns the script payload, or nil for other tag types.
func (t *Tag) Script() *ScriptPayload {
	s, _ := t.Payload.(*ScriptPayload)
	return s
}

// DecodeTag decodes the tag starting at the absolute offset at.
// It returns io.EOF when at is the end of the source, and a *CorruptTagError
// when the tag is truncated, overruns its declared size, or (unless lenient)
// carries a wrong back-link. With LenientBackLinks a mismatch returns both the
// tag and a *BackLinkError. On success the cursor is left at the next tag.
func DecodeTag(c *cursor.Cursor, at int64, opts DecodeOptions) (*Tag, error) {
	if err := c.Seek(at); err != nil {
		return nil, err
	}
	if c.AtEnd() {
		return nil, io.EOF
	}

	t := &Tag{Offset: at}
	var err error
	if t.Type, err = c.U8(); err != nil {
		return nil, corrupt(at, "tag type", err)
	}
	if t.DataSize, err = c.U24(); err != nil {
		return nil, corrupt(at, "data size", err)
	}
	low, err := c.U24()
	if err != nil {
		return nil, corrupt(at, "timestamp", err)
	}
	ext, err := c.U8()
	if err != nil {
		return nil, corrupt(at, "timestamp extension", err)
	}
	t.Timestamp = low | uint32(ext)<<24
	if t.StreamID, err = c.U24(); err != nil {
		return nil, corrupt(at, "stream id", err)
	}

	payloadEnd := t.BackLinkOffset()
	switch t.Type {
	case TagTypeAudio:
		if t.Payload, err = decodeAudio(c); err != nil {
			return nil, corrupt(at, "audio payload", err)
		}
	case TagTypeVideo:
		if t.Payload, err = decodeVideo(c); err != nil {
			return nil, corrupt(at, "video payload", err)
		}
	case TagTypeScript:
		// Metadata may never read past its own payload, so a broken object
		// leaves the following tags decodable.
		restore := c.Limit(payloadEnd)
		sp := &ScriptPayload{}
		sp.Metadata, sp.Err = amf0.DecodeScript(c, payloadEnd)
		restore()
		if sp.Err == io.EOF {
			sp.Err = io.ErrUnexpectedEOF
		}
		t.Payload = sp
	default:
		t.Payload = &UnknownPayload{Type: t.Type}
	}

	if c.Pos() > payloadEnd {
		return nil, corrupt(at, fmt.Sprintf("payload read %d bytes, declared %d", c.Pos()-at-TagHeaderSize, t.DataSize), nil)
	}

	if err := c.Seek(payloadEnd); err != nil {
		return nil, err
	}
	if t.PrevTagSize, err = c.U32(); err != nil {
		return nil, corrupt(at, "previous tag size", err)
	}

	if err := c.Seek(at); err != nil {
		return nil, err
	}
	if t.Raw, err = c.Bytes(int(t.Size())); err != nil {
		return nil, corrupt(at, "raw bytes", err)
	}

	want := uint32(TagHeaderSize) + t.DataSize
	if t.PrevTagSize != want {
		bl := &BackLinkError{Offset: payloadEnd, Got: t.PrevTagSize, Want: want}
		if !opts.LenientBackLinks {
			return nil, corrupt(at, "back-link", bl)
		}
		return t, bl
	}
	return t, nil
}

// corrupt builds a CorruptTagError for the tag at offset.
func corrupt(offset int64, reason string, err error) error {
	return &CorruptTagError{Offset: offset, Reason: reason, Err: err}
}
