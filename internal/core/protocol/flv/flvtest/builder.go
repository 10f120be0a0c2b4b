// If you are AI: This file provides an FLV byte builder for tests across packages.
// It writes well-formed headers and tags and can inject broken back-links on demand.

package flvtest

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"
)

// Prop is one named property of a script tag object.
// Value may be float64, bool, string, or []Prop for a nested object.
type Prop struct {
	Key   string
	Value interface{}
}

// Builder accumulates an FLV file in memory.
type Builder struct {
	buf     []byte
	offsets []int64
}

// New starts a file with the header "FLV", version 1, audio+video flags.
func New() *Builder {
	return NewWithFlags(0x05)
}

// NewWithFlags starts a file whose header carries the given type flags.
func NewWithFlags(flags byte) *Builder {
	b := &Builder{}
	b.buf = append(b.buf, 'F', 'L', 'V', 0x01, flags, 0x00, 0x00, 0x00, 0x09)
	b.buf = append(b.buf, 0x00, 0x00, 0x00, 0x00)
	return b
}

// Tag appends a tag with a correct trailing back-link.
func (b *Builder) Tag(tagType byte, timestamp uint32, payload []byte) *Builder {
	return b.TagWithBackLink(tagType, timestamp, payload, uint32(11+len(payload)))
}

// TagWithBackLink appends a tag whose trailing back-link is set to backLink.
func (b *Builder) TagWithBackLink(tagType byte, timestamp uint32, payload []byte, backLink uint32) *Builder {
	b.offsets = append(b.offsets, int64(len(b.buf)))
	size := len(payload)
	b.buf = append(b.buf,
		tagType,
		byte(size>>16), byte(size>>8), byte(size),
		byte(timestamp>>16), byte(timestamp>>8), byte(timestamp),
		byte(timestamp>>24),
		0, 0, 0,
	)
	b.buf = append(b.buf, payload...)
	b.buf = binary.BigEndian.AppendUint32(b.buf, backLink)
	return b
}

// Audio appends an audio tag with the given payload bytes.
func (b *Builder) Audio(timestamp uint32, payload ...byte) *Builder {
	return b.Tag(8, timestamp, payload)
}

// Video appends a video tag with the given payload bytes.
func (b *Builder) Video(timestamp uint32, payload ...byte) *Builder {
	return b.Tag(9, timestamp, payload)
}

// Script appends a script tag: AMF0 string name followed by an ECMA array.
func (b *Builder) Script(name string, props ...Prop) *Builder {
	return b.Tag(18, 0, ScriptPayload(name, props...))
}

// Raw appends arbitrary bytes, e.g. a truncated tail.
func (b *Builder) Raw(p ...byte) *Builder {
	b.buf = append(b.buf, p...)
	return b
}

// Bytes returns the accumulated file.
func (b *Builder) Bytes() []byte {
	out := make([]byte, len(b.buf))
	copy(out, b.buf)
	return out
}

// Offsets returns the absolute offset of every tag appended so far.
func (b *Builder) Offsets() []int64 {
	return append([]int64(nil), b.offsets...)
}

// WriteFile writes the file into dir and returns its path.
func (b *Builder) WriteFile(tb testing.TB, dir, name string) string {
	tb.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, b.buf, 0o644); err != nil {
		tb.Fatalf("write fixture: %v", err)
	}
	return path
}

// ScriptPayload encodes "name" + ECMA array of props as AMF0.
func ScriptPayload(name string, props ...Prop) []byte {
	var p []byte
	p = append(p, 0x02)
	p = appendString(p, name)
	p = append(p, 0x08)
	p = binary.BigEndian.AppendUint32(p, uint32(len(props)))
	p = appendProps(p, props)
	return p
}

// Scenario returns the reference two-tag file: one MP3 audio tag and one AVC video tag.
func Scenario() *Builder {
	return New().
		Audio(0, 0x2E, 0x01).
		Video(0, 0x17, 0x01, 0x00, 0x00, 0x00)
}

// Sequence returns a file with one metadata tag followed by n alternating
// audio and video tags whose payloads are padded to payloadSize bytes.
func Sequence(n, payloadSize int) *Builder {
	b := New().Script("onMetaData",
		Prop{Key: "duration", Value: float64(n) / 25},
		Prop{Key: "stereo", Value: true},
		Prop{Key: "encoder", Value: "flvtest"},
	)
	for i := 0; i < n; i++ {
		ts := uint32(i * 40)
		if i%2 == 0 {
			p := pad([]byte{0xAF, 0x01}, payloadSize, byte(i))
			b.Audio(ts, p...)
		} else {
			p := pad([]byte{0x27, 0x01, 0x00, 0x00, 0x00}, payloadSize, byte(i))
			b.Video(ts, p...)
		}
	}
	return b
}

// pad extends head to n bytes with a fill byte.
func pad(head []byte, n int, fill byte) []byte {
	for len(head) < n {
		head = append(head, fill)
	}
	return head
}

// appendProps encodes properties followed by the object end marker.
func appendProps(p []byte, props []Prop) []byte {
	for _, prop := range props {
		p = appendString(p, prop.Key)
		switch v := prop.Value.(type) {
		case float64:
			p = append(p, 0x00)
			p = binary.BigEndian.AppendUint64(p, math.Float64bits(v))
		case bool:
			if v {
				p = append(p, 0x01, 0x01)
			} else {
				p = append(p, 0x01, 0x00)
			}
		case string:
			p = append(p, 0x02)
			p = appendString(p, v)
		case []Prop:
			p = append(p, 0x03)
			p = appendProps(p, v)
		default:
			p = append(p, 0x05)
		}
	}
	return append(p, 0x00, 0x00, 0x09)
}

// appendString encodes a 2-byte length-prefixed string.
func appendString(p []byte, s string) []byte {
	p = binary.BigEndian.AppendUint16(p, uint16(len(s)))
	return append(p, s...)
}
