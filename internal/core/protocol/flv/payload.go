// If you are AI: This file defines the per-type tag payload variants and their decoders.
// Payload is a closed sum type: audio, video, script, or unknown.

package flv

import (
	"flvedit/internal/core/protocol/amf0"
	"flvedit/internal/core/protocol/cursor"
)

// Payload is the type-specific part of a tag. The concrete type is selected
// by the tag type: *AudioPayload, *VideoPayload, *ScriptPayload, *UnknownPayload.
type Payload interface {
	payloadType() byte
}

// AudioPayload holds the bit-packed sound info byte and the optional AAC packet type.
type AudioPayload struct {
	SoundFormat   byte // bits 7-4
	SoundRate     byte // bits 3-2
	SoundSize     byte // bit 1
	SoundType     byte // bit 0
	PacketType    byte
	HasPacketType bool
}

// VideoPayload holds the frame/codec byte and, for AVC/HEVC/AV1/VVC, the packet
// type and signed composition time offset.
type VideoPayload struct {
	FrameType       byte // bits 7-4
	CodecID         byte // bits 3-0
	PacketType      byte
	CompositionTime int32
	HasPacketType   bool
}

// ScriptPayload holds decoded AMF0 metadata. Err is set when decoding stopped
// early; Metadata then contains whatever was decoded before the failure.
type ScriptPayload struct {
	Metadata amf0.Item
	Err      error
}

// UnknownPayload marks a tag type this decoder does not interpret.
type UnknownPayload struct {
	Type byte
}

// payloadType implements Payload.
func (*AudioPayload) payloadType() byte { return TagTypeAudio }

// payloadType implements Payload.
func (*VideoPayload) payloadType() byte { return TagTypeVideo }

// payloadType implements Payload.
func (*ScriptPayload) payloadType() byte { return TagTypeScript }

// payloadType implements Payload.
func (p *UnknownPayload) payloadType() byte { return p.Type }

// IsKeyframe reports whether the frame type marks a keyframe.
func (v *VideoPayload) IsKeyframe() bool {
	return v.FrameType == VideoFrameKeyFrame
}

// decodeAudio reads the sound info byte and, for AAC, the packet type byte.
func decodeAudio(c *cursor.Cursor) (*AudioPayload, error) {
	b, err := c.U8()
	if err != nil {
		return nil, err
	}
	a := &AudioPayload{
		SoundFormat: (b & 0xF0) >> 4,
		SoundRate:   (b & 0x0C) >> 2,
		SoundSize:   (b & 0x02) >> 1,
		SoundType:   b & 0x01,
	}
	if a.SoundFormat == AudioFormatAAC {
		if a.PacketType, err = c.U8(); err != nil {
			return nil, err
		}
		a.HasPacketType = true
	}
	return a, nil
}

// decodeVideo reads the frame info byte and the codec-specific detail.
func decodeVideo(c *cursor.Cursor) (*VideoPayload, error) {
	b, err := c.U8()
	if err != nil {
		return nil, err
	}
	v := &VideoPayload{
		FrameType: (b & 0xF0) >> 4,
		CodecID:   b & 0x0F,
	}
	if hasPacketType(v.CodecID) {
		if v.PacketType, err = c.U8(); err != nil {
			return nil, err
		}
		if v.CompositionTime, err = c.I24(); err != nil {
			return nil, err
		}
		v.HasPacketType = true
	}
	return v, nil
}
