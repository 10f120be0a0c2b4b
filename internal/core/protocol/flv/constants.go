// If you are AI: This file defines FLV container constants and tag types.

package flv

// FLV file signature
const Signature = "FLV"

// HeaderSize is the FLV header (9 bytes) plus the leading 4-byte back-link.
const HeaderSize = 13

// TagHeaderSize is the fixed header in front of every tag payload.
const TagHeaderSize = 11

// BackLinkSize is the PreviousTagSize field that trails every tag.
const BackLinkSize = 4

// Tag types
const (
	TagTypeAudio  = 8
	TagTypeVideo  = 9
	TagTypeScript = 18
)

// Header type flags
const (
	FlagVideo = 0x01
	FlagAudio = 0x04
)

// Audio format constants
const (
	AudioFormatAAC = 10
)

// Video codec constants. These carry a packet type and composition time.
const (
	VideoCodecAVC  = 7
	VideoCodecHEVC = 12
	VideoCodecAV1  = 13
	VideoCodecVVC  = 14
)

// Video frame types
const (
	VideoFrameKeyFrame   = 1
	VideoFrameInterFrame = 2
)

// AVCPacketType constants
const (
	AVCPacketTypeSequenceHeader = 0
	AVCPacketTypeNALU           = 1
	AVCPacketTypeEndOfSequence  = 2
)

// hasPacketType reports whether a video codec carries the extended 4-byte detail.
func hasPacketType(codec byte) bool {
	switch codec {
	case VideoCodecAVC, VideoCodecHEVC, VideoCodecAV1, VideoCodecVVC:
		return true
	}
	return false
}
