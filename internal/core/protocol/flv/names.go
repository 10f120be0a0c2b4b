// If you are AI: This file maps FLV enumeration values to display names.
// Each function is a pure lookup; unknown values get an explicit "unknown" label.

package flv

// TagTypeName returns "audio", "video", "script", or "unknown".
func TagTypeName(t byte) string {
	switch t {
	case TagTypeAudio:
		return "audio"
	case TagTypeVideo:
		return "video"
	case TagTypeScript:
		return "script"
	default:
		return "unknown"
	}
}

// FrameTypeName names the video frame type nibble.
func FrameTypeName(v byte) string {
	switch v {
	case 1:
		return "keyframe"
	case 2:
		return "inter frame"
	case 3:
		return "disposable inter frame"
	case 4:
		return "generated keyframe"
	case 5:
		return "video info/command frame"
	default:
		return "unknown frame type"
	}
}

// CodecName names the video codec id nibble.
func CodecName(v byte) string {
	switch v {
	case 2:
		return "Sorenson H.263"
	case 3:
		return "Screen video"
	case 4:
		return "On2 VP6"
	case 5:
		return "On2 VP6 with alpha channel"
	case 6:
		return "Screen video version 2"
	case VideoCodecAVC:
		return "AVC"
	case VideoCodecHEVC:
		return "HEVC"
	case VideoCodecAV1:
		return "AV1"
	case VideoCodecVVC:
		return "VVC"
	default:
		return "unknown codec"
	}
}

// VideoPacketTypeName names the packet type byte of AVC-style video tags.
func VideoPacketTypeName(v byte) string {
	switch v {
	case AVCPacketTypeSequenceHeader:
		return "sequence header"
	case AVCPacketTypeNALU:
		return "normal NALU"
	case AVCPacketTypeEndOfSequence:
		return "end of sequence"
	default:
		return "unknown detail type"
	}
}

// SoundFormatName names the audio sound format nibble.
func SoundFormatName(v byte) string {
	switch v {
	case 0:
		return "Linear PCM, platform endian"
	case 1:
		return "ADPCM"
	case 2:
		return "MP3"
	case 3:
		return "Linear PCM, little endian"
	case 4:
		return "Nellymoser 16-kHz mono"
	case 5:
		return "Nellymoser 8-kHz mono"
	case 6:
		return "Nellymoser"
	case 7:
		return "G.711 A-law"
	case 8:
		return "G.711 mu-law"
	case 9:
		return "reserved"
	case AudioFormatAAC:
		return "AAC"
	case 11:
		return "Speex"
	case 14:
		return "MP3 8-Khz"
	case 15:
		return "Device-specific sound"
	default:
		return "unknown sound format"
	}
}

// SoundRateName names the 2-bit sound rate.
func SoundRateName(v byte) string {
	switch v {
	case 0:
		return "5.5-kHz"
	case 1:
		return "11-kHz"
	case 2:
		return "22-kHz"
	case 3:
		return "44-kHz"
	default:
		return "unknown sound rate"
	}
}

// SoundSizeName names the sample size bit.
func SoundSizeName(v byte) string {
	switch v {
	case 0:
		return "8-bit samples"
	case 1:
		return "16-bit samples"
	default:
		return "unknown"
	}
}

// SoundTypeName names the channel layout bit.
func SoundTypeName(v byte) string {
	switch v {
	case 0:
		return "Mono sound"
	case 1:
		return "Stereo sound"
	default:
		return "unknown"
	}
}

// AACPacketTypeName names the AAC packet type byte.
func AACPacketTypeName(v byte) string {
	switch v {
	case 0:
		return "Sequence header"
	case 1:
		return "normal data"
	default:
		return "unknown"
	}
}

// TypeFlagsName describes the header audio/video presence bits.
func TypeFlagsName(flags byte) string {
	switch {
	case flags&(FlagAudio|FlagVideo) == FlagAudio|FlagVideo:
		return "has audio and video"
	case flags&FlagAudio != 0:
		return "has audio"
	case flags&FlagVideo != 0:
		return "has video"
	default:
		return "no streams"
	}
}
