// If you are AI: This file tests FLV header and tag decoding against synthetic files.

package flv

import (
	"errors"
	"io"
	"testing"

	"flvedit/internal/core/protocol/amf0"
	"flvedit/internal/core/protocol/cursor"
	"flvedit/internal/core/protocol/flv/flvtest"
)

// decodeAll scans every tag from a buffer the way the container does.
func decodeAll(t *testing.T, buf []byte, opts DecodeOptions) ([]*Tag, error) {
	t.Helper()
	c := cursor.FromBytes(buf)
	if _, err := DecodeHeader(c); err != nil {
		t.Fatalf("DecodeHeader failed: %v", err)
	}
	var tags []*Tag
	at := int64(HeaderSize)
	for {
		tag, err := DecodeTag(c, at, opts)
		if tag != nil {
			tags = append(tags, tag)
			at = tag.End()
		}
		if err == io.EOF {
			return tags, nil
		}
		if err != nil && tag == nil {
			return tags, err
		}
	}
}

func TestDecodeHeader(t *testing.T) {
	buf := flvtest.Scenario().Bytes()
	h, err := DecodeHeader(cursor.FromBytes(buf))
	if err != nil {
		t.Fatalf("DecodeHeader failed: %v", err)
	}
	if h.Signature != "FLV" || h.Version != 1 || h.Flags != 0x05 {
		t.Errorf("Header = %+v", h)
	}
	if h.DataOffset != 9 || h.PrevTagSize != 0 {
		t.Errorf("DataOffset=%d PrevTagSize=%d", h.DataOffset, h.PrevTagSize)
	}
	if !h.HasAudio() || !h.HasVideo() {
		t.Error("Flags 0x05 should report audio and video")
	}
	if len(h.Raw) != HeaderSize || h.Size() != HeaderSize || h.Offset() != 0 {
		t.Errorf("Header span = [%d,+%d) raw=%d", h.Offset(), h.Size(), len(h.Raw))
	}
}

func TestDecodeHeaderCorrupt(t *testing.T) {
	cases := map[string][]byte{
		"bad signature": []byte("FLX\x01\x05\x00\x00\x00\x09\x00\x00\x00\x00"),
		"short":         []byte("FLV\x01\x05"),
		"empty":         nil,
	}
	for name, buf := range cases {
		if _, err := DecodeHeader(cursor.FromBytes(buf)); !errors.Is(err, ErrCorruptHeader) {
			t.Errorf("%s: expected ErrCorruptHeader, got %v", name, err)
		}
	}
}

func TestDecodeScenario(t *testing.T) {
	buf := flvtest.Scenario().Bytes()
	tags, err := decodeAll(t, buf, DecodeOptions{})
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(tags) != 2 {
		t.Fatalf("Expected 2 tags, got %d", len(tags))
	}

	audio := tags[0]
	if audio.Type != TagTypeAudio || audio.DataSize != 2 || audio.Timestamp != 0 || audio.StreamID != 0 {
		t.Errorf("Audio tag = %+v", audio)
	}
	if audio.Offset != HeaderSize || audio.Size() != 17 || audio.PrevTagSize != 13 {
		t.Errorf("Audio span = [%d,+%d) backlink=%d", audio.Offset, audio.Size(), audio.PrevTagSize)
	}
	a := audio.Audio()
	if a == nil {
		t.Fatal("Expected audio payload")
	}
	// 0x2E = format 2 (MP3), rate 3, size 1, mono; MP3 has no packet type byte.
	if a.SoundFormat != 2 || a.SoundRate != 3 || a.SoundSize != 1 || a.SoundType != 0 || a.HasPacketType {
		t.Errorf("Audio payload = %+v", a)
	}

	video := tags[1]
	if video.Type != TagTypeVideo || video.DataSize != 5 || video.Offset != 30 {
		t.Errorf("Video tag = %+v", video)
	}
	v := video.Video()
	if v == nil {
		t.Fatal("Expected video payload")
	}
	if v.FrameType != 1 || v.CodecID != VideoCodecAVC || !v.HasPacketType || v.PacketType != 1 || v.CompositionTime != 0 {
		t.Errorf("Video payload = %+v", v)
	}
	if !v.IsKeyframe() {
		t.Error("Frame type 1 should be a keyframe")
	}
	if video.PrevTagSize != 16 {
		t.Errorf("Video back-link = %d, want 16", video.PrevTagSize)
	}
}

func TestDecodeTagInvariants(t *testing.T) {
	buf := flvtest.Sequence(20, 32).Bytes()
	tags, err := decodeAll(t, buf, DecodeOptions{})
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(tags) != 21 {
		t.Fatalf("Expected 21 tags, got %d", len(tags))
	}
	for i, tag := range tags {
		if tag.Size() != int64(11+tag.DataSize+4) {
			t.Errorf("Tag %d size %d != 11+%d+4", i, tag.Size(), tag.DataSize)
		}
		if tag.PrevTagSize != 11+tag.DataSize {
			t.Errorf("Tag %d back-link %d != 11+%d", i, tag.PrevTagSize, tag.DataSize)
		}
		if int64(len(tag.Raw)) != tag.Size() {
			t.Errorf("Tag %d raw length %d != size %d", i, len(tag.Raw), tag.Size())
		}
		if tag.Timestamp != uint32(0) && i == 0 {
			t.Errorf("Metadata tag timestamp = %d", tag.Timestamp)
		}
	}
}

func TestDecodeExtendedTimestamp(t *testing.T) {
	buf := flvtest.New().Audio(0x01020304, 0x2E).Bytes()
	tags, err := decodeAll(t, buf, DecodeOptions{})
	if err != nil || len(tags) != 1 {
		t.Fatalf("Decode = %d tags, %v", len(tags), err)
	}
	if tags[0].Timestamp != 0x01020304 {
		t.Errorf("Timestamp = %#x, want 0x01020304", tags[0].Timestamp)
	}
}

func TestDecodeNegativeCompositionTime(t *testing.T) {
	buf := flvtest.New().Video(0, 0x27, 0x01, 0xFF, 0xFF, 0xD8).Bytes()
	tags, err := decodeAll(t, buf, DecodeOptions{})
	if err != nil || len(tags) != 1 {
		t.Fatalf("Decode = %d tags, %v", len(tags), err)
	}
	if cts := tags[0].Video().CompositionTime; cts != -40 {
		t.Errorf("CompositionTime = %d, want -40", cts)
	}
}

func TestDecodeBackLinkMismatch(t *testing.T) {
	b := flvtest.New().
		Audio(0, 0x2E, 0x01).
		TagWithBackLink(TagTypeVideo, 40, []byte{0x17, 0x01, 0, 0, 0}, 99).
		Audio(80, 0x2E, 0x01)

	tags, err := decodeAll(t, b.Bytes(), DecodeOptions{})
	if !errors.Is(err, ErrCorruptTag) || !errors.Is(err, ErrBackLinkMismatch) {
		t.Fatalf("Expected corrupt back-link error, got %v", err)
	}
	if len(tags) != 1 {
		t.Errorf("Tags before the corrupt one must be kept and it excluded, got %d", len(tags))
	}

	tags, err = decodeAll(t, b.Bytes(), DecodeOptions{LenientBackLinks: true})
	if err != nil {
		t.Fatalf("Lenient decode failed: %v", err)
	}
	if len(tags) != 3 {
		t.Errorf("Lenient decode should keep all 3 tags, got %d", len(tags))
	}
}

func TestDecodeTruncatedTail(t *testing.T) {
	b := flvtest.Scenario().Raw(TagTypeAudio, 0x00, 0x00)
	tags, err := decodeAll(t, b.Bytes(), DecodeOptions{})

	var cte *CorruptTagError
	if !errors.As(err, &cte) {
		t.Fatalf("Expected CorruptTagError, got %v", err)
	}
	if cte.Offset != 50 {
		t.Errorf("Corrupt offset = %d, want 50", cte.Offset)
	}
	if len(tags) != 2 {
		t.Errorf("Expected 2 complete tags, got %d", len(tags))
	}
}

func TestDecodeTruncatedRaw(t *testing.T) {
	full := flvtest.Scenario().Bytes()
	cut := full[:len(full)-2]
	tags, err := decodeAll(t, cut, DecodeOptions{})
	if !errors.Is(err, ErrCorruptTag) {
		t.Fatalf("Expected ErrCorruptTag, got %v", err)
	}
	if len(tags) != 1 {
		t.Errorf("Expected the first tag only, got %d", len(tags))
	}
}

func TestDecodePayloadOverrun(t *testing.T) {
	// Declared size 1, but AAC audio needs two bytes.
	b := flvtest.New().TagWithBackLink(TagTypeAudio, 0, []byte{0xAF}, 12).Raw(0x01, 0x02, 0x03, 0x04)
	tags, err := decodeAll(t, b.Bytes(), DecodeOptions{})
	if !errors.Is(err, ErrCorruptTag) {
		t.Fatalf("Expected ErrCorruptTag for overrun, got %v", err)
	}
	if len(tags) != 0 {
		t.Errorf("Overrunning tag must not be kept, got %d tags", len(tags))
	}
}

func TestDecodeScriptTag(t *testing.T) {
	b := flvtest.New().Script("onMetaData",
		flvtest.Prop{Key: "width", Value: 640.0},
		flvtest.Prop{Key: "hasAudio", Value: false},
	).Audio(0, 0x2E, 0x01)

	tags, err := decodeAll(t, b.Bytes(), DecodeOptions{})
	if err != nil || len(tags) != 2 {
		t.Fatalf("Decode = %d tags, %v", len(tags), err)
	}
	sp := tags[0].Script()
	if sp == nil || sp.Err != nil {
		t.Fatalf("Script payload = %+v", sp)
	}
	if sp.Metadata.Key != "onMetaData" || len(sp.Metadata.Children) != 2 {
		t.Errorf("Metadata = %+v", sp.Metadata)
	}
	if sp.Metadata.Offset != HeaderSize+TagHeaderSize {
		t.Errorf("Metadata offset = %d, want %d", sp.Metadata.Offset, HeaderSize+TagHeaderSize)
	}
	if int64(sp.Metadata.Size) != int64(tags[0].DataSize) {
		t.Errorf("Metadata size = %d, want %d", sp.Metadata.Size, tags[0].DataSize)
	}
}

func TestDecodeBadScriptKeepsTag(t *testing.T) {
	// onMetaData ECMA array holding one reference (unsupported) value.
	payload := []byte{0x02, 0x00, 0x01, 'm', 0x08, 0, 0, 0, 1, 0x00, 0x01, 'r', 0x07, 0x00, 0x00, 0x00, 0x00, 0x09}
	b := flvtest.New().Tag(TagTypeScript, 0, payload).Video(40, 0x17, 0x01, 0, 0, 0)

	tags, err := decodeAll(t, b.Bytes(), DecodeOptions{})
	if err != nil {
		t.Fatalf("A bad metadata tag must not stop the scan: %v", err)
	}
	if len(tags) != 2 {
		t.Fatalf("Expected 2 tags, got %d", len(tags))
	}
	sp := tags[0].Script()
	if !errors.Is(sp.Err, amf0.ErrUnknownType) {
		t.Errorf("Expected ErrUnknownType marker, got %v", sp.Err)
	}
	if len(sp.Metadata.Children) != 1 || sp.Metadata.Children[0].Value != amf0.PlaceholderValue {
		t.Errorf("Expected placeholder child, got %+v", sp.Metadata.Children)
	}
}

func TestDecodeUnknownTagType(t *testing.T) {
	b := flvtest.New().Tag(0x0F, 0, []byte{1, 2, 3})
	tags, err := decodeAll(t, b.Bytes(), DecodeOptions{})
	if err != nil || len(tags) != 1 {
		t.Fatalf("Decode = %d tags, %v", len(tags), err)
	}
	up, ok := tags[0].Payload.(*UnknownPayload)
	if !ok || up.Type != 0x0F {
		t.Errorf("Payload = %#v", tags[0].Payload)
	}
}

func TestTypeFlagsName(t *testing.T) {
	cases := map[byte]string{
		0x05: "has audio and video",
		0x04: "has audio",
		0x01: "has video",
		0x00: "no streams",
	}
	for flags, want := range cases {
		if got := TypeFlagsName(flags); got != want {
			t.Errorf("TypeFlagsName(%#x) = %q, want %q", flags, got, want)
		}
	}
}
