// If you are AI: This file builds field trees for the FLV header and for individual tags.
// Builders are pure: the same input always yields an equal tree and nothing is cached here.

package fieldtree

import (
	"strconv"

	"flvedit/internal/core/protocol/amf0"
	"flvedit/internal/core/protocol/flv"
)

// BuildHeader builds the flv_header tree: signature, version, type_flags,
// data_offset, previous_tag_size.
func BuildHeader(h *flv.Header) *Tree {
	t := newTree(Node{Name: "flv_header", Offset: 0, Size: flv.HeaderSize, Value: ""})
	t.add(0, Node{Name: "signature", Offset: 0, Size: 3, Value: h.Signature})
	t.add(0, Node{Name: "version", Offset: 3, Size: 1, Value: float64(h.Version)})
	t.add(0, Node{Name: "type_flags", Offset: 4, Size: 1, Value: float64(h.Flags), Format: Enum(flv.TypeFlagsName)})
	t.add(0, Node{Name: "data_offset", Offset: 5, Size: 4, Value: float64(h.DataOffset)})
	t.add(0, Node{Name: "previous_tag_size", Offset: 9, Size: 4, Value: float64(h.PrevTagSize)})
	return t
}

// BuildTag builds the tag_info tree. Children, in order: tag_type, tag_size,
// timestamp, stream_id, the payload subtree chosen by tag type, previous_tag_size.
func BuildTag(tag *flv.Tag) *Tree {
	off := tag.Offset
	t := newTree(Node{Name: "tag_info", Offset: off, Size: uint32(tag.Size()), Value: flv.TagTypeName(tag.Type)})
	t.add(0, Node{Name: "tag_type", Offset: off, Size: 1, Value: float64(tag.Type), Format: Enum(flv.TagTypeName)})
	t.add(0, Node{Name: "tag_size", Offset: off + 1, Size: 3, Value: float64(tag.DataSize)})
	t.add(0, Node{Name: "timestamp", Offset: off + 4, Size: 4, Value: float64(tag.Timestamp)})
	t.add(0, Node{Name: "stream_id", Offset: off + 8, Size: 3, Value: float64(tag.StreamID)})

	payloadOff := off + flv.TagHeaderSize
	switch p := tag.Payload.(type) {
	case *flv.AudioPayload:
		addAudio(t, payloadOff, tag.DataSize, p)
	case *flv.VideoPayload:
		addVideo(t, payloadOff, tag.DataSize, p)
	case *flv.ScriptPayload:
		addScript(t, payloadOff, tag.DataSize, p)
	default:
		t.add(0, Node{Name: "unknown", Offset: payloadOff, Size: tag.DataSize, Value: float64(tag.Type)})
	}

	t.add(0, Node{Name: "previous_tag_size", Offset: tag.BackLinkOffset(), Size: flv.BackLinkSize, Value: float64(tag.PrevTagSize)})
	return t
}

// addAudio adds the audio_info subtree. dataSize is the owning tag's payload size.
func addAudio(t *Tree, off int64, dataSize uint32, a *flv.AudioPayload) {
	info := t.add(0, Node{Name: "audio_info", Offset: off, Size: dataSize, Value: ""})
	t.add(info, Node{Name: "sound_format", Offset: off, Size: 1, Value: float64(a.SoundFormat), Format: Enum(flv.SoundFormatName)})
	t.add(info, Node{Name: "sound_rate", Offset: off, Size: 1, Value: float64(a.SoundRate), Format: Enum(flv.SoundRateName)})
	t.add(info, Node{Name: "sound_size", Offset: off, Size: 1, Value: float64(a.SoundSize), Format: Enum(flv.SoundSizeName)})
	t.add(info, Node{Name: "sound_type", Offset: off, Size: 1, Value: float64(a.SoundType), Format: Enum(flv.SoundTypeName)})
	if a.HasPacketType {
		t.add(info, Node{Name: "detail_type", Offset: off + 1, Size: 1, Value: float64(a.PacketType), Format: Enum(flv.AACPacketTypeName)})
	}
}

// addVideo adds the video_info subtree. dataSize is the owning tag's payload size.
func addVideo(t *Tree, off int64, dataSize uint32, v *flv.VideoPayload) {
	info := t.add(0, Node{Name: "video_info", Offset: off, Size: dataSize, Value: ""})
	t.add(info, Node{Name: "frame_type", Offset: off, Size: 1, Value: float64(v.FrameType), Format: Enum(flv.FrameTypeName)})
	t.add(info, Node{Name: "codec", Offset: off, Size: 1, Value: float64(v.CodecID), Format: Enum(flv.CodecName)})
	if v.HasPacketType {
		t.add(info, Node{Name: "detail_type", Offset: off + 1, Size: 1, Value: float64(v.PacketType), Format: Enum(flv.VideoPacketTypeName)})
		t.add(info, Node{Name: "cts", Offset: off + 2, Size: 3, Value: float64(v.CompositionTime)})
	}
}

// addScript adds the data_info subtree holding the decoded metadata.
func addScript(t *Tree, off int64, dataSize uint32, s *flv.ScriptPayload) {
	info := t.add(0, Node{Name: "data_info", Offset: off, Size: dataSize, Value: ""})
	addItem(t, info, &s.Metadata, s.Metadata.Key)
	if s.Err != nil {
		t.add(info, Node{Name: "decode_error", Offset: off, Size: 0, Value: s.Err.Error()})
	}
}

// addItem adds one AMF0 node and its descendants under parent.
func addItem(t *Tree, parent int, it *amf0.Item, name string) {
	n := Node{Name: name, Offset: it.Offset, Size: it.Size, Value: it.Value}
	switch it.Type {
	case amf0.TypeNumber:
		n.Format = formatAMFNumber
	case amf0.TypeBoolean:
		n.Format = formatAMFBoolean
	case amf0.TypeString, amf0.TypeLongString:
		n.Format = formatAMFString
	case amf0.TypeDate:
		n.Format = formatAMFDate
	case amf0.TypeNull, amf0.TypeUndefined:
		n.Format = formatAMFNull
	case amf0.TypeObject, amf0.TypeECMAArray, amf0.TypeStrictArray:
		n.Format = formatAMFContainer
	default:
		n.Format = formatAMFUnknown(it.Type)
	}
	id := t.add(parent, n)

	strict := it.Type == amf0.TypeStrictArray
	for i := range it.Children {
		child := &it.Children[i]
		childName := child.Key
		if strict {
			childName = "[" + strconv.Itoa(i) + "]"
		}
		addItem(t, id, child, childName)
	}
}
