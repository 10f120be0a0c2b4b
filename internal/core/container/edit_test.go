// If you are AI: This file tests byte parsing, write-through edits, and hex rendering.

package container

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"flvedit/internal/core/protocol/flv"
	"flvedit/internal/core/protocol/flv/flvtest"
)

func TestParseByte(t *testing.T) {
	good := map[string]byte{"0": 0, "ff": 0xFF, "AF": 0xAF, "0x1f": 0x1F, " 7 ": 7}
	for in, want := range good {
		got, err := ParseByte(in)
		if err != nil {
			t.Errorf("ParseByte(%q) failed: %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseByte(%q) = %#x, want %#x", in, got, want)
		}
	}

	for _, in := range []string{"", "0x", "100", "g1", "-1", "zz"} {
		if _, err := ParseByte(in); !errors.Is(err, ErrInvalidByte) {
			t.Errorf("ParseByte(%q): expected ErrInvalidByte, got %v", in, err)
		}
	}
}

func TestPokeWritesThrough(t *testing.T) {
	path := flvtest.Scenario().WriteFile(t, t.TempDir(), "a.flv")
	ct, err := Load(path, flv.DecodeOptions{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	before, _ := ct.Tree(0)

	if err := ct.Poke(24, 0xAF); err != nil {
		t.Fatalf("Poke failed: %v", err)
	}

	disk, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if disk[24] != 0xAF {
		t.Errorf("file byte = %#x, want 0xaf", disk[24])
	}
	raw, _ := ct.TagBytes(0)
	if raw[11] != 0xAF {
		t.Errorf("raw byte = %#x, want 0xaf", raw[11])
	}
	after, _ := ct.Tree(0)
	if after == before {
		t.Error("poke should drop the cached tree")
	}

	// Header bytes are patched too.
	if err := ct.Poke(4, 0x04); err != nil {
		t.Fatalf("Poke header failed: %v", err)
	}
	hb, _ := ct.HeaderBytes()
	if hb[4] != 0x04 {
		t.Errorf("header raw byte = %#x, want 0x04", hb[4])
	}

	// The reloaded file sees both edits.
	re, err := Load(path, flv.DecodeOptions{})
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if re.Header().HasVideo() {
		t.Error("reloaded header should no longer declare video")
	}
	tag, _ := re.Tag(0)
	if tag.Audio() == nil || tag.Audio().SoundFormat != flv.AudioFormatAAC {
		t.Error("reloaded tag should be AAC")
	}
}

func TestPokeRejected(t *testing.T) {
	b := flvtest.Scenario()
	path := b.WriteFile(t, t.TempDir(), "a.flv")
	ct, err := Load(path, flv.DecodeOptions{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	for _, off := range []int64{-1, 50, 1000} {
		if err := ct.Poke(off, 1); !errors.Is(err, ErrOffsetOutOfRange) {
			t.Errorf("Poke(%d): expected ErrOffsetOutOfRange, got %v", off, err)
		}
	}
	disk, _ := os.ReadFile(path)
	if !bytes.Equal(disk, b.Bytes()) {
		t.Error("rejected pokes must not modify the file")
	}

	mem := Decode(bytes.NewReader(b.Bytes()), 50, flv.DecodeOptions{})
	if err := mem.Poke(13, 1); !errors.Is(err, ErrNoBackingFile) {
		t.Errorf("expected ErrNoBackingFile, got %v", err)
	}
}

func TestHexRows(t *testing.T) {
	data := []byte("FLV\x01\x05\x00\x00\x00\x09\x00\x00\x00\x00ABCDEFG")
	rows := HexRows(data, 100)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Offset != 100 || rows[1].Offset != 116 {
		t.Errorf("row offsets = %d, %d", rows[0].Offset, rows[1].Offset)
	}
	if !strings.HasPrefix(rows[0].Hex, "46 4c 56 01 05") {
		t.Errorf("row 0 hex = %q", rows[0].Hex)
	}
	if rows[0].ASCII != "FLV..........ABC" {
		t.Errorf("row 0 ascii = %q", rows[0].ASCII)
	}
	if rows[1].Hex != "44 45 46 47" || rows[1].ASCII != "DEFG" {
		t.Errorf("row 1 = %+v", rows[1])
	}

	var out bytes.Buffer
	if err := WriteHex(&out, data, 0); err != nil {
		t.Fatalf("WriteHex failed: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[1], "00000010  44 45 46 47") {
		t.Errorf("WriteHex output = %q", out.String())
	}
	if !strings.HasSuffix(lines[1], "|DEFG|") {
		t.Errorf("ascii column = %q", lines[1])
	}
}

func TestSummary(t *testing.T) {
	buf := flvtest.Scenario().Bytes()
	ct := Decode(bytes.NewReader(buf), int64(len(buf)), flv.DecodeOptions{})
	tag, _ := ct.Tag(1)
	got := Summary(tag)
	if !strings.HasPrefix(got, "0x0000001e  video") || !strings.Contains(got, "size=5") || !strings.HasSuffix(got, "  keyframe") {
		t.Errorf("Summary = %q", got)
	}
	audio, _ := ct.Tag(0)
	if got := Summary(audio); strings.Contains(got, "keyframe") {
		t.Errorf("audio Summary = %q", got)
	}
}

func TestSummaryScript(t *testing.T) {
	buf := flvtest.Sequence(2, 4).Bytes()
	ct := Decode(bytes.NewReader(buf), int64(len(buf)), flv.DecodeOptions{})
	tag, err := ct.Tag(0)
	if err != nil {
		t.Fatalf("Tag failed: %v", err)
	}
	got := Summary(tag)
	if !strings.HasSuffix(got, "  onMetaData entries=3 fields=3 duration=0.08") {
		t.Errorf("Summary = %q", got)
	}
}
