// If you are AI: This file tests mapping file offsets back to decoded fields.

package container

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"flvedit/internal/core/protocol/flv"
	"flvedit/internal/core/protocol/flv/flvtest"
)

func TestLocate(t *testing.T) {
	buf := flvtest.Scenario().Bytes()
	ct := Decode(bytes.NewReader(buf), int64(len(buf)), flv.DecodeOptions{})

	tests := []struct {
		offset int64
		index  int
		path   string
		row    int
		start  int64
		size   uint32
	}{
		{4, -1, "flv_header/type_flags", 2, 4, 1},
		{10, -1, "flv_header/previous_tag_size", 4, 9, 4},
		{14, 0, "tag_info/tag_size", 1, 14, 3},
		{24, 0, "tag_info/audio_info/sound_format", 0, 24, 1},
		{44, 1, "tag_info/video_info/cts", 3, 43, 3},
		{47, 1, "tag_info/previous_tag_size", 5, 46, 4},
	}
	for _, tt := range tests {
		loc, err := ct.Locate(tt.offset)
		if err != nil {
			t.Errorf("Locate(%d) failed: %v", tt.offset, err)
			continue
		}
		if got := strings.Join(loc.Path, "/"); got != tt.path {
			t.Errorf("Locate(%d) path = %s, want %s", tt.offset, got, tt.path)
		}
		if loc.Index != tt.index || loc.Row != tt.row || loc.Start != tt.start || loc.Size != tt.size {
			t.Errorf("Locate(%d) = %+v", tt.offset, loc)
		}
	}

	for _, off := range []int64{-1, 50, 1000} {
		if _, err := ct.Locate(off); !errors.Is(err, ErrNotMapped) {
			t.Errorf("Locate(%d): expected ErrNotMapped, got %v", off, err)
		}
	}
}

func TestLocateWithoutHeader(t *testing.T) {
	buf := []byte("NOT AN FLV FILE")
	ct := Decode(bytes.NewReader(buf), int64(len(buf)), flv.DecodeOptions{})
	if _, err := ct.Locate(2); !errors.Is(err, ErrNotMapped) {
		t.Errorf("expected ErrNotMapped, got %v", err)
	}
}
