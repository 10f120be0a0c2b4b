// If you are AI: This file picks a deletion strategy by file size.
// The threshold is a memory/speed trade-off only; both strategies produce identical files.

package remove

import (
	"fmt"
	"strings"
)

// DefaultThreshold is the file size at which auto mode switches to mmap.
const DefaultThreshold = 10 << 20

// Mode forces or automates strategy choice.
type Mode string

// Strategy modes.
const (
	ModeAuto   Mode = "auto"
	ModeStream Mode = "stream"
	ModeMMap   Mode = "mmap"
)

// ParseMode parses a mode name case-insensitively; "" means auto.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ModeAuto, nil
	case ModeAuto, ModeStream, ModeMMap:
		return m, nil
	default:
		return "", fmt.Errorf("unknown strategy %q (want auto, stream or mmap)", s)
	}
}

// Selector chooses the strategy for a deletion.
type Selector struct {
	Mode       Mode
	Threshold  int64
	TempSuffix string
}

// Select returns the strategy for a file of the given size. In auto mode files
// below the threshold use stream rewrite and larger ones use mmap shift, which
// falls back to stream rewrite where mmap is unsupported.
func (s Selector) Select(size int64) Strategy {
	stream := StreamRewrite{TempSuffix: s.TempSuffix}
	switch s.Mode {
	case ModeStream:
		return stream
	case ModeMMap:
		return MMapShift{}
	}

	threshold := s.Threshold
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	if size >= threshold && mmapSupported {
		return MMapShift{}
	}
	return stream
}
