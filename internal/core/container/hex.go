// If you are AI: This file renders raw byte views: hex dump rows and one-line tag summaries.
// Summaries read the decoded payload but never the file.

package container

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"flvedit/internal/core/protocol/amf0"
	"flvedit/internal/core/protocol/flv"
)

// BytesPerRow is the width of one hex dump row.
const BytesPerRow = 16

// HexRow is one line of a hex dump. Offset is absolute in the file.
type HexRow struct {
	Offset int64  `json:"offset"`
	Hex    string `json:"hex"`
	ASCII  string `json:"ascii"`
}

// HexRows splits data, which starts at file offset base, into dump rows.
func HexRows(data []byte, base int64) []HexRow {
	rows := make([]HexRow, 0, (len(data)+BytesPerRow-1)/BytesPerRow)
	for i := 0; i < len(data); i += BytesPerRow {
		end := i + BytesPerRow
		if end > len(data) {
			end = len(data)
		}
		chunk := data[i:end]

		var hx, asc strings.Builder
		for j, b := range chunk {
			if j > 0 {
				hx.WriteByte(' ')
			}
			fmt.Fprintf(&hx, "%02x", b)
			if b >= 0x20 && b < 0x7f {
				asc.WriteByte(b)
			} else {
				asc.WriteByte('.')
			}
		}
		rows = append(rows, HexRow{Offset: base + int64(i), Hex: hx.String(), ASCII: asc.String()})
	}
	return rows
}

// WriteHex writes data as a hex dump, padding short rows so the ASCII column lines up.
func WriteHex(w io.Writer, data []byte, base int64) error {
	width := BytesPerRow*3 - 1
	for _, r := range HexRows(data, base) {
		if _, err := fmt.Fprintf(w, "%08x  %-*s  |%s|\n", r.Offset, width, r.Hex, r.ASCII); err != nil {
			return err
		}
	}
	return nil
}

// Summary renders a tag as one list row: offset, type, data size, timestamp,
// then a keyframe mark for video or the metadata name and shape for script tags.
func Summary(t *flv.Tag) string {
	row := fmt.Sprintf("0x%08x  %-7s size=%-8d ts=%d", t.Offset, flv.TagTypeName(t.Type), t.DataSize, t.Timestamp)
	if v := t.Video(); v != nil && v.IsKeyframe() {
		row += "  keyframe"
	}
	if s := t.Script(); s != nil {
		row += "  " + scriptSummary(&s.Metadata)
	}
	return row
}

// scriptSummary renders "name entries=N fields=M duration=D" for decoded metadata.
func scriptSummary(meta *amf0.Item) string {
	var b strings.Builder
	b.WriteString(meta.Key)
	if n := meta.Count(); n >= 0 {
		fmt.Fprintf(&b, " entries=%d", n)
	}
	fields := 0
	meta.Walk(func(it *amf0.Item) {
		if !it.IsContainer() && it != meta {
			fields++
		}
	})
	fmt.Fprintf(&b, " fields=%d", fields)
	if d, ok := meta.Child("duration"); ok {
		if f, ok := d.Value.(float64); ok {
			fmt.Fprintf(&b, " duration=%s", strconv.FormatFloat(f, 'g', -1, 64))
		}
	}
	return b.String()
}
