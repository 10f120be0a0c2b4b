// If you are AI: This file implements the stream rewrite strategy.
// The rename is the commit point: any earlier failure removes the temp file and leaves the source untouched.

package remove

import (
	"fmt"
	"io"
	"os"
)

// DefaultTempSuffix is appended to the source path to name the rewrite target.
const DefaultTempSuffix = "_temp"

// StreamRewrite copies the header and every kept tag into a sibling temp file
// and renames it over the source.
type StreamRewrite struct {
	TempSuffix string
}

// Name returns "stream".
func (StreamRewrite) Name() string { return "stream" }

// Delete implements Strategy.
func (s StreamRewrite) Delete(path string, header Span, tags []Span, index int) error {
	if err := checkIndex(tags, index); err != nil {
		return err
	}

	src, err := os.Open(path)
	if err != nil {
		return &Error{Op: "open", Path: path, Err: err}
	}
	defer src.Close()

	st, err := src.Stat()
	if err != nil {
		return &Error{Op: "stat", Path: path, Err: err}
	}

	suffix := s.TempSuffix
	if suffix == "" {
		suffix = DefaultTempSuffix
	}
	tmp := path + suffix
	dst, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, st.Mode().Perm())
	if err != nil {
		return &Error{Op: "create", Path: tmp, Err: err}
	}

	abort := func(op string, err error) error {
		dst.Close()
		os.Remove(tmp)
		return &Error{Op: op, Path: tmp, Err: err}
	}

	if header.Size > 0 {
		if err := copySpan(dst, src, header); err != nil {
			return abort("copy header", err)
		}
	}
	for i, t := range tags {
		if i == index {
			continue
		}
		if err := copySpan(dst, src, t); err != nil {
			return abort(fmt.Sprintf("copy tag %d", i), err)
		}
	}

	if err := dst.Sync(); err != nil {
		return abort("sync", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(tmp)
		return &Error{Op: "close", Path: tmp, Err: err}
	}
	src.Close()

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return &Error{Op: "rename", Path: path, Err: err}
	}
	return nil
}

// copySpan copies exactly sp.Size bytes starting at sp.Offset.
func copySpan(dst io.Writer, src io.ReaderAt, sp Span) error {
	n, err := io.Copy(dst, io.NewSectionReader(src, sp.Offset, sp.Size))
	if err != nil {
		return err
	}
	if n != sp.Size {
		return fmt.Errorf("%w: %d of %d bytes at 0x%x", ErrShortCopy, n, sp.Size, sp.Offset)
	}
	return nil
}
