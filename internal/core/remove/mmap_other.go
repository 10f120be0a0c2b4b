//go:build !unix

// If you are AI: This file stubs the mmap shift strategy on platforms without unix mmap.

package remove

// mmapSupported reports whether MMapShift can run on this platform.
const mmapSupported = false

// MMapShift is unavailable here; Delete always fails with ErrMMapUnsupported.
type MMapShift struct{}

// Name returns "mmap".
func (MMapShift) Name() string { return "mmap" }

// Delete implements Strategy.
func (MMapShift) Delete(path string, header Span, tags []Span, index int) error {
	if err := checkIndex(tags, index); err != nil {
		return err
	}
	return &Error{Op: "mmap", Path: path, Err: ErrMMapUnsupported}
}
