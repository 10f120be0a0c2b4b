// If you are AI: This file implements the in-memory container model: header, tags, and decode issues.
// A container is only ever built by a full decode; mutations to the file are followed by a reload.

package container

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"flvedit/internal/core/fieldtree"
	"flvedit/internal/core/protocol/cursor"
	"flvedit/internal/core/protocol/flv"
	"flvedit/internal/core/remove"
)

var (
	// ErrNoSuchTag is returned for a tag index outside [0, Len()).
	ErrNoSuchTag = errors.New("no such tag")
	// ErrNoHeader is returned when the file header could not be decoded.
	ErrNoHeader = errors.New("no decodable header")
)

// Issue is a non-fatal decode problem recorded while loading.
type Issue struct {
	Offset int64
	Err    error
}

// String renders the issue with its file position in hex.
func (i Issue) String() string {
	return fmt.Sprintf("file-pos[0x%x] %v", i.Offset, i.Err)
}

// Container holds a decoded FLV file: an optional header and the ordered tags
// that could be decoded. Field trees are built lazily and cached per index.
type Container struct {
	path   string
	size   int64
	header *flv.Header
	tags   []*flv.Tag
	issues []Issue

	mu         sync.Mutex
	trees      map[int]*fieldtree.Tree
	headerTree *fieldtree.Tree
}

// Load opens path and decodes it. Only IO failures return an error; decode
// problems are recorded in Issues and the file is presented as far as it parsed.
func Load(path string, opts flv.DecodeOptions) (*Container, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat file: %w", err)
	}

	ct := decode(f, st.Size(), opts, path)
	return ct, nil
}

// Decode decodes an FLV image held by r. The result has no backing path,
// so Poke is unavailable on it.
func Decode(r io.ReaderAt, size int64, opts flv.DecodeOptions) *Container {
	return decode(r, size, opts, "")
}

// decode scans the header and then tags until end of input or the first
// structural corruption.
func decode(r io.ReaderAt, size int64, opts flv.DecodeOptions, path string) *Container {
	ct := &Container{
		path:  path,
		size:  size,
		trees: make(map[int]*fieldtree.Tree),
	}

	c := cursor.New(r, size)
	h, err := flv.DecodeHeader(c)
	if err != nil {
		ct.addIssue(0, err)
		return ct
	}
	ct.header = h

	at := int64(flv.HeaderSize)
	for {
		tag, err := flv.DecodeTag(c, at, opts)
		if err == io.EOF {
			break
		}
		if tag == nil {
			ct.addIssue(at, err)
			break
		}
		if err != nil {
			// Lenient back-link mismatch: keep the tag and continue.
			ct.addIssue(tag.BackLinkOffset(), err)
		}
		if s := tag.Script(); s != nil && s.Err != nil {
			ct.addIssue(tag.Offset, fmt.Errorf("script metadata: %w", s.Err))
		}
		ct.tags = append(ct.tags, tag)
		at = tag.End()
	}
	return ct
}

// addIssue records and logs a decode problem.
func (ct *Container) addIssue(offset int64, err error) {
	is := Issue{Offset: offset, Err: err}
	ct.issues = append(ct.issues, is)
	if ct.path != "" {
		log.Printf("flv: %s: %s", ct.path, is)
	} else {
		log.Printf("flv: %s", is)
	}
}

// Path returns the backing file path, or "" for in-memory containers.
func (ct *Container) Path() string { return ct.path }

// Size returns the size of the decoded source in bytes.
func (ct *Container) Size() int64 { return ct.size }

// Header returns the file header, or nil when it could not be decoded.
func (ct *Container) Header() *flv.Header { return ct.header }

// Len returns the number of decoded tags.
func (ct *Container) Len() int { return len(ct.tags) }

// Issues returns the decode problems recorded during load.
func (ct *Container) Issues() []Issue { return ct.issues }

// Tags returns the decoded tags in file order. The slice must not be modified.
func (ct *Container) Tags() []*flv.Tag { return ct.tags }

// Tag returns the tag at index i.
func (ct *Container) Tag(i int) (*flv.Tag, error) {
	if i < 0 || i >= len(ct.tags) {
		return nil, fmt.Errorf("%w: %d of %d", ErrNoSuchTag, i, len(ct.tags))
	}
	return ct.tags[i], nil
}

// HeaderBytes returns the raw 13 header bytes.
func (ct *Container) HeaderBytes() ([]byte, error) {
	if ct.header == nil {
		return nil, ErrNoHeader
	}
	return ct.header.Raw, nil
}

// TagBytes returns the raw bytes of tag i, back-link included.
func (ct *Container) TagBytes(i int) ([]byte, error) {
	t, err := ct.Tag(i)
	if err != nil {
		return nil, err
	}
	return t.Raw, nil
}

// Spans returns the header span and one span per decoded tag, which is all
// the deletion engine needs to know about the file.
func (ct *Container) Spans() (remove.Span, []remove.Span) {
	var hs remove.Span
	if ct.header != nil {
		hs = remove.Span{Offset: 0, Size: flv.HeaderSize}
	}
	spans := make([]remove.Span, len(ct.tags))
	for i, t := range ct.tags {
		spans[i] = remove.Span{Offset: t.Offset, Size: t.Size()}
	}
	return hs, spans
}

// Reassemble concatenates the header and every tag's raw bytes in order.
// For a file that decoded without issues this equals the file contents.
func (ct *Container) Reassemble() []byte {
	var n int64
	if ct.header != nil {
		n += flv.HeaderSize
	}
	for _, t := range ct.tags {
		n += t.Size()
	}
	out := make([]byte, 0, n)
	if ct.header != nil {
		out = append(out, ct.header.Raw...)
	}
	for _, t := range ct.tags {
		out = append(out, t.Raw...)
	}
	return out
}

// Tree returns the field tree of tag i, building it on first use.
func (ct *Container) Tree(i int) (*fieldtree.Tree, error) {
	t, err := ct.Tag(i)
	if err != nil {
		return nil, err
	}
	ct.mu.Lock()
	defer ct.mu.Unlock()
	if tr, ok := ct.trees[i]; ok {
		return tr, nil
	}
	tr := fieldtree.BuildTag(t)
	ct.trees[i] = tr
	return tr, nil
}

// HeaderTree returns the field tree of the file header, building it on first use.
func (ct *Container) HeaderTree() (*fieldtree.Tree, error) {
	if ct.header == nil {
		return nil, ErrNoHeader
	}
	ct.mu.Lock()
	defer ct.mu.Unlock()
	if ct.headerTree == nil {
		ct.headerTree = fieldtree.BuildHeader(ct.header)
	}
	return ct.headerTree, nil
}

// Find returns the index of the tag whose span contains offset, or -1 when
// offset falls in the header or outside every decoded tag.
func (ct *Container) Find(offset int64) int {
	lo, hi := 0, len(ct.tags)
	for lo < hi {
		mid := (lo + hi) / 2
		t := ct.tags[mid]
		switch {
		case offset < t.Offset:
			hi = mid
		case offset >= t.End():
			lo = mid + 1
		default:
			return mid
		}
	}
	return -1
}
