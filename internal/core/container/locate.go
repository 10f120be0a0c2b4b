// If you are AI: This file maps absolute file offsets back to the decoded field that owns them.
// Used to select the field under a byte picked in a hex view.

package container

import (
	"errors"
	"fmt"

	"flvedit/internal/core/fieldtree"
	"flvedit/internal/core/protocol/flv"
)

// ErrNotMapped is returned for an offset no decoded field covers.
var ErrNotMapped = errors.New("offset is not inside a decoded field")

// Location names the deepest field whose byte span covers one offset.
type Location struct {
	Offset int64    `json:"offset"`
	Index  int      `json:"index"` // tag index, -1 for the file header
	Path   []string `json:"path"`  // node names from the tree root down
	Row    int      `json:"row"`   // position among siblings
	Start  int64    `json:"start"`
	Size   uint32   `json:"size"`
	Value  string   `json:"value"`
}

// Locate returns the field covering the absolute file offset.
func (ct *Container) Locate(offset int64) (Location, error) {
	loc := Location{Offset: offset, Index: -1}

	var tr *fieldtree.Tree
	var err error
	if ct.header != nil && offset >= 0 && offset < flv.HeaderSize {
		tr, err = ct.HeaderTree()
	} else if loc.Index = ct.Find(offset); loc.Index >= 0 {
		tr, err = ct.Tree(loc.Index)
	} else {
		return loc, fmt.Errorf("%w: 0x%x", ErrNotMapped, offset)
	}
	if err != nil {
		return loc, err
	}

	id, ok := tr.Locate(offset)
	if !ok {
		return loc, fmt.Errorf("%w: 0x%x", ErrNotMapped, offset)
	}
	n := tr.Node(id)
	loc.Row = tr.Row(id)
	loc.Start, loc.Size, loc.Value = n.Offset, n.Size, n.Display()
	for ; id != fieldtree.NoParent; id = tr.Parent(id) {
		loc.Path = append([]string{tr.Node(id).Name}, loc.Path...)
	}
	return loc, nil
}
