// If you are AI: This file implements the field tree as an index-addressed node arena.
// Nodes reference children and parent by index, so trees need no manual teardown.

package fieldtree

// NoParent is the parent index of the root node.
const NoParent = -1

// Value is a typed field value: float64, bool, string, or nil.
type Value interface{}

// Formatter renders a field value for display. Formatters are pure.
type Formatter func(Value) string

// Node is one field: a name, the absolute byte span it was decoded from, and its value.
type Node struct {
	Name     string
	Offset   int64
	Size     uint32
	Value    Value
	Format   Formatter
	Parent   int
	Children []int
}

// Display returns the formatted value.
func (n *Node) Display() string {
	if n.Format == nil {
		return FormatDefault(n.Value)
	}
	return n.Format(n.Value)
}

// End returns the offset of the first byte after the node's span.
func (n *Node) End() int64 {
	return n.Offset + int64(n.Size)
}

// Tree is an arena of nodes; index 0 is the root.
type Tree struct {
	nodes []Node
}

// newTree creates a tree holding only its root.
func newTree(root Node) *Tree {
	root.Parent = NoParent
	return &Tree{nodes: []Node{root}}
}

// add appends n under parent and returns its index.
func (t *Tree) add(parent int, n Node) int {
	id := len(t.nodes)
	n.Parent = parent
	n.Children = nil
	t.nodes = append(t.nodes, n)
	t.nodes[parent].Children = append(t.nodes[parent].Children, id)
	return id
}

// Root returns the index of the root node.
func (t *Tree) Root() int {
	return 0
}

// Len returns the number of nodes.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Node returns the node at id. It panics if id is out of range.
func (t *Tree) Node(id int) *Node {
	return &t.nodes[id]
}

// Children returns the child indices of id in display order.
func (t *Tree) Children(id int) []int {
	return t.nodes[id].Children
}

// Parent returns the parent index of id, or NoParent for the root.
func (t *Tree) Parent(id int) int {
	return t.nodes[id].Parent
}

// Row returns the position of id among its siblings.
func (t *Tree) Row(id int) int {
	p := t.nodes[id].Parent
	if p == NoParent {
		return 0
	}
	for i, c := range t.nodes[p].Children {
		if c == id {
			return i
		}
	}
	return 0
}

// Walk visits every node depth-first in display order with its depth.
func (t *Tree) Walk(fn func(id, depth int)) {
	t.walk(0, 0, fn)
}

// walk is the recursive step of Walk.
func (t *Tree) walk(id, depth int, fn func(id, depth int)) {
	fn(id, depth)
	for _, c := range t.nodes[id].Children {
		t.walk(c, depth+1, fn)
	}
}

// Find follows a path of child names from the root.
func (t *Tree) Find(path ...string) (int, bool) {
	id := 0
	for _, name := range path {
		found := false
		for _, c := range t.nodes[id].Children {
			if t.nodes[c].Name == name {
				id = c
				found = true
				break
			}
		}
		if !found {
			return NoParent, false
		}
	}
	return id, true
}

// Locate returns the deepest node whose span contains offset.
// This maps a selected byte back to the field it belongs to.
func (t *Tree) Locate(offset int64) (int, bool) {
	if len(t.nodes) == 0 || !contains(&t.nodes[0], offset) {
		return NoParent, false
	}
	id := 0
	for {
		next := NoParent
		for _, c := range t.nodes[id].Children {
			if contains(&t.nodes[c], offset) {
				next = c
				break
			}
		}
		if next == NoParent {
			return id, true
		}
		id = next
	}
}

// contains reports whether the node span covers offset.
func contains(n *Node, offset int64) bool {
	return n.Size > 0 && offset >= n.Offset && offset < n.End()
}
