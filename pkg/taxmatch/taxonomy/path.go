// Package taxonomy holds the tree-position primitives consumed by the
// matching engine. A Path is an ordered root-to-leaf slice of category
// nodes; the engine never sees a whole tree, only paths into it.
package taxonomy

import "strings"

// Node is a single category within a Path. Nodes live in the owning
// Path's arena and are addressed by index, so two nodes sharing a label
// remain distinct positions.
type Node struct {
	label string
	depth int
}

// Label returns the human-readable category name.
func (n Node) Label() string { return n.label }

// Depth returns the node's index within its owning Path (root is 0).
func (n Node) Depth() int { return n.depth }

// Path is an ordered sequence of nodes, root first, leaf last.
// Construction is append-only; once matching begins a Path is read-only.
type Path struct {
	nodes []Node
}

// NewPath builds a Path from root-to-leaf labels.
func NewPath(labels ...string) *Path {
	p := &Path{}
	for _, l := range labels {
		p.AddNode(l)
	}
	return p
}

// AddNode appends a node at the leaf end. The node's depth is its index.
func (p *Path) AddNode(label string) {
	p.nodes = append(p.nodes, Node{label: label, depth: len(p.nodes)})
}

// Len returns the number of nodes.
func (p *Path) Len() int {
	if p == nil {
		return 0
	}
	return len(p.nodes)
}

// IsEmpty reports whether the path has no nodes.
func (p *Path) IsEmpty() bool { return p.Len() == 0 }

// Node returns the node at depth i. i must be in [0, Len).
func (p *Path) Node(i int) Node { return p.nodes[i] }

// Leaf returns the deepest node. ok is false for an empty path.
func (p *Path) Leaf() (Node, bool) {
	if p.Len() == 0 {
		return Node{}, false
	}
	return p.nodes[len(p.nodes)-1], true
}

// Parent returns the node one level above depth i.
func (p *Path) Parent(i int) (Node, bool) {
	if p == nil || i <= 0 || i >= len(p.nodes) {
		return Node{}, false
	}
	return p.nodes[i-1], true
}

// Child returns the node one level below depth i. Within a single path
// a node has at most one child; siblings from the wider tree are not
// represented here.
func (p *Path) Child(i int) (Node, bool) {
	if p == nil || i < 0 || i+1 >= len(p.nodes) {
		return Node{}, false
	}
	return p.nodes[i+1], true
}

// Labels returns the node labels, root first.
func (p *Path) Labels() []string {
	if p.Len() == 0 {
		return nil
	}
	out := make([]string, len(p.nodes))
	for i, n := range p.nodes {
		out[i] = n.label
	}
	return out
}

// String renders the path as "Root > ... > Leaf".
func (p *Path) String() string {
	return strings.Join(p.Labels(), " > ")
}
