// Package keypath reduces a full source path to its key path — the
// minimal leaf-containing subsequence that still tells the candidates
// apart — and aligns each candidate path against it.
package keypath

import (
	"strings"

	"github.com/cataloglabs/taxmatch/pkg/taxmatch/match"
	"github.com/cataloglabs/taxmatch/pkg/taxmatch/taxonomy"
)

// KeyPath is an ordered subsequence of a source path, root-first, always
// ending in the path's leaf.
type KeyPath struct {
	nodes []taxonomy.Node
}

// Len returns the number of key nodes.
func (k KeyPath) Len() int { return len(k.nodes) }

// Node returns the key node at position i.
func (k KeyPath) Node(i int) taxonomy.Node { return k.nodes[i] }

// Nodes returns a copy of the key nodes.
func (k KeyPath) Nodes() []taxonomy.Node {
	out := make([]taxonomy.Node, len(k.nodes))
	copy(out, k.nodes)
	return out
}

// Leaf returns the final key node, which is always the source leaf.
func (k KeyPath) Leaf() taxonomy.Node { return k.nodes[len(k.nodes)-1] }

// Labels returns the key node labels, root-first.
func (k KeyPath) Labels() []string {
	out := make([]string, len(k.nodes))
	for i, n := range k.nodes {
		out[i] = n.Label()
	}
	return out
}

// String renders the key path as "A > B > C".
func (k KeyPath) String() string {
	return strings.Join(k.Labels(), " > ")
}

// Position pairs one source key node with the candidate node (if any)
// it matched, tagged with the match result the ranker weighs.
type Position struct {
	Source    taxonomy.Node
	Candidate taxonomy.Node
	Matched   bool
	Result    match.Result
}

// Matched is a candidate path aligned against a source key path. The
// positions run parallel to the key path, root-first; unmatched
// ancestor positions carry a None or Insufficient result.
type Matched struct {
	Candidate *taxonomy.Path
	Positions []Position
}

// Len returns the number of matched positions, i.e. the length of the
// candidate's key path.
func (m Matched) Len() int {
	n := 0
	for _, p := range m.Positions {
		if p.Matched {
			n++
		}
	}
	return n
}

// Labels returns the matched candidate node labels, root-first.
func (m Matched) Labels() []string {
	var out []string
	for _, p := range m.Positions {
		if p.Matched {
			out = append(out, p.Candidate.Label())
		}
	}
	return out
}

// Kinds returns the per-position match kinds, parallel to the source
// key path.
func (m Matched) Kinds() []match.Kind {
	out := make([]match.Kind, len(m.Positions))
	for i, p := range m.Positions {
		out[i] = p.Result.Kind
	}
	return out
}
