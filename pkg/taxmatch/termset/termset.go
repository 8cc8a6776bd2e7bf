// Package termset derives the set of meaningful words for a taxonomy
// node, optionally extended with context from its parent and children to
// disambiguate single-word labels ("Cheese" under "Dairy" is the dairy
// product, not the photographic smile).
package termset

import (
	"sort"

	"github.com/cataloglabs/taxmatch/pkg/taxmatch/taxonomy"
)

// Set is a set of normalized terms from one label. Order is irrelevant,
// terms are unique.
type Set struct {
	terms map[string]struct{}
}

// NewSet builds a Set from terms. Empty terms are ignored.
func NewSet(terms ...string) Set {
	m := make(map[string]struct{}, len(terms))
	for _, t := range terms {
		if t == "" {
			continue
		}
		m[t] = struct{}{}
	}
	return Set{terms: m}
}

// Contains reports membership.
func (s Set) Contains(term string) bool {
	_, ok := s.terms[term]
	return ok
}

// Terms returns the terms in sorted order for deterministic iteration.
func (s Set) Terms() []string {
	out := make([]string, 0, len(s.terms))
	for t := range s.terms {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of terms.
func (s Set) Len() int { return len(s.terms) }

// IsEmpty reports whether the set has no terms. An empty set means
// "insufficient information", never "matches nothing".
func (s Set) IsEmpty() bool { return len(s.terms) == 0 }

// Extended is a node's term set together with its tree context. The
// category set describes the node itself; parent and children sets carry
// the surrounding vocabulary. Children are kept as separate sets, one
// per child, so a hit records which child's vocabulary confirmed the
// sense.
type Extended struct {
	Category Set
	Parent   Set
	Children []Set
}

// NewExtended builds an Extended term set from raw label strings. The
// parent label may be empty (root node); children may be empty (leaf).
func (s *Splitter) NewExtended(category, parent string, children []string) Extended {
	e := Extended{
		Category: NewSet(s.Split(category)...),
		Parent:   NewSet(s.Split(parent)...),
	}
	for _, c := range children {
		cs := NewSet(s.Split(c)...)
		if !cs.IsEmpty() {
			e.Children = append(e.Children, cs)
		}
	}
	return e
}

// FromPathNode builds an Extended term set for the node at depth i of a
// path, using the preceding node as parent context and the following
// node as child context.
func (s *Splitter) FromPathNode(p *taxonomy.Path, i int) Extended {
	var parent, child string
	if n, ok := p.Parent(i); ok {
		parent = n.Label()
	}
	var children []string
	if n, ok := p.Child(i); ok {
		child = n.Label()
		children = []string{child}
	}
	return s.NewExtended(p.Node(i).Label(), parent, children)
}

// ContextSets returns the non-empty context sets: parent first, then
// children.
func (e Extended) ContextSets() []Set {
	var out []Set
	if !e.Parent.IsEmpty() {
		out = append(out, e.Parent)
	}
	out = append(out, e.Children...)
	return out
}

// AllSets returns the category set followed by the context sets. Useful
// when a matcher tests the candidate side in priority order.
func (e Extended) AllSets() []Set {
	return append([]Set{e.Category}, e.ContextSets()...)
}
