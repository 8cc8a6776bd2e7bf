// Package ontology defines the lexical-ontology collaborator: a
// queryable source of synonym, hypernym and hyponym relations for a
// normalized term. The matching engine only depends on the Ontology
// interface, so the backing resource can be an in-memory table, a
// SQLite extract or anything else that answers term lookups.
package ontology

import "context"

// Kind tags a relation between two terms.
type Kind int

const (
	KindSynonym Kind = iota
	KindHypernym
	KindHyponym
)

// String returns the relation name.
func (k Kind) String() string {
	switch k {
	case KindSynonym:
		return "synonym"
	case KindHypernym:
		return "hypernym"
	case KindHyponym:
		return "hyponym"
	default:
		return "unknown"
	}
}

// Related is one term related to a queried term.
type Related struct {
	Term string
	Kind Kind
}

// Ontology answers relation lookups for a single normalized term.
// Implementations must return an empty slice, not an error, for unknown
// terms. Implementations must be safe for concurrent use.
type Ontology interface {
	Lookup(ctx context.Context, term string) ([]Related, error)
}
