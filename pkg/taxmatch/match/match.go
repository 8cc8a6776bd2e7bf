// Package match decides whether two extended term sets denote the same
// category, combining lexical-ontology relations with a
// Damerau-Levenshtein fallback for terms the ontology does not know.
package match

import (
	"context"
	"strings"

	"github.com/hbollon/go-edlib"

	"github.com/cataloglabs/taxmatch/pkg/taxmatch/ontology"
	"github.com/cataloglabs/taxmatch/pkg/taxmatch/termset"
)

// Kind classifies how a node-level match was established. Higher values
// are stronger evidence.
type Kind int

const (
	KindNone Kind = iota
	KindInsufficient
	KindEditDistance
	KindHyponym
	KindHypernym
	KindSynonym
	KindExact
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindExact:
		return "exact"
	case KindSynonym:
		return "synonym"
	case KindHypernym:
		return "hypernym"
	case KindHyponym:
		return "hyponym"
	case KindEditDistance:
		return "edit-distance"
	case KindInsufficient:
		return "insufficient"
	default:
		return "none"
	}
}

// Matched reports whether the kind represents a positive match.
// KindInsufficient is neutral: neither a match nor a miss.
func (k Kind) Matched() bool { return k > KindInsufficient }

// Result is the outcome of a node-level comparison. Similarity is the
// edit-distance ratio for KindEditDistance and 1 for categorical kinds.
type Result struct {
	Kind       Kind
	Similarity float64
}

// Matcher compares extended term sets using an ontology collaborator.
// It is stateless apart from the injected ontology and safe for
// concurrent use when the ontology is.
type Matcher struct {
	ont ontology.Ontology
	cfg Config
}

// New creates a matcher. The ontology may be nil, in which case only
// lexical matching and the edit-distance fallback apply.
func New(ont ontology.Ontology, cfg Config) *Matcher {
	return &Matcher{ont: ont, cfg: cfg}
}

// Config returns the matcher's configuration.
func (m *Matcher) Config() Config { return m.cfg }

// Match decides whether the source term set and the candidate term set
// denote the same category.
//
// Each source category term is tested against the candidate category
// set first and its context sets second: exact membership (including
// separate-component containment), then ontology relations, then
// normalized Damerau-Levenshtein similarity against every candidate-side
// term, accepted when the ratio reaches the configured threshold.
// Relation hits are categorical and ignore the threshold.
//
// Aggregation policy: with RequireMajorityTermMatch (the default),
// strictly more than half of the source category terms must find a
// match; otherwise a single matching term suffices. The node-level kind
// is the strongest kind among the terms that matched.
//
// An empty category set on either side means the comparison cannot be
// decided and yields KindInsufficient, not a miss.
func (m *Matcher) Match(ctx context.Context, source, candidate termset.Extended) Result {
	if source.Category.IsEmpty() || candidate.Category.IsEmpty() {
		return Result{Kind: KindInsufficient}
	}

	terms := source.Category.Terms()
	matched := 0
	best := KindNone
	bestSim := 0.0

	for _, term := range terms {
		r := m.matchTerm(ctx, term, candidate)
		if !r.Kind.Matched() {
			continue
		}
		matched++
		if r.Kind > best || (r.Kind == best && r.Similarity > bestSim) {
			best = r.Kind
			bestSim = r.Similarity
		}
	}

	ok := matched > 0
	if m.cfg.RequireMajorityTermMatch {
		ok = matched*2 > len(terms)
	}
	if !ok {
		return Result{Kind: KindNone}
	}
	return Result{Kind: best, Similarity: bestSim}
}

// matchTerm finds the strongest match for one source term on the
// candidate side.
func (m *Matcher) matchTerm(ctx context.Context, term string, candidate termset.Extended) Result {
	sets := candidate.AllSets()

	// Direct lexical hit against category first, then context.
	for _, set := range sets {
		if set.Contains(term) || containsComponent(term, set) {
			return Result{Kind: KindExact, Similarity: 1}
		}
	}

	// Ontology relations. A lookup failure means "no relations known":
	// degrade to the edit-distance fallback instead of propagating.
	if m.ont != nil {
		if rels, err := m.ont.Lookup(ctx, term); err == nil && len(rels) > 0 {
			best := KindNone
			for _, set := range sets {
				for _, rel := range rels {
					if !set.Contains(rel.Term) {
						continue
					}
					if k := relationKind(rel.Kind); k > best {
						best = k
					}
				}
				if best != KindNone {
					// Category hits outrank context hits of the same
					// machinery; stop at the first set with a hit.
					return Result{Kind: best, Similarity: 1}
				}
			}
		}
	}

	// Edit-distance fallback for out-of-vocabulary terms.
	bestSim := 0.0
	for _, set := range sets {
		for _, cand := range set.Terms() {
			sim, err := edlib.StringsSimilarity(term, cand, edlib.DamerauLevenshtein)
			if err != nil {
				continue
			}
			if s := float64(sim); s > bestSim {
				bestSim = s
			}
		}
	}
	if bestSim >= m.cfg.Threshold {
		return Result{Kind: KindEditDistance, Similarity: bestSim}
	}

	return Result{Kind: KindNone}
}

// containsComponent reports whether any term in set occurs as a
// component of the source term ("cheesecake" contains "cheese").
// Two-character fragments are too ambiguous to count.
func containsComponent(term string, set termset.Set) bool {
	for _, cand := range set.Terms() {
		if len(cand) >= 3 && len(term) > len(cand) && strings.Contains(term, cand) {
			return true
		}
	}
	return false
}

// relationKind maps an ontology relation onto a match kind.
func relationKind(k ontology.Kind) Kind {
	switch k {
	case ontology.KindSynonym:
		return KindSynonym
	case ontology.KindHypernym:
		return KindHypernym
	case ontology.KindHyponym:
		return KindHyponym
	default:
		return KindNone
	}
}
