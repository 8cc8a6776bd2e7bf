// Package rank scores matched key paths so callers can order candidates
// by likely correctness.
package rank

import (
	"math"

	"github.com/cataloglabs/taxmatch/pkg/taxmatch/keypath"
	"github.com/cataloglabs/taxmatch/pkg/taxmatch/match"
)

// Weights maps match kinds to their score contribution. Stronger
// evidence weighs more: exact > synonym > hypernym/hyponym > edit
// distance. Misses contribute nothing.
type Weights struct {
	Exact        float64
	Synonym      float64
	Hypernym     float64
	Hyponym      float64
	EditDistance float64
}

// DefaultWeights returns the documented defaults.
func DefaultWeights() Weights {
	return Weights{
		Exact:        1.0,
		Synonym:      0.9,
		Hypernym:     0.7,
		Hyponym:      0.7,
		EditDistance: 0.6,
	}
}

// DefaultDecay is the per-level depth decay: the leaf carries weight 1,
// each ancestor half of the level below it.
const DefaultDecay = 0.5

// Ranker computes normalized similarity scores for matched key paths.
// Rank is pure and total: it never fails for well-formed inputs and a
// zero-length key path scores 0.
type Ranker struct {
	weights Weights
	decay   float64
}

// NewRanker creates a ranker. A decay outside (0, 1] falls back to
// DefaultDecay.
func NewRanker(w Weights, decay float64) *Ranker {
	if decay <= 0 || decay > 1 {
		decay = DefaultDecay
	}
	return &Ranker{weights: w, decay: decay}
}

// NewDefaultRanker creates a ranker with DefaultWeights and DefaultDecay.
func NewDefaultRanker() *Ranker {
	return NewRanker(DefaultWeights(), DefaultDecay)
}

// Rank scores a matched candidate key path in [0,1]. The positions
// already run parallel to the source key path they were aligned to.
//
// Positions are walked leaf-to-root; each level contributes its
// match-kind weight scaled by decay^distance-from-leaf, and the sum is
// normalized by the maximum achievable for the same positions.
// Insufficient-information positions are neutral: excluded from both
// the achieved and the maximum sum, so a degenerate label neither
// confirms nor penalizes. Kind weighting is asymmetric by construction
// (kinds were computed with the source as query side); normalization is
// symmetric.
func (r *Ranker) Rank(cand keypath.Matched) float64 {
	return r.RankWithBreakdown(cand).Total
}

// PositionScore is one level's contribution to the total.
type PositionScore struct {
	Depth        int // source-node depth in the full source path
	Kind         match.Kind
	LevelWeight  float64 // decay^distance-from-leaf
	Contribution float64 // kind weight × level weight
}

// Breakdown details how a score was assembled.
type Breakdown struct {
	Positions []PositionScore
	Total     float64
}

// RankWithBreakdown scores like Rank and reports the per-position
// contributions.
func (r *Ranker) RankWithBreakdown(cand keypath.Matched) Breakdown {
	positions := cand.Positions
	if len(positions) == 0 {
		return Breakdown{}
	}

	b := Breakdown{Positions: make([]PositionScore, 0, len(positions))}
	achieved := 0.0
	maximum := 0.0

	last := len(positions) - 1
	for i := last; i >= 0; i-- {
		p := positions[i]
		level := math.Pow(r.decay, float64(last-i))

		if p.Result.Kind == match.KindInsufficient {
			b.Positions = append(b.Positions, PositionScore{
				Depth:       p.Source.Depth(),
				Kind:        p.Result.Kind,
				LevelWeight: level,
			})
			continue
		}

		contribution := r.kindWeight(p.Result.Kind) * level
		achieved += contribution
		maximum += r.weights.Exact * level

		b.Positions = append(b.Positions, PositionScore{
			Depth:        p.Source.Depth(),
			Kind:         p.Result.Kind,
			LevelWeight:  level,
			Contribution: contribution,
		})
	}

	if maximum > 0 {
		b.Total = achieved / maximum
	}
	return b
}

// kindWeight maps a match kind onto its configured weight.
func (r *Ranker) kindWeight(k match.Kind) float64 {
	switch k {
	case match.KindExact:
		return r.weights.Exact
	case match.KindSynonym:
		return r.weights.Synonym
	case match.KindHypernym:
		return r.weights.Hypernym
	case match.KindHyponym:
		return r.weights.Hyponym
	case match.KindEditDistance:
		return r.weights.EditDistance
	default:
		return 0
	}
}
