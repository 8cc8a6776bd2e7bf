package rank

import (
	"fmt"
	"math"
	"testing"

	"github.com/cataloglabs/taxmatch/pkg/taxmatch/keypath"
	"github.com/cataloglabs/taxmatch/pkg/taxmatch/match"
	"github.com/cataloglabs/taxmatch/pkg/taxmatch/taxonomy"
)

// matchedWith builds a Matched with the given per-position kinds,
// root-first.
func matchedWith(kinds ...match.Kind) keypath.Matched {
	labels := make([]string, len(kinds))
	for i := range kinds {
		labels[i] = fmt.Sprintf("Level %d", i)
	}
	p := taxonomy.NewPath(labels...)

	positions := make([]keypath.Position, len(kinds))
	for i, k := range kinds {
		positions[i] = keypath.Position{
			Source:    p.Node(i),
			Candidate: p.Node(i),
			Matched:   k.Matched(),
			Result:    match.Result{Kind: k, Similarity: 1},
		}
	}
	return keypath.Matched{Candidate: p, Positions: positions}
}

func TestRankIdenticalIsMax(t *testing.T) {
	r := NewDefaultRanker()

	for _, length := range []int{1, 2, 5} {
		kinds := make([]match.Kind, length)
		for i := range kinds {
			kinds[i] = match.KindExact
		}
		score := r.Rank(matchedWith(kinds...))
		if math.Abs(score-1.0) > 1e-9 {
			t.Errorf("identical key path of length %d should score 1.0, got %f", length, score)
		}
	}
}

func TestRankZeroLengthIsZero(t *testing.T) {
	r := NewDefaultRanker()
	if score := r.Rank(keypath.Matched{}); score != 0 {
		t.Errorf("zero-length key path should score 0, got %f", score)
	}
}

func TestLeafOutweighsAncestors(t *testing.T) {
	r := NewDefaultRanker()

	leafOnly := r.Rank(matchedWith(match.KindNone, match.KindExact))
	rootOnly := r.Rank(matchedWith(match.KindExact, match.KindNone))

	if leafOnly <= rootOnly {
		t.Errorf("leaf match (%f) should outweigh ancestor match (%f)", leafOnly, rootOnly)
	}
}

func TestKindWeightOrdering(t *testing.T) {
	r := NewDefaultRanker()

	exact := r.Rank(matchedWith(match.KindExact))
	synonym := r.Rank(matchedWith(match.KindSynonym))
	hypernym := r.Rank(matchedWith(match.KindHypernym))
	edit := r.Rank(matchedWith(match.KindEditDistance))
	miss := r.Rank(matchedWith(match.KindNone))

	if !(exact > synonym && synonym > hypernym && hypernym > edit && edit > miss) {
		t.Errorf("kind weighting out of order: exact=%f synonym=%f hypernym=%f edit=%f none=%f",
			exact, synonym, hypernym, edit, miss)
	}
	if miss != 0 {
		t.Errorf("a lone miss should score 0, got %f", miss)
	}
}

func TestInsufficientIsNeutral(t *testing.T) {
	r := NewDefaultRanker()

	// An undecidable ancestor neither confirms nor penalizes: the
	// score equals a path without that level at all.
	withNeutral := r.Rank(matchedWith(match.KindInsufficient, match.KindExact))
	if math.Abs(withNeutral-1.0) > 1e-9 {
		t.Errorf("neutral ancestor should leave a perfect leaf at 1.0, got %f", withNeutral)
	}

	withMiss := r.Rank(matchedWith(match.KindNone, match.KindExact))
	if withNeutral <= withMiss {
		t.Errorf("neutral (%f) must not be penalized like a miss (%f)", withNeutral, withMiss)
	}
}

func TestAllInsufficientScoresZero(t *testing.T) {
	r := NewDefaultRanker()
	score := r.Rank(matchedWith(match.KindInsufficient, match.KindInsufficient))
	if score != 0 {
		t.Errorf("all-neutral path should score 0, got %f", score)
	}
}

func TestScoreIsBounded(t *testing.T) {
	r := NewDefaultRanker()
	kinds := []match.Kind{
		match.KindNone, match.KindEditDistance, match.KindHyponym,
		match.KindSynonym, match.KindExact,
	}
	score := r.Rank(matchedWith(kinds...))
	if score < 0 || score > 1 {
		t.Errorf("score out of [0,1]: %f", score)
	}
}

func TestRankWithBreakdown(t *testing.T) {
	r := NewDefaultRanker()
	b := r.RankWithBreakdown(matchedWith(match.KindSynonym, match.KindExact))

	if len(b.Positions) != 2 {
		t.Fatalf("expected 2 position scores, got %d", len(b.Positions))
	}

	// Leaf first in the breakdown, full level weight.
	if b.Positions[0].LevelWeight != 1.0 {
		t.Errorf("leaf level weight should be 1.0, got %f", b.Positions[0].LevelWeight)
	}
	if b.Positions[1].LevelWeight != DefaultDecay {
		t.Errorf("ancestor level weight should be %f, got %f", DefaultDecay, b.Positions[1].LevelWeight)
	}

	// exact leaf (1.0) + synonym ancestor (0.9 * 0.5) over max 1.5.
	want := (1.0 + 0.45) / 1.5
	if math.Abs(b.Total-want) > 1e-9 {
		t.Errorf("expected total %f, got %f", want, b.Total)
	}
}

func TestDeeperAncestorsDecay(t *testing.T) {
	r := NewDefaultRanker()

	// A miss far from the leaf costs less than a miss next to it.
	nearMiss := r.Rank(matchedWith(match.KindExact, match.KindNone, match.KindExact))
	farMiss := r.Rank(matchedWith(match.KindNone, match.KindExact, match.KindExact))

	if farMiss <= nearMiss {
		t.Errorf("distant miss (%f) should cost less than near miss (%f)", farMiss, nearMiss)
	}
}

func TestDecayFallback(t *testing.T) {
	for _, bad := range []float64{0, -1, 1.5} {
		r := NewRanker(DefaultWeights(), bad)
		score := r.Rank(matchedWith(match.KindExact))
		if math.Abs(score-1.0) > 1e-9 {
			t.Errorf("decay %f should fall back to default, got score %f", bad, score)
		}
	}
}
