package keypath

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/cataloglabs/taxmatch/pkg/taxmatch/internalerr"
	"github.com/cataloglabs/taxmatch/pkg/taxmatch/match"
	"github.com/cataloglabs/taxmatch/pkg/taxmatch/taxonomy"
	"github.com/cataloglabs/taxmatch/pkg/taxmatch/termset"
)

// Generator computes the source key path against a fixed candidate set
// and aligns each candidate against it. "Necessary" is defined relative
// to the candidate set, so a generator is built per matching run; its
// methods are not safe for concurrent use with each other, though
// candidate evaluation inside MatchedCandidateKeyPaths is parallel.
type Generator struct {
	source     *taxonomy.Path
	matcher    *match.Matcher
	splitter   *termset.Splitter
	candidates []*taxonomy.Path
	skipped    []*taxonomy.Path

	srcSets  []termset.Extended
	candSets [][]termset.Extended

	key       *KeyPath
	unmatched []*taxonomy.Path
}

// New creates a generator for one source path and a candidate set.
// The source must be non-empty and its leaf must yield at least one
// term; otherwise ErrInvalidInput is returned. Malformed candidates
// (empty, or with a term-less leaf) are skipped, never fatal.
func New(source *taxonomy.Path, candidates []*taxonomy.Path, matcher *match.Matcher, splitter *termset.Splitter) (*Generator, error) {
	if source.IsEmpty() {
		return nil, fmt.Errorf("%w: empty source path", internalerr.ErrInvalidInput)
	}

	srcSets := make([]termset.Extended, source.Len())
	for i := 0; i < source.Len(); i++ {
		srcSets[i] = splitter.FromPathNode(source, i)
	}
	if srcSets[source.Len()-1].Category.IsEmpty() {
		leaf, _ := source.Leaf()
		return nil, fmt.Errorf("%w: source leaf %q has no extractable terms", internalerr.ErrInvalidInput, leaf.Label())
	}

	g := &Generator{
		source:   source,
		matcher:  matcher,
		splitter: splitter,
		srcSets:  srcSets,
	}

	for _, c := range candidates {
		if c.IsEmpty() {
			g.skipped = append(g.skipped, c)
			continue
		}
		sets := make([]termset.Extended, c.Len())
		for i := 0; i < c.Len(); i++ {
			sets[i] = splitter.FromPathNode(c, i)
		}
		if sets[c.Len()-1].Category.IsEmpty() {
			g.skipped = append(g.skipped, c)
			continue
		}
		g.candidates = append(g.candidates, c)
		g.candSets = append(g.candSets, sets)
	}

	return g, nil
}

// Candidates returns the usable candidates in input order.
func (g *Generator) Candidates() []*taxonomy.Path { return g.candidates }

// Skipped returns the candidates excluded as malformed.
func (g *Generator) Skipped() []*taxonomy.Path { return g.skipped }

// SourceKeyPath returns the minimal leaf-containing subsequence of the
// source path that keeps the candidate set as distinguishable as the
// full path does.
//
// Reduction is greedy and considers all candidates jointly: starting
// from the full path, the scan runs root-to-leaf and repeatedly drops
// the highest remaining ancestor whose removal leaves the set of
// matching candidates unchanged. The leaf is never dropped. The result
// is deterministic for a fixed candidate set and is memoized.
func (g *Generator) SourceKeyPath(ctx context.Context) KeyPath {
	if g.key != nil {
		return *g.key
	}

	current := make([]taxonomy.Node, g.source.Len())
	for i := 0; i < g.source.Len(); i++ {
		current[i] = g.source.Node(i)
	}

	base := g.matchSet(ctx, current)
	for i := 0; len(current) > 1 && i < len(current)-1; {
		reduced := make([]taxonomy.Node, 0, len(current)-1)
		reduced = append(reduced, current[:i]...)
		reduced = append(reduced, current[i+1:]...)

		if equalIndexSet(g.matchSet(ctx, reduced), base) {
			current = reduced
		} else {
			i++
		}
	}

	g.key = &KeyPath{nodes: current}
	return *g.key
}

// MatchedCandidateKeyPaths aligns every usable candidate against the
// source key path. It returns two parallel slices in input order: the
// matched key paths and the corresponding original candidate paths. A
// candidate contributes only if its leaf matches the source leaf;
// ancestor misses reduce score downstream but do not disqualify.
// Candidates whose leaves do not match are reported by Unmatched.
// Independent candidates are evaluated concurrently.
func (g *Generator) MatchedCandidateKeyPaths(ctx context.Context) ([]Matched, []*taxonomy.Path, error) {
	key := g.SourceKeyPath(ctx)

	results := make([]*Matched, len(g.candidates))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))

	for i := range g.candidates {
		i := i
		eg.Go(func() error {
			if m, ok := g.align(ctx, i, key.nodes); ok {
				results[i] = &m
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, nil, err
	}

	var matchedPaths []Matched
	var candPaths []*taxonomy.Path
	g.unmatched = nil
	for i, r := range results {
		if r == nil {
			g.unmatched = append(g.unmatched, g.candidates[i])
			continue
		}
		matchedPaths = append(matchedPaths, *r)
		candPaths = append(candPaths, g.candidates[i])
	}

	return matchedPaths, candPaths, nil
}

// Unmatched returns the candidates whose leaves did not match the
// source leaf in the last MatchedCandidateKeyPaths call.
func (g *Generator) Unmatched() []*taxonomy.Path { return g.unmatched }

// matchSet returns the indices of candidates that fully match the given
// key nodes: leaf positively matched, every ancestor either matched or
// neutral (insufficient information only).
func (g *Generator) matchSet(ctx context.Context, keyNodes []taxonomy.Node) map[int]struct{} {
	out := make(map[int]struct{})
	for i := range g.candidates {
		if g.fullMatch(ctx, i, keyNodes) {
			out[i] = struct{}{}
		}
	}
	return out
}

// fullMatch reports whether candidate i matches every key node when
// both are walked leaf to root.
func (g *Generator) fullMatch(ctx context.Context, cand int, keyNodes []taxonomy.Node) bool {
	sets := g.candSets[cand]

	leafRes := g.matcher.Match(ctx, g.srcSets[keyNodes[len(keyNodes)-1].Depth()], sets[len(sets)-1])
	if !leafRes.Kind.Matched() {
		return false
	}

	candPos := len(sets) - 2
	for k := len(keyNodes) - 2; k >= 0; k-- {
		srcSet := g.srcSets[keyNodes[k].Depth()]
		found := false
		sawNeutral := false
		for j := candPos; j >= 0; j-- {
			res := g.matcher.Match(ctx, srcSet, sets[j])
			if res.Kind.Matched() {
				candPos = j - 1
				found = true
				break
			}
			if res.Kind == match.KindInsufficient {
				sawNeutral = true
			}
		}
		// An undecidable comparison (degenerate labels) is neutral, a
		// plain miss blocks the match.
		if !found && !sawNeutral {
			return false
		}
	}
	return true
}

// align walks the source key path leaf-upward against candidate cand,
// recording the matched candidate node and match kind per position.
// ok is false when the mandatory leaf match fails.
func (g *Generator) align(ctx context.Context, cand int, keyNodes []taxonomy.Node) (Matched, bool) {
	c := g.candidates[cand]
	sets := g.candSets[cand]

	positions := make([]Position, len(keyNodes))
	last := len(keyNodes) - 1

	leaf, _ := c.Leaf()
	leafRes := g.matcher.Match(ctx, g.srcSets[keyNodes[last].Depth()], sets[len(sets)-1])
	if !leafRes.Kind.Matched() {
		return Matched{}, false
	}
	positions[last] = Position{
		Source:    keyNodes[last],
		Candidate: leaf,
		Matched:   true,
		Result:    leafRes,
	}

	candPos := len(sets) - 2
	for k := last - 1; k >= 0; k-- {
		srcSet := g.srcSets[keyNodes[k].Depth()]
		found := false
		sawNeutral := false
		for j := candPos; j >= 0; j-- {
			res := g.matcher.Match(ctx, srcSet, sets[j])
			if res.Kind.Matched() {
				positions[k] = Position{
					Source:    keyNodes[k],
					Candidate: c.Node(j),
					Matched:   true,
					Result:    res,
				}
				candPos = j - 1
				found = true
				break
			}
			if res.Kind == match.KindInsufficient {
				sawNeutral = true
			}
		}
		if !found {
			kind := match.KindNone
			if sawNeutral {
				kind = match.KindInsufficient
			}
			positions[k] = Position{Source: keyNodes[k], Result: match.Result{Kind: kind}}
		}
	}

	return Matched{Candidate: c, Positions: positions}, true
}

func equalIndexSet(a, b map[int]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}
