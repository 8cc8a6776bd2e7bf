// Package taxmatch maps categories between product taxonomies. Given a
// source category path and the candidate paths of a target taxonomy, it
// reduces the source to its key path, matches every candidate against
// it and returns the candidates ranked by semantic similarity.
package taxmatch

import (
	"context"
	"crypto/rand"
	"sort"
	"sync"

	"github.com/oklog/ulid/v2"

	"github.com/cataloglabs/taxmatch/pkg/taxmatch/keypath"
	"github.com/cataloglabs/taxmatch/pkg/taxmatch/match"
	"github.com/cataloglabs/taxmatch/pkg/taxmatch/ontology"
	"github.com/cataloglabs/taxmatch/pkg/taxmatch/rank"
	"github.com/cataloglabs/taxmatch/pkg/taxmatch/taxonomy"
	"github.com/cataloglabs/taxmatch/pkg/taxmatch/termset"
)

// Engine is the main matching facade. It is safe for concurrent use.
type Engine struct {
	ont      ontology.Ontology
	matcher  *match.Matcher
	splitter *termset.Splitter
	ranker   *rank.Ranker

	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// Options configures an Engine. The zero value gives a working engine
// with no ontology: lexical matching and the edit-distance fallback
// only.
type Options struct {
	// Ontology provides term relations. Nil disables relation lookups.
	Ontology ontology.Ontology

	// Config holds the node-level matching knobs. A zero Config is
	// replaced by match.DefaultConfig.
	Config *match.Config

	// Weights and Decay control ranking. Zero weights are replaced by
	// rank.DefaultWeights; a decay outside (0,1] falls back to
	// rank.DefaultDecay.
	Weights *rank.Weights
	Decay   float64

	// Stopwords overrides the default stopword list when non-nil.
	Stopwords []string

	// CacheSize bounds the ontology lookup cache. 0 means the default
	// size; negative disables caching.
	CacheSize int
}

// New creates an engine with the given dependencies.
func New(opts Options) (*Engine, error) {
	cfg := match.DefaultConfig()
	if opts.Config != nil {
		cfg = *opts.Config
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ont := opts.Ontology
	if ont != nil && opts.CacheSize >= 0 {
		cached, err := ontology.NewCache(ont, opts.CacheSize)
		if err != nil {
			return nil, err
		}
		ont = cached
	}

	weights := rank.DefaultWeights()
	if opts.Weights != nil {
		weights = *opts.Weights
	}

	stopwords := opts.Stopwords
	if stopwords == nil {
		stopwords = termset.DefaultStopwords()
	}
	splitter := termset.NewSplitter(stopwords, cfg.UseStemming)

	return &Engine{
		ont:      ont,
		matcher:  match.New(ont, cfg),
		splitter: splitter,
		ranker:   rank.NewRanker(weights, opts.Decay),
		entropy:  ulid.Monotonic(rand.Reader, 0),
	}, nil
}

// Scored is one candidate with its similarity score.
type Scored struct {
	Candidate *taxonomy.Path
	Match     keypath.Matched
	Score     float64
	Breakdown rank.Breakdown
}

// Report is the outcome of one matching run.
type Report struct {
	ID            string
	Source        *taxonomy.Path
	SourceKeyPath keypath.KeyPath

	// Results holds the matched candidates, best first. Ties break on
	// the smaller key-path length difference, then input order.
	Results []Scored

	// Unmatched holds well-formed candidates whose leaf did not match;
	// Skipped holds candidates excluded as malformed.
	Unmatched []*taxonomy.Path
	Skipped   []*taxonomy.Path
}

// Best returns the top-ranked candidate, if any.
func (r Report) Best() (Scored, bool) {
	if len(r.Results) == 0 {
		return Scored{}, false
	}
	return r.Results[0], true
}

// Match ranks the candidate paths against the source path.
//
// The source must be non-empty with a term-bearing leaf; otherwise
// internalerr.ErrInvalidInput is returned. Malformed candidates are
// skipped and reported, never fatal. Ontology failures degrade matching
// to lexical evidence and do not surface here.
func (e *Engine) Match(ctx context.Context, source *taxonomy.Path, candidates []*taxonomy.Path) (Report, error) {
	gen, err := keypath.New(source, candidates, e.matcher, e.splitter)
	if err != nil {
		return Report{}, err
	}

	key := gen.SourceKeyPath(ctx)
	matched, paths, err := gen.MatchedCandidateKeyPaths(ctx)
	if err != nil {
		return Report{}, err
	}

	results := make([]Scored, len(matched))
	for i, m := range matched {
		b := e.ranker.RankWithBreakdown(m)
		results[i] = Scored{
			Candidate: paths[i],
			Match:     m,
			Score:     b.Total,
			Breakdown: b,
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return keyLenDiff(results[i], key) < keyLenDiff(results[j], key)
	})

	return Report{
		ID:            e.newID(),
		Source:        source,
		SourceKeyPath: key,
		Results:       results,
		Unmatched:     gen.Unmatched(),
		Skipped:       gen.Skipped(),
	}, nil
}

// keyLenDiff is the tie-break distance: how far the candidate's matched
// key path length sits from the source key path length.
func keyLenDiff(s Scored, key keypath.KeyPath) int {
	d := s.Match.Len() - key.Len()
	if d < 0 {
		d = -d
	}
	return d
}

func (e *Engine) newID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return ulid.MustNew(ulid.Now(), e.entropy).String()
}
