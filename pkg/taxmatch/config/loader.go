package config

import (
	"context"
	"fmt"

	"github.com/cataloglabs/taxmatch/pkg/taxmatch/internalerr"
	"github.com/cataloglabs/taxmatch/pkg/taxmatch/match"
	"github.com/cataloglabs/taxmatch/pkg/taxmatch/ontology"
	"github.com/cataloglabs/taxmatch/pkg/taxmatch/ontology/memontology"
	"github.com/cataloglabs/taxmatch/pkg/taxmatch/ontology/sqliteont"
	"github.com/cataloglabs/taxmatch/pkg/taxmatch/rank"
)

// Loader loads a configuration file and constructs engine components.
type Loader struct {
	Path string
}

// Components holds everything a configuration file wires up. Close
// releases the ontology backend and must be called when the components
// go out of use; it is always non-nil.
type Components struct {
	Config    match.Config
	Weights   rank.Weights
	Decay     float64
	Stopwords []string
	Ontology  ontology.Ontology
	CacheSize int
	Close     func() error
}

// Load reads the configuration file and returns initialized components.
// An empty Path yields all defaults with no ontology.
func (l *Loader) Load(ctx context.Context) (*Components, error) {
	comp := &Components{
		Config:  match.DefaultConfig(),
		Weights: rank.DefaultWeights(),
		Decay:   rank.DefaultDecay,
		Close:   func() error { return nil },
	}
	if l.Path == "" {
		return comp, nil
	}

	f, err := LoadFile(l.Path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if f.Threshold != nil {
		comp.Config.Threshold = *f.Threshold
	}
	if f.RequireMajorityTermMatch != nil {
		comp.Config.RequireMajorityTermMatch = *f.RequireMajorityTermMatch
	}
	comp.Config.UseStemming = f.UseStemming
	if err := comp.Config.Validate(); err != nil {
		return nil, err
	}

	comp.Stopwords = f.Stopwords
	if f.Decay != 0 {
		comp.Decay = f.Decay
	}
	if f.Weights != nil {
		comp.Weights = rank.Weights{
			Exact:        f.Weights.Exact,
			Synonym:      f.Weights.Synonym,
			Hypernym:     f.Weights.Hypernym,
			Hyponym:      f.Weights.Hyponym,
			EditDistance: f.Weights.EditDistance,
		}
	}

	comp.CacheSize = f.Ontology.CacheSize

	sources := 0
	for _, set := range []bool{len(f.Ontology.Terms) > 0, f.Ontology.Path != "", f.Ontology.SQLitePath != ""} {
		if set {
			sources++
		}
	}
	if sources > 1 {
		return nil, fmt.Errorf("%w: ontology terms, path and sqlite_path are mutually exclusive", internalerr.ErrInvalidConfig)
	}

	switch {
	case len(f.Ontology.Terms) > 0:
		comp.Ontology = memontology.FromEntries(f.Ontology.Terms)
	case f.Ontology.Path != "":
		ont, err := memontology.LoadFromYAML(f.Ontology.Path)
		if err != nil {
			return nil, fmt.Errorf("load ontology: %w", err)
		}
		comp.Ontology = ont
	case f.Ontology.SQLitePath != "":
		store, err := sqliteont.Open(ctx, f.Ontology.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open ontology store: %w", err)
		}
		comp.Ontology = store
		comp.Close = store.Close
	}

	return comp, nil
}
