// Package memontology provides an in-memory Ontology backed by plain
// maps. It is the default for curated relation sets loaded from YAML
// and doubles as the test double for the matcher.
package memontology

import (
	"context"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/cataloglabs/taxmatch/pkg/taxmatch/ontology"
)

// Ontology is a map-backed relation table. Synonym entries are kept
// symmetric and hypernym/hyponym entries keep their inverses, so a
// lookup from either side sees the relation.
type Ontology struct {
	mu        sync.RWMutex
	relations map[string][]ontology.Related
}

// New creates an empty ontology.
func New() *Ontology {
	return &Ontology{relations: make(map[string][]ontology.Related)}
}

// AddSynonyms records term ↔ synonym relations in both directions.
func (o *Ontology) AddSynonyms(term string, synonyms ...string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	term = strings.ToLower(term)
	for _, s := range synonyms {
		s = strings.ToLower(s)
		if s == "" || s == term {
			continue
		}
		o.add(term, ontology.Related{Term: s, Kind: ontology.KindSynonym})
		o.add(s, ontology.Related{Term: term, Kind: ontology.KindSynonym})
	}
}

// AddHypernym records that hypernym is a broader term for term, and the
// inverse hyponym relation.
func (o *Ontology) AddHypernym(term, hypernym string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	term = strings.ToLower(term)
	hypernym = strings.ToLower(hypernym)
	if term == "" || hypernym == "" || term == hypernym {
		return
	}
	o.add(term, ontology.Related{Term: hypernym, Kind: ontology.KindHypernym})
	o.add(hypernym, ontology.Related{Term: term, Kind: ontology.KindHyponym})
}

// AddHyponym records that hyponym is a narrower term for term.
func (o *Ontology) AddHyponym(term, hyponym string) {
	o.AddHypernym(hyponym, term)
}

// add appends a relation unless it is already present. Callers hold the
// lock.
func (o *Ontology) add(term string, rel ontology.Related) {
	for _, existing := range o.relations[term] {
		if existing == rel {
			return
		}
	}
	o.relations[term] = append(o.relations[term], rel)
}

// Lookup returns the relations for term. Unknown terms yield an empty
// slice and no error.
func (o *Ontology) Lookup(ctx context.Context, term string) ([]ontology.Related, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	rels := o.relations[strings.ToLower(term)]
	if len(rels) == 0 {
		return nil, nil
	}
	out := make([]ontology.Related, len(rels))
	copy(out, rels)
	return out, nil
}

// Len returns the number of terms with at least one relation.
func (o *Ontology) Len() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.relations)
}

// AllRelations returns a copy of the full relation table, keyed by term.
// Used when bulk-importing into a persistent store.
func (o *Ontology) AllRelations() map[string][]ontology.Related {
	o.mu.RLock()
	defer o.mu.RUnlock()

	out := make(map[string][]ontology.Related, len(o.relations))
	for term, rels := range o.relations {
		cp := make([]ontology.Related, len(rels))
		copy(cp, rels)
		out[term] = cp
	}
	return out
}

// Entry is one term's relations as written in YAML.
type Entry struct {
	Term      string   `yaml:"term"`
	Synonyms  []string `yaml:"synonyms"`
	Hypernyms []string `yaml:"hypernyms"`
	Hyponyms  []string `yaml:"hyponyms"`
}

// FromEntries builds an ontology from relation entries. All terms are
// normalized to lowercase; synonyms are symmetric and hypernym/hyponym
// inverses are derived automatically. Entries without a term are
// skipped.
func FromEntries(entries []Entry) *Ontology {
	o := New()
	for _, entry := range entries {
		if entry.Term == "" {
			continue
		}
		o.AddSynonyms(entry.Term, entry.Synonyms...)
		for _, h := range entry.Hypernyms {
			o.AddHypernym(entry.Term, h)
		}
		for _, h := range entry.Hyponyms {
			o.AddHyponym(entry.Term, h)
		}
	}
	return o
}

// LoadFromYAML loads relation entries from a YAML file.
//
// Expected format:
//
//	terms:
//	  - term: sofa
//	    synonyms: [couch, lounge]
//	    hypernyms: [seat]
//	    hyponyms: [chesterfield]
func LoadFromYAML(path string) (*Ontology, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file struct {
		Terms []Entry `yaml:"terms"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}

	return FromEntries(file.Terms), nil
}
