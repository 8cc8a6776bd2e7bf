// Package config loads engine configuration from YAML files and wires
// the ontology backend it names.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cataloglabs/taxmatch/pkg/taxmatch/ontology/memontology"
)

// File is the on-disk engine configuration.
type File struct {
	// Threshold is the edit-distance acceptance ratio. Nil keeps the
	// default.
	Threshold *float64 `yaml:"threshold"`

	// RequireMajorityTermMatch selects the aggregation policy. Nil
	// keeps the default (majority).
	RequireMajorityTermMatch *bool `yaml:"require_majority_term_match"`

	UseStemming bool     `yaml:"use_stemming"`
	Stopwords   []string `yaml:"stopwords"`

	// Decay is the per-level rank decay. 0 keeps the default.
	Decay   float64     `yaml:"decay"`
	Weights *WeightsCfg `yaml:"weights"`

	Ontology OntologyCfg `yaml:"ontology"`
}

// WeightsCfg mirrors rank.Weights in the config file.
type WeightsCfg struct {
	Exact        float64 `yaml:"exact"`
	Synonym      float64 `yaml:"synonym"`
	Hypernym     float64 `yaml:"hypernym"`
	Hyponym      float64 `yaml:"hyponym"`
	EditDistance float64 `yaml:"edit_distance"`
}

// OntologyCfg names the relation source. Terms inlines relation entries
// in the config file itself, Path points at a YAML relation file,
// SQLitePath at a relation database; at most one may be set.
type OntologyCfg struct {
	Terms      []memontology.Entry `yaml:"terms"`
	Path       string              `yaml:"path"`
	SQLitePath string              `yaml:"sqlite_path"`

	// CacheSize bounds the lookup cache. 0 means the default size,
	// negative disables caching.
	CacheSize int `yaml:"cache_size"`
}

// LoadFile reads an engine configuration from a YAML file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}

	return &f, nil
}
