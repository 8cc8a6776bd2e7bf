package match

import (
	"fmt"

	"github.com/cataloglabs/taxmatch/pkg/taxmatch/internalerr"
)

// Config carries the node-level matching options.
type Config struct {
	// Threshold is the minimum normalized Damerau-Levenshtein
	// similarity (1 - distance/maxLen) for the edit-distance fallback.
	// Ontology relation hits ignore it.
	Threshold float64

	// RequireMajorityTermMatch selects the aggregation policy: true
	// requires strictly more than half of the source category terms to
	// match, false accepts any single term match.
	RequireMajorityTermMatch bool

	// UseStemming enables Porter2 stemming in the term splitter. The
	// same setting must apply to every label being compared.
	UseStemming bool
}

// DefaultConfig returns the documented defaults: threshold 0.8,
// majority aggregation, no stemming.
func DefaultConfig() Config {
	return Config{
		Threshold:                0.8,
		RequireMajorityTermMatch: true,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.Threshold < 0 || c.Threshold > 1 {
		return fmt.Errorf("%w: threshold %.2f outside [0,1]", internalerr.ErrInvalidConfig, c.Threshold)
	}
	return nil
}
