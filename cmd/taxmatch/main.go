// Command taxmatch matches one source category path against a target
// taxonomy file and prints the ranked candidates as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"

	"github.com/cataloglabs/taxmatch/internal/taxfile"
	"github.com/cataloglabs/taxmatch/pkg/taxmatch"
	"github.com/cataloglabs/taxmatch/pkg/taxmatch/config"
)

type report struct {
	ID            string        `json:"id"`
	Source        string        `json:"source"`
	SourceKeyPath string        `json:"source_key_path"`
	Results       []resultEntry `json:"results"`
	Unmatched     []string      `json:"unmatched,omitempty"`
	Skipped       []string      `json:"skipped,omitempty"`
}

type resultEntry struct {
	Candidate string   `json:"candidate"`
	Score     float64  `json:"score"`
	Kinds     []string `json:"kinds"`
}

func main() {
	var (
		source     = flag.String("source", "", "Source path, e.g. \"Dairy > Cheese > Cottage Cheese\" (required)")
		candidates = flag.String("candidates", "", "Target taxonomy YAML file (required)")
		cfgPath    = flag.String("config", "", "Optional engine configuration file")
		top        = flag.Int("top", 0, "Limit results to the best N (0 = all)")
	)
	flag.Parse()

	if *source == "" {
		log.Fatal("--source required")
	}
	if *candidates == "" {
		log.Fatal("--candidates required")
	}

	ctx := context.Background()

	srcPath, err := taxfile.ParsePath(*source)
	if err != nil {
		log.Fatalf("parse source: %v", err)
	}

	target, err := taxfile.Load(*candidates)
	if err != nil {
		log.Fatalf("load candidates: %v", err)
	}

	loader := config.Loader{Path: *cfgPath}
	components, err := loader.Load(ctx)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	defer components.Close()

	engine, err := taxmatch.New(taxmatch.Options{
		Ontology:  components.Ontology,
		Config:    &components.Config,
		Weights:   &components.Weights,
		Decay:     components.Decay,
		Stopwords: components.Stopwords,
		CacheSize: components.CacheSize,
	})
	if err != nil {
		log.Fatalf("create engine: %v", err)
	}

	result, err := engine.Match(ctx, srcPath, target.Paths)
	if err != nil {
		log.Fatalf("match: %v", err)
	}

	out := report{
		ID:            result.ID,
		Source:        srcPath.String(),
		SourceKeyPath: result.SourceKeyPath.String(),
	}
	for _, r := range result.Results {
		if *top > 0 && len(out.Results) >= *top {
			break
		}
		kinds := make([]string, 0, len(r.Match.Positions))
		for _, k := range r.Match.Kinds() {
			kinds = append(kinds, k.String())
		}
		out.Results = append(out.Results, resultEntry{
			Candidate: r.Candidate.String(),
			Score:     r.Score,
			Kinds:     kinds,
		})
	}
	for _, p := range result.Unmatched {
		out.Unmatched = append(out.Unmatched, p.String())
	}
	for _, p := range result.Skipped {
		out.Skipped = append(out.Skipped, p.String())
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		log.Fatalf("encode report: %v", err)
	}
	fmt.Println(string(data))
}
