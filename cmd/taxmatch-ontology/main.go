// Command taxmatch-ontology imports a YAML relation file into a SQLite
// relation store so repeated matching runs can share one database.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/cataloglabs/taxmatch/pkg/taxmatch/ontology/memontology"
	"github.com/cataloglabs/taxmatch/pkg/taxmatch/ontology/sqliteont"
)

func main() {
	var (
		input  = flag.String("input", "", "YAML relation file (required)")
		output = flag.String("output", "", "SQLite database path (required)")
	)
	flag.Parse()

	if *input == "" {
		log.Fatal("--input required")
	}
	if *output == "" {
		log.Fatal("--output required")
	}

	ctx := context.Background()

	ont, err := memontology.LoadFromYAML(*input)
	if err != nil {
		log.Fatalf("load relations: %v", err)
	}

	store, err := sqliteont.Open(ctx, *output)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer store.Close()

	if err := store.Import(ctx, ont); err != nil {
		log.Fatalf("import relations: %v", err)
	}

	count, err := store.Count(ctx)
	if err != nil {
		log.Fatalf("count relations: %v", err)
	}
	fmt.Printf("imported %d terms, %d relation rows -> %s\n", ont.Len(), count, *output)
}
