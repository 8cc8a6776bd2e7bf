package sqliteont

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/cataloglabs/taxmatch/pkg/taxmatch/internalerr"
	"github.com/cataloglabs/taxmatch/pkg/taxmatch/ontology"
	"github.com/cataloglabs/taxmatch/pkg/taxmatch/ontology/memontology"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "relations.db")
	s, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, path
}

func TestAddAndLookup(t *testing.T) {
	ctx := context.Background()
	s, _ := openTestStore(t)

	if err := s.AddRelation(ctx, "sofa", "couch", ontology.KindSynonym); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	rels, err := s.Lookup(ctx, "sofa")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if len(rels) != 1 || rels[0].Term != "couch" || rels[0].Kind != ontology.KindSynonym {
		t.Errorf("unexpected relations: %v", rels)
	}

	// Symmetric synonym row.
	rels, _ = s.Lookup(ctx, "couch")
	if len(rels) != 1 || rels[0].Term != "sofa" {
		t.Errorf("expected inverse synonym row: %v", rels)
	}
}

func TestHypernymInverseRow(t *testing.T) {
	ctx := context.Background()
	s, _ := openTestStore(t)

	if err := s.AddRelation(ctx, "cheese", "dairy", ontology.KindHypernym); err != nil {
		t.Fatal(err)
	}

	rels, _ := s.Lookup(ctx, "dairy")
	if len(rels) != 1 || rels[0].Term != "cheese" || rels[0].Kind != ontology.KindHyponym {
		t.Errorf("expected hyponym inverse, got %v", rels)
	}
}

func TestOpenUnusablePathIsStoreUnavailable(t *testing.T) {
	// The parent directory does not exist, so the database file cannot
	// be created.
	path := filepath.Join(t.TempDir(), "missing", "relations.db")

	_, err := Open(context.Background(), path)
	if !errors.Is(err, internalerr.ErrStoreUnavailable) {
		t.Errorf("expected ErrStoreUnavailable, got %v", err)
	}
}

func TestUnknownTermIsEmptyNotError(t *testing.T) {
	ctx := context.Background()
	s, _ := openTestStore(t)

	rels, err := s.Lookup(ctx, "xyzzy")
	if err != nil {
		t.Fatalf("unknown term must not error: %v", err)
	}
	if len(rels) != 0 {
		t.Errorf("expected no relations, got %v", rels)
	}
}

func TestAddIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s, _ := openTestStore(t)

	for i := 0; i < 3; i++ {
		if err := s.AddRelation(ctx, "sofa", "couch", ontology.KindSynonym); err != nil {
			t.Fatal(err)
		}
	}

	n, err := s.Count(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 { // forward + inverse
		t.Errorf("expected 2 rows, got %d", n)
	}
}

func TestImportFromMemontology(t *testing.T) {
	ctx := context.Background()
	s, _ := openTestStore(t)

	mem := memontology.New()
	mem.AddSynonyms("sofa", "couch", "lounge")
	mem.AddHypernym("ricotta", "cheese")

	if err := s.Import(ctx, mem); err != nil {
		t.Fatalf("import failed: %v", err)
	}

	rels, _ := s.Lookup(ctx, "sofa")
	if len(rels) != 2 {
		t.Errorf("expected 2 synonyms for sofa, got %v", rels)
	}

	rels, _ = s.Lookup(ctx, "cheese")
	found := false
	for _, r := range rels {
		if r.Term == "ricotta" && r.Kind == ontology.KindHyponym {
			found = true
		}
	}
	if !found {
		t.Errorf("expected cheese to list ricotta as hyponym: %v", rels)
	}
}

func TestPersistenceAcrossReopen(t *testing.T) {
	ctx := context.Background()
	s, path := openTestStore(t)

	if err := s.AddRelation(ctx, "sofa", "couch", ontology.KindSynonym); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	reopened, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	rels, err := reopened.Lookup(ctx, "sofa")
	if err != nil || len(rels) != 1 {
		t.Errorf("relations should survive reopen: %v %v", rels, err)
	}
}
