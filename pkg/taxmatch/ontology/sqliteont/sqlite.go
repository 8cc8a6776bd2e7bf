// Package sqliteont persists ontology relations in SQLite, so a large
// lexical extract (for example a WordNet slice) does not have to be
// resident in memory. It implements the ontology.Ontology interface and
// is typically wrapped in an ontology.Cache.
package sqliteont

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/cataloglabs/taxmatch/pkg/taxmatch/internalerr"
	"github.com/cataloglabs/taxmatch/pkg/taxmatch/ontology"
	"github.com/cataloglabs/taxmatch/pkg/taxmatch/ontology/memontology"
)

// Store is a SQLite-backed relation table.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) a SQLite relation store with WAL mode
// enabled for concurrent readers. Failures wrap
// internalerr.ErrStoreUnavailable.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", internalerr.ErrStoreUnavailable, path, err)
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: open %s: %v", internalerr.ErrStoreUnavailable, path, err)
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: open %s: %v", internalerr.ErrStoreUnavailable, path, err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS relations (
	term TEXT NOT NULL,
	related TEXT NOT NULL,
	kind INTEGER NOT NULL,
	PRIMARY KEY(term, related, kind)
);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// AddRelation stores a relation and its inverse: synonyms are symmetric,
// hypernym/hyponym pairs invert each other.
func (s *Store) AddRelation(ctx context.Context, term, related string, kind ontology.Kind) error {
	term = strings.ToLower(term)
	related = strings.ToLower(related)
	if term == "" || related == "" || term == related {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const stmt = `INSERT OR IGNORE INTO relations (term, related, kind) VALUES (?, ?, ?)`
	if _, err := tx.ExecContext(ctx, stmt, term, related, int(kind)); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, stmt, related, term, int(inverse(kind))); err != nil {
		return err
	}

	return tx.Commit()
}

// inverse maps a relation kind to the kind seen from the other side.
func inverse(kind ontology.Kind) ontology.Kind {
	switch kind {
	case ontology.KindHypernym:
		return ontology.KindHyponym
	case ontology.KindHyponym:
		return ontology.KindHypernym
	default:
		return ontology.KindSynonym
	}
}

// Import bulk-loads all relations from an in-memory ontology. The source
// table already carries inverse rows, so entries are inserted verbatim.
func (s *Store) Import(ctx context.Context, src *memontology.Ontology) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO relations (term, related, kind) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for term, rels := range src.AllRelations() {
		for _, r := range rels {
			if _, err := stmt.ExecContext(ctx, term, r.Term, int(r.Kind)); err != nil {
				return fmt.Errorf("import %s: %w", term, err)
			}
		}
	}

	return tx.Commit()
}

// Lookup returns the relations for term. Unknown terms yield an empty
// slice and no error.
func (s *Store) Lookup(ctx context.Context, term string) ([]ontology.Related, error) {
	const q = `SELECT related, kind FROM relations WHERE term = ? ORDER BY kind, related`

	rows, err := s.db.QueryContext(ctx, q, strings.ToLower(term))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rels []ontology.Related
	for rows.Next() {
		var related string
		var kind int
		if err := rows.Scan(&related, &kind); err != nil {
			return nil, err
		}
		rels = append(rels, ontology.Related{Term: related, Kind: ontology.Kind(kind)})
	}

	return rels, rows.Err()
}

// Count returns the total number of relation rows.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM relations`).Scan(&n)
	return n, err
}
