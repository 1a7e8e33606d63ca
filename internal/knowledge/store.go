// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package knowledge persists the catalog graph as a SQLite snapshot,
// ingests article sources into it, and exports document records.
package knowledge

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/bibgraph/internal/graph"
)

const (
	kindIRI     = "iri"
	kindLiteral = "literal"
)

// Store manages the SQLite graph snapshot.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens or creates the snapshot database at path, creating the
// parent directory and the schema if they do not exist.
func NewStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating snapshot directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS triples (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			subject TEXT NOT NULL,
			predicate TEXT NOT NULL,
			object TEXT NOT NULL,
			object_kind TEXT NOT NULL,
			datatype TEXT NOT NULL DEFAULT '',
			UNIQUE (subject, predicate, object, object_kind, datatype)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_triples_po ON triples(predicate, object)`,
		`CREATE INDEX IF NOT EXISTS idx_triples_sp ON triples(subject, predicate)`,
		`CREATE TABLE IF NOT EXISTS ingest_status (
			source TEXT PRIMARY KEY,
			checksum TEXT NOT NULL,
			ingested_at TEXT NOT NULL
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// SaveGraph writes every fact of g in insertion order inside one
// transaction. Facts already in the snapshot are left untouched. It
// returns the number of facts written.
func (s *Store) SaveGraph(ctx context.Context, g *graph.Memory) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO triples (subject, predicate, object, object_kind, datatype)
		 VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	written := 0
	for t := range g.Triples() {
		kind, datatype := kindIRI, ""
		if lit, ok := t.Object.(graph.Literal); ok {
			kind, datatype = kindLiteral, string(lit.Datatype)
		}
		res, err := stmt.ExecContext(ctx, string(t.Subject), string(t.Predicate), t.Object.String(), kind, datatype)
		if err != nil {
			return 0, fmt.Errorf("inserting %s: %w", t, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			written++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing snapshot: %w", err)
	}
	return written, nil
}

// LoadGraph rebuilds the in-memory graph from the snapshot, preserving
// the order in which facts were first saved.
func (s *Store) LoadGraph(ctx context.Context) (*graph.Memory, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT subject, predicate, object, object_kind, datatype FROM triples ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("querying triples: %w", err)
	}
	defer rows.Close()

	g := graph.NewMemory()
	for rows.Next() {
		var subject, predicate, object, kind, datatype string
		if err := rows.Scan(&subject, &predicate, &object, &kind, &datatype); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		var obj graph.Term
		switch kind {
		case kindIRI:
			obj = graph.IRI(object)
		case kindLiteral:
			obj = graph.Literal{Value: object, Datatype: graph.IRI(datatype)}
		default:
			return nil, fmt.Errorf("triple %s %s: unknown object kind %q", subject, predicate, kind)
		}
		g.Add(graph.Triple{Subject: graph.IRI(subject), Predicate: graph.IRI(predicate), Object: obj})
	}
	return g, rows.Err()
}

// sourceChecksum returns the checksum recorded for source, if any.
func (s *Store) sourceChecksum(ctx context.Context, source string) (string, bool, error) {
	var checksum string
	err := s.db.QueryRowContext(ctx,
		`SELECT checksum FROM ingest_status WHERE source = ?`, source,
	).Scan(&checksum)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("looking up ingest status: %w", err)
	}
	return checksum, true, nil
}

func (s *Store) recordSource(ctx context.Context, source, checksum string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO ingest_status (source, checksum, ingested_at) VALUES (?, ?, ?)
		 ON CONFLICT(source) DO UPDATE SET checksum=excluded.checksum, ingested_at=excluded.ingested_at`,
		source, checksum, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("updating ingest status: %w", err)
	}
	return nil
}
