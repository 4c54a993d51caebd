// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store implements the SQLite backing store for the knowledge
// graph: Node, Relation and Edge tables with write-ahead logging, plus
// batched streaming readers used to build derived caches.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/concept-base/pkg/types"
)

// Store manages one knowledge-graph SQLite database.
type Store struct {
	db   *sql.DB
	path string

	// edgeScans counts full edge-stream passes, so callers can verify
	// that a fresh derived cache skips the scan entirely.
	edgeScans atomic.Int64
}

// Open opens the database at path with write-ahead logging enabled. When
// create is true, parent directories and the schema are created as
// needed; otherwise the file must already exist.
func Open(path string, create bool) (*Store, error) {
	if create {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating store directory: %w", err)
		}
	} else if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("opening store %s: %w", path, err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, path: path}

	if create {
		if err := s.createSchema(); err != nil {
			db.Close()
			return nil, fmt.Errorf("creating schema: %w", err)
		}
	}

	return s, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS nodes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			label TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_nodes_label ON nodes(label)`,
		`CREATE TABLE IF NOT EXISTS relations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			label TEXT NOT NULL UNIQUE
		)`,
		`CREATE TABLE IF NOT EXISTS edges (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			start_id INTEGER NOT NULL REFERENCES nodes(id),
			rel_id INTEGER NOT NULL REFERENCES relations(id),
			end_id INTEGER NOT NULL REFERENCES nodes(id),
			weight REAL NOT NULL DEFAULT 1.0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_edges_start ON edges(start_id)`,
		`CREATE INDEX IF NOT EXISTS idx_edges_end ON edges(end_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// CountNodes returns the number of nodes in the store.
func (s *Store) CountNodes(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM nodes`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting nodes: %w", err)
	}
	return n, nil
}

// CountEdges returns the number of edges in the store.
func (s *Store) CountEdges(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM edges`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting edges: %w", err)
	}
	return n, nil
}

// Stats holds observability counters for one Store handle.
type Stats struct {
	// EdgeScans is the number of full edge-stream passes performed.
	EdgeScans int64
}

// Stats returns the handle's counters.
func (s *Store) Stats() Stats {
	return Stats{EdgeScans: s.edgeScans.Load()}
}

// StreamEdges streams every edge as a (start, rel, end) triplet in
// store-native order, delivering batches of at most batchSize to fn. The
// batch size bounds memory, not correctness. Iteration stops at the
// first error from fn.
func (s *Store) StreamEdges(ctx context.Context, batchSize int, fn func([]types.Triplet) error) error {
	s.edgeScans.Add(1)

	rows, err := s.db.QueryContext(ctx,
		`SELECT start_id, rel_id, end_id FROM edges ORDER BY id`)
	if err != nil {
		return fmt.Errorf("querying edges: %w", err)
	}
	defer rows.Close()

	batch := make([]types.Triplet, 0, batchSize)
	for rows.Next() {
		var t types.Triplet
		if err := rows.Scan(&t.Start, &t.Rel, &t.End); err != nil {
			return fmt.Errorf("scanning edge: %w", err)
		}
		batch = append(batch, t)
		if len(batch) == batchSize {
			if err := fn(batch); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("streaming edges: %w", err)
	}
	if len(batch) > 0 {
		return fn(batch)
	}
	return nil
}

// StreamNodes streams every node in store-native order, delivering
// batches of at most batchSize to fn.
func (s *Store) StreamNodes(ctx context.Context, batchSize int, fn func([]types.Node) error) error {
	rows, err := s.db.QueryContext(ctx, `SELECT id, label FROM nodes ORDER BY id`)
	if err != nil {
		return fmt.Errorf("querying nodes: %w", err)
	}
	defer rows.Close()

	batch := make([]types.Node, 0, batchSize)
	for rows.Next() {
		var n types.Node
		if err := rows.Scan(&n.ID, &n.Label); err != nil {
			return fmt.Errorf("scanning node: %w", err)
		}
		batch = append(batch, n)
		if len(batch) == batchSize {
			if err := fn(batch); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("streaming nodes: %w", err)
	}
	if len(batch) > 0 {
		return fn(batch)
	}
	return nil
}

// NodeIDsByLabel returns the identifiers of every node carrying label.
func (s *Store) NodeIDsByLabel(ctx context.Context, label string) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id FROM nodes WHERE label = ? ORDER BY id`, label)
	if err != nil {
		return nil, fmt.Errorf("querying nodes by label: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning node id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// NodeLabel returns the label of the node with the given id.
func (s *Store) NodeLabel(ctx context.Context, id int64) (string, error) {
	var label string
	err := s.db.QueryRowContext(ctx,
		`SELECT label FROM nodes WHERE id = ?`, id).Scan(&label)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("node %d not found", id)
	}
	if err != nil {
		return "", fmt.Errorf("looking up node %d: %w", id, err)
	}
	return label, nil
}

// RelationIDByLabel returns the identifier of the relation with the
// given label, or sql.ErrNoRows wrapped if it does not exist.
func (s *Store) RelationIDByLabel(ctx context.Context, label string) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM relations WHERE label = ?`, label).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("relation %q not found", label)
	}
	if err != nil {
		return 0, fmt.Errorf("looking up relation %q: %w", label, err)
	}
	return id, nil
}

// RelationLabel returns the label of the relation with the given id.
func (s *Store) RelationLabel(ctx context.Context, id int64) (string, error) {
	var label string
	err := s.db.QueryRowContext(ctx,
		`SELECT label FROM relations WHERE id = ?`, id).Scan(&label)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("relation %d not found", id)
	}
	if err != nil {
		return "", fmt.Errorf("looking up relation %d: %w", id, err)
	}
	return label, nil
}

// qualifyLabel prefixes label with the loader namespace. Labels that are
// already rooted (leading slash) pass through untouched.
func qualifyLabel(namespace, label string) string {
	if namespace == "" || strings.HasPrefix(label, "/") {
		return label
	}
	return namespace + "/" + label
}
