// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package vocab implements the vocabulary artifact: a standalone SQLite
// file derived from every node in a knowledge base, used for downstream
// label lookup. The file's existence at its canonical path signals
// completeness; builders stage it elsewhere and rename it into place.
package vocab

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/concept-base/pkg/types"
)

// Vocab is an open vocabulary artifact.
type Vocab struct {
	db   *sql.DB
	path string
}

// Open opens or creates the vocabulary identified by cfg. The backend
// discriminator dispatches the implementation; only SQLite exists today.
func Open(cfg types.VocabConfig) (*Vocab, error) {
	switch cfg.Backend {
	case types.VocabSQLite, "":
		return openSQLite(cfg.Path)
	default:
		return nil, fmt.Errorf("unsupported vocabulary backend %q", cfg.Backend)
	}
}

func openSQLite(path string) (*Vocab, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening vocabulary database: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS vocab (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		node_id INTEGER NOT NULL,
		label TEXT NOT NULL
	)`)
	if err == nil {
		_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_vocab_label ON vocab(label)`)
	}
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating vocabulary schema: %w", err)
	}

	return &Vocab{db: db, path: path}, nil
}

// Path returns the vocabulary file location.
func (v *Vocab) Path() string {
	return v.path
}

// Close releases the vocabulary handle.
func (v *Vocab) Close() error {
	return v.db.Close()
}

// Extend appends a batch of nodes in a single transaction.
func (v *Vocab) Extend(nodes []types.Node) error {
	tx, err := v.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning vocabulary transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO vocab (node_id, label) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing vocabulary insert: %w", err)
	}
	defer stmt.Close()

	for _, n := range nodes {
		if _, err := stmt.Exec(n.ID, n.Label); err != nil {
			return fmt.Errorf("inserting vocabulary entry %q: %w", n.Label, err)
		}
	}
	return tx.Commit()
}

// Len returns the number of vocabulary entries.
func (v *Vocab) Len(ctx context.Context) (int64, error) {
	var n int64
	if err := v.db.QueryRowContext(ctx, `SELECT count(*) FROM vocab`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting vocabulary: %w", err)
	}
	return n, nil
}

// IDs returns the node identifiers recorded for label.
func (v *Vocab) IDs(ctx context.Context, label string) ([]int64, error) {
	rows, err := v.db.QueryContext(ctx,
		`SELECT node_id FROM vocab WHERE label = ? ORDER BY node_id`, label)
	if err != nil {
		return nil, fmt.Errorf("querying vocabulary: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning vocabulary entry: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
