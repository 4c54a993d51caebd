// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pdiddy/concept-base/pkg/types"
)

// Session is a short-lived write transaction scoped to one logical
// operation. A session must end in exactly one Commit or Rollback;
// callers release it on every exit path.
type Session struct {
	ctx context.Context
	s   *Store
	tx  *sql.Tx
}

// Begin opens a write session against the store.
func (s *Store) Begin(ctx context.Context) (*Session, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	return &Session{ctx: ctx, s: s, tx: tx}, nil
}

// Commit makes the session's writes durable.
func (sn *Session) Commit() error {
	return sn.tx.Commit()
}

// Rollback discards the session's uncommitted writes. Calling it after a
// successful Commit is a no-op error that callers may ignore.
func (sn *Session) Rollback() error {
	return sn.tx.Rollback()
}

// AddRawEdge converts one loader record into a persisted Edge, creating
// the referenced nodes and relation as needed. Labels are qualified with
// namespace. Nothing is committed; the caller owns the commit boundary.
func (sn *Session) AddRawEdge(rec types.RawEdge, namespace string) error {
	startID, err := sn.getOrCreateNode(qualifyLabel(namespace, rec.Start))
	if err != nil {
		return err
	}
	endID, err := sn.getOrCreateNode(qualifyLabel(namespace, rec.End))
	if err != nil {
		return err
	}
	relID, err := sn.getOrCreateRelation(rec.Rel)
	if err != nil {
		return err
	}

	weight := rec.Weight
	if weight == 0 {
		weight = 1.0
	}
	_, err = sn.tx.ExecContext(sn.ctx,
		`INSERT INTO edges (start_id, rel_id, end_id, weight) VALUES (?, ?, ?, ?)`,
		startID, relID, endID, weight)
	if err != nil {
		return fmt.Errorf("inserting edge %s -[%s]-> %s: %w", rec.Start, rec.Rel, rec.End, err)
	}
	return nil
}

func (sn *Session) getOrCreateNode(label string) (int64, error) {
	var id int64
	err := sn.tx.QueryRowContext(sn.ctx,
		`SELECT id FROM nodes WHERE label = ? ORDER BY id LIMIT 1`, label).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, fmt.Errorf("looking up node %q: %w", label, err)
	}

	res, err := sn.tx.ExecContext(sn.ctx,
		`INSERT INTO nodes (label) VALUES (?)`, label)
	if err != nil {
		return 0, fmt.Errorf("inserting node %q: %w", label, err)
	}
	return res.LastInsertId()
}

func (sn *Session) getOrCreateRelation(label string) (int64, error) {
	var id int64
	err := sn.tx.QueryRowContext(sn.ctx,
		`SELECT id FROM relations WHERE label = ?`, label).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, fmt.Errorf("looking up relation %q: %w", label, err)
	}

	res, err := sn.tx.ExecContext(sn.ctx,
		`INSERT INTO relations (label) VALUES (?)`, label)
	if err != nil {
		return 0, fmt.Errorf("inserting relation %q: %w", label, err)
	}
	return res.LastInsertId()
}
