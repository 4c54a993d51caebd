// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package triplet implements a persistent, rebuildable index over
// (start, relation, end) triples, backed by a LevelDB directory that
// lives next to its knowledge-base file.
//
// The index carries a frozen marker: present means the content is a
// complete mirror of the backing store's edges as of the last freeze.
// Builders must add the entire edge set before calling Freeze, so an
// interrupted build leaves the marker absent and the next open rebuilds
// from scratch.
package triplet

import (
	"encoding/binary"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
	lerrors "github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/pdiddy/concept-base/pkg/types"
)

// Key layout: one byte direction tag, then three big-endian int64
// components. Forward keys order (start, rel, end) so Ends is a prefix
// scan; reverse keys order (end, rel, start) for Starts.
const (
	tagForward = 's'
	tagReverse = 'o'
)

var frozenKey = []byte("meta\x00frozen")

// Index is a LevelDB-backed triplet index.
type Index struct {
	db   *leveldb.DB
	path string
}

// Open opens or creates the index directory at path.
func Open(path string) (*Index, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("opening triplet index %s: %w", path, err)
	}
	return &Index{db: db, path: path}, nil
}

// Close releases the index.
func (ix *Index) Close() error {
	if ix.db == nil {
		return nil
	}
	err := ix.db.Close()
	ix.db = nil
	return err
}

// Path returns the index directory location.
func (ix *Index) Path() string {
	return ix.path
}

// Status reports whether the index content is a complete mirror of the
// backing store. Callers read it before any rebuild decision.
func (ix *Index) Status() (types.CacheStatus, error) {
	_, err := ix.db.Get(frozenKey, nil)
	switch err {
	case nil:
		return types.CacheStatus{Fresh: true, Path: ix.path}, nil
	case lerrors.ErrNotFound:
		return types.CacheStatus{Fresh: false, Path: ix.path}, nil
	default:
		return types.CacheStatus{}, fmt.Errorf("reading frozen marker: %w", err)
	}
}

// Freeze persists the completeness marker. It must only be called after
// the entire edge set has been added.
func (ix *Index) Freeze() error {
	if err := ix.db.Put(frozenKey, []byte{1}, nil); err != nil {
		return fmt.Errorf("writing frozen marker: %w", err)
	}
	return nil
}

// Add bulk-adds triples to the index in one LevelDB batch.
func (ix *Index) Add(triples []types.Triplet) error {
	batch := new(leveldb.Batch)
	for _, t := range triples {
		batch.Put(encodeKey(tagForward, t.Start, t.Rel, t.End), nil)
		batch.Put(encodeKey(tagReverse, t.End, t.Rel, t.Start), nil)
	}
	if err := ix.db.Write(batch, nil); err != nil {
		return fmt.Errorf("writing triplet batch: %w", err)
	}
	return nil
}

// Has reports whether the exact triple is present.
func (ix *Index) Has(t types.Triplet) (bool, error) {
	_, err := ix.db.Get(encodeKey(tagForward, t.Start, t.Rel, t.End), nil)
	switch err {
	case nil:
		return true, nil
	case lerrors.ErrNotFound:
		return false, nil
	default:
		return false, fmt.Errorf("probing triple: %w", err)
	}
}

// Ends returns every end node reachable from start via rel.
func (ix *Index) Ends(start, rel int64) ([]int64, error) {
	return ix.scanThird(encodePrefix(tagForward, start, rel))
}

// Starts returns every start node reaching end via rel.
func (ix *Index) Starts(rel, end int64) ([]int64, error) {
	return ix.scanThird(encodePrefix(tagReverse, end, rel))
}

func (ix *Index) scanThird(prefix []byte) ([]int64, error) {
	iter := ix.db.NewIterator(util.BytesPrefix(prefix), nil)
	defer iter.Release()

	var out []int64
	for iter.Next() {
		key := iter.Key()
		out = append(out, int64(binary.BigEndian.Uint64(key[len(key)-8:])))
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("scanning triplet index: %w", err)
	}
	return out, nil
}

func encodeKey(tag byte, a, b, c int64) []byte {
	key := make([]byte, 1+3*8)
	key[0] = tag
	binary.BigEndian.PutUint64(key[1:], uint64(a))
	binary.BigEndian.PutUint64(key[9:], uint64(b))
	binary.BigEndian.PutUint64(key[17:], uint64(c))
	return key
}

func encodePrefix(tag byte, a, b int64) []byte {
	key := make([]byte, 1+2*8)
	key[0] = tag
	binary.BigEndian.PutUint64(key[1:], uint64(a))
	binary.BigEndian.PutUint64(key[9:], uint64(b))
	return key
}
