// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package kb orchestrates a locally cached, versioned knowledge graph:
// a SQLite backing store plus two derived, rebuildable caches — a
// LevelDB triplet index for edge lookup and a vocabulary built by
// streaming every node. The package owns the cache lifecycle: resolving
// canonical locations, deciding freshness, rebuilding atomically, and
// bulk-ingesting under batched crash-safe transactions.
package kb

import (
	"context"
	"errors"
	"os"

	"github.com/pdiddy/concept-base/internal/store"
	"github.com/pdiddy/concept-base/internal/triplet"
	"github.com/pdiddy/concept-base/internal/vocab"
)

// Options controls how a knowledge base is opened.
type Options struct {
	// Create initializes a fresh empty store when the name does not
	// resolve to an existing file.
	Create bool

	// CacheDir overrides the cache root. Empty selects the default
	// user cache location.
	CacheDir string
}

// KB is an open knowledge base. Derived caches are materialized lazily
// and memoized for the handle's lifetime.
type KB struct {
	path  string
	store *store.Store

	idx *triplet.Index
	voc *vocab.Vocab
}

// Open resolves nameOrPath to its canonical cache location and opens the
// backing store with write-ahead logging.
func Open(nameOrPath string, opts Options) (*KB, error) {
	path, mayCreate, err := resolvePath(nameOrPath, opts.CacheDir, opts.Create)
	if err != nil {
		return nil, err
	}

	_, statErr := os.Stat(path)
	s, err := store.Open(path, mayCreate && statErr != nil)
	if err != nil {
		return nil, err
	}

	return &KB{path: path, store: s}, nil
}

// Path returns the canonical primary store location.
func (kb *KB) Path() string {
	return kb.path
}

// Store exposes the backing store for direct lookups.
func (kb *KB) Store() *store.Store {
	return kb.store
}

// NumNodes returns the node count.
func (kb *KB) NumNodes(ctx context.Context) (int64, error) {
	return kb.store.CountNodes(ctx)
}

// NumEdges returns the edge count.
func (kb *KB) NumEdges(ctx context.Context) (int64, error) {
	return kb.store.CountEdges(ctx)
}

// NodeIDsByLabel returns the identifiers of every node carrying label.
func (kb *KB) NodeIDsByLabel(ctx context.Context, label string) ([]int64, error) {
	return kb.store.NodeIDsByLabel(ctx, label)
}

// Close releases the store and any materialized caches.
func (kb *KB) Close() error {
	var errs []error
	if kb.idx != nil {
		errs = append(errs, kb.idx.Close())
		kb.idx = nil
	}
	if kb.voc != nil {
		errs = append(errs, kb.voc.Close())
		kb.voc = nil
	}
	errs = append(errs, kb.store.Close())
	return errors.Join(errs...)
}

// Cleanup closes the knowledge base and deletes the primary store file
// together with every derived cache colocated with it.
func (kb *KB) Cleanup() error {
	if err := kb.Close(); err != nil {
		return err
	}

	paths := []string{
		kb.path,
		kb.path + "-wal",
		kb.path + "-shm",
		vocabPath(kb.path),
		vocabTempPath(kb.path),
	}
	var errs []error
	for _, p := range paths {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			errs = append(errs, err)
		}
	}
	if err := os.RemoveAll(indexPath(kb.path)); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
