// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package kb

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/pdiddy/concept-base/internal/loader"
)

const (
	// commitInterval is the number of records per ingestion transaction.
	commitInterval = 100

	defaultVersion = "0.0.1"

	progressInterval = 10_000
)

// FromLoader creates a fresh knowledge base named
// <identifier>/<identifier>-v<version> and populates it from the
// loader's record sequence. Records are consumed one at a time in loader
// order and committed every commitInterval records, with a final commit
// for any remainder. A failed commit rolls back the in-flight batch and
// returns the error; previously committed batches stay durable.
//
// Batches are built strictly sequentially. Parallel batch construction
// would fit this loop but is not offered.
func FromLoader(ctx context.Context, l loader.Loader, opts Options, w io.Writer) (*KB, error) {
	cfg := l.Config()
	if !loader.ValidIdentifier(cfg.Identifier) {
		return nil, fmt.Errorf("invalid identifier %q: must be letters, digits or underscores, not starting with a digit", cfg.Identifier)
	}
	version := cfg.Version
	if version == "" {
		version = defaultVersion
	}

	name := filepath.Join(cfg.Identifier, fmt.Sprintf("%s-v%s", cfg.Identifier, version))
	kb, err := Open(name, Options{Create: true, CacheDir: opts.CacheDir})
	if err != nil {
		return nil, err
	}

	if err := kb.ingest(ctx, l, cfg.Namespace, w); err != nil {
		kb.Close()
		return nil, err
	}
	return kb, nil
}

func (kb *KB) ingest(ctx context.Context, l loader.Loader, namespace string, w io.Writer) error {
	sess, err := kb.store.Begin(ctx)
	if err != nil {
		return err
	}

	var pending, total int64
	for {
		rec, err := l.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			sess.Rollback()
			return fmt.Errorf("reading record %d: %w", total+1, err)
		}

		if err := sess.AddRawEdge(rec, namespace); err != nil {
			sess.Rollback()
			return err
		}
		pending++
		total++

		if pending == commitInterval {
			if err := sess.Commit(); err != nil {
				sess.Rollback()
				return fmt.Errorf("committing batch at record %d: %w", total, err)
			}
			pending = 0
			if sess, err = kb.store.Begin(ctx); err != nil {
				return err
			}
		}

		if total%progressInterval == 0 {
			fmt.Fprintf(w, "  ingested %s edges\n", humanize.Comma(total))
		}
	}

	if pending > 0 {
		if err := sess.Commit(); err != nil {
			sess.Rollback()
			return fmt.Errorf("committing final batch: %w", err)
		}
	} else {
		sess.Rollback()
	}

	fmt.Fprintf(w, "ingested %s edges into %s\n", humanize.Comma(total), kb.path)
	return nil
}
