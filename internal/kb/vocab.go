// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package kb

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/pdiddy/concept-base/internal/vocab"
	"github.com/pdiddy/concept-base/pkg/types"
)

// vocabBatchSize is the node batch delivered to each Extend call.
const vocabBatchSize = 10_000

// extender receives node batches during a vocabulary build.
type extender interface {
	Extend(nodes []types.Node) error
}

// Vocab returns the vocabulary, building it on first call. A file at the
// canonical path is assumed complete and opened as-is. Otherwise the
// vocabulary is built at a staging path by streaming every node in
// batches, then renamed into place; the rename is the crash-safety
// boundary, so a reader never observes a partial vocabulary at the final
// path. An interrupted build leaves only the staging file, which is
// discarded on the next attempt.
func (kb *KB) Vocab(ctx context.Context, w io.Writer) (*vocab.Vocab, error) {
	if kb.voc != nil {
		return kb.voc, nil
	}

	final := vocabPath(kb.path)
	cfg := types.VocabConfig{Backend: types.VocabSQLite, Path: final}

	if _, err := os.Stat(final); err == nil {
		v, err := vocab.Open(cfg)
		if err != nil {
			return nil, err
		}
		kb.voc = v
		return v, nil
	}

	tmp := vocabTempPath(kb.path)
	if err := os.Remove(tmp); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("removing stale vocabulary staging file: %w", err)
	}

	build, err := vocab.Open(types.VocabConfig{Backend: types.VocabSQLite, Path: tmp})
	if err != nil {
		return nil, err
	}

	if err := kb.buildVocab(ctx, build, w); err != nil {
		build.Close()
		return nil, err
	}
	if err := build.Close(); err != nil {
		return nil, fmt.Errorf("closing vocabulary staging file: %w", err)
	}

	if err := os.Rename(tmp, final); err != nil {
		return nil, fmt.Errorf("moving vocabulary into place: %w", err)
	}

	v, err := vocab.Open(cfg)
	if err != nil {
		return nil, err
	}
	kb.voc = v
	return v, nil
}

// buildVocab streams every node from the backing store into ext: one
// Extend call per full batch plus one for a non-empty remainder, in
// stream order, never with an empty batch.
func (kb *KB) buildVocab(ctx context.Context, ext extender, w io.Writer) error {
	total, err := kb.store.CountNodes(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "building vocabulary from %s nodes\n", humanize.Comma(total))

	var done int64
	err = kb.store.StreamNodes(ctx, vocabBatchSize, func(batch []types.Node) error {
		if err := ext.Extend(batch); err != nil {
			return err
		}
		done += int64(len(batch))
		fmt.Fprintf(w, "  vocabulary %s / %s\n", humanize.Comma(done), humanize.Comma(total))
		return nil
	})
	if err != nil {
		return fmt.Errorf("building vocabulary: %w", err)
	}
	return nil
}

// VocabStatus reports the vocabulary's freshness: the existence of the
// final file at its canonical path is the completeness signal.
func (kb *KB) VocabStatus() types.CacheStatus {
	final := vocabPath(kb.path)
	_, err := os.Stat(final)
	return types.CacheStatus{Fresh: err == nil, Path: final}
}
