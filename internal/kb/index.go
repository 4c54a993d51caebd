// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package kb

import (
	"context"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"github.com/pdiddy/concept-base/internal/triplet"
	"github.com/pdiddy/concept-base/pkg/types"
)

// indexScanBatch bounds memory during a rebuild scan, not correctness.
const indexScanBatch = 100_000

// Index returns the triplet index, materializing it on first call. A
// fresh index (frozen marker present) is returned without touching the
// backing store; otherwise every edge is streamed into the index and the
// marker set only after the entire stream has been added. A failure
// partway leaves the marker unset so the next open retries a full
// rebuild.
func (kb *KB) Index(ctx context.Context, w io.Writer) (*triplet.Index, error) {
	if kb.idx != nil {
		return kb.idx, nil
	}

	ix, err := triplet.Open(indexPath(kb.path))
	if err != nil {
		return nil, err
	}

	status, err := ix.Status()
	if err != nil {
		ix.Close()
		return nil, err
	}
	if status.Fresh {
		kb.idx = ix
		return ix, nil
	}

	total, err := kb.store.CountEdges(ctx)
	if err != nil {
		ix.Close()
		return nil, err
	}
	fmt.Fprintf(w, "indexing %s edges\n", humanize.Comma(total))

	var added int64
	err = kb.store.StreamEdges(ctx, indexScanBatch, func(batch []types.Triplet) error {
		if err := ix.Add(batch); err != nil {
			return err
		}
		added += int64(len(batch))
		fmt.Fprintf(w, "  indexed %s / %s\n", humanize.Comma(added), humanize.Comma(total))
		return nil
	})
	if err != nil {
		ix.Close()
		return nil, fmt.Errorf("building triplet index: %w", err)
	}

	if err := ix.Freeze(); err != nil {
		ix.Close()
		return nil, err
	}

	kb.idx = ix
	return ix, nil
}

// IndexStatus reports the triplet index's freshness without triggering
// a rebuild.
func (kb *KB) IndexStatus() (types.CacheStatus, error) {
	if kb.idx != nil {
		return kb.idx.Status()
	}
	ix, err := triplet.Open(indexPath(kb.path))
	if err != nil {
		return types.CacheStatus{}, err
	}
	defer ix.Close()
	return ix.Status()
}
