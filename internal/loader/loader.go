// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package loader supplies ordered sequences of raw edge records for bulk
// ingestion, plus the identifying metadata (identifier, version,
// namespace) that names the destination store.
package loader

import (
	"io"

	"github.com/pdiddy/concept-base/pkg/types"
)

// Loader yields a finite, ordered sequence of raw edge records. Next
// returns io.EOF after the last record. The order is whatever the source
// provides; consumers do not re-sort.
type Loader interface {
	// Config identifies the data set being loaded.
	Config() types.LoaderConfig

	// Next returns the next record, or io.EOF when the sequence ends.
	Next() (types.RawEdge, error)
}

// ValidIdentifier reports whether s is a bare-word identifier: letters,
// digits and underscores, not starting with a digit, non-empty.
func ValidIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_':
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// SliceLoader yields records from an in-memory slice. Used by tests and
// programmatic ingestion.
type SliceLoader struct {
	Cfg     types.LoaderConfig
	Records []types.RawEdge

	pos int
}

// Config implements Loader.
func (l *SliceLoader) Config() types.LoaderConfig {
	return l.Cfg
}

// Next implements Loader.
func (l *SliceLoader) Next() (types.RawEdge, error) {
	if l.pos >= len(l.Records) {
		return types.RawEdge{}, io.EOF
	}
	rec := l.Records[l.pos]
	l.pos++
	return rec, nil
}
