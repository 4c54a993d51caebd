// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the data records and configuration structs shared
// across concept-base packages.
package types

// Node is a labeled vertex in the knowledge graph. Labels are not unique;
// many nodes may share a label.
type Node struct {
	// ID is the store-assigned node identifier.
	ID int64 `json:"id" yaml:"id"`

	// Label is the human-readable concept label, qualified by the loader's
	// namespace at ingestion time (e.g. "/c/en/cat").
	Label string `json:"label" yaml:"label"`
}

// Edge is a directed, relation-labeled connection between two nodes.
type Edge struct {
	// ID is the store-assigned edge identifier.
	ID int64 `json:"id" yaml:"id"`

	// StartID and EndID reference Node identifiers.
	StartID int64 `json:"start_id" yaml:"start_id"`
	EndID   int64 `json:"end_id" yaml:"end_id"`

	// RelID references a relation identifier.
	RelID int64 `json:"rel_id" yaml:"rel_id"`

	// Weight is the assertion confidence carried by the source dump.
	Weight float64 `json:"weight" yaml:"weight"`
}

// Triplet is the (start, relation, end) tuple identifying one edge.
type Triplet struct {
	Start int64 `json:"start" yaml:"start"`
	Rel   int64 `json:"rel" yaml:"rel"`
	End   int64 `json:"end" yaml:"end"`
}

// RawEdge is one record yielded by a bulk loader, before label resolution.
type RawEdge struct {
	// Rel is the relation label (e.g. "/r/IsA").
	Rel string `json:"rel" yaml:"rel"`

	// Start and End are the concept labels of the edge endpoints.
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`

	// Weight is the assertion confidence. Zero means unweighted; the
	// store persists it as 1.0.
	Weight float64 `json:"weight" yaml:"weight"`
}

// CacheStatus reports whether a derived cache is a complete mirror of the
// backing store. It is read before any rebuild decision: a Fresh cache is
// returned unchanged, a stale one is rebuilt from scratch.
type CacheStatus struct {
	// Fresh is true when the cache content fully reflects the backing
	// store as of its last build.
	Fresh bool `json:"fresh" yaml:"fresh"`

	// Path is the on-disk location of the cache.
	Path string `json:"path" yaml:"path"`
}
