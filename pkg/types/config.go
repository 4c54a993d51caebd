// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// CacheConfig holds settings shared by every command that opens a
// knowledge base.
type CacheConfig struct {
	// CacheDir is the root directory for all cached stores and derived
	// artifacts. Empty selects <os.UserCacheDir>/concept-base.
	CacheDir string `json:"cache_dir" yaml:"cache_dir"`
}

// LoaderConfig identifies a bulk loader's data set. Identifier and Version
// together name the destination store, so distinct versions of the same
// data set coexist in one cache root.
type LoaderConfig struct {
	// Identifier is a bare-word name for the data set (letters, digits,
	// underscore; no leading digit). It becomes part of the store path.
	Identifier string `json:"identifier" yaml:"identifier"`

	// Version is the data set version. Empty defaults to "0.0.1".
	Version string `json:"version" yaml:"version"`

	// Namespace optionally qualifies every imported concept label
	// (e.g. "/c/en"). Empty leaves labels as the loader yields them.
	Namespace string `json:"namespace" yaml:"namespace"`
}

// VocabBackend discriminates vocabulary storage implementations.
type VocabBackend string

const (
	// VocabSQLite stores the vocabulary in a standalone SQLite file.
	VocabSQLite VocabBackend = "sqlite"
)

// VocabConfig identifies a vocabulary artifact's storage location. The
// Backend tag selects the implementation; unknown backends are rejected
// at open time.
type VocabConfig struct {
	// Backend selects the vocabulary storage implementation.
	Backend VocabBackend `json:"backend" yaml:"backend"`

	// Path is the backend-specific storage location.
	Path string `json:"path" yaml:"path"`
}
