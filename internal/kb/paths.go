// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package kb

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const kbDirName = "kb"

// cacheRoot resolves and creates the cache root directory. Empty selects
// <os.UserCacheDir>/concept-base.
func cacheRoot(cacheDir string) (string, error) {
	if cacheDir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return "", fmt.Errorf("resolving user cache directory: %w", err)
		}
		cacheDir = filepath.Join(base, "concept-base")
	}
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return "", fmt.Errorf("creating cache directory: %w", err)
	}
	return filepath.Abs(cacheDir)
}

// resolvePath maps a name or path to the canonical store location inside
// the cache root. An existing file path resolves under the default/
// namespace; a bare name resolves to <cacheRoot>/kb/<name>.db and is
// only valid for a missing file when create is true. The returned
// boolean permits schema creation at the resolved location.
func resolvePath(nameOrPath, cacheDir string, create bool) (path string, mayCreate bool, err error) {
	root, err := cacheRoot(cacheDir)
	if err != nil {
		return "", false, err
	}
	kbDir := filepath.Join(root, kbDirName)
	if err := os.MkdirAll(kbDir, 0o755); err != nil {
		return "", false, fmt.Errorf("creating kb cache directory: %w", err)
	}

	direct := withDBSuffix(nameOrPath)
	if _, err := os.Stat(direct); err == nil {
		// Existing file: the store lives under the default namespace so
		// its derived caches stay inside the cache root.
		resolved := filepath.Join(kbDir, "default", stem(direct)+".db")
		if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
			return "", false, fmt.Errorf("creating default namespace: %w", err)
		}
		return resolved, true, nil
	}

	resolved := filepath.Join(kbDir, withDBSuffix(nameOrPath))
	if _, err := os.Stat(resolved); err == nil {
		return resolved, false, nil
	}
	if !create {
		return "", false, fmt.Errorf("no knowledge base named %q (pass create to initialize one)", nameOrPath)
	}
	return resolved, true, nil
}

// withDBSuffix appends the .db extension unless already present.
func withDBSuffix(name string) string {
	if strings.HasSuffix(name, ".db") {
		return name
	}
	return name + ".db"
}

// stem returns the file name without directory or .db extension.
func stem(path string) string {
	return strings.TrimSuffix(filepath.Base(path), ".db")
}

// indexPath derives the triplet-index location from the primary store
// path. Derived caches are always suffix-derived so they travel with
// their store.
func indexPath(storePath string) string {
	return strings.TrimSuffix(storePath, ".db") + "-index"
}

// vocabPath derives the vocabulary location from the primary store path.
func vocabPath(storePath string) string {
	return strings.TrimSuffix(storePath, ".db") + "-vocab.db"
}

// vocabTempPath is the staging location for vocabulary builds.
func vocabTempPath(storePath string) string {
	return vocabPath(storePath) + ".tmp"
}
