package triplet

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/concept-base/pkg/types"
)

func openIndex(t *testing.T, path string) *Index {
	t.Helper()
	ix, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { ix.Close() })
	return ix
}

func TestStatusStartsStale(t *testing.T) {
	ix := openIndex(t, filepath.Join(t.TempDir(), "kb-index"))

	status, err := ix.Status()
	require.NoError(t, err)
	assert.False(t, status.Fresh)
	assert.Equal(t, ix.Path(), status.Path)
}

func TestAddAndLookup(t *testing.T) {
	ix := openIndex(t, filepath.Join(t.TempDir(), "kb-index"))

	require.NoError(t, ix.Add([]types.Triplet{
		{Start: 1, Rel: 10, End: 2},
		{Start: 1, Rel: 10, End: 3},
		{Start: 2, Rel: 10, End: 3},
		{Start: 1, Rel: 11, End: 4},
	}))

	ends, err := ix.Ends(1, 10)
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 3}, ends)

	starts, err := ix.Starts(10, 3)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, starts)

	ok, err := ix.Has(types.Triplet{Start: 1, Rel: 11, End: 4})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = ix.Has(types.Triplet{Start: 4, Rel: 11, End: 1})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLookupDoesNotCrossComponents(t *testing.T) {
	ix := openIndex(t, filepath.Join(t.TempDir(), "kb-index"))

	// Neighboring key ranges must not bleed into a prefix scan.
	require.NoError(t, ix.Add([]types.Triplet{
		{Start: 1, Rel: 10, End: 2},
		{Start: 1, Rel: 9, End: 7},
		{Start: 2, Rel: 10, End: 8},
	}))

	ends, err := ix.Ends(1, 10)
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, ends)
}

func TestFreezePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kb-index")

	ix, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, ix.Add([]types.Triplet{{Start: 1, Rel: 2, End: 3}}))
	require.NoError(t, ix.Freeze())
	require.NoError(t, ix.Close())

	reopened := openIndex(t, path)
	status, err := reopened.Status()
	require.NoError(t, err)
	assert.True(t, status.Fresh)

	ok, err := reopened.Has(types.Triplet{Start: 1, Rel: 2, End: 3})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUnfrozenAfterReopenWithoutFreeze(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kb-index")

	ix, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, ix.Add([]types.Triplet{{Start: 1, Rel: 2, End: 3}}))
	// No Freeze: an interrupted build must read as stale.
	require.NoError(t, ix.Close())

	reopened := openIndex(t, path)
	status, err := reopened.Status()
	require.NoError(t, err)
	assert.False(t, status.Fresh)
}
