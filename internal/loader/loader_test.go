package loader

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/concept-base/pkg/types"
)

func TestValidIdentifier(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{name: "simple word", in: "wordnet", want: true},
		{name: "underscore and digits", in: "concept_net_57", want: true},
		{name: "leading underscore", in: "_private", want: true},
		{name: "leading digit", in: "123bad", want: false},
		{name: "empty", in: "", want: false},
		{name: "punctuation", in: "word-net", want: false},
		{name: "path separator", in: "a/b", want: false},
		{name: "space", in: "word net", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidIdentifier(tt.in))
		})
	}
}

func TestSliceLoader(t *testing.T) {
	l := &SliceLoader{
		Cfg: types.LoaderConfig{Identifier: "test"},
		Records: []types.RawEdge{
			{Rel: "/r/IsA", Start: "a", End: "b"},
			{Rel: "/r/IsA", Start: "b", End: "c"},
		},
	}

	first, err := l.Next()
	require.NoError(t, err)
	assert.Equal(t, "a", first.Start)

	second, err := l.Next()
	require.NoError(t, err)
	assert.Equal(t, "b", second.Start)

	_, err = l.Next()
	assert.Equal(t, io.EOF, err)
}

func writeDump(t *testing.T, name, content string, compress bool) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if compress {
		f, err := os.Create(path)
		require.NoError(t, err)
		gz := gzip.NewWriter(f)
		_, err = gz.Write([]byte(content))
		require.NoError(t, err)
		require.NoError(t, gz.Close())
		require.NoError(t, f.Close())
	} else {
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return path
}

const sampleDump = "# conceptnet sample\n" +
	"/r/IsA\tcat\tanimal\t2.0\n" +
	"\n" +
	"/r/HasA\tcat\ttail\n"

func drain(t *testing.T, l *CSVLoader) []types.RawEdge {
	t.Helper()
	var recs []types.RawEdge
	for {
		rec, err := l.Next()
		if err == io.EOF {
			return recs
		}
		require.NoError(t, err)
		recs = append(recs, rec)
	}
}

func TestCSVLoader(t *testing.T) {
	path := writeDump(t, "dump.tsv", sampleDump, false)

	l, err := OpenCSV(path, types.LoaderConfig{Identifier: "sample"})
	require.NoError(t, err)
	defer l.Close()

	recs := drain(t, l)
	require.Len(t, recs, 2)
	assert.Equal(t, types.RawEdge{Rel: "/r/IsA", Start: "cat", End: "animal", Weight: 2.0}, recs[0])
	assert.Equal(t, types.RawEdge{Rel: "/r/HasA", Start: "cat", End: "tail"}, recs[1])
}

func TestCSVLoaderGzip(t *testing.T) {
	path := writeDump(t, "dump.tsv.gz", sampleDump, true)

	l, err := OpenCSV(path, types.LoaderConfig{Identifier: "sample"})
	require.NoError(t, err)
	defer l.Close()

	recs := drain(t, l)
	assert.Len(t, recs, 2)
}

func TestCSVLoaderMalformed(t *testing.T) {
	path := writeDump(t, "bad.tsv", "/r/IsA\tcat\n", false)

	l, err := OpenCSV(path, types.LoaderConfig{Identifier: "sample"})
	require.NoError(t, err)
	defer l.Close()

	_, err = l.Next()
	assert.ErrorContains(t, err, "tab-separated")
}

func TestCSVLoaderBadWeight(t *testing.T) {
	path := writeDump(t, "bad.tsv", "/r/IsA\tcat\tanimal\theavy\n", false)

	l, err := OpenCSV(path, types.LoaderConfig{Identifier: "sample"})
	require.NoError(t, err)
	defer l.Close()

	_, err = l.Next()
	assert.ErrorContains(t, err, "weight")
}
