// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package loader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/pdiddy/concept-base/pkg/types"
)

// CSVLoader reads tab-separated dump records of the form
//
//	rel<TAB>start<TAB>end[<TAB>weight]
//
// as published knowledge-graph dumps lay them out. Files ending in .gz
// are decompressed transparently. Blank lines and lines starting with
// '#' are skipped; any other malformed line is an error.
type CSVLoader struct {
	cfg     types.LoaderConfig
	file    *os.File
	gz      *gzip.Reader
	scanner *bufio.Scanner
	line    int
}

// OpenCSV opens the dump at path with the given loader configuration.
func OpenCSV(path string, cfg types.LoaderConfig) (*CSVLoader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dump: %w", err)
	}

	l := &CSVLoader{cfg: cfg, file: f}

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("opening gzip dump: %w", err)
		}
		l.gz = gz
		r = gz
	}

	l.scanner = bufio.NewScanner(r)
	l.scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	return l, nil
}

// Config implements Loader.
func (l *CSVLoader) Config() types.LoaderConfig {
	return l.cfg
}

// Next implements Loader.
func (l *CSVLoader) Next() (types.RawEdge, error) {
	for l.scanner.Scan() {
		l.line++
		text := strings.TrimSpace(l.scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.Split(text, "\t")
		if len(fields) < 3 {
			return types.RawEdge{}, fmt.Errorf("line %d: expected at least 3 tab-separated fields, got %d", l.line, len(fields))
		}

		rec := types.RawEdge{
			Rel:   fields[0],
			Start: fields[1],
			End:   fields[2],
		}
		if len(fields) > 3 && fields[3] != "" {
			w, err := strconv.ParseFloat(fields[3], 64)
			if err != nil {
				return types.RawEdge{}, fmt.Errorf("line %d: parsing weight %q: %w", l.line, fields[3], err)
			}
			rec.Weight = w
		}
		return rec, nil
	}

	if err := l.scanner.Err(); err != nil {
		return types.RawEdge{}, fmt.Errorf("reading dump: %w", err)
	}
	return types.RawEdge{}, io.EOF
}

// Close releases the underlying file handles.
func (l *CSVLoader) Close() error {
	if l.gz != nil {
		if err := l.gz.Close(); err != nil {
			l.file.Close()
			return err
		}
	}
	return l.file.Close()
}
