// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch downloads published knowledge-graph dump files into the
// local cache so they can be bulk-loaded.
package fetch

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
)

// RetryBaseDelay controls the base duration for exponential backoff on
// HTTP 429 responses. Tests override this to avoid real sleeps.
var RetryBaseDelay = 10 * time.Second

const defaultMaxRetries = 5

// Dump downloads url to destPath, writing progress lines to w. The body
// is staged in a temp file in the destination directory and renamed into
// place on success, so destPath never holds a partial download. An
// existing destPath is kept and the download skipped.
func Dump(ctx context.Context, client *http.Client, url, destPath string, w io.Writer) error {
	if _, err := os.Stat(destPath); err == nil {
		fmt.Fprintf(w, "skipped: %s (already exists)\n", filepath.Base(destPath))
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return fmt.Errorf("creating dump directory: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := doWithRetry(ctx, client, req, defaultMaxRetries)
	if err != nil {
		return fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".fetch-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	written, copyErr := io.Copy(tmpFile, resp.Body)
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing download: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}

	fmt.Fprintf(w, "downloaded: %s (%s)\n", filepath.Base(destPath), humanize.Bytes(uint64(written)))
	return nil
}

// doWithRetry executes the request and retries on HTTP 429 with
// exponential backoff: RetryBaseDelay, doubled each attempt. On each 429
// the body is drained and closed before sleeping. After exhausting
// retries the last 429 response is returned for the caller to inspect.
func doWithRetry(ctx context.Context, client *http.Client, req *http.Request, maxRetries int) (*http.Response, error) {
	for attempt := 0; ; attempt++ {
		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			return nil, err
		}

		if resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}
		if attempt >= maxRetries {
			return resp, nil
		}

		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		backoff := time.Duration(math.Pow(2, float64(attempt))) * RetryBaseDelay
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
}
