// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/concept-base/internal/fetch"
	"github.com/pdiddy/concept-base/internal/kb"
	"github.com/pdiddy/concept-base/internal/loader"
	"github.com/pdiddy/concept-base/pkg/types"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [dump-file]",
	Short: "Bulk-load a knowledge-graph dump into a fresh versioned store",
	Long: `Ingest reads tab-separated edge records (rel, start, end, optional
weight; .gz accepted) and populates a fresh store named
<identifier>/<identifier>-v<version> inside the cache root. Records are
committed in batches of 100; an aborted run keeps all fully committed
batches.

With --from-url the dump is downloaded into the cache first and kept for
later runs.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIngest,
}

func runIngest(cmd *cobra.Command, args []string) error {
	identifier, _ := cmd.Flags().GetString("identifier")
	dataVersion, _ := cmd.Flags().GetString("version")
	namespace, _ := cmd.Flags().GetString("namespace")
	fromURL, _ := cmd.Flags().GetString("from-url")

	if identifier == "" {
		return fmt.Errorf("--identifier is required")
	}

	ctx := context.Background()

	var dumpPath string
	switch {
	case fromURL != "":
		dir := cacheDir(cmd)
		if dir == "" {
			base, err := os.UserCacheDir()
			if err != nil {
				return err
			}
			dir = filepath.Join(base, "concept-base")
		}
		dumpPath = filepath.Join(dir, "dumps", filepath.Base(fromURL))
		client := &http.Client{Timeout: 10 * time.Minute}
		if err := fetch.Dump(ctx, client, fromURL, dumpPath, os.Stdout); err != nil {
			return err
		}
	case len(args) == 1:
		dumpPath = args[0]
	default:
		return fmt.Errorf("a dump file argument or --from-url is required")
	}

	l, err := loader.OpenCSV(dumpPath, types.LoaderConfig{
		Identifier: identifier,
		Version:    dataVersion,
		Namespace:  namespace,
	})
	if err != nil {
		return err
	}
	defer l.Close()

	base, err := kb.FromLoader(ctx, l, kb.Options{CacheDir: cacheDir(cmd)}, os.Stdout)
	if err != nil {
		return err
	}
	defer base.Close()

	fmt.Printf("Store ready at %s\n", base.Path())
	return nil
}

func init() {
	ingestCmd.Flags().String("identifier", "", "bare-word name for the data set (required)")
	ingestCmd.Flags().String("version", "", "data set version (default 0.0.1)")
	ingestCmd.Flags().String("namespace", "", "namespace prefix for imported concept labels")
	ingestCmd.Flags().String("from-url", "", "download the dump from a URL into the cache first")

	rootCmd.AddCommand(ingestCmd)
}
