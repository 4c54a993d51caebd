// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/concept-base/internal/kb"
)

var indexCmd = &cobra.Command{
	Use:   "index [name]",
	Short: "Materialize the derived caches for a store",
	Long: `Index opens the named store and materializes its triplet index and
vocabulary. Fresh caches are left untouched; stale or absent ones are
rebuilt from the backing store. Rebuilds are atomic: an interrupted run
leaves the caches unbuilt and the next run starts over.`,
	Args: cobra.ExactArgs(1),
	RunE: runIndex,
}

func runIndex(cmd *cobra.Command, args []string) error {
	base, err := kb.Open(args[0], kb.Options{CacheDir: cacheDir(cmd)})
	if err != nil {
		return err
	}
	defer base.Close()

	ctx := context.Background()

	if _, err := base.Index(ctx, os.Stdout); err != nil {
		return err
	}
	if _, err := base.Vocab(ctx, os.Stdout); err != nil {
		return err
	}

	idxStatus, err := base.IndexStatus()
	if err != nil {
		return err
	}
	fmt.Printf("triplet index: %s (fresh=%v)\n", idxStatus.Path, idxStatus.Fresh)

	vocStatus := base.VocabStatus()
	fmt.Printf("vocabulary:    %s (fresh=%v)\n", vocStatus.Path, vocStatus.Fresh)
	return nil
}

func init() {
	rootCmd.AddCommand(indexCmd)
}
