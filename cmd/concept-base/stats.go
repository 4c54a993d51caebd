// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/concept-base/internal/kb"
)

var statsCmd = &cobra.Command{
	Use:   "stats [name]",
	Short: "Show store counts and derived-cache freshness",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

// storeStats is the YAML-exportable stats record.
type storeStats struct {
	Path       string `yaml:"path"`
	Nodes      int64  `yaml:"nodes"`
	Edges      int64  `yaml:"edges"`
	IndexFresh bool   `yaml:"index_fresh"`
	IndexPath  string `yaml:"index_path"`
	VocabFresh bool   `yaml:"vocab_fresh"`
	VocabPath  string `yaml:"vocab_path"`
}

func runStats(cmd *cobra.Command, args []string) error {
	base, err := kb.Open(args[0], kb.Options{CacheDir: cacheDir(cmd)})
	if err != nil {
		return err
	}
	defer base.Close()

	ctx := context.Background()

	nodes, err := base.NumNodes(ctx)
	if err != nil {
		return err
	}
	edges, err := base.NumEdges(ctx)
	if err != nil {
		return err
	}
	idxStatus, err := base.IndexStatus()
	if err != nil {
		return err
	}
	vocStatus := base.VocabStatus()

	if asYAML, _ := cmd.Flags().GetBool("yaml"); asYAML {
		return yaml.NewEncoder(os.Stdout).Encode(storeStats{
			Path:       base.Path(),
			Nodes:      nodes,
			Edges:      edges,
			IndexFresh: idxStatus.Fresh,
			IndexPath:  idxStatus.Path,
			VocabFresh: vocStatus.Fresh,
			VocabPath:  vocStatus.Path,
		})
	}

	fmt.Printf("store:         %s\n", base.Path())
	fmt.Printf("nodes:         %s\n", humanize.Comma(nodes))
	fmt.Printf("edges:         %s\n", humanize.Comma(edges))
	fmt.Printf("triplet index: %s (fresh=%v)\n", idxStatus.Path, idxStatus.Fresh)
	fmt.Printf("vocabulary:    %s (fresh=%v)\n", vocStatus.Path, vocStatus.Fresh)
	return nil
}

func init() {
	statsCmd.Flags().Bool("yaml", false, "output stats as YAML")

	rootCmd.AddCommand(statsCmd)
}
