// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/concept-base/internal/kb"
	"github.com/pdiddy/concept-base/pkg/types"
)

var queryCmd = &cobra.Command{
	Use:   "query [name]",
	Short: "Look up nodes by label or edges by triple components",
	Long: `Query looks up a store by node label (--label) or by triple components
through the triplet index (--start and --rel, optionally --end to test a
single triple). Label arguments are resolved against the node and
relation tables; the index is materialized on first use.`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

// tripleHit is one resolved lookup result.
type tripleHit struct {
	StartID int64  `json:"start_id"`
	EndID   int64  `json:"end_id"`
	Label   string `json:"label"`
}

func runQuery(cmd *cobra.Command, args []string) error {
	label, _ := cmd.Flags().GetString("label")
	start, _ := cmd.Flags().GetString("start")
	rel, _ := cmd.Flags().GetString("rel")
	end, _ := cmd.Flags().GetString("end")
	jsonOut, _ := cmd.Flags().GetBool("json")

	if label == "" && (start == "" || rel == "") {
		return fmt.Errorf("provide --label, or --start together with --rel")
	}

	base, err := kb.Open(args[0], kb.Options{CacheDir: cacheDir(cmd)})
	if err != nil {
		return err
	}
	defer base.Close()

	ctx := context.Background()

	if label != "" {
		ids, err := base.NodeIDsByLabel(ctx, label)
		if err != nil {
			return err
		}
		return printIDs(os.Stdout, label, ids, jsonOut)
	}

	return queryTriple(ctx, base, start, rel, end, jsonOut)
}

func queryTriple(ctx context.Context, base *kb.KB, start, rel, end string, jsonOut bool) error {
	index, err := base.Index(ctx, os.Stderr)
	if err != nil {
		return err
	}

	relID, err := base.Store().RelationIDByLabel(ctx, rel)
	if err != nil {
		return err
	}
	startIDs, err := base.NodeIDsByLabel(ctx, start)
	if err != nil {
		return err
	}
	if len(startIDs) == 0 {
		return fmt.Errorf("no node labeled %q", start)
	}

	// Exact triple probe.
	if end != "" {
		endIDs, err := base.NodeIDsByLabel(ctx, end)
		if err != nil {
			return err
		}
		for _, s := range startIDs {
			for _, e := range endIDs {
				ok, err := index.Has(types.Triplet{Start: s, Rel: relID, End: e})
				if err != nil {
					return err
				}
				if ok {
					fmt.Printf("%s -[%s]-> %s: present\n", start, rel, end)
					return nil
				}
			}
		}
		fmt.Printf("%s -[%s]-> %s: absent\n", start, rel, end)
		return nil
	}

	var hits []tripleHit
	for _, s := range startIDs {
		ends, err := index.Ends(s, relID)
		if err != nil {
			return err
		}
		for _, e := range ends {
			endLabel, err := base.Store().NodeLabel(ctx, e)
			if err != nil {
				return err
			}
			hits = append(hits, tripleHit{StartID: s, EndID: e, Label: endLabel})
		}
	}

	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(hits)
	}
	if len(hits) == 0 {
		fmt.Println("No results found.")
		return nil
	}
	for _, h := range hits {
		fmt.Printf("%s -[%s]-> %s (node %d)\n", start, rel, h.Label, h.EndID)
	}
	fmt.Printf("\n%d results\n", len(hits))
	return nil
}

func printIDs(w io.Writer, label string, ids []int64, jsonOut bool) error {
	if jsonOut {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{"label": label, "ids": ids})
	}
	if len(ids) == 0 {
		fmt.Fprintln(w, "No results found.")
		return nil
	}
	for _, id := range ids {
		fmt.Fprintf(w, "%d\t%s\n", id, label)
	}
	return nil
}

func init() {
	queryCmd.Flags().String("label", "", "node label to look up")
	queryCmd.Flags().String("start", "", "start node label for triple lookup")
	queryCmd.Flags().String("rel", "", "relation label for triple lookup")
	queryCmd.Flags().String("end", "", "end node label; tests a single triple")
	queryCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(queryCmd)
}
