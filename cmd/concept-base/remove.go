// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/concept-base/internal/kb"
)

var removeCmd = &cobra.Command{
	Use:   "remove [name]",
	Short: "Delete a store and every derived cache colocated with it",
	Args:  cobra.ExactArgs(1),
	RunE:  runRemove,
}

func runRemove(cmd *cobra.Command, args []string) error {
	base, err := kb.Open(args[0], kb.Options{CacheDir: cacheDir(cmd)})
	if err != nil {
		return err
	}

	path := base.Path()
	if err := base.Cleanup(); err != nil {
		return err
	}
	fmt.Printf("Removed %s\n", path)
	return nil
}

func init() {
	rootCmd.AddCommand(removeCmd)
}
