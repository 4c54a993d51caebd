// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the concept-base CLI: ingest
// knowledge-graph dumps into versioned local stores, materialize the
// derived caches, and look up nodes and triples.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the concept-base CLI.
var rootCmd = &cobra.Command{
	Use:   "concept-base",
	Short: "Locally cached, versioned knowledge graphs",
	Long: `concept-base manages locally cached, versioned knowledge graphs: labeled
nodes joined by labeled directed edges in SQLite, with a rebuildable
triplet index and a vocabulary derived on top.

Each operation is a subcommand: ingest a dump into a fresh store, build
or inspect the derived caches, query by label or triple, and remove a
store together with its caches.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./concept-base.yaml or ~/.config/concept-base/config.yaml)")
	rootCmd.PersistentFlags().String("cache-dir", "", "cache root for stores and derived caches (default: user cache dir)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("concept-base")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "concept-base"))
		}
	}

	viper.SetEnvPrefix("CONCEPT_BASE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// cacheDir resolves the cache root from the flag, falling back to the
// config file.
func cacheDir(cmd *cobra.Command) string {
	dir, _ := cmd.Flags().GetString("cache-dir")
	if dir == "" {
		dir = viper.GetString("cache_dir")
	}
	return dir
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
