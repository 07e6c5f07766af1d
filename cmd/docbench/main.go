// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the docbench CLI.
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

// rootCmd is the base command for the docbench CLI.
var rootCmd = &cobra.Command{
	Use:   "docbench",
	Short: "Benchmark document conversion methods by chunk quality",
	Long: `docbench benchmarks PDF-to-Markdown conversion methods by what matters
downstream: the quality of the chunks a retrieval pipeline would index.

Each stage is a subcommand: convert runs a single backend over PDFs, chunk
and analyze inspect one document, compare scores two conversions of the
same document, and bench runs the full corpus benchmark and persists
results. report regenerates the Markdown/HTML reports from stored results.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./docbench.yaml or ~/.config/docbench/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("docbench")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "docbench"))
		}
	}

	viper.SetEnvPrefix("DOCBENCH")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
