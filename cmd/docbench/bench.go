// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/docbench/internal/bench"
	"github.com/pdiddy/docbench/internal/convert"
	"github.com/pdiddy/docbench/internal/report"
	"github.com/pdiddy/docbench/internal/results"
	"github.com/pdiddy/docbench/pkg/types"
)

var benchCmd = &cobra.Command{
	Use:   "bench [corpus-dir]",
	Short: "Run the full conversion benchmark over a corpus",
	Long: `Bench walks a category-organized corpus (one subdirectory per category:
short_text, long_text, table_heavy, image_heavy), converts every document
with both methods, chunks adaptively, evaluates quality, persists results
to SQLite, and writes Markdown/HTML/YAML reports.`,
	Args: cobra.ExactArgs(1),
	RunE: runBench,
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg := benchConfigFromFlags(cmd)

	converterA, err := convert.New(cfg.MethodA)
	if err != nil {
		return fmt.Errorf("method A: %w", err)
	}
	converterB, err := convert.New(cfg.MethodB)
	if err != nil {
		return fmt.Errorf("method B: %w", err)
	}

	store, err := results.NewStore(cfg.ResultsDir)
	if err != nil {
		return err
	}
	defer store.Close()

	runner := &bench.Runner{
		ConverterA: converterA,
		ConverterB: converterB,
		Store:      store,
		Thresholds: thresholdsFromConfig(),
		TieEpsilon: cfg.TieEpsilon,
		Out:        os.Stdout,
	}

	outcome, err := runner.Run(context.Background(), args[0])
	if err != nil {
		return err
	}

	data := report.Data{
		GeneratedAt: time.Now(),
		MethodA:     converterA.Name(),
		MethodB:     converterB.Name(),
		Comparisons: outcome.Comparisons,
		Summaries:   outcome.Summaries,
		Samples:     outcome.Samples,
	}
	if err := writeReports(cfg.ResultsDir, data); err != nil {
		return err
	}

	if outcome.Failed > 0 {
		return fmt.Errorf("%d document(s) failed", outcome.Failed)
	}
	return nil
}

// benchFromConfig returns the benchmark settings, with any values present
// in the config file overriding the defaults (markitdown vs pdftotext,
// results directory "results").
func benchFromConfig() types.BenchConfig {
	cfg := types.BenchConfig{
		CorpusDir:  viper.GetString("bench.corpus_dir"),
		MethodA:    types.ConversionBackend(viper.GetString("bench.method_a")),
		MethodB:    types.ConversionBackend(viper.GetString("bench.method_b")),
		ResultsDir: viper.GetString("bench.results_dir"),
		TieEpsilon: viper.GetFloat64("bench.tie_epsilon"),
	}
	if cfg.CorpusDir == "" {
		cfg.CorpusDir = "corpus"
	}
	if cfg.MethodA == "" {
		cfg.MethodA = types.BackendMarkitdown
	}
	if cfg.MethodB == "" {
		cfg.MethodB = types.BackendPdftotext
	}
	if cfg.ResultsDir == "" {
		cfg.ResultsDir = "results"
	}
	return cfg
}

// benchConfigFromFlags merges flags over config-file values over defaults.
func benchConfigFromFlags(cmd *cobra.Command) types.BenchConfig {
	cfg := benchFromConfig()

	if v, _ := cmd.Flags().GetString("method-a"); v != "" {
		cfg.MethodA = types.ConversionBackend(v)
	}
	if v, _ := cmd.Flags().GetString("method-b"); v != "" {
		cfg.MethodB = types.ConversionBackend(v)
	}
	if v, _ := cmd.Flags().GetString("results-dir"); v != "" {
		cfg.ResultsDir = v
	}
	if v, _ := cmd.Flags().GetFloat64("epsilon"); v > 0 {
		cfg.TieEpsilon = v
	}
	return cfg
}

// writeReports writes report.md, report.html, and report.yaml to resultsDir.
func writeReports(resultsDir string, data report.Data) error {
	if err := report.WriteMarkdown(filepath.Join(resultsDir, "report.md"), data); err != nil {
		return err
	}
	if err := report.WriteHTML(filepath.Join(resultsDir, "report.html"), data); err != nil {
		return err
	}
	if err := report.WriteYAML(filepath.Join(resultsDir, "report.yaml"), data); err != nil {
		return err
	}
	fmt.Printf("\nReports written to %s (report.md, report.html, report.yaml)\n", resultsDir)
	return nil
}

func init() {
	benchCmd.Flags().String("method-a", "", "first conversion backend")
	benchCmd.Flags().String("method-b", "", "second conversion backend")
	benchCmd.Flags().String("results-dir", "", "directory for the results database and reports")
	benchCmd.Flags().Float64("epsilon", 0, "tie tolerance for per-metric winners (0 = default)")

	rootCmd.AddCommand(benchCmd)
}
