package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docbench/internal/compare"
	"github.com/pdiddy/docbench/internal/report"
	"github.com/pdiddy/docbench/internal/results"
	"github.com/pdiddy/docbench/pkg/types"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Regenerate reports from stored benchmark results",
	Long: `Report reads the comparisons stored in the results database, rebuilds
the category summaries, and rewrites the Markdown, HTML, and YAML reports.
Use --category to report on a single category.`,
	RunE: runReport,
}

func runReport(cmd *cobra.Command, args []string) error {
	resultsDir, _ := cmd.Flags().GetString("results-dir")
	category, _ := cmd.Flags().GetString("category")
	title, _ := cmd.Flags().GetString("title")

	store, err := results.NewStore(resultsDir)
	if err != nil {
		return err
	}
	defer store.Close()

	comparisons, err := store.ListComparisons(context.Background(), types.Category(category))
	if err != nil {
		return err
	}

	data := report.Data{
		Title:       title,
		GeneratedAt: time.Now(),
		Comparisons: comparisons,
		Summaries:   compare.Aggregate(comparisons),
	}
	if len(comparisons) > 0 {
		data.MethodA = comparisons[0].MethodA
		data.MethodB = comparisons[0].MethodB
	}

	return writeReports(resultsDir, data)
}

func init() {
	reportCmd.Flags().String("results-dir", "results", "directory containing the results database")
	reportCmd.Flags().String("category", "", "restrict the report to one category")
	reportCmd.Flags().String("title", "", "report title")

	rootCmd.AddCommand(reportCmd)
}
