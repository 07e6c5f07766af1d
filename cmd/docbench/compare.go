// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docbench/internal/analyze"
	"github.com/pdiddy/docbench/internal/chunk"
	"github.com/pdiddy/docbench/internal/compare"
	"github.com/pdiddy/docbench/pkg/types"
)

var compareCmd = &cobra.Command{
	Use:   "compare [a.md] [b.md]",
	Short: "Compare two conversions of the same document",
	Long: `Compare treats two Markdown files as two conversions of the same source
document, chunks both adaptively, evaluates the eleven quality metrics,
and prints the per-metric winners and overall verdict.`,
	Args: cobra.ExactArgs(2),
	RunE: runCompare,
}

func runCompare(cmd *cobra.Command, args []string) error {
	epsilon, _ := cmd.Flags().GetFloat64("epsilon")

	thresholds := thresholdsFromConfig()
	sets := make([]types.ChunkSet, 2)
	for i, path := range args {
		doc, err := loadMarkdown(path)
		if err != nil {
			return err
		}
		// Both files describe the same source document.
		doc.ID = "compared"

		strategy := analyze.Select(analyze.Profile(doc, thresholds), thresholds)
		cs, err := chunk.ChunkDocument(doc, fmt.Sprintf("file-%c", 'A'+i), strategy.WordBudget)
		if err != nil {
			return err
		}
		sets[i] = cs
	}

	cmpResult, err := compare.Compare(sets[0], sets[1], "", epsilon)
	if err != nil {
		return err
	}

	fmt.Printf("A: %s\nB: %s\n", args[0], args[1])
	fmt.Printf("content overlap: %.3f\n\n", cmpResult.ContentOverlap)
	fmt.Printf("%-26s %10s %10s %10s %8s\n", "metric", "A", "B", "ratio B/A", "winner")
	for _, mc := range cmpResult.Metrics {
		ratio := "n/a"
		if mc.Ratio.Defined {
			ratio = fmt.Sprintf("%.3f", mc.Ratio.Value)
		}
		winner := string(mc.Winner)
		if winner == "" {
			winner = "-"
		}
		fmt.Printf("%-26s %10.3f %10.3f %10s %8s\n", mc.Metric, mc.A, mc.B, ratio, winner)
	}
	fmt.Printf("\nwins: A=%d B=%d ties=%d\nverdict: %s\n",
		cmpResult.WinsA, cmpResult.WinsB, cmpResult.Ties, cmpResult.Verdict)
	return nil
}

func init() {
	compareCmd.Flags().Float64("epsilon", compare.DefaultTieEpsilon, "tie tolerance for per-metric winners")

	rootCmd.AddCommand(compareCmd)
}
