package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docbench/internal/analyze"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file.md]",
	Short: "Print a document's feature profile and selected strategy",
	Long: `Analyze extracts the structural feature profile of a Markdown file
(length bucket, header/table/list densities) and prints the chunking
strategy the adaptive selector would choose for it.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	doc, err := loadMarkdown(args[0])
	if err != nil {
		return err
	}

	thresholds := thresholdsFromConfig()
	profile := analyze.Profile(doc, thresholds)
	strategy := analyze.Select(profile, thresholds)

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Profile  any `json:"profile"`
			Strategy any `json:"strategy"`
		}{profile, strategy})
	}

	fmt.Printf("document: %s\n", doc.ID)
	fmt.Printf("bucket: %s (%d chars, %d lines)\n", profile.Bucket, profile.CharCount, profile.LineCount)
	fmt.Printf("header density: %.4f\n", profile.HeaderDensity)
	fmt.Printf("table density:  %.4f\n", profile.TableDensity)
	fmt.Printf("list density:   %.4f\n", profile.ListDensity)
	fmt.Printf("strategy: %s (budget %d words)\n", strategy.Label, strategy.WordBudget)
	return nil
}

func init() {
	analyzeCmd.Flags().Bool("json", false, "output profile and strategy as JSON")

	rootCmd.AddCommand(analyzeCmd)
}
