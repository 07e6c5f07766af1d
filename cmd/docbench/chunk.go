package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/docbench/internal/analyze"
	"github.com/pdiddy/docbench/internal/chunk"
	"github.com/pdiddy/docbench/internal/convert"
	"github.com/pdiddy/docbench/pkg/types"
)

var chunkCmd = &cobra.Command{
	Use:   "chunk [file.md]",
	Short: "Segment and chunk a Markdown file",
	Long: `Chunk segments a Markdown file into blocks and packs them into chunks.
The word budget is selected adaptively from document features unless
--budget is given or the config disables adaptive selection.`,
	Args: cobra.ExactArgs(1),
	RunE: runChunk,
}

func runChunk(cmd *cobra.Command, args []string) error {
	budget, _ := cmd.Flags().GetInt("budget")
	show, _ := cmd.Flags().GetBool("show")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	doc, err := loadMarkdown(args[0])
	if err != nil {
		return err
	}

	thresholds := thresholdsFromConfig()
	strategy := resolveStrategy(budget, chunkingFromConfig(), doc, thresholds)

	cs, err := chunk.ChunkDocument(doc, strategy.Label, strategy.WordBudget)
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(cs)
	}

	fmt.Printf("document: %s\nstrategy: %s (budget %d words)\nchunks: %d\n",
		doc.ID, strategy.Label, strategy.WordBudget, len(cs.Chunks))
	for i, c := range cs.Chunks {
		fmt.Printf("\n--- chunk %d: %d words, %d chars, blocks: %s\n",
			i+1, c.WordCount, c.CharCount, blockTypeList(c.BlockTypes))
		if show {
			fmt.Println(c.Text)
		}
	}
	return nil
}

func blockTypeList(bts []types.BlockType) string {
	names := make([]string, len(bts))
	for i, bt := range bts {
		names[i] = string(bt)
	}
	return strings.Join(names, ", ")
}

// resolveStrategy picks the chunking strategy: an explicit --budget wins,
// then a config-disabled adaptive mode falls back to the configured fixed
// budget, otherwise the budget is selected from document features.
func resolveStrategy(flagBudget int, cfg types.ChunkingConfig, doc types.Document, thresholds types.ThresholdConfig) types.Strategy {
	if flagBudget > 0 {
		return types.Strategy{WordBudget: flagBudget, Label: "fixed"}
	}
	if !cfg.Adaptive {
		return types.Strategy{WordBudget: cfg.WordBudget, Label: "fixed"}
	}
	return analyze.Select(analyze.Profile(doc, thresholds), thresholds)
}

// chunkingFromConfig returns the chunking settings, with any values present
// in the config file overriding the defaults (adaptive, 500-word fallback).
func chunkingFromConfig() types.ChunkingConfig {
	cfg := types.ChunkingConfig{WordBudget: 500, Adaptive: true}
	if viper.IsSet("chunking.adaptive") {
		cfg.Adaptive = viper.GetBool("chunking.adaptive")
	}
	if v := viper.GetInt("chunking.word_budget"); v > 0 {
		cfg.WordBudget = v
	}
	return cfg
}

// loadMarkdown reads a Markdown file into a Document. The category is left
// empty; single-file commands do not aggregate by category.
func loadMarkdown(path string) (types.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Document{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return types.NewDocument(convert.DocumentID(path), "", string(data)), nil
}

// thresholdsFromConfig returns the strategy-selection thresholds, with any
// values present in the config file overriding the defaults.
func thresholdsFromConfig() types.ThresholdConfig {
	t := analyze.DefaultThresholds()
	if v := viper.GetInt("thresholds.short_max_chars"); v > 0 {
		t.ShortMaxChars = v
	}
	if v := viper.GetInt("thresholds.long_min_chars"); v > 0 {
		t.LongMinChars = v
	}
	if v := viper.GetFloat64("thresholds.header_density"); v > 0 {
		t.HeaderDensity = v
	}
	if v := viper.GetFloat64("thresholds.table_density"); v > 0 {
		t.TableDensity = v
	}
	if v := viper.GetFloat64("thresholds.list_density"); v > 0 {
		t.ListDensity = v
	}
	return t
}

func init() {
	chunkCmd.Flags().Int("budget", 0, "fixed word budget per chunk (0 = adaptive)")
	chunkCmd.Flags().Bool("show", false, "print chunk text, not just statistics")
	chunkCmd.Flags().Bool("json", false, "output the chunk set as JSON")

	rootCmd.AddCommand(chunkCmd)
}
