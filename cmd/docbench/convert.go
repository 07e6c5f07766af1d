package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docbench/internal/convert"
	"github.com/pdiddy/docbench/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert [pdfs...]",
	Short: "Convert PDF files to Markdown with one backend",
	Long: `Convert runs a single conversion backend over the given PDF files and
writes Markdown output. Supports markitdown (container-based), pdftotext,
and native (in-process) backends. Existing output files are skipped.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg := conversionFromConfig()
	if v, _ := cmd.Flags().GetString("backend"); v != "" {
		cfg.Backend = types.ConversionBackend(v)
	}
	if v, _ := cmd.Flags().GetString("out"); v != "" {
		cfg.OutputDir = v
	}

	converter, err := convert.New(cfg.Backend)
	if err != nil {
		return err
	}

	result := convert.ConvertBatch(converter, args, cfg.OutputDir, os.Stdout)
	if result.HasFailures() {
		return fmt.Errorf("%d file(s) failed conversion", result.Failed)
	}
	return nil
}

func init() {
	convertCmd.Flags().String("backend", "", "conversion backend: markitdown, pdftotext, or native")
	convertCmd.Flags().String("out", "", "output directory for converted Markdown (default \"markdown\")")

	rootCmd.AddCommand(convertCmd)
}
