// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ChunkingConfig holds settings for segmentation and packing.
type ChunkingConfig struct {
	// WordBudget is the maximum words per chunk when adaptive selection
	// is disabled (default 500).
	WordBudget int `json:"word_budget" yaml:"word_budget"`

	// Adaptive selects the word budget from document features when true.
	Adaptive bool `json:"adaptive" yaml:"adaptive"`
}

// ThresholdConfig holds the decision-table thresholds for adaptive
// strategy selection.
type ThresholdConfig struct {
	// ShortMaxChars is the upper character bound of the short bucket
	// (default 1000).
	ShortMaxChars int `json:"short_max_chars" yaml:"short_max_chars"`

	// LongMinChars is the lower character bound of the long bucket
	// (default 5000).
	LongMinChars int `json:"long_min_chars" yaml:"long_min_chars"`

	// HeaderDensity, TableDensity, and ListDensity are the per-line match
	// density thresholds for the strategy rules.
	HeaderDensity float64 `json:"header_density" yaml:"header_density"`
	TableDensity  float64 `json:"table_density" yaml:"table_density"`
	ListDensity   float64 `json:"list_density" yaml:"list_density"`
}

// ConversionBackend identifies the PDF conversion tool.
type ConversionBackend string

const (
	BackendMarkitdown ConversionBackend = "markitdown"
	BackendPdftotext  ConversionBackend = "pdftotext"
	BackendNative     ConversionBackend = "native"
)

// ConversionConfig holds settings for the conversion stage.
type ConversionConfig struct {
	// Backend selects the conversion tool: markitdown, pdftotext, or native.
	Backend ConversionBackend `json:"backend" yaml:"backend"`

	// OutputDir is the directory for converted Markdown files.
	OutputDir string `json:"output_dir" yaml:"output_dir"`
}

// BenchConfig holds settings for a benchmark run.
type BenchConfig struct {
	// CorpusDir is the base directory containing one subdirectory per
	// category of sample documents.
	CorpusDir string `json:"corpus_dir" yaml:"corpus_dir"`

	// MethodA and MethodB select the two conversion backends compared.
	MethodA ConversionBackend `json:"method_a" yaml:"method_a"`
	MethodB ConversionBackend `json:"method_b" yaml:"method_b"`

	// ResultsDir is the base directory for the results database and reports.
	ResultsDir string `json:"results_dir" yaml:"results_dir"`

	// TieEpsilon is the tolerance within which two metric values tie
	// (default 0.001).
	TieEpsilon float64 `json:"tie_epsilon" yaml:"tie_epsilon"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Chunking   ChunkingConfig   `json:"chunking" yaml:"chunking"`
	Thresholds ThresholdConfig  `json:"thresholds" yaml:"thresholds"`
	Conversion ConversionConfig `json:"conversion" yaml:"conversion"`
	Bench      BenchConfig      `json:"bench" yaml:"bench"`
}
