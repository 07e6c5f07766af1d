// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Metric names the scalar quality measures computed over a ChunkSet. The
// names double as keys in serialized reports and the results database.
const (
	MetricChunkCount    = "chunk_count"
	MetricAvgChunkWords = "avg_chunk_size_words"
	MetricAvgChunkChars = "avg_chunk_size_chars"
	MetricChunkSizeStd  = "chunk_size_std"
	MetricReadability   = "readability"
	MetricCompleteness  = "completeness"
	MetricInfoDensity   = "information_density"
	MetricStructural    = "structural_preservation"
	MetricLanguage      = "language_quality"
	MetricContinuity    = "semantic_continuity"
	MetricErrorRate     = "error_rate"
)

// MetricNames lists all eleven scalar metrics in report order.
func MetricNames() []string {
	return []string{
		MetricChunkCount, MetricAvgChunkWords, MetricAvgChunkChars,
		MetricChunkSizeStd, MetricReadability, MetricCompleteness,
		MetricInfoDensity, MetricStructural, MetricLanguage,
		MetricContinuity, MetricErrorRate,
	}
}

// QualityReport holds the eleven scalar quality metrics computed over one
// ChunkSet. Computed on demand; persistence is a reporting-layer concern.
type QualityReport struct {
	// Method and DocumentID identify the scored ChunkSet.
	Method     string `json:"method" yaml:"method"`
	DocumentID string `json:"document_id" yaml:"document_id"`

	// ChunkCount is the number of chunks in the set.
	ChunkCount int `json:"chunk_count" yaml:"chunk_count"`

	// AvgChunkWords and AvgChunkChars are mean chunk sizes.
	AvgChunkWords float64 `json:"avg_chunk_size_words" yaml:"avg_chunk_size_words"`
	AvgChunkChars float64 `json:"avg_chunk_size_chars" yaml:"avg_chunk_size_chars"`

	// ChunkSizeStd is the sample standard deviation of chunk word counts.
	ChunkSizeStd float64 `json:"chunk_size_std" yaml:"chunk_size_std"`

	// Readability is the mean Flesch Reading Ease over chunks, in [0,100].
	Readability float64 `json:"readability" yaml:"readability"`

	// Completeness is the fraction of chunks ending with terminal
	// sentence punctuation.
	Completeness float64 `json:"completeness" yaml:"completeness"`

	// InfoDensity is the mean per-chunk unique-to-total word ratio.
	InfoDensity float64 `json:"information_density" yaml:"information_density"`

	// Structural is the fraction of contributing block types still
	// detectable inside chunk boundaries.
	Structural float64 `json:"structural_preservation" yaml:"structural_preservation"`

	// Language is the surface-heuristic language quality score in [0,1].
	Language float64 `json:"language_quality" yaml:"language_quality"`

	// Continuity is the lexical tail-to-head overlap between consecutive
	// chunks, in [0,1].
	Continuity float64 `json:"semantic_continuity" yaml:"semantic_continuity"`

	// ErrorRate is the fraction of chunks flagged as malformed.
	ErrorRate float64 `json:"error_rate" yaml:"error_rate"`
}

// Values returns the report's scalars keyed by metric name.
func (r QualityReport) Values() map[string]float64 {
	return map[string]float64{
		MetricChunkCount:    float64(r.ChunkCount),
		MetricAvgChunkWords: r.AvgChunkWords,
		MetricAvgChunkChars: r.AvgChunkChars,
		MetricChunkSizeStd:  r.ChunkSizeStd,
		MetricReadability:   r.Readability,
		MetricCompleteness:  r.Completeness,
		MetricInfoDensity:   r.InfoDensity,
		MetricStructural:    r.Structural,
		MetricLanguage:      r.Language,
		MetricContinuity:    r.Continuity,
		MetricErrorRate:     r.ErrorRate,
	}
}

// Winner labels the outcome of a per-metric or overall comparison.
type Winner string

const (
	WinnerA   Winner = "A"
	WinnerB   Winner = "B"
	WinnerTie Winner = "tie"
)

// Ratio is a guarded B/A quotient. When the denominator is zero the ratio
// is reported rather than computed: 0/0 is defined as zero, x/0 is undefined.
type Ratio struct {
	// Value is the quotient when Defined is true, zero otherwise.
	Value float64 `json:"value" yaml:"value"`

	// Defined reports whether Value carries meaning.
	Defined bool `json:"defined" yaml:"defined"`
}

// NewRatio computes num/den under the zero-guard rule.
func NewRatio(num, den float64) Ratio {
	if den == 0 {
		if num == 0 {
			return Ratio{Value: 0, Defined: true}
		}
		return Ratio{Defined: false}
	}
	return Ratio{Value: num / den, Defined: true}
}

// MetricComparison pairs one metric's values from two reports with their
// ratio and winner label.
type MetricComparison struct {
	Metric string  `json:"metric" yaml:"metric"`
	A      float64 `json:"a" yaml:"a"`
	B      float64 `json:"b" yaml:"b"`
	Ratio  Ratio   `json:"ratio" yaml:"ratio"`
	Winner Winner  `json:"winner" yaml:"winner"`
}

// Comparison is the full pairwise result for two ChunkSets of one document.
type Comparison struct {
	DocumentID string   `json:"document_id" yaml:"document_id"`
	Category   Category `json:"category,omitempty" yaml:"category,omitempty"`
	MethodA    string   `json:"method_a" yaml:"method_a"`
	MethodB    string   `json:"method_b" yaml:"method_b"`

	// ContentOverlap is the order-insensitive lexical similarity between
	// the two sets' concatenated text, in [0,1].
	ContentOverlap float64 `json:"content_overlap" yaml:"content_overlap"`

	// ChunkCountRatio and AvgSizeRatio are the headline B/A ratios.
	ChunkCountRatio Ratio `json:"chunk_count_ratio" yaml:"chunk_count_ratio"`
	AvgSizeRatio    Ratio `json:"avg_size_ratio" yaml:"avg_size_ratio"`

	// Metrics holds one entry per scalar metric, in report order.
	Metrics []MetricComparison `json:"metrics" yaml:"metrics"`

	// WinsA, WinsB, and Ties count per-metric outcomes over the scored
	// metrics only (size and count metrics carry ratios but no winner).
	WinsA int `json:"wins_a" yaml:"wins_a"`
	WinsB int `json:"wins_b" yaml:"wins_b"`
	Ties  int `json:"ties" yaml:"ties"`

	// Verdict is the majority-rule overall winner.
	Verdict Winner `json:"verdict" yaml:"verdict"`

	// ReportA and ReportB are the underlying per-set quality reports.
	ReportA QualityReport `json:"report_a" yaml:"report_a"`
	ReportB QualityReport `json:"report_b" yaml:"report_b"`
}

// CategorySummary aggregates comparisons across all documents in a category.
type CategorySummary struct {
	Category  Category `json:"category" yaml:"category"`
	Documents int      `json:"documents" yaml:"documents"`
	MethodA   string   `json:"method_a" yaml:"method_a"`
	MethodB   string   `json:"method_b" yaml:"method_b"`

	// WinsA, WinsB, and Ties are summed per-metric outcomes.
	WinsA int `json:"wins_a" yaml:"wins_a"`
	WinsB int `json:"wins_b" yaml:"wins_b"`
	Ties  int `json:"ties" yaml:"ties"`

	// AvgRatios averages each metric's defined ratios across documents.
	AvgRatios map[string]float64 `json:"avg_ratios" yaml:"avg_ratios"`

	// AvgOverlap is the mean content overlap across documents.
	AvgOverlap float64 `json:"avg_overlap" yaml:"avg_overlap"`

	// Verdict is the majority-rule category winner.
	Verdict Winner `json:"verdict" yaml:"verdict"`
}
