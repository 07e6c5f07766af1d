// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package quality

import (
	"fmt"
	"strings"

	"github.com/pdiddy/docbench/pkg/types"
)

// PairwiseResult holds the comparison measures between two chunk sets of
// the same document. Ratios are B over A for every scalar metric.
type PairwiseResult struct {
	ReportA types.QualityReport `json:"report_a" yaml:"report_a"`
	ReportB types.QualityReport `json:"report_b" yaml:"report_b"`

	// ContentOverlap is the order-insensitive lexical similarity between
	// the concatenated text of both sets, in [0,1]. It is symmetric.
	ContentOverlap float64 `json:"content_overlap" yaml:"content_overlap"`

	// Ratios maps each metric name to its guarded B/A ratio.
	Ratios map[string]types.Ratio `json:"ratios" yaml:"ratios"`
}

// Pairwise evaluates both chunk sets and computes their comparison
// measures. Comparing chunk sets of different documents is a contract
// violation and returns an error.
func Pairwise(a, b types.ChunkSet) (PairwiseResult, error) {
	if a.DocumentID != b.DocumentID {
		return PairwiseResult{}, fmt.Errorf(
			"cannot compare chunk sets of different documents: %q vs %q",
			a.DocumentID, b.DocumentID)
	}

	ra := Evaluate(a)
	rb := Evaluate(b)
	va := ra.Values()
	vb := rb.Values()

	ratios := make(map[string]types.Ratio, len(va))
	for _, name := range types.MetricNames() {
		ratios[name] = types.NewRatio(vb[name], va[name])
	}

	return PairwiseResult{
		ReportA:        ra,
		ReportB:        rb,
		ContentOverlap: ContentOverlap(a, b),
		Ratios:         ratios,
	}, nil
}

// ContentOverlap is the Jaccard similarity between the word sets of the two
// sets' concatenated text. It is symmetric and zero when either set has no
// words.
func ContentOverlap(a, b types.ChunkSet) float64 {
	return jaccard(wordSet(a), wordSet(b))
}

func wordSet(cs types.ChunkSet) map[string]bool {
	var sb strings.Builder
	for _, c := range cs.Chunks {
		sb.WriteString(c.Text)
		sb.WriteByte(' ')
	}
	set := make(map[string]bool)
	for _, w := range tokens(sb.String()) {
		set[w] = true
	}
	return set
}
