// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package compare turns quality reports into per-metric winners and overall
// verdicts, at document and category granularity. It aggregates and labels;
// all metric computation lives in the quality package.
package compare

import (
	"math"

	"github.com/pdiddy/docbench/internal/quality"
	"github.com/pdiddy/docbench/pkg/types"
)

// DefaultTieEpsilon is the tolerance within which two metric values tie.
const DefaultTieEpsilon = 0.001

// scoredMetrics lists the metrics that award a per-metric win. Size and
// count metrics are descriptive: they carry ratios but no winner.
var scoredMetrics = []struct {
	Name        string
	LowerBetter bool
}{
	{types.MetricReadability, false},
	{types.MetricCompleteness, false},
	{types.MetricInfoDensity, false},
	{types.MetricStructural, false},
	{types.MetricLanguage, false},
	{types.MetricContinuity, false},
	{types.MetricErrorRate, true},
}

// winner labels one metric's outcome under the tie epsilon.
func winner(a, b float64, lowerBetter bool, eps float64) types.Winner {
	if math.Abs(a-b) <= eps {
		return types.WinnerTie
	}
	bWins := b > a
	if lowerBetter {
		bWins = !bWins
	}
	if bWins {
		return types.WinnerB
	}
	return types.WinnerA
}

// Verdict applies the majority rule: strictly more per-metric wins takes the
// overall verdict, equal counts tie.
func Verdict(winsA, winsB int) types.Winner {
	switch {
	case winsA > winsB:
		return types.WinnerA
	case winsB > winsA:
		return types.WinnerB
	default:
		return types.WinnerTie
	}
}

// Compare runs the full pairwise comparison of two chunk sets from the same
// document: quality evaluation, ratios, per-metric winners, and the overall
// verdict. An epsilon of zero or less falls back to DefaultTieEpsilon.
func Compare(a, b types.ChunkSet, category types.Category, eps float64) (types.Comparison, error) {
	if eps <= 0 {
		eps = DefaultTieEpsilon
	}

	pw, err := quality.Pairwise(a, b)
	if err != nil {
		return types.Comparison{}, err
	}

	va := pw.ReportA.Values()
	vb := pw.ReportB.Values()

	scored := make(map[string]bool, len(scoredMetrics))
	lower := make(map[string]bool, len(scoredMetrics))
	for _, m := range scoredMetrics {
		scored[m.Name] = true
		lower[m.Name] = m.LowerBetter
	}

	cmp := types.Comparison{
		DocumentID:      a.DocumentID,
		Category:        category,
		MethodA:         a.Method,
		MethodB:         b.Method,
		ContentOverlap:  pw.ContentOverlap,
		ChunkCountRatio: pw.Ratios[types.MetricChunkCount],
		AvgSizeRatio:    pw.Ratios[types.MetricAvgChunkWords],
		ReportA:         pw.ReportA,
		ReportB:         pw.ReportB,
	}

	for _, name := range types.MetricNames() {
		mc := types.MetricComparison{
			Metric: name,
			A:      va[name],
			B:      vb[name],
			Ratio:  pw.Ratios[name],
		}
		if scored[name] {
			mc.Winner = winner(va[name], vb[name], lower[name], eps)
			switch mc.Winner {
			case types.WinnerA:
				cmp.WinsA++
			case types.WinnerB:
				cmp.WinsB++
			default:
				cmp.Ties++
			}
		}
		cmp.Metrics = append(cmp.Metrics, mc)
	}

	cmp.Verdict = Verdict(cmp.WinsA, cmp.WinsB)
	return cmp, nil
}

// Aggregate rolls document comparisons up into per-category summaries using
// the same majority rule: win counts are summed and defined ratios averaged
// across all documents in a category. Summaries follow the category order
// of first appearance.
func Aggregate(comparisons []types.Comparison) []types.CategorySummary {
	byCategory := make(map[types.Category]*types.CategorySummary)
	ratioSums := make(map[types.Category]map[string]float64)
	ratioCounts := make(map[types.Category]map[string]int)
	overlapSums := make(map[types.Category]float64)
	var order []types.Category

	for _, c := range comparisons {
		s, ok := byCategory[c.Category]
		if !ok {
			s = &types.CategorySummary{
				Category: c.Category,
				MethodA:  c.MethodA,
				MethodB:  c.MethodB,
			}
			byCategory[c.Category] = s
			ratioSums[c.Category] = make(map[string]float64)
			ratioCounts[c.Category] = make(map[string]int)
			order = append(order, c.Category)
		}

		s.Documents++
		s.WinsA += c.WinsA
		s.WinsB += c.WinsB
		s.Ties += c.Ties
		overlapSums[c.Category] += c.ContentOverlap

		for _, mc := range c.Metrics {
			if !mc.Ratio.Defined {
				continue
			}
			ratioSums[c.Category][mc.Metric] += mc.Ratio.Value
			ratioCounts[c.Category][mc.Metric]++
		}
	}

	summaries := make([]types.CategorySummary, 0, len(order))
	for _, cat := range order {
		s := byCategory[cat]
		s.AvgRatios = make(map[string]float64, len(ratioSums[cat]))
		for metric, sum := range ratioSums[cat] {
			s.AvgRatios[metric] = sum / float64(ratioCounts[cat][metric])
		}
		s.AvgOverlap = overlapSums[cat] / float64(s.Documents)
		s.Verdict = Verdict(s.WinsA, s.WinsB)
		summaries = append(summaries, *s)
	}
	return summaries
}
