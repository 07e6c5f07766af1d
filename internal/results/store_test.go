// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package results

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/docbench/internal/report"
	"github.com/pdiddy/docbench/pkg/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleRun(doc, method string) Run {
	return Run{
		Document:          doc,
		Category:          types.CategoryShortText,
		Method:            method,
		Strategy:          "balanced",
		WordBudget:        1000,
		ConversionSeconds: 1.25,
		Report: types.QualityReport{
			ChunkCount:    3,
			AvgChunkWords: 420.5,
			AvgChunkChars: 2500.0,
			ChunkSizeStd:  12.3,
			Readability:   55.0,
			Completeness:  0.9,
			InfoDensity:   0.6,
			Structural:    1.0,
			Language:      0.95,
			Continuity:    0.4,
			ErrorRate:     0.0,
		},
	}
}

func TestStore_SaveAndListRuns(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.SaveRun(ctx, sampleRun("doc-1", "markitdown")); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveRun(ctx, sampleRun("doc-1", "pdftotext")); err != nil {
		t.Fatal(err)
	}

	runs, err := s.ListRuns(ctx, types.CategoryShortText)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}

	r := runs[0]
	if r.Document != "doc-1" || r.Method != "markitdown" {
		t.Errorf("first run = %s/%s", r.Document, r.Method)
	}
	if r.Report.ChunkCount != 3 {
		t.Errorf("chunk count = %d, want 3", r.Report.ChunkCount)
	}
	if r.Report.AvgChunkWords != 420.5 {
		t.Errorf("avg chunk words = %v", r.Report.AvgChunkWords)
	}
	if r.Report.Method != "markitdown" || r.Report.DocumentID != "doc-1" {
		t.Error("report identity fields should be rehydrated from the row")
	}
	if r.ConversionSeconds != 1.25 {
		t.Errorf("conversion seconds = %v", r.ConversionSeconds)
	}
}

func TestStore_SaveRunUpsert(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := sampleRun("doc-1", "markitdown")
	if err := s.SaveRun(ctx, first); err != nil {
		t.Fatal(err)
	}

	second := first
	second.Report.ChunkCount = 7
	second.Strategy = "header-prioritized"
	if err := s.SaveRun(ctx, second); err != nil {
		t.Fatal(err)
	}

	runs, err := s.ListRuns(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Fatalf("got %d runs after upsert, want 1", len(runs))
	}
	if runs[0].Report.ChunkCount != 7 {
		t.Errorf("chunk count = %d, want 7 (updated)", runs[0].Report.ChunkCount)
	}
	if runs[0].Strategy != "header-prioritized" {
		t.Errorf("strategy = %q, want updated value", runs[0].Strategy)
	}
}

func TestStore_SaveAndListComparisons(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	cmp := types.Comparison{
		DocumentID:     "doc-1",
		Category:       types.CategoryTableHeavy,
		MethodA:        "markitdown",
		MethodB:        "pdftotext",
		ContentOverlap: 0.82,
		WinsA:          4,
		WinsB:          2,
		Ties:           1,
		Verdict:        types.WinnerA,
		Metrics: []types.MetricComparison{
			{Metric: types.MetricChunkCount, A: 2, B: 4, Ratio: types.Ratio{Value: 2.0, Defined: true}},
			{Metric: types.MetricAvgChunkWords, A: 900, B: 450, Ratio: types.Ratio{Value: 0.5, Defined: true}},
			{Metric: types.MetricReadability, A: 70.5, B: 65.2, Ratio: types.Ratio{Value: 0.925, Defined: true}, Winner: types.WinnerA},
			{Metric: types.MetricErrorRate, A: 0, B: 0.2, Ratio: types.Ratio{Defined: false}, Winner: types.WinnerA},
		},
	}
	if err := s.SaveComparison(ctx, cmp); err != nil {
		t.Fatal(err)
	}

	got, err := s.ListComparisons(ctx, types.CategoryTableHeavy)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d comparisons, want 1", len(got))
	}

	c := got[0]
	if c.DocumentID != "doc-1" || c.MethodA != "markitdown" || c.MethodB != "pdftotext" {
		t.Errorf("identity fields = %s/%s/%s", c.DocumentID, c.MethodA, c.MethodB)
	}
	if c.Verdict != types.WinnerA {
		t.Errorf("verdict = %q, want A", c.Verdict)
	}
	if c.ContentOverlap != 0.82 {
		t.Errorf("content overlap = %v", c.ContentOverlap)
	}
	if !c.ChunkCountRatio.Defined || c.ChunkCountRatio.Value != 2.0 {
		t.Errorf("chunk count ratio = %+v", c.ChunkCountRatio)
	}
	if !c.AvgSizeRatio.Defined || c.AvgSizeRatio.Value != 0.5 {
		t.Errorf("avg size ratio = %+v", c.AvgSizeRatio)
	}

	var readability, errorRate *types.MetricComparison
	for i := range c.Metrics {
		switch c.Metrics[i].Metric {
		case types.MetricReadability:
			readability = &c.Metrics[i]
		case types.MetricErrorRate:
			errorRate = &c.Metrics[i]
		}
	}
	if readability == nil || errorRate == nil {
		t.Fatal("metric rows missing from loaded comparison")
	}
	if readability.A != 70.5 || readability.B != 65.2 {
		t.Errorf("readability values = %v/%v, want 70.5/65.2", readability.A, readability.B)
	}
	if readability.Winner != types.WinnerA {
		t.Errorf("readability winner = %q, want A", readability.Winner)
	}
	if errorRate.Ratio.Defined {
		t.Error("undefined ratio should round-trip as undefined")
	}
	if errorRate.B != 0.2 || errorRate.Winner != types.WinnerA {
		t.Error("error rate values and winner should survive the round-trip")
	}
}

func TestStore_ComparisonReportRegeneration(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	cmp := types.Comparison{
		DocumentID: "doc-1",
		Category:   types.CategoryShortText,
		MethodA:    "markitdown",
		MethodB:    "pdftotext",
		WinsA:      1,
		Verdict:    types.WinnerA,
		Metrics: []types.MetricComparison{
			{Metric: types.MetricReadability, A: 70.5, B: 65.2, Ratio: types.Ratio{Value: 0.925, Defined: true}, Winner: types.WinnerA},
		},
	}
	if err := s.SaveComparison(ctx, cmp); err != nil {
		t.Fatal(err)
	}

	loaded, err := s.ListComparisons(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	md := report.Markdown(report.Data{
		GeneratedAt: time.Now(),
		MethodA:     "markitdown",
		MethodB:     "pdftotext",
		Comparisons: loaded,
	})

	if !strings.Contains(md, "| readability | 70.500 | 65.200 | 0.925 | A |") {
		t.Errorf("regenerated report lost metric values or winner:\n%s", md)
	}
}

func TestStore_ListComparisonsFiltersByCategory(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, c := range []types.Comparison{
		{DocumentID: "a", Category: types.CategoryShortText, MethodA: "m1", MethodB: "m2", Verdict: types.WinnerTie},
		{DocumentID: "b", Category: types.CategoryLongText, MethodA: "m1", MethodB: "m2", Verdict: types.WinnerTie},
	} {
		if err := s.SaveComparison(ctx, c); err != nil {
			t.Fatal(err)
		}
	}

	short, err := s.ListComparisons(ctx, types.CategoryShortText)
	if err != nil {
		t.Fatal(err)
	}
	if len(short) != 1 || short[0].DocumentID != "a" {
		t.Errorf("category filter returned %d rows", len(short))
	}

	all, err := s.ListComparisons(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Errorf("unfiltered query returned %d rows, want 2", len(all))
	}
}

func TestStore_EmptyListsAreEmpty(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	runs, err := s.ListRuns(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Errorf("fresh store has %d runs", len(runs))
	}

	comparisons, err := s.ListComparisons(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(comparisons) != 0 {
		t.Errorf("fresh store has %d comparisons", len(comparisons))
	}
}
