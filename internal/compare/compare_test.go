// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package compare

import (
	"testing"

	"github.com/pdiddy/docbench/pkg/types"
)

func TestWinner(t *testing.T) {
	tests := []struct {
		name        string
		a, b        float64
		lowerBetter bool
		want        types.Winner
	}{
		{"b strictly higher", 0.5, 0.8, false, types.WinnerB},
		{"a strictly higher", 0.9, 0.2, false, types.WinnerA},
		{"within epsilon is a tie", 0.5000, 0.5005, false, types.WinnerTie},
		{"exactly equal", 0.5, 0.5, false, types.WinnerTie},
		{"lower better flips outcome", 0.1, 0.4, true, types.WinnerA},
		{"lower better b wins", 0.4, 0.1, true, types.WinnerB},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := winner(tt.a, tt.b, tt.lowerBetter, DefaultTieEpsilon)
			if got != tt.want {
				t.Errorf("winner(%v, %v) = %q, want %q", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestVerdict(t *testing.T) {
	if v := Verdict(4, 2); v != types.WinnerA {
		t.Errorf("got %q, want A", v)
	}
	if v := Verdict(1, 5); v != types.WinnerB {
		t.Errorf("got %q, want B", v)
	}
	if v := Verdict(3, 3); v != types.WinnerTie {
		t.Errorf("got %q, want tie", v)
	}
}

func chunkSet(method, docID string, texts ...string) types.ChunkSet {
	cs := types.ChunkSet{Method: method, DocumentID: docID}
	for _, text := range texts {
		cs.Chunks = append(cs.Chunks, types.Chunk{
			Text:       text,
			WordCount:  len(text) / 5,
			CharCount:  len(text),
			BlockTypes: []types.BlockType{types.BlockParagraph},
		})
	}
	return cs
}

func TestCompare_SelfIsTie(t *testing.T) {
	cs := chunkSet("m", "doc", "First chunk of prose here.", "Second chunk of prose there.")
	cmp, err := Compare(cs, cs, types.CategoryShortText, 0)
	if err != nil {
		t.Fatal(err)
	}

	if cmp.Verdict != types.WinnerTie {
		t.Errorf("verdict = %q, want tie", cmp.Verdict)
	}
	if cmp.WinsA != 0 || cmp.WinsB != 0 {
		t.Errorf("wins = %d/%d, want 0/0", cmp.WinsA, cmp.WinsB)
	}
	if cmp.ContentOverlap != 1.0 {
		t.Errorf("content overlap = %v, want 1.0", cmp.ContentOverlap)
	}
	if len(cmp.Metrics) != len(types.MetricNames()) {
		t.Errorf("got %d metric rows, want %d", len(cmp.Metrics), len(types.MetricNames()))
	}
}

func TestCompare_DocumentMismatch(t *testing.T) {
	a := chunkSet("m1", "doc-1", "text.")
	b := chunkSet("m2", "doc-2", "text.")
	if _, err := Compare(a, b, types.CategoryShortText, 0); err == nil {
		t.Fatal("comparing chunk sets of different documents should fail")
	}
}

func TestCompare_CountsOnlyScoredMetrics(t *testing.T) {
	a := chunkSet("m1", "doc", "Clean sentence one. Clean sentence two.")
	b := chunkSet("m2", "doc", "messy fragment without ending")
	cmp, err := Compare(a, b, types.CategoryShortText, 0)
	if err != nil {
		t.Fatal(err)
	}

	scored := cmp.WinsA + cmp.WinsB + cmp.Ties
	if scored != len(scoredMetrics) {
		t.Errorf("scored outcomes = %d, want %d", scored, len(scoredMetrics))
	}
	if cmp.WinsA <= cmp.WinsB {
		t.Errorf("expected the well-formed set to win, got A=%d B=%d", cmp.WinsA, cmp.WinsB)
	}
	if cmp.Verdict != types.WinnerA {
		t.Errorf("verdict = %q, want A", cmp.Verdict)
	}
}

func TestAggregate(t *testing.T) {
	comparisons := []types.Comparison{
		{
			Category: types.CategoryShortText, MethodA: "m1", MethodB: "m2",
			WinsA: 4, WinsB: 2, Ties: 1, ContentOverlap: 0.8,
			Metrics: []types.MetricComparison{
				{Metric: types.MetricReadability, Ratio: types.Ratio{Value: 1.2, Defined: true}},
			},
		},
		{
			Category: types.CategoryShortText, MethodA: "m1", MethodB: "m2",
			WinsA: 1, WinsB: 5, Ties: 1, ContentOverlap: 0.6,
			Metrics: []types.MetricComparison{
				{Metric: types.MetricReadability, Ratio: types.Ratio{Value: 0.8, Defined: true}},
			},
		},
		{
			Category: types.CategoryTableHeavy, MethodA: "m1", MethodB: "m2",
			WinsA: 0, WinsB: 6, Ties: 1, ContentOverlap: 0.9,
			Metrics: []types.MetricComparison{
				{Metric: types.MetricReadability, Ratio: types.Ratio{Defined: false}},
			},
		},
	}

	summaries := Aggregate(comparisons)
	if len(summaries) != 2 {
		t.Fatalf("got %d summaries, want 2", len(summaries))
	}

	short := summaries[0]
	if short.Category != types.CategoryShortText {
		t.Fatalf("first summary category = %q", short.Category)
	}
	if short.Documents != 2 {
		t.Errorf("documents = %d, want 2", short.Documents)
	}
	if short.WinsA != 5 || short.WinsB != 7 {
		t.Errorf("wins = %d/%d, want 5/7", short.WinsA, short.WinsB)
	}
	if short.Verdict != types.WinnerB {
		t.Errorf("verdict = %q, want B", short.Verdict)
	}
	if got := short.AvgRatios[types.MetricReadability]; got != 1.0 {
		t.Errorf("avg readability ratio = %v, want 1.0", got)
	}
	if short.AvgOverlap != 0.7 {
		t.Errorf("avg overlap = %v, want 0.7", short.AvgOverlap)
	}

	tables := summaries[1]
	if tables.Verdict != types.WinnerB {
		t.Errorf("table verdict = %q, want B", tables.Verdict)
	}
	if _, ok := tables.AvgRatios[types.MetricReadability]; ok {
		t.Error("undefined ratios must not contribute to averages")
	}
}
