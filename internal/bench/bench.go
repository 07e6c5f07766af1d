// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package bench orchestrates a full benchmark run: it walks a
// category-organized corpus, converts each document with both methods,
// chunks adaptively, evaluates quality, and persists comparisons.
package bench

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdiddy/docbench/internal/analyze"
	"github.com/pdiddy/docbench/internal/chunk"
	"github.com/pdiddy/docbench/internal/compare"
	"github.com/pdiddy/docbench/internal/convert"
	"github.com/pdiddy/docbench/internal/report"
	"github.com/pdiddy/docbench/internal/results"
	"github.com/pdiddy/docbench/pkg/types"
)

// Entry is one corpus file scheduled for benchmarking.
type Entry struct {
	Path     string
	Category types.Category
}

// Store is the persistence surface the runner needs. *results.Store
// satisfies it.
type Store interface {
	SaveRun(ctx context.Context, r results.Run) error
	SaveComparison(ctx context.Context, c types.Comparison) error
}

// Runner executes the benchmark pipeline for one pair of methods.
type Runner struct {
	ConverterA convert.Converter
	ConverterB convert.Converter

	// Store receives runs and comparisons; nil disables persistence.
	Store Store

	// Thresholds parameterize adaptive strategy selection.
	Thresholds types.ThresholdConfig

	// TieEpsilon is passed through to the comparator; zero means default.
	TieEpsilon float64

	// Out receives per-document progress lines.
	Out io.Writer
}

// Outcome is the result of one benchmark run.
type Outcome struct {
	Comparisons []types.Comparison
	Summaries   []types.CategorySummary
	Samples     []report.Sample
	Failed      int
}

// DiscoverCorpus lists the benchmark files under corpusDir, one subdirectory
// per category. Missing category directories are skipped; files are sorted
// within each category.
func DiscoverCorpus(corpusDir string) ([]Entry, error) {
	var entries []Entry
	found := false

	for _, cat := range types.Categories() {
		dir := filepath.Join(corpusDir, string(cat))
		dirEntries, err := os.ReadDir(dir)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading category directory %s: %w", dir, err)
		}
		found = true

		var paths []string
		for _, e := range dirEntries {
			if e.IsDir() {
				continue
			}
			switch strings.ToLower(filepath.Ext(e.Name())) {
			case ".pdf", ".md":
				paths = append(paths, filepath.Join(dir, e.Name()))
			}
		}
		sort.Strings(paths)
		for _, p := range paths {
			entries = append(entries, Entry{Path: p, Category: cat})
		}
	}

	if !found {
		return nil, fmt.Errorf("no category directories under %s", corpusDir)
	}
	return entries, nil
}

// Run executes the full pipeline over the corpus. Individual document
// failures are reported to Out and counted, not fatal.
func (r *Runner) Run(ctx context.Context, corpusDir string) (Outcome, error) {
	entries, err := DiscoverCorpus(corpusDir)
	if err != nil {
		return Outcome{}, err
	}

	if r.Thresholds == (types.ThresholdConfig{}) {
		r.Thresholds = analyze.DefaultThresholds()
	}
	if r.Out == nil {
		r.Out = io.Discard
	}

	var out Outcome
	for _, e := range entries {
		select {
		case <-ctx.Done():
			return out, ctx.Err()
		default:
		}

		cmp, samples, err := r.runDocument(ctx, e)
		if err != nil {
			fmt.Fprintf(r.Out, "failed:  %s (%v)\n", convert.DocumentID(e.Path), err)
			out.Failed++
			continue
		}

		fmt.Fprintf(r.Out, "compared: %s [%s] wins A=%d B=%d ties=%d verdict=%s\n",
			cmp.DocumentID, cmp.Category, cmp.WinsA, cmp.WinsB, cmp.Ties, cmp.Verdict)
		out.Comparisons = append(out.Comparisons, cmp)
		out.Samples = append(out.Samples, samples)
	}

	out.Summaries = compare.Aggregate(out.Comparisons)
	r.printSummaries(out.Summaries)
	return out, nil
}

func (r *Runner) runDocument(ctx context.Context, e Entry) (types.Comparison, report.Sample, error) {
	resA, err := r.load(r.ConverterA, e)
	if err != nil {
		return types.Comparison{}, report.Sample{}, err
	}
	resB, err := r.load(r.ConverterB, e)
	if err != nil {
		return types.Comparison{}, report.Sample{}, err
	}

	csA, runA, err := r.evaluate(resA, r.ConverterA.Name())
	if err != nil {
		return types.Comparison{}, report.Sample{}, err
	}
	csB, runB, err := r.evaluate(resB, r.ConverterB.Name())
	if err != nil {
		return types.Comparison{}, report.Sample{}, err
	}

	cmp, err := compare.Compare(csA, csB, e.Category, r.TieEpsilon)
	if err != nil {
		return types.Comparison{}, report.Sample{}, err
	}

	runA.Category = e.Category
	runB.Category = e.Category
	runA.Report = cmp.ReportA
	runB.Report = cmp.ReportB

	if r.Store != nil {
		if err := r.Store.SaveRun(ctx, runA); err != nil {
			return types.Comparison{}, report.Sample{}, err
		}
		if err := r.Store.SaveRun(ctx, runB); err != nil {
			return types.Comparison{}, report.Sample{}, err
		}
		if err := r.Store.SaveComparison(ctx, cmp); err != nil {
			return types.Comparison{}, report.Sample{}, err
		}
	}

	sample := report.NewSample(cmp.DocumentID, firstChunk(csA), firstChunk(csB))
	return cmp, sample, nil
}

// load produces the document for one method. PDFs go through the method's
// converter; Markdown files are read directly, so both methods see the same
// text and the comparison isolates chunking behavior.
func (r *Runner) load(c convert.Converter, e Entry) (convert.Result, error) {
	if strings.ToLower(filepath.Ext(e.Path)) == ".md" {
		data, err := os.ReadFile(e.Path)
		if err != nil {
			return convert.Result{}, fmt.Errorf("reading %s: %w", e.Path, err)
		}
		return convert.Result{
			Document: types.NewDocument(convert.DocumentID(e.Path), e.Category, string(data)),
		}, nil
	}
	return convert.ConvertTimed(c, e.Path, e.Category)
}

// evaluate chunks one converted document with the adaptively selected
// strategy and prepares its run record.
func (r *Runner) evaluate(res convert.Result, method string) (types.ChunkSet, results.Run, error) {
	profile := analyze.Profile(res.Document, r.Thresholds)
	strategy := analyze.Select(profile, r.Thresholds)

	cs, err := chunk.ChunkDocument(res.Document, method, strategy.WordBudget)
	if err != nil {
		return types.ChunkSet{}, results.Run{}, err
	}

	run := results.Run{
		Document:          res.Document.ID,
		Method:            cs.Method,
		Strategy:          strategy.Label,
		WordBudget:        strategy.WordBudget,
		ConversionSeconds: res.Elapsed.Seconds(),
	}
	return cs, run, nil
}

func firstChunk(cs types.ChunkSet) string {
	if len(cs.Chunks) == 0 {
		return ""
	}
	return cs.Chunks[0].Text
}

func (r *Runner) printSummaries(summaries []types.CategorySummary) {
	if len(summaries) == 0 {
		return
	}
	fmt.Fprintln(r.Out)
	for _, s := range summaries {
		fmt.Fprintf(r.Out, "%s: %d documents, wins A=%d B=%d ties=%d, verdict=%s\n",
			s.Category, s.Documents, s.WinsA, s.WinsB, s.Ties, s.Verdict)
	}
}
