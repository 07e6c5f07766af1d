// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders benchmark comparisons as Markdown, YAML, and HTML.
// The HTML output is a rendering of the Markdown report, produced with
// goldmark so GFM tables survive.
package report

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/docbench/pkg/types"
)

// Sample pairs the first chunk of each method's output for one document, as
// a qualitative sanity check alongside the numbers.
type Sample struct {
	Document string `json:"document" yaml:"document"`
	ChunkA   string `json:"chunk_a" yaml:"chunk_a"`
	ChunkB   string `json:"chunk_b" yaml:"chunk_b"`
}

// Data is everything a report needs: the per-document comparisons, their
// category rollups, and optional chunk samples.
type Data struct {
	Title       string                  `json:"title" yaml:"title"`
	GeneratedAt time.Time               `json:"generated_at" yaml:"generated_at"`
	MethodA     string                  `json:"method_a" yaml:"method_a"`
	MethodB     string                  `json:"method_b" yaml:"method_b"`
	Comparisons []types.Comparison      `json:"comparisons" yaml:"comparisons"`
	Summaries   []types.CategorySummary `json:"summaries" yaml:"summaries"`
	Samples     []Sample                `json:"samples,omitempty" yaml:"samples,omitempty"`
}

// sampleLimit caps the length of sample chunk excerpts.
const sampleLimit = 300

// NewSample truncates both chunks to a readable excerpt.
func NewSample(document, chunkA, chunkB string) Sample {
	return Sample{
		Document: document,
		ChunkA:   truncate(chunkA, sampleLimit),
		ChunkB:   truncate(chunkB, sampleLimit),
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// Markdown renders the full comparison report.
func Markdown(d Data) string {
	var b strings.Builder

	title := d.Title
	if title == "" {
		title = "Conversion Quality Report"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "Generated: %s\n\n", d.GeneratedAt.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "Method A: `%s`  \nMethod B: `%s`\n\n", d.MethodA, d.MethodB)

	writeSummaries(&b, d.Summaries)
	writeDocuments(&b, d.Comparisons)
	writeMetricDetail(&b, d.Comparisons)
	writeSamples(&b, d.Samples)

	return b.String()
}

func writeSummaries(b *strings.Builder, summaries []types.CategorySummary) {
	if len(summaries) == 0 {
		return
	}
	b.WriteString("## Summary by category\n\n")
	b.WriteString("| Category | Documents | Wins A | Wins B | Ties | Avg overlap | Verdict |\n")
	b.WriteString("|---|---|---|---|---|---|---|\n")
	for _, s := range summaries {
		fmt.Fprintf(b, "| %s | %d | %d | %d | %d | %.3f | %s |\n",
			s.Category, s.Documents, s.WinsA, s.WinsB, s.Ties, s.AvgOverlap, s.Verdict)
	}
	b.WriteString("\n")
}

func writeDocuments(b *strings.Builder, comparisons []types.Comparison) {
	if len(comparisons) == 0 {
		return
	}
	b.WriteString("## Document results\n\n")
	b.WriteString("| Document | Category | Chunk ratio | Size ratio | Overlap | Wins A | Wins B | Verdict |\n")
	b.WriteString("|---|---|---|---|---|---|---|---|\n")
	for _, c := range comparisons {
		fmt.Fprintf(b, "| %s | %s | %s | %s | %.3f | %d | %d | %s |\n",
			c.DocumentID, c.Category,
			formatRatio(c.ChunkCountRatio), formatRatio(c.AvgSizeRatio),
			c.ContentOverlap, c.WinsA, c.WinsB, c.Verdict)
	}
	b.WriteString("\n")
}

func writeMetricDetail(b *strings.Builder, comparisons []types.Comparison) {
	if len(comparisons) == 0 {
		return
	}
	b.WriteString("## Metric detail\n\n")
	for _, c := range comparisons {
		fmt.Fprintf(b, "### %s\n\n", c.DocumentID)
		b.WriteString("| Metric | A | B | Ratio (B/A) | Winner |\n")
		b.WriteString("|---|---|---|---|---|\n")
		for _, mc := range c.Metrics {
			winner := string(mc.Winner)
			if winner == "" {
				winner = "-"
			}
			fmt.Fprintf(b, "| %s | %.3f | %.3f | %s | %s |\n",
				mc.Metric, mc.A, mc.B, formatRatio(mc.Ratio), winner)
		}
		b.WriteString("\n")
	}
}

func writeSamples(b *strings.Builder, samples []Sample) {
	if len(samples) == 0 {
		return
	}
	b.WriteString("## Sample chunks\n\n")
	for _, s := range samples {
		fmt.Fprintf(b, "### %s\n\n", s.Document)
		b.WriteString("Method A:\n\n```\n")
		b.WriteString(s.ChunkA)
		b.WriteString("\n```\n\nMethod B:\n\n```\n")
		b.WriteString(s.ChunkB)
		b.WriteString("\n```\n\n")
	}
}

// formatRatio renders a guarded ratio, or "n/a" when the denominator was
// zero and the ratio is not computable.
func formatRatio(r types.Ratio) string {
	if !r.Defined {
		return "n/a"
	}
	return fmt.Sprintf("%.3f", r.Value)
}

// HTML renders the Markdown report to a standalone HTML page.
func HTML(d Data) ([]byte, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))

	var body bytes.Buffer
	if err := md.Convert([]byte(Markdown(d)), &body); err != nil {
		return nil, fmt.Errorf("rendering HTML: %w", err)
	}

	var page bytes.Buffer
	page.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	title := d.Title
	if title == "" {
		title = "Conversion Quality Report"
	}
	fmt.Fprintf(&page, "<title>%s</title>\n", title)
	page.WriteString("<style>\n")
	page.WriteString("body { font-family: sans-serif; max-width: 60rem; margin: 2rem auto; }\n")
	page.WriteString("table { border-collapse: collapse; }\n")
	page.WriteString("th, td { border: 1px solid #ccc; padding: 0.3rem 0.6rem; }\n")
	page.WriteString("</style>\n</head>\n<body>\n")
	page.Write(body.Bytes())
	page.WriteString("</body>\n</html>\n")
	return page.Bytes(), nil
}

// WriteMarkdown writes the Markdown report to path.
func WriteMarkdown(path string, d Data) error {
	return os.WriteFile(path, []byte(Markdown(d)), 0o644)
}

// WriteHTML writes the HTML report to path.
func WriteHTML(path string, d Data) error {
	html, err := HTML(d)
	if err != nil {
		return err
	}
	return os.WriteFile(path, html, 0o644)
}

// WriteYAML serializes the report data to path.
func WriteYAML(path string, d Data) error {
	data, err := yaml.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
