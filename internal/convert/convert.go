// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert implements PDF-to-Markdown conversion with pluggable
// backends. Backends are the methods under comparison, so conversion is
// timed and never silently substituted.
package convert

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/docbench/internal/container"
	"github.com/pdiddy/docbench/pkg/types"
)

// Converter transforms a PDF file into Markdown text. Each benchmark method
// is one Converter implementation.
type Converter interface {
	// Name returns the backend name as recorded in results.
	Name() string

	// Convert reads a PDF at pdfPath and returns the Markdown content.
	Convert(pdfPath string) (string, error)
}

// New builds the converter for a backend. The markitdown backend detects a
// container runtime and verifies its image; the others have no setup cost.
func New(backend types.ConversionBackend) (Converter, error) {
	switch backend {
	case types.BackendMarkitdown:
		rt, err := container.DetectRuntime()
		if err != nil {
			return nil, err
		}
		return NewMarkitdownConverter(rt)
	case types.BackendPdftotext:
		return NewPdftotextConverter(), nil
	case types.BackendNative:
		return NewNativeConverter(), nil
	default:
		return nil, fmt.Errorf("unknown conversion backend %q", backend)
	}
}

// Status is the outcome of converting one file.
type Status string

const (
	StatusDone    Status = "done"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// Result holds one timed conversion: the produced document and how long the
// backend took to produce it.
type Result struct {
	Document types.Document
	Elapsed  time.Duration
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
}

// Total returns the total number of files processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any files failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// DocumentID derives the document identifier from a source path: the file
// name without its extension.
func DocumentID(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ConvertTimed runs one conversion and measures the backend's wall time.
// The elapsed time covers only the backend call, not file discovery or
// output writing.
func ConvertTimed(c Converter, pdfPath string, category types.Category) (Result, error) {
	start := time.Now()
	content, err := c.Convert(pdfPath)
	elapsed := time.Since(start)
	if err != nil {
		return Result{}, fmt.Errorf("converting %s with %s: %w", pdfPath, c.Name(), err)
	}
	return Result{
		Document: types.NewDocument(DocumentID(pdfPath), category, content),
		Elapsed:  elapsed,
	}, nil
}

// ConvertFile converts a single PDF to Markdown, writing the result into
// outDir and reporting status to w. Existing output is not overwritten.
func ConvertFile(c Converter, pdfPath, outDir string, w io.Writer) Status {
	id := DocumentID(pdfPath)
	mdPath := filepath.Join(outDir, id+".md")

	if _, err := os.Stat(mdPath); err == nil {
		fmt.Fprintf(w, "skipped: %s (already exists)\n", id)
		return StatusSkipped
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", id, err)
		return StatusFailed
	}

	content, err := c.Convert(pdfPath)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", id, err)
		return StatusFailed
	}

	if err := os.WriteFile(mdPath, []byte(content), 0o644); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", id, err)
		return StatusFailed
	}

	fmt.Fprintf(w, "converted: %s\n", id)
	return StatusDone
}

// ConvertBatch processes a list of PDF paths through the converter, printing
// per-file status to w and returning a summary.
func ConvertBatch(c Converter, pdfPaths []string, outDir string, w io.Writer) BatchResult {
	var result BatchResult
	for _, p := range pdfPaths {
		switch ConvertFile(c, p, outDir, w) {
		case StatusDone:
			result.Converted++
		case StatusSkipped:
			result.Skipped++
		case StatusFailed:
			result.Failed++
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result
}
