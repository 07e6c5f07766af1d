// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"os/exec"

	"github.com/pdiddy/docbench/pkg/types"
)

const binPdftotext = "pdftotext"

// PdftotextConverter converts PDFs by shelling out to the poppler pdftotext
// binary. Output is plain text, not Markdown: structural markers are absent,
// which is exactly the behavior the benchmark measures.
type PdftotextConverter struct {
	// bin is the binary to invoke, overridable for tests.
	bin string
}

// NewPdftotextConverter creates a converter backed by the pdftotext binary
// on PATH.
func NewPdftotextConverter() *PdftotextConverter {
	return &PdftotextConverter{bin: binPdftotext}
}

// Name returns the backend name.
func (p *PdftotextConverter) Name() string { return string(types.BackendPdftotext) }

// Convert runs pdftotext in layout mode and captures its stdout. The "-"
// output argument makes pdftotext write to stdout.
func (p *PdftotextConverter) Convert(pdfPath string) (string, error) {
	out, err := exec.Command(p.bin, "-layout", pdfPath, "-").Output()
	if err != nil {
		return "", fmt.Errorf("running %s on %s: %w", p.bin, pdfPath, err)
	}
	if len(out) == 0 {
		return "", fmt.Errorf("%s produced empty output for %s", p.bin, pdfPath)
	}
	return string(out), nil
}
