// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"

	"github.com/pdiddy/docbench/pkg/types"
)

// NativeConverter extracts text in-process with the ledongthuc/pdf reader.
// It needs no external tooling, at the cost of losing layout and structure.
type NativeConverter struct{}

// NewNativeConverter creates the in-process extraction backend.
func NewNativeConverter() *NativeConverter {
	return &NativeConverter{}
}

// Name returns the backend name.
func (n *NativeConverter) Name() string { return string(types.BackendNative) }

// Convert opens the PDF and concatenates the plain text of all pages.
func (n *NativeConverter) Convert(pdfPath string) (string, error) {
	f, r, err := pdf.Open(pdfPath)
	if err != nil {
		return "", fmt.Errorf("opening PDF %s: %w", pdfPath, err)
	}
	defer f.Close()

	var buf bytes.Buffer
	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extracting text from %s: %w", pdfPath, err)
	}
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", fmt.Errorf("reading extracted text from %s: %w", pdfPath, err)
	}

	if buf.Len() == 0 {
		return "", fmt.Errorf("no extractable text in %s", pdfPath)
	}
	return buf.String(), nil
}
