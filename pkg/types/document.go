// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared data model for the docbench pipeline:
// documents, blocks, chunks, quality reports, and stage configuration.
package types

// Category labels a document's content class. The benchmark corpus is
// organized into one directory per category.
type Category string

const (
	CategoryShortText  Category = "short_text"
	CategoryLongText   Category = "long_text"
	CategoryTableHeavy Category = "table_heavy"
	CategoryImageHeavy Category = "image_heavy"
)

// Categories lists all known corpus categories in scan order.
func Categories() []Category {
	return []Category{CategoryShortText, CategoryLongText, CategoryTableHeavy, CategoryImageHeavy}
}

// Document is an immutable unit of converted text entering the core. It is
// created by a loader or converter and consumed read-only afterwards.
type Document struct {
	// ID identifies the source, typically the file stem.
	ID string `json:"id" yaml:"id"`

	// Category is the externally assigned content class, used only for
	// aggregation grouping.
	Category Category `json:"category" yaml:"category"`

	// Content is the raw Markdown or plain text.
	Content string `json:"content" yaml:"content"`

	// CharCount is len(Content), precomputed at load time.
	CharCount int `json:"char_count" yaml:"char_count"`
}

// NewDocument builds a Document and fills the derived CharCount field.
func NewDocument(id string, category Category, content string) Document {
	return Document{
		ID:        id,
		Category:  category,
		Content:   content,
		CharCount: len(content),
	}
}

// LengthBucket classifies a document by character length.
type LengthBucket string

const (
	LengthShort  LengthBucket = "short"
	LengthMedium LengthBucket = "medium"
	LengthLong   LengthBucket = "long"
)

// FeatureProfile holds the structural signals extracted from a Document.
// It parameterizes strategy selection and is not retained afterwards.
type FeatureProfile struct {
	// Bucket is the document's length class.
	Bucket LengthBucket `json:"bucket" yaml:"bucket"`

	// HeaderDensity is header-pattern matches divided by total line count.
	HeaderDensity float64 `json:"header_density" yaml:"header_density"`

	// TableDensity is pipe-row matches divided by total line count.
	TableDensity float64 `json:"table_density" yaml:"table_density"`

	// ListDensity is list-marker matches divided by total line count.
	ListDensity float64 `json:"list_density" yaml:"list_density"`

	// LineCount is the number of lines scanned.
	LineCount int `json:"line_count" yaml:"line_count"`

	// CharCount mirrors the document's character length.
	CharCount int `json:"char_count" yaml:"char_count"`
}

// Strategy is a concrete chunking configuration chosen from a FeatureProfile.
type Strategy struct {
	// WordBudget is the maximum words per chunk.
	WordBudget int `json:"word_budget" yaml:"word_budget"`

	// Label names the strategy: header-prioritized, table-optimized,
	// list-optimized, or balanced.
	Label string `json:"label" yaml:"label"`
}
