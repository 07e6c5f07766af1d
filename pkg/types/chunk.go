// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// BlockType classifies a structural unit parsed from document text.
type BlockType string

const (
	BlockHeader    BlockType = "header"
	BlockListItem  BlockType = "list-item"
	BlockTableRow  BlockType = "table-row"
	BlockCodeFence BlockType = "code-fence"
	BlockImageRef  BlockType = "image-reference"
	BlockRule      BlockType = "horizontal-rule"
	BlockParagraph BlockType = "paragraph"
)

// Atomic reports whether a block of this type is indivisible during packing.
// Atomic blocks are never split, even when they alone exceed the word budget.
func (t BlockType) Atomic() bool {
	switch t {
	case BlockTableRow, BlockCodeFence, BlockImageRef, BlockRule:
		return true
	}
	return false
}

// Block is a typed, positionally ordered unit of a document. Blocks exist
// only inside a segmentation pass and are discarded after packing.
type Block struct {
	// Type is the structural class of the block.
	Type BlockType `json:"type" yaml:"type"`

	// Text is the raw block content with surrounding blank lines stripped.
	Text string `json:"text" yaml:"text"`

	// Offset is the byte offset of the block's first line in the source.
	Offset int `json:"offset" yaml:"offset"`

	// Level is the header level (1-6); zero for non-header blocks.
	Level int `json:"level,omitempty" yaml:"level,omitempty"`
}

// Chunk is a word-budgeted grouping of one or more blocks (or sentence
// fragments of an oversized paragraph) concatenated into one output unit.
type Chunk struct {
	// Text is the concatenated chunk content.
	Text string `json:"text" yaml:"text"`

	// WordCount is the whitespace-delimited word count of Text.
	WordCount int `json:"word_count" yaml:"word_count"`

	// CharCount is len(Text).
	CharCount int `json:"char_count" yaml:"char_count"`

	// BlockTypes lists the distinct block types that contributed to this
	// chunk, in first-seen order. Used for structural-preservation scoring.
	BlockTypes []BlockType `json:"block_types" yaml:"block_types"`
}

// ChunkSet is the ordered output of one chunking run over one document,
// tagged with the producing method. It is the unit of quality scoring.
type ChunkSet struct {
	// Method names the upstream converter or chunking method.
	Method string `json:"method" yaml:"method"`

	// DocumentID identifies the source document. Comparing chunk sets with
	// different document IDs is a caller contract violation.
	DocumentID string `json:"document_id" yaml:"document_id"`

	// Chunks is the ordered chunk list.
	Chunks []Chunk `json:"chunks" yaml:"chunks"`
}

// WordCounts returns the per-chunk word counts in order.
func (cs ChunkSet) WordCounts() []int {
	counts := make([]int, len(cs.Chunks))
	for i, c := range cs.Chunks {
		counts[i] = c.WordCount
	}
	return counts
}
