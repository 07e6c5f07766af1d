// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package chunk merges block sequences into word-budgeted chunks without
// breaking sentences mid-way. Packing is deterministic: identical input and
// budget always produce an identical chunk set.
package chunk

import (
	"fmt"
	"strings"

	"github.com/pdiddy/docbench/internal/segment"
	"github.com/pdiddy/docbench/pkg/types"
)

// accumulator collects block and sentence parts for the chunk under
// construction.
type accumulator struct {
	parts []string
	words int
	order []types.BlockType
	seen  map[types.BlockType]bool
}

func newAccumulator() *accumulator {
	return &accumulator{seen: make(map[types.BlockType]bool)}
}

func (a *accumulator) empty() bool { return len(a.parts) == 0 }

func (a *accumulator) add(text string, bt types.BlockType, words int) {
	a.parts = append(a.parts, text)
	a.words += words
	if !a.seen[bt] {
		a.seen[bt] = true
		a.order = append(a.order, bt)
	}
}

// close emits the accumulated parts as one chunk and resets the accumulator.
func (a *accumulator) close(chunks []types.Chunk) []types.Chunk {
	if a.empty() {
		return chunks
	}
	text := strings.Join(a.parts, "\n\n")
	chunks = append(chunks, types.Chunk{
		Text:       text,
		WordCount:  a.words,
		CharCount:  len(text),
		BlockTypes: a.order,
	})
	a.parts = nil
	a.words = 0
	a.order = nil
	a.seen = make(map[types.BlockType]bool)
	return chunks
}

func wordCount(s string) int { return len(strings.Fields(s)) }

// Pack walks blocks in order and groups them into chunks of at most budget
// words. Atomic blocks and list-item blocks are never split: when one does
// not fit it starts a new chunk, even when it alone exceeds the budget.
// Headers always start a new chunk; a horizontal rule forces a boundary
// after itself. Paragraphs split at sentence boundaries; a single sentence
// longer than the budget becomes its own chunk unsplit. A budget of zero or
// less is a contract violation.
func Pack(blocks []types.Block, budget int) ([]types.Chunk, error) {
	if budget <= 0 {
		return nil, fmt.Errorf("word budget must be positive, got %d", budget)
	}

	var chunks []types.Chunk
	acc := newAccumulator()

	for _, b := range blocks {
		w := wordCount(b.Text)

		switch {
		case b.Type == types.BlockHeader:
			chunks = acc.close(chunks)
			acc.add(b.Text, b.Type, w)

		case b.Type.Atomic() || b.Type == types.BlockListItem:
			if !acc.empty() && acc.words+w > budget {
				chunks = acc.close(chunks)
			}
			acc.add(b.Text, b.Type, w)
			if acc.words > budget || b.Type == types.BlockRule {
				chunks = acc.close(chunks)
			}

		default: // paragraph
			for _, sentence := range SplitSentences(b.Text) {
				sw := wordCount(sentence)
				if !acc.empty() && acc.words+sw > budget {
					chunks = acc.close(chunks)
				}
				acc.add(sentence, types.BlockParagraph, sw)
				if acc.words > budget {
					chunks = acc.close(chunks)
				}
			}
		}
	}

	return acc.close(chunks), nil
}

// SplitSentences splits text at sentence-terminal punctuation (runs of
// '.', '!', or '?' followed by whitespace or end of text), keeping the
// punctuation attached to the sentence. Text without terminal punctuation
// is returned as a single sentence.
func SplitSentences(text string) []string {
	var out []string
	start := 0
	i := 0
	for i < len(text) {
		if !isTerminal(text[i]) {
			i++
			continue
		}
		j := i + 1
		for j < len(text) && isTerminal(text[j]) {
			j++
		}
		if j < len(text) && !isSpace(text[j]) {
			i = j
			continue
		}
		if s := strings.TrimSpace(text[start:j]); s != "" {
			out = append(out, s)
		}
		start = j
		i = j
	}
	if tail := strings.TrimSpace(text[start:]); tail != "" {
		out = append(out, tail)
	}
	return out
}

func isTerminal(c byte) bool { return c == '.' || c == '!' || c == '?' }

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// ChunkDocument segments a document with the default pattern table and packs
// the blocks under the given word budget. An empty or whitespace-only
// document yields an empty chunk set.
func ChunkDocument(doc types.Document, method string, budget int) (types.ChunkSet, error) {
	blocks := segment.Segment(doc.Content, segment.DefaultPatterns())
	chunks, err := Pack(blocks, budget)
	if err != nil {
		return types.ChunkSet{}, fmt.Errorf("packing %s: %w", doc.ID, err)
	}
	return types.ChunkSet{
		Method:     method,
		DocumentID: doc.ID,
		Chunks:     chunks,
	}, nil
}
