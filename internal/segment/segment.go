// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package segment parses raw Markdown or plain text into a typed, ordered
// sequence of blocks. Segmentation is pure and stateless: classification is
// driven by a declarative pattern table, any unmatched content falls back to
// paragraph, and no input ever produces an error.
package segment

import (
	"regexp"
	"strings"

	"github.com/pdiddy/docbench/pkg/types"
)

// PatternTable maps block types to the line patterns that detect them.
// Patterns are matched against the whitespace-trimmed line.
type PatternTable map[types.BlockType]*regexp.Regexp

// DefaultPatterns returns the standard Markdown pattern table.
func DefaultPatterns() PatternTable {
	return PatternTable{
		types.BlockHeader:    regexp.MustCompile(`^(#{1,6})\s+`),
		types.BlockListItem:  regexp.MustCompile(`^([*\-]|\d+\.)\s+`),
		types.BlockTableRow:  regexp.MustCompile(`^\|`),
		types.BlockCodeFence: regexp.MustCompile("^```"),
		types.BlockImageRef:  regexp.MustCompile(`^!\[[^\]]*\]\([^)]*\)`),
		types.BlockRule:      regexp.MustCompile(`^(-{3,}|_{3,}|\*{3,})$`),
	}
}

// classifyOrder fixes the precedence of pattern checks. Earlier entries win.
var classifyOrder = []types.BlockType{
	types.BlockHeader,
	types.BlockListItem,
	types.BlockCodeFence,
	types.BlockTableRow,
	types.BlockImageRef,
	types.BlockRule,
}

// classify returns the block type of a trimmed line, defaulting to paragraph.
func classify(line string, patterns PatternTable) types.BlockType {
	for _, bt := range classifyOrder {
		re, ok := patterns[bt]
		if ok && re.MatchString(line) {
			return bt
		}
	}
	return types.BlockParagraph
}

// headerLevel counts the leading '#' characters of a trimmed header line.
func headerLevel(line string) int {
	level := 0
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level > 6 {
		level = 6
	}
	return level
}

// builder accumulates consecutive lines of one block.
type builder struct {
	typ    types.BlockType
	lines  []string
	offset int
	level  int
}

func (b *builder) empty() bool { return len(b.lines) == 0 }

func (b *builder) flush(blocks []types.Block) []types.Block {
	if b.empty() {
		return blocks
	}
	blocks = append(blocks, types.Block{
		Type:   b.typ,
		Text:   strings.Join(b.lines, "\n"),
		Offset: b.offset,
		Level:  b.level,
	})
	b.lines = nil
	b.level = 0
	return blocks
}

func (b *builder) start(typ types.BlockType, line string, offset int) {
	b.typ = typ
	b.lines = []string{line}
	b.offset = offset
}

// Segment splits text into an ordered block sequence covering every
// non-blank line exactly once. Consecutive list-item and table-row lines
// accumulate into a single block; code fences accumulate through the closing
// fence marker (or end of input when unterminated); headers, image
// references, and horizontal rules are single-line blocks; every other run
// of non-blank lines is a paragraph.
func Segment(text string, patterns PatternTable) []types.Block {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var blocks []types.Block
	var cur builder
	inFence := false
	fenceRe := patterns[types.BlockCodeFence]

	offset := 0
	for _, raw := range strings.SplitAfter(text, "\n") {
		line := strings.TrimSuffix(raw, "\n")
		lineStart := offset
		offset += len(raw)

		trimmed := strings.TrimSpace(line)

		if inFence {
			cur.lines = append(cur.lines, line)
			if fenceRe != nil && fenceRe.MatchString(trimmed) {
				blocks = cur.flush(blocks)
				inFence = false
			}
			continue
		}

		if trimmed == "" {
			blocks = cur.flush(blocks)
			continue
		}

		switch bt := classify(trimmed, patterns); bt {
		case types.BlockHeader:
			blocks = cur.flush(blocks)
			blocks = append(blocks, types.Block{
				Type:   types.BlockHeader,
				Text:   line,
				Offset: lineStart,
				Level:  headerLevel(trimmed),
			})

		case types.BlockCodeFence:
			blocks = cur.flush(blocks)
			cur.start(types.BlockCodeFence, line, lineStart)
			inFence = true

		case types.BlockListItem, types.BlockTableRow:
			if !cur.empty() && cur.typ == bt {
				cur.lines = append(cur.lines, line)
				continue
			}
			blocks = cur.flush(blocks)
			cur.start(bt, line, lineStart)

		case types.BlockImageRef, types.BlockRule:
			blocks = cur.flush(blocks)
			blocks = append(blocks, types.Block{
				Type:   bt,
				Text:   line,
				Offset: lineStart,
			})

		default:
			if !cur.empty() && cur.typ == types.BlockParagraph {
				cur.lines = append(cur.lines, line)
				continue
			}
			blocks = cur.flush(blocks)
			cur.start(types.BlockParagraph, line, lineStart)
		}
	}

	blocks = cur.flush(blocks)
	return blocks
}
