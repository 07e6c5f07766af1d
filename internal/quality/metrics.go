// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package quality computes chunk-set quality metrics and pairwise
// comparisons between chunk sets of the same document. All computations are
// pure; degenerate input (zero chunks, zero words) yields zero-valued
// metrics rather than errors.
package quality

import (
	"math"
	"regexp"
	"strings"
	"unicode"

	"github.com/pdiddy/docbench/internal/chunk"
	"github.com/pdiddy/docbench/internal/segment"
	"github.com/pdiddy/docbench/pkg/types"
)

// continuityWindow bounds the tail/head word windows used for the semantic
// continuity proxy.
const continuityWindow = 50

var syllableRe = regexp.MustCompile(`[aeiouy]+`)

// stopwords are excluded from lexical-overlap computations.
var stopwords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true,
	"but": true, "in": true, "on": true, "at": true, "to": true,
	"for": true, "of": true, "with": true, "by": true,
}

// Evaluate computes the eleven scalar quality metrics over a chunk set.
// An empty set yields an all-zero report.
func Evaluate(cs types.ChunkSet) types.QualityReport {
	r := types.QualityReport{Method: cs.Method, DocumentID: cs.DocumentID}
	n := len(cs.Chunks)
	if n == 0 {
		return r
	}

	var sumWords, sumChars int
	var sumRead, sumDensity, sumLang float64
	var complete, malformedCount int

	for _, c := range cs.Chunks {
		sumWords += c.WordCount
		sumChars += c.CharCount
		sumRead += readability(c.Text)
		sumDensity += infoDensity(c.Text)
		sumLang += languageQuality(c.Text)
		if endsComplete(c.Text) {
			complete++
		}
		if malformed(c) {
			malformedCount++
		}
	}

	fn := float64(n)
	r.ChunkCount = n
	r.AvgChunkWords = float64(sumWords) / fn
	r.AvgChunkChars = float64(sumChars) / fn
	r.ChunkSizeStd = sampleStd(cs.WordCounts())
	r.Readability = sumRead / fn
	r.Completeness = float64(complete) / fn
	r.InfoDensity = sumDensity / fn
	r.Structural = structuralPreservation(cs.Chunks)
	r.Language = sumLang / fn
	r.Continuity = semanticContinuity(cs.Chunks)
	r.ErrorRate = float64(malformedCount) / fn
	return r
}

// readability is the Flesch Reading Ease score clamped to [0,100], using a
// vowel-group syllable estimate.
func readability(text string) float64 {
	words := strings.Fields(text)
	if len(words) == 0 {
		return 0
	}
	sentences := len(chunk.SplitSentences(text))
	if sentences == 0 {
		sentences = 1
	}
	syllables := len(syllableRe.FindAllString(strings.ToLower(text), -1))

	score := 206.835 -
		1.015*(float64(len(words))/float64(sentences)) -
		84.6*(float64(syllables)/float64(len(words)))
	return math.Max(0, math.Min(100, score))
}

// endsComplete reports whether the chunk ends with terminal punctuation.
func endsComplete(text string) bool {
	t := strings.TrimSpace(text)
	if t == "" {
		return false
	}
	switch t[len(t)-1] {
	case '.', '!', '?':
		return true
	}
	return false
}

// infoDensity is the unique-to-total word ratio of one chunk.
func infoDensity(text string) float64 {
	words := tokens(text)
	if len(words) == 0 {
		return 0
	}
	unique := make(map[string]bool, len(words))
	for _, w := range words {
		unique[w] = true
	}
	return float64(len(unique)) / float64(len(words))
}

// structuralPreservation measures how many contributing block types remain
// pattern-detectable inside chunk boundaries. 1.0 means no structural
// marker was lost or merged away.
func structuralPreservation(chunks []types.Chunk) float64 {
	patterns := segment.DefaultPatterns()
	var expected, detected int

	for _, c := range chunks {
		lines := strings.Split(c.Text, "\n")
		for _, bt := range c.BlockTypes {
			expected++
			if bt == types.BlockParagraph {
				// Paragraph content has no marker to lose.
				if strings.TrimSpace(c.Text) != "" {
					detected++
				}
				continue
			}
			re := patterns[bt]
			for _, line := range lines {
				if re.MatchString(strings.TrimSpace(line)) {
					detected++
					break
				}
			}
		}
	}
	if expected == 0 {
		return 0
	}
	return float64(detected) / float64(expected)
}

// languageQuality is a composite of sentence-start capitalization and
// punctuation spacing, normalized to [0,1].
func languageQuality(text string) float64 {
	return (capitalizationScore(text) + punctuationSpacing(text)) / 2
}

func capitalizationScore(text string) float64 {
	sentences := chunk.SplitSentences(text)
	if len(sentences) == 0 {
		return 0
	}
	proper := 0
	for _, s := range sentences {
		if startsUpper(s) {
			proper++
		}
	}
	return float64(proper) / float64(len(sentences))
}

// startsUpper finds the first letter of the sentence and reports whether it
// is uppercase. Sentences with no letters (tables, rules) count as proper.
func startsUpper(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return unicode.IsUpper(r)
		}
	}
	return true
}

// punctuationSpacing scores terminal punctuation placement: a terminal mark
// preceded by a space or followed directly by a letter is a violation.
// Text without terminal punctuation scores 1.
func punctuationSpacing(text string) float64 {
	var marks, violations int
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '.', '!', '?':
		default:
			continue
		}
		marks++
		if i > 0 && text[i-1] == ' ' {
			violations++
			continue
		}
		if i+1 < len(text) {
			next := rune(text[i+1])
			if unicode.IsLetter(next) {
				violations++
			}
		}
	}
	if marks == 0 {
		return 1
	}
	return 1 - float64(violations)/float64(marks)
}

// semanticContinuity is a topical-coherence proxy: the stopword-filtered
// Jaccard overlap between the tail window of each chunk and the head window
// of the next, averaged over consecutive pairs. Sets with fewer than two
// chunks score 1.
func semanticContinuity(chunks []types.Chunk) float64 {
	if len(chunks) < 2 {
		return 1
	}
	var sum float64
	pairs := 0
	for i := 0; i+1 < len(chunks); i++ {
		tail := contentSet(tailWords(chunks[i].Text, continuityWindow))
		head := contentSet(headWords(chunks[i+1].Text, continuityWindow))
		sum += jaccard(tail, head)
		pairs++
	}
	return sum / float64(pairs)
}

// malformed flags structurally broken chunks: empty content, an
// unterminated code fence, or an orphaned table row.
func malformed(c types.Chunk) bool {
	text := strings.TrimSpace(c.Text)
	if text == "" {
		return true
	}

	fences, pipeRows := 0, 0
	for _, line := range strings.Split(text, "\n") {
		t := strings.TrimSpace(line)
		if strings.HasPrefix(t, "```") {
			fences++
		}
		if strings.HasPrefix(t, "|") {
			pipeRows++
		}
	}
	if fences%2 != 0 {
		return true
	}
	if pipeRows == 1 {
		return true
	}
	return false
}

// tokens lowercases and strips surrounding punctuation from the
// whitespace-delimited words of text.
func tokens(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	out := fields[:0]
	for _, f := range fields {
		w := strings.Trim(f, `.,!?;:()[]{}"'`+"`*#|-_")
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}

func contentSet(words []string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		if !stopwords[w] {
			set[w] = true
		}
	}
	return set
}

func headWords(text string, n int) []string {
	words := tokens(text)
	if len(words) > n {
		words = words[:n]
	}
	return words
}

func tailWords(text string, n int) []string {
	words := tokens(text)
	if len(words) > n {
		words = words[len(words)-n:]
	}
	return words
}

// jaccard is |a∩b| / |a∪b|; zero when either set is empty.
func jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for w := range a {
		if b[w] {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}

// sampleStd is the sample standard deviation of counts; zero for fewer than
// two values.
func sampleStd(counts []int) float64 {
	n := len(counts)
	if n < 2 {
		return 0
	}
	var sum float64
	for _, c := range counts {
		sum += float64(c)
	}
	mean := sum / float64(n)
	var ss float64
	for _, c := range counts {
		d := float64(c) - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(n-1))
}
