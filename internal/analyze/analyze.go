// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package analyze extracts structural signals from a document and maps them
// to a concrete chunking strategy through an ordered decision table. Both
// steps are pure functions so each rule is independently testable.
package analyze

import (
	"strings"

	"github.com/pdiddy/docbench/internal/segment"
	"github.com/pdiddy/docbench/pkg/types"
)

// DefaultThresholds returns the standard decision-table thresholds.
func DefaultThresholds() types.ThresholdConfig {
	return types.ThresholdConfig{
		ShortMaxChars: 1000,
		LongMinChars:  5000,
		HeaderDensity: 0.02,
		TableDensity:  0.05,
		ListDensity:   0.10,
	}
}

// Profile scans a document once and returns its feature profile. Documents
// with no pattern matches yield zero densities; empty input yields a
// zero-valued profile with a short bucket.
func Profile(doc types.Document, thresholds types.ThresholdConfig) types.FeatureProfile {
	if doc.Content == "" {
		return types.FeatureProfile{Bucket: bucket(0, thresholds)}
	}

	patterns := segment.DefaultPatterns()
	headerRe := patterns[types.BlockHeader]
	tableRe := patterns[types.BlockTableRow]
	listRe := patterns[types.BlockListItem]

	var lines, headers, tables, lists int
	for _, line := range strings.Split(doc.Content, "\n") {
		lines++
		trimmed := strings.TrimSpace(line)
		switch {
		case headerRe.MatchString(trimmed):
			headers++
		case tableRe.MatchString(trimmed):
			tables++
		case listRe.MatchString(trimmed):
			lists++
		}
	}

	return types.FeatureProfile{
		Bucket:        bucket(doc.CharCount, thresholds),
		HeaderDensity: float64(headers) / float64(lines),
		TableDensity:  float64(tables) / float64(lines),
		ListDensity:   float64(lists) / float64(lines),
		LineCount:     lines,
		CharCount:     doc.CharCount,
	}
}

func bucket(chars int, t types.ThresholdConfig) types.LengthBucket {
	switch {
	case chars < t.ShortMaxChars:
		return types.LengthShort
	case chars > t.LongMinChars:
		return types.LengthLong
	default:
		return types.LengthMedium
	}
}

// Select maps a feature profile to a word budget and strategy label through
// ordered rule evaluation; the first matching rule wins.
func Select(p types.FeatureProfile, t types.ThresholdConfig) types.Strategy {
	switch {
	case p.Bucket == types.LengthLong && p.HeaderDensity > t.HeaderDensity:
		return types.Strategy{WordBudget: 1200, Label: "header-prioritized"}
	case p.TableDensity > t.TableDensity:
		return types.Strategy{WordBudget: 800, Label: "table-optimized"}
	case p.ListDensity > t.ListDensity:
		return types.Strategy{WordBudget: 600, Label: "list-optimized"}
	default:
		return types.Strategy{WordBudget: 1000, Label: "balanced"}
	}
}
