// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import (
	"reflect"
	"strings"
	"testing"

	"github.com/pdiddy/docbench/pkg/types"
)

func doc(content string) types.Document {
	return types.NewDocument("d", types.CategoryLongText, content)
}

func TestProfile_Empty(t *testing.T) {
	p := Profile(doc(""), DefaultThresholds())
	want := types.FeatureProfile{Bucket: types.LengthShort}
	if !reflect.DeepEqual(p, want) {
		t.Errorf("profile = %+v, want %+v", p, want)
	}
}

func TestProfile_Densities(t *testing.T) {
	// 10 lines: 2 headers, 1 table row, 3 list items, 4 plain.
	content := strings.Join([]string{
		"# a", "## b", "| x | y |", "- one", "- two", "1. three",
		"plain", "plain", "plain", "plain",
	}, "\n")
	p := Profile(doc(content), DefaultThresholds())

	if p.LineCount != 10 {
		t.Fatalf("line count = %d, want 10", p.LineCount)
	}
	if p.HeaderDensity != 0.2 {
		t.Errorf("header density = %v, want 0.2", p.HeaderDensity)
	}
	if p.TableDensity != 0.1 {
		t.Errorf("table density = %v, want 0.1", p.TableDensity)
	}
	if p.ListDensity != 0.3 {
		t.Errorf("list density = %v, want 0.3", p.ListDensity)
	}
}

func TestProfile_Buckets(t *testing.T) {
	th := DefaultThresholds()
	tests := []struct {
		chars int
		want  types.LengthBucket
	}{
		{0, types.LengthShort},
		{999, types.LengthShort},
		{1000, types.LengthMedium},
		{5000, types.LengthMedium},
		{5001, types.LengthLong},
	}
	for _, tt := range tests {
		p := Profile(doc(strings.Repeat("x", tt.chars)), th)
		if p.Bucket != tt.want {
			t.Errorf("chars %d: bucket = %q, want %q", tt.chars, p.Bucket, tt.want)
		}
	}
}

func TestProfile_Idempotent(t *testing.T) {
	d := doc("# h\n\nsome text\n- item")
	th := DefaultThresholds()
	if !reflect.DeepEqual(Profile(d, th), Profile(d, th)) {
		t.Error("profile must be identical across calls")
	}
}

func TestSelect_DecisionTable(t *testing.T) {
	th := DefaultThresholds()
	tests := []struct {
		name       string
		profile    types.FeatureProfile
		wantBudget int
		wantLabel  string
	}{
		{
			name:       "long with headers",
			profile:    types.FeatureProfile{Bucket: types.LengthLong, HeaderDensity: 0.05},
			wantBudget: 1200,
			wantLabel:  "header-prioritized",
		},
		{
			name:       "short with headers falls through to balanced",
			profile:    types.FeatureProfile{Bucket: types.LengthShort, HeaderDensity: 0.05},
			wantBudget: 1000,
			wantLabel:  "balanced",
		},
		{
			name:       "table heavy",
			profile:    types.FeatureProfile{Bucket: types.LengthMedium, TableDensity: 0.2},
			wantBudget: 800,
			wantLabel:  "table-optimized",
		},
		{
			name:       "list heavy",
			profile:    types.FeatureProfile{Bucket: types.LengthMedium, ListDensity: 0.5},
			wantBudget: 600,
			wantLabel:  "list-optimized",
		},
		{
			name:       "header rule wins over table rule",
			profile:    types.FeatureProfile{Bucket: types.LengthLong, HeaderDensity: 0.05, TableDensity: 0.5},
			wantBudget: 1200,
			wantLabel:  "header-prioritized",
		},
		{
			name:       "plain document",
			profile:    types.FeatureProfile{Bucket: types.LengthMedium},
			wantBudget: 1000,
			wantLabel:  "balanced",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Select(tt.profile, th)
			if s.WordBudget != tt.wantBudget || s.Label != tt.wantLabel {
				t.Errorf("Select = (%d, %q), want (%d, %q)",
					s.WordBudget, s.Label, tt.wantBudget, tt.wantLabel)
			}
		})
	}
}
