package main

import (
	"strings"
	"testing"

	"github.com/spf13/viper"

	"github.com/pdiddy/docbench/internal/analyze"
	"github.com/pdiddy/docbench/pkg/types"
)

func TestResolveStrategy(t *testing.T) {
	thresholds := analyze.DefaultThresholds()
	longDoc := types.NewDocument("long", "",
		strings.Repeat("# Heading\n\nBody text under the heading.\n\n", 200))

	tests := []struct {
		name       string
		flagBudget int
		cfg        types.ChunkingConfig
		wantBudget int
		wantLabel  string
	}{
		{
			name:       "explicit flag wins over everything",
			flagBudget: 750,
			cfg:        types.ChunkingConfig{WordBudget: 500, Adaptive: true},
			wantBudget: 750,
			wantLabel:  "fixed",
		},
		{
			name:       "adaptive disabled uses configured budget",
			cfg:        types.ChunkingConfig{WordBudget: 300, Adaptive: false},
			wantBudget: 300,
			wantLabel:  "fixed",
		},
		{
			name:       "adaptive selects from document features",
			cfg:        types.ChunkingConfig{WordBudget: 500, Adaptive: true},
			wantBudget: 1200,
			wantLabel:  "header-prioritized",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveStrategy(tt.flagBudget, tt.cfg, longDoc, thresholds)
			if got.WordBudget != tt.wantBudget {
				t.Errorf("budget = %d, want %d", got.WordBudget, tt.wantBudget)
			}
			if got.Label != tt.wantLabel {
				t.Errorf("label = %q, want %q", got.Label, tt.wantLabel)
			}
		})
	}
}

func TestChunkingFromConfig(t *testing.T) {
	t.Cleanup(viper.Reset)

	viper.Reset()
	cfg := chunkingFromConfig()
	if !cfg.Adaptive || cfg.WordBudget != 500 {
		t.Errorf("defaults = %+v, want adaptive with 500-word fallback", cfg)
	}

	viper.Set("chunking.adaptive", false)
	viper.Set("chunking.word_budget", 250)
	cfg = chunkingFromConfig()
	if cfg.Adaptive {
		t.Error("config should disable adaptive selection")
	}
	if cfg.WordBudget != 250 {
		t.Errorf("word budget = %d, want 250", cfg.WordBudget)
	}
}
