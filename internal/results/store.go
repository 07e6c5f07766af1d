// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package results persists benchmark runs and comparisons in a SQLite
// database under the results directory.
package results

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/docbench/pkg/types"
)

const dbFile = "bench.db"

// Run records one method's evaluation of one document: the strategy used,
// the conversion wall time, and the full quality report.
type Run struct {
	Document          string
	Category          types.Category
	Method            string
	Strategy          string
	WordBudget        int
	ConversionSeconds float64
	Report            types.QualityReport
}

// Store manages the benchmark results SQLite database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the results database at resultsDir/bench.db,
// creating the schema if it does not exist.
func NewStore(resultsDir string) (*Store, error) {
	if err := os.MkdirAll(resultsDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating results directory: %w", err)
	}

	dbPath := filepath.Join(resultsDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			document TEXT NOT NULL,
			category TEXT NOT NULL,
			method TEXT NOT NULL,
			strategy TEXT,
			word_budget INTEGER,
			conversion_seconds REAL,
			chunk_count INTEGER,
			avg_chunk_size_words REAL,
			avg_chunk_size_chars REAL,
			chunk_size_std REAL,
			readability REAL,
			completeness REAL,
			information_density REAL,
			structural_preservation REAL,
			language_quality REAL,
			semantic_continuity REAL,
			error_rate REAL,
			created_at TEXT NOT NULL,
			PRIMARY KEY (document, method)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_category ON runs(category)`,
		`CREATE TABLE IF NOT EXISTS comparisons (
			document TEXT NOT NULL,
			category TEXT NOT NULL,
			method_a TEXT NOT NULL,
			method_b TEXT NOT NULL,
			content_overlap REAL,
			metrics TEXT,
			wins_a INTEGER,
			wins_b INTEGER,
			ties INTEGER,
			verdict TEXT,
			created_at TEXT NOT NULL,
			PRIMARY KEY (document, method_a, method_b)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_comparisons_category ON comparisons(category)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// SaveRun upserts one run record. Re-running a benchmark replaces the
// previous record for the same document and method.
func (s *Store) SaveRun(ctx context.Context, r Run) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (
			document, category, method, strategy, word_budget, conversion_seconds,
			chunk_count, avg_chunk_size_words, avg_chunk_size_chars, chunk_size_std,
			readability, completeness, information_density, structural_preservation,
			language_quality, semantic_continuity, error_rate, created_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(document, method) DO UPDATE SET
			category=excluded.category, strategy=excluded.strategy,
			word_budget=excluded.word_budget,
			conversion_seconds=excluded.conversion_seconds,
			chunk_count=excluded.chunk_count,
			avg_chunk_size_words=excluded.avg_chunk_size_words,
			avg_chunk_size_chars=excluded.avg_chunk_size_chars,
			chunk_size_std=excluded.chunk_size_std,
			readability=excluded.readability,
			completeness=excluded.completeness,
			information_density=excluded.information_density,
			structural_preservation=excluded.structural_preservation,
			language_quality=excluded.language_quality,
			semantic_continuity=excluded.semantic_continuity,
			error_rate=excluded.error_rate,
			created_at=excluded.created_at`,
		r.Document, string(r.Category), r.Method, r.Strategy, r.WordBudget,
		r.ConversionSeconds,
		r.Report.ChunkCount, r.Report.AvgChunkWords, r.Report.AvgChunkChars,
		r.Report.ChunkSizeStd, r.Report.Readability, r.Report.Completeness,
		r.Report.InfoDensity, r.Report.Structural, r.Report.Language,
		r.Report.Continuity, r.Report.ErrorRate,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("saving run %s/%s: %w", r.Document, r.Method, err)
	}
	return nil
}

// SaveComparison upserts one document comparison. The per-metric rows
// (A/B values, ratio, winner) are stored as a JSON object keyed by metric
// name, so a regenerated report carries the same detail as the original run.
func (s *Store) SaveComparison(ctx context.Context, c types.Comparison) error {
	metrics := make(map[string]types.MetricComparison, len(c.Metrics))
	for _, mc := range c.Metrics {
		metrics[mc.Metric] = mc
	}
	metricsJSON, err := json.Marshal(metrics)
	if err != nil {
		return fmt.Errorf("encoding metrics: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO comparisons (
			document, category, method_a, method_b, content_overlap,
			metrics, wins_a, wins_b, ties, verdict, created_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(document, method_a, method_b) DO UPDATE SET
			category=excluded.category, content_overlap=excluded.content_overlap,
			metrics=excluded.metrics, wins_a=excluded.wins_a, wins_b=excluded.wins_b,
			ties=excluded.ties, verdict=excluded.verdict,
			created_at=excluded.created_at`,
		c.DocumentID, string(c.Category), c.MethodA, c.MethodB, c.ContentOverlap,
		string(metricsJSON), c.WinsA, c.WinsB, c.Ties, string(c.Verdict),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("saving comparison %s: %w", c.DocumentID, err)
	}
	return nil
}

// ListRuns returns all run records for a category, or for every category
// when category is empty. Rows are ordered by document then method.
func (s *Store) ListRuns(ctx context.Context, category types.Category) ([]Run, error) {
	query := `SELECT document, category, method, strategy, word_budget,
		conversion_seconds, chunk_count, avg_chunk_size_words,
		avg_chunk_size_chars, chunk_size_std, readability, completeness,
		information_density, structural_preservation, language_quality,
		semantic_continuity, error_rate
		FROM runs`
	args := []any{}
	if category != "" {
		query += ` WHERE category = ?`
		args = append(args, string(category))
	}
	query += ` ORDER BY document, method`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(
			&r.Document, &r.Category, &r.Method, &r.Strategy, &r.WordBudget,
			&r.ConversionSeconds,
			&r.Report.ChunkCount, &r.Report.AvgChunkWords, &r.Report.AvgChunkChars,
			&r.Report.ChunkSizeStd, &r.Report.Readability, &r.Report.Completeness,
			&r.Report.InfoDensity, &r.Report.Structural, &r.Report.Language,
			&r.Report.Continuity, &r.Report.ErrorRate,
		); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.Report.Method = r.Method
		r.Report.DocumentID = r.Document
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// ListComparisons returns all stored comparisons for a category, or for
// every category when category is empty. The per-metric rows are rebuilt
// from their JSON encoding in report order.
func (s *Store) ListComparisons(ctx context.Context, category types.Category) ([]types.Comparison, error) {
	query := `SELECT document, category, method_a, method_b, content_overlap,
		metrics, wins_a, wins_b, ties, verdict
		FROM comparisons`
	args := []any{}
	if category != "" {
		query += ` WHERE category = ?`
		args = append(args, string(category))
	}
	query += ` ORDER BY category, document`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying comparisons: %w", err)
	}
	defer rows.Close()

	var comparisons []types.Comparison
	for rows.Next() {
		var c types.Comparison
		var metricsJSON string
		if err := rows.Scan(
			&c.DocumentID, &c.Category, &c.MethodA, &c.MethodB,
			&c.ContentOverlap, &metricsJSON, &c.WinsA, &c.WinsB, &c.Ties,
			&c.Verdict,
		); err != nil {
			return nil, fmt.Errorf("scanning comparison: %w", err)
		}

		var metrics map[string]types.MetricComparison
		if err := json.Unmarshal([]byte(metricsJSON), &metrics); err != nil {
			return nil, fmt.Errorf("decoding metrics for %s: %w", c.DocumentID, err)
		}
		for _, name := range types.MetricNames() {
			mc := metrics[name]
			mc.Metric = name
			c.Metrics = append(c.Metrics, mc)
		}
		c.ChunkCountRatio = metrics[types.MetricChunkCount].Ratio
		c.AvgSizeRatio = metrics[types.MetricAvgChunkWords].Ratio
		comparisons = append(comparisons, c)
	}
	return comparisons, rows.Err()
}
