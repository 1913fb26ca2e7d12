// Marketlens - E-commerce Warehouse and Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketlens

package etl

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tomtom215/marketlens/internal/database"
	"github.com/tomtom215/marketlens/internal/logging"
	"github.com/tomtom215/marketlens/internal/metrics"
)

const stageName = "extract"

// rowOrderColumn carries source row order through deduplication.
const rowOrderColumn = "__marketlens_row"

var (
	// ErrSourceNotFound is returned when <raw>/<table>.csv does not exist.
	ErrSourceNotFound = errors.New("source csv not found")

	// ErrColumnCollision is returned when two source columns lowercase to the same name.
	ErrColumnCollision = errors.New("columns collide after lowercasing")
)

// Engine is the subset of the DuckDB wrapper the extractor needs.
type Engine interface {
	Columns(ctx context.Context, relation string) ([]database.Column, error)
	CountRows(ctx context.Context, relation string) (int64, error)
	CopyToParquet(ctx context.Context, query, path string) error
}

// Extractor cleans raw CSV tables into Parquet files.
type Extractor struct {
	engine       Engine
	rawDir       string
	processedDir string
	tables       []string
}

// NewExtractor creates an extractor reading <rawDir>/<table>.csv and writing
// <processedDir>/<table>.parquet for each table, in order.
func NewExtractor(engine Engine, rawDir, processedDir string, tables []string) *Extractor {
	return &Extractor{
		engine:       engine,
		rawDir:       rawDir,
		processedDir: processedDir,
		tables:       tables,
	}
}

// Run ensures the processed directory exists and cleans every configured
// table in order. It stops at the first error and returns the stats
// collected so far together with it.
func (e *Extractor) Run(ctx context.Context) (*RunStats, error) {
	stats := &RunStats{StartTime: time.Now()}
	defer func() { stats.EndTime = time.Now() }()

	if err := os.MkdirAll(e.processedDir, 0o750); err != nil {
		return stats, fmt.Errorf("create processed dir %s: %w", e.processedDir, err)
	}

	log := logging.Ctx(ctx)
	log.Info().Int("tables", len(e.tables)).Str("raw_dir", e.rawDir).Msg("Starting extract")

	for _, table := range e.tables {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		ts, err := e.CleanTable(ctx, table)
		if err != nil {
			return stats, fmt.Errorf("clean %s: %w", table, err)
		}
		stats.Tables = append(stats.Tables, ts)
	}

	log.Info().
		Int("tables", len(stats.Tables)).
		Int64("input_rows", stats.InputRows()).
		Int64("output_rows", stats.OutputRows()).
		Dur("duration", stats.Duration()).
		Msg("Extract completed")

	return stats, nil
}

// CleanTable reads <raw>/<table>.csv, parses every column whose lowercased
// name contains "date" or "timestamp" as a timestamp (unparseable values
// become NULL), lowercases column names, drops exact duplicate rows keeping
// the first occurrence, and writes <processed>/<table>.parquet.
func (e *Extractor) CleanTable(ctx context.Context, table string) (*TableStats, error) {
	stats := &TableStats{
		Table:      table,
		OutputPath: filepath.Join(e.processedDir, table+".parquet"),
		StartTime:  time.Now(),
	}
	defer func() { stats.EndTime = time.Now() }()

	src := filepath.Join(e.rawDir, table+".csv")
	if _, err := os.Stat(src); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, src)
		}
		return nil, fmt.Errorf("stat %s: %w", src, err)
	}
	relation := database.CSVRelation(src)

	columns, err := e.engine.Columns(ctx, relation)
	if err != nil {
		return nil, err
	}

	query, dateColumns, err := cleanQuery(relation, columns)
	if err != nil {
		return nil, err
	}
	stats.Columns = len(columns)
	stats.DateColumns = dateColumns

	stats.InputRows, err = e.engine.CountRows(ctx, relation)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	err = e.engine.CopyToParquet(ctx, query, stats.OutputPath)
	metrics.RecordDBQuery("duckdb", "copy_parquet", time.Since(start), err)
	if err != nil {
		return nil, err
	}

	stats.OutputRows, err = e.engine.CountRows(ctx, database.ParquetRelation(stats.OutputPath))
	if err != nil {
		return nil, err
	}

	metrics.RecordRows(stageName, table, metrics.RowsInput, stats.InputRows)
	metrics.RecordRows(stageName, table, metrics.RowsOutput, stats.OutputRows)
	metrics.RecordRows(stageName, table, metrics.RowsDuplicates, stats.DuplicatesDropped())

	logging.Ctx(ctx).Info().
		Str("table", table).
		Int64("duplicates_dropped", stats.DuplicatesDropped()).
		Int64("rows", stats.OutputRows).
		Int("columns", stats.Columns).
		Strs("date_columns", stats.DateColumns).
		Str("output", stats.OutputPath).
		Msg("Cleaned table")

	return stats, nil
}

// IsDateColumn reports whether a column is parsed as a timestamp. Matching is
// by substring, so names such as "update" also qualify.
func IsDateColumn(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "date") || strings.Contains(lower, "timestamp")
}

// cleanQuery builds the select that casts date columns, lowercases names and
// removes duplicate rows in first-occurrence order.
func cleanQuery(relation string, columns []database.Column) (string, []string, error) {
	if len(columns) == 0 {
		return "", nil, fmt.Errorf("no columns in %s", relation)
	}

	seen := make(map[string]string, len(columns))
	exprs := make([]string, 0, len(columns))
	names := make([]string, 0, len(columns))
	var dateColumns []string

	for _, col := range columns {
		lower := strings.ToLower(col.Name)
		if prev, ok := seen[lower]; ok {
			return "", nil, fmt.Errorf("%w: %q and %q", ErrColumnCollision, prev, col.Name)
		}
		seen[lower] = col.Name

		src := database.QuoteIdentifier(col.Name)
		dst := database.QuoteIdentifier(lower)
		if IsDateColumn(col.Name) {
			exprs = append(exprs, fmt.Sprintf("TRY_CAST(%s AS TIMESTAMP) AS %s", src, dst))
			dateColumns = append(dateColumns, lower)
		} else {
			exprs = append(exprs, fmt.Sprintf("%s AS %s", src, dst))
		}
		names = append(names, dst)
	}

	// GROUP BY ALL groups on every output column with NULLs comparing equal.
	query := fmt.Sprintf(
		"SELECT %s FROM (SELECT %s, ROW_NUMBER() OVER () AS %s FROM %s) GROUP BY ALL ORDER BY MIN(%s)",
		strings.Join(names, ", "),
		strings.Join(exprs, ", "),
		rowOrderColumn,
		relation,
		rowOrderColumn,
	)
	return query, dateColumns, nil
}
