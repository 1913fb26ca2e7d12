// Marketlens - E-commerce Warehouse and Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketlens

package warehouse

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tomtom215/marketlens/internal/database"
	"github.com/tomtom215/marketlens/internal/logging"
	"github.com/tomtom215/marketlens/internal/metrics"
	"github.com/tomtom215/marketlens/internal/sqlscript"
)

// Warehouse schemas.
const (
	// StagingSchema holds the raw-shaped tables loaded from Parquet.
	StagingSchema = "staging"

	// AnalyticsSchema holds the star schema built by the transform script.
	AnalyticsSchema = "analytics"
)

// ErrParquetNotFound is returned when a table's cleaned Parquet file is missing.
var ErrParquetNotFound = errors.New("parquet file not found")

// Source reads cleaned Parquet files. *database.DB implements it.
type Source interface {
	Columns(ctx context.Context, relation string) ([]database.Column, error)
	QueryParquet(ctx context.Context, path string) (*sql.Rows, error)
}

// Target is the warehouse side of a load. *Warehouse implements it.
type Target interface {
	EnsureSchema(ctx context.Context, schema string) error
	ReplaceTable(ctx context.Context, schema, table string, columns []database.Column, source pgx.CopyFromSource) (int64, error)
	ExecStatements(ctx context.Context, stmts []sqlscript.Statement) error
}

// TableLoad records one staging table replacement.
type TableLoad struct {
	Table    string
	Rows     int64
	Columns  int
	Duration time.Duration
}

// LoadStats summarizes a load run.
type LoadStats struct {
	Tables     []TableLoad
	Statements int
	StartTime  time.Time
	EndTime    time.Time
}

// Rows returns the total number of rows loaded into staging.
func (s *LoadStats) Rows() int64 {
	var n int64
	for _, t := range s.Tables {
		n += t.Rows
	}
	return n
}

// Duration returns the duration of the run.
func (s *LoadStats) Duration() time.Duration {
	if s.EndTime.IsZero() {
		return time.Since(s.StartTime)
	}
	return s.EndTime.Sub(s.StartTime)
}

// Loader replaces every staging table from Parquet and then runs the
// transform script that builds the analytics schema.
type Loader struct {
	source       Source
	target       Target
	processedDir string
	scriptPath   string
	tables       []string
}

// NewLoader creates a loader for tables, reading <processedDir>/<table>.parquet.
func NewLoader(source Source, target Target, processedDir, scriptPath string, tables []string) *Loader {
	return &Loader{
		source:       source,
		target:       target,
		processedDir: processedDir,
		scriptPath:   scriptPath,
		tables:       tables,
	}
}

// Run loads every table in order, then executes the transform script.
// The first failure stops the run.
func (l *Loader) Run(ctx context.Context) (*LoadStats, error) {
	log := logging.Ctx(ctx)
	stats := &LoadStats{StartTime: time.Now()}

	if err := l.target.EnsureSchema(ctx, StagingSchema); err != nil {
		return stats, err
	}

	for _, table := range l.tables {
		load, err := l.LoadTable(ctx, table)
		if err != nil {
			return stats, fmt.Errorf("load %s: %w", table, err)
		}
		stats.Tables = append(stats.Tables, load)
		log.Info().
			Str("table", StagingSchema+"."+table).
			Int64("rows", load.Rows).
			Dur("duration", load.Duration).
			Msg("Loaded staging table")
	}

	stmts, err := sqlscript.ReadFile(l.scriptPath)
	if err != nil {
		return stats, err
	}
	log.Info().Str("script", l.scriptPath).Int("statements", len(stmts)).Msg("Running transform script")

	if err := l.target.ExecStatements(ctx, stmts); err != nil {
		return stats, err
	}
	stats.Statements = len(stmts)
	stats.EndTime = time.Now()

	log.Info().
		Int("tables", len(stats.Tables)).
		Int64("rows", stats.Rows()).
		Int("statements", stats.Statements).
		Dur("duration", stats.Duration()).
		Msg("Transform completed")

	return stats, nil
}

// LoadTable replaces staging.<table> with the rows of its Parquet file.
func (l *Loader) LoadTable(ctx context.Context, table string) (TableLoad, error) {
	start := time.Now()
	path := filepath.Join(l.processedDir, table+".parquet")

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return TableLoad{}, fmt.Errorf("%w: %s", ErrParquetNotFound, path)
		}
		return TableLoad{}, fmt.Errorf("stat %s: %w", path, err)
	}

	columns, err := l.source.Columns(ctx, database.ParquetRelation(path))
	if err != nil {
		return TableLoad{}, err
	}

	rows, err := l.source.QueryParquet(ctx, path)
	if err != nil {
		return TableLoad{}, err
	}
	defer database.CloseWithLog(rows, logging.Ctx(ctx), "parquet rows")

	n, err := l.target.ReplaceTable(ctx, StagingSchema, table, columns, NewRowSource(rows, columns))
	if err != nil {
		return TableLoad{}, err
	}
	metrics.RecordRows("load", table, metrics.RowsLoaded, n)

	return TableLoad{
		Table:    table,
		Rows:     n,
		Columns:  len(columns),
		Duration: time.Since(start),
	}, nil
}
