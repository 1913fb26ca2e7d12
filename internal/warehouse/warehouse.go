// Marketlens - E-commerce Warehouse and Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketlens

package warehouse

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver

	"github.com/tomtom215/marketlens/internal/logging"
	"github.com/tomtom215/marketlens/internal/metrics"
	"github.com/tomtom215/marketlens/internal/sqlscript"
)

const engineName = "postgres"

// pingTimeout bounds the connectivity check in Open.
const pingTimeout = 10 * time.Second

// Warehouse is a PostgreSQL connection scoped to one stage run.
type Warehouse struct {
	db *sql.DB
}

// Open connects to the warehouse through the pgx database/sql driver and
// pings it once.
func Open(ctx context.Context, url string) (*Warehouse, error) {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("failed to open warehouse: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to warehouse: %w", err)
	}

	return New(db), nil
}

// New wraps an existing connection pool.
func New(db *sql.DB) *Warehouse {
	return &Warehouse{db: db}
}

// DB returns the underlying connection pool.
func (w *Warehouse) DB() *sql.DB {
	return w.db
}

// Close closes the connection pool.
func (w *Warehouse) Close() error {
	return w.db.Close()
}

// EnsureSchema creates schema if it does not exist.
func (w *Warehouse) EnsureSchema(ctx context.Context, schema string) error {
	start := time.Now()
	_, err := w.db.ExecContext(ctx, "CREATE SCHEMA IF NOT EXISTS "+pgx.Identifier{schema}.Sanitize())
	metrics.RecordDBQuery(engineName, "create_schema", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("create schema %s: %w", schema, err)
	}
	return nil
}

// ExecStatements executes stmts in order inside one transaction. Any failure
// rolls back every statement and is returned.
func (w *Warehouse) ExecStatements(ctx context.Context, stmts []sqlscript.Statement) (err error) {
	log := logging.Ctx(ctx)

	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transform transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Warn().Err(rbErr).Msg("Failed to roll back transform transaction")
			}
		}
	}()

	for _, stmt := range stmts {
		log.Info().Int("statement", stmt.Index+1).Str("sql", stmt.FirstLine()).Msg("Executing transform statement")

		start := time.Now()
		_, err = tx.ExecContext(ctx, stmt.SQL)
		metrics.RecordDBQuery(engineName, "transform", time.Since(start), err)
		if err != nil {
			return fmt.Errorf("transform statement %d (%s): %w", stmt.Index+1, stmt.FirstLine(), err)
		}
		metrics.RecordTransformStatement()
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transform transaction: %w", err)
	}
	return nil
}
