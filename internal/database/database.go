// Marketlens - E-commerce Warehouse and Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketlens

package database

import (
	"context"
	"database/sql"
	"fmt"
	"runtime"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/tomtom215/marketlens/internal/config"
	"github.com/tomtom215/marketlens/internal/logging"
)

// DB wraps an in-process DuckDB connection used for CSV parsing,
// deduplication and Parquet I/O. Nothing is persisted by the engine itself;
// every result leaves through COPY ... TO or a row cursor.
type DB struct {
	conn *sql.DB
	cfg  *config.DuckDBConfig
}

// pingTimeout bounds the connection check in New. Statements have no
// timeout of their own; they run until the caller's context is done.
const pingTimeout = 30 * time.Second

// New opens an in-memory DuckDB engine tuned by cfg.
func New(cfg *config.DuckDBConfig) (*DB, error) {
	numThreads := cfg.Threads
	if numThreads <= 0 {
		numThreads = runtime.NumCPU()
	}

	// Disable auto-install to prevent hangs in restricted network environments.
	// Parquet and CSV support are built into the driver.
	connStr := fmt.Sprintf(":memory:?threads=%d&autoinstall_known_extensions=false", numThreads)
	if cfg.MaxMemory != "" {
		connStr += "&max_memory=" + cfg.MaxMemory
	}

	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection keeps temp views and settings visible to every statement.
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)

	db := &DB{
		conn: conn,
		cfg:  cfg,
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := db.Ping(ctx); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	logging.Debug().Int("threads", numThreads).Str("max_memory", cfg.MaxMemory).Msg("DuckDB engine opened")
	return db, nil
}

// Conn returns the underlying SQL database connection.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// Ping checks if the database connection is alive
func (db *DB) Ping(ctx context.Context) error {
	if db.conn == nil {
		return fmt.Errorf("database connection is nil")
	}
	return db.conn.PingContext(ctx)
}

// Close closes the engine.
func (db *DB) Close() error {
	if db.conn == nil {
		return nil
	}
	return db.conn.Close()
}
