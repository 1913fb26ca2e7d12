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
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/tomtom215/marketlens/internal/database"
	"github.com/tomtom215/marketlens/internal/metrics"
)

// ErrCopyUnsupported is returned when the pool's driver is not pgx and the
// COPY protocol is therefore unavailable.
var ErrCopyUnsupported = errors.New("driver connection does not support COPY")

// txStarter begins a native pgx transaction.
type txStarter interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// ReplaceTable replaces schema.table in one transaction: the table is
// dropped if present, recreated from columns (DuckDB types mapped to
// PostgreSQL types) and filled from source with the COPY protocol.
// Returns the number of rows copied.
func (w *Warehouse) ReplaceTable(ctx context.Context, schema, table string, columns []database.Column, source pgx.CopyFromSource) (int64, error) {
	if len(columns) == 0 {
		return 0, fmt.Errorf("replace %s.%s: no columns", schema, table)
	}

	conn, err := w.db.Conn(ctx)
	if err != nil {
		return 0, fmt.Errorf("acquire connection: %w", err)
	}
	defer func() { _ = conn.Close() }()

	var copied int64
	err = conn.Raw(func(driverConn any) error {
		c, ok := driverConn.(*stdlib.Conn)
		if !ok {
			return fmt.Errorf("%w: %T", ErrCopyUnsupported, driverConn)
		}
		var rerr error
		copied, rerr = replaceTable(ctx, c.Conn(), schema, table, columns, source)
		return rerr
	})
	if err != nil {
		return 0, err
	}
	return copied, nil
}

// replaceTable runs drop, create and copy on one pgx transaction.
func replaceTable(ctx context.Context, db txStarter, schema, table string, columns []database.Column, source pgx.CopyFromSource) (int64, error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin replace %s.%s: %w", schema, table, err)
	}
	// Rollback after a successful commit is a no-op.
	defer func() { _ = tx.Rollback(ctx) }()

	ident := pgx.Identifier{schema, table}

	if _, err := tx.Exec(ctx, "DROP TABLE IF EXISTS "+ident.Sanitize()); err != nil {
		return 0, fmt.Errorf("drop %s.%s: %w", schema, table, err)
	}
	if _, err := tx.Exec(ctx, CreateTableSQL(schema, table, columns)); err != nil {
		return 0, fmt.Errorf("create %s.%s: %w", schema, table, err)
	}

	names := make([]string, len(columns))
	for i, c := range columns {
		names[i] = c.Name
	}

	start := time.Now()
	n, err := tx.CopyFrom(ctx, ident, names, source)
	metrics.RecordDBQuery(engineName, "copy", time.Since(start), err)
	if err != nil {
		return 0, fmt.Errorf("copy into %s.%s: %w", schema, table, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit replace %s.%s: %w", schema, table, err)
	}
	return n, nil
}

// CreateTableSQL renders the CREATE TABLE statement for a staging table.
func CreateTableSQL(schema, table string, columns []database.Column) string {
	defs := make([]string, len(columns))
	for i, c := range columns {
		defs[i] = pgx.Identifier{c.Name}.Sanitize() + " " + PostgresType(c.Type)
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", pgx.Identifier{schema, table}.Sanitize(), strings.Join(defs, ", "))
}

// rowSource streams database/sql rows into pgx.CopyFrom, converting each
// value to what the target column type accepts.
type rowSource struct {
	rows    *sql.Rows
	convert []converter
	scanned []any
	dest    []any
	values  []any
	err     error
}

// NewRowSource adapts rows whose columns are described by columns into a
// pgx.CopyFromSource. The returned slice from Values is reused between rows.
func NewRowSource(rows *sql.Rows, columns []database.Column) pgx.CopyFromSource {
	s := &rowSource{
		rows:    rows,
		convert: make([]converter, len(columns)),
		scanned: make([]any, len(columns)),
		dest:    make([]any, len(columns)),
		values:  make([]any, len(columns)),
	}
	for i, c := range columns {
		s.convert[i] = converterFor(PostgresType(c.Type))
		s.dest[i] = &s.scanned[i]
	}
	return s
}

// Next advances to the next row.
func (s *rowSource) Next() bool {
	if s.err != nil {
		return false
	}
	return s.rows.Next()
}

// Values returns the converted values of the current row.
func (s *rowSource) Values() ([]any, error) {
	if err := s.rows.Scan(s.dest...); err != nil {
		s.err = fmt.Errorf("scan source row: %w", err)
		return nil, s.err
	}
	for i, v := range s.scanned {
		s.values[i] = s.convert[i](v)
	}
	return s.values, nil
}

// Err returns the first error hit while reading rows.
func (s *rowSource) Err() error {
	if s.err != nil {
		return s.err
	}
	return s.rows.Err()
}
