// Marketlens - E-commerce Warehouse and Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketlens

package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Column describes one column of a relation as reported by DESCRIBE.
type Column struct {
	Name string
	Type string
}

// QuoteIdentifier quotes an SQL identifier, doubling embedded quotes.
func QuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// QuoteLiteral quotes an SQL string literal, doubling embedded quotes.
func QuoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// CSVRelation returns a relation reading a CSV file with header and type detection.
func CSVRelation(path string) string {
	return fmt.Sprintf("read_csv_auto(%s, header = true)", QuoteLiteral(path))
}

// ParquetRelation returns a relation reading a Parquet file.
func ParquetRelation(path string) string {
	return fmt.Sprintf("read_parquet(%s)", QuoteLiteral(path))
}

// Columns returns the column names and DuckDB types of a relation (a table
// function such as CSVRelation or a parenthesized subquery).
func (db *DB) Columns(ctx context.Context, relation string) ([]Column, error) {
	rows, err := db.conn.QueryContext(ctx, "DESCRIBE SELECT * FROM "+relation)
	if err != nil {
		return nil, fmt.Errorf("failed to describe %s: %w", relation, err)
	}
	defer closeQuietly(rows)

	names, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read describe header: %w", err)
	}
	if len(names) < 2 {
		return nil, fmt.Errorf("unexpected describe output: %d columns", len(names))
	}

	// DESCRIBE yields column_name, column_type, null, key, default, extra.
	var columns []Column
	values := make([]any, len(names))
	for rows.Next() {
		var name, typ string
		values[0] = &name
		values[1] = &typ
		for i := 2; i < len(values); i++ {
			values[i] = new(any)
		}
		if err := rows.Scan(values...); err != nil {
			return nil, fmt.Errorf("failed to scan column description: %w", err)
		}
		columns = append(columns, Column{Name: name, Type: typ})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating column descriptions: %w", err)
	}

	return columns, nil
}

// CountRows returns the number of rows in a relation.
func (db *DB) CountRows(ctx context.Context, relation string) (int64, error) {
	var n int64
	if err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+relation).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count rows of %s: %w", relation, err)
	}
	return n, nil
}

// CopyToParquet writes the result of query to a Parquet file at path,
// replacing any existing file.
func (db *DB) CopyToParquet(ctx context.Context, query, path string) error {
	stmt := fmt.Sprintf("COPY (%s) TO %s (FORMAT PARQUET)", query, QuoteLiteral(path))
	if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("failed to write parquet %s: %w", path, err)
	}
	return nil
}

// QueryParquet opens a streaming cursor over every row of a Parquet file.
// The caller must close the returned rows. The cursor lives as long as ctx.
func (db *DB) QueryParquet(ctx context.Context, path string) (*sql.Rows, error) {
	rows, err := db.conn.QueryContext(ctx, "SELECT * FROM "+ParquetRelation(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet %s: %w", path, err)
	}
	return rows, nil
}
