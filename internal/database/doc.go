// Marketlens - E-commerce Warehouse and Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketlens

// Package database wraps the embedded DuckDB engine used by the extract and
// load stages.
//
// DuckDB runs in-memory and is never the system of record. It parses raw CSV
// files with type detection, deduplicates rows, writes Parquet and streams
// Parquet rows back out for the PostgreSQL COPY in the load stage:
//
//	db, err := database.New(&cfg.DuckDB)
//	defer db.Close()
//
//	cols, err := db.Columns(ctx, database.CSVRelation("data/raw/orders.csv"))
//	err = db.CopyToParquet(ctx, "SELECT DISTINCT * FROM ...", "data/processed/orders.parquet")
//	rows, err := db.QueryParquet(ctx, "data/processed/orders.parquet")
//
// Relations are SQL fragments usable after FROM: a table function built by
// CSVRelation or ParquetRelation, or a parenthesized subquery. Paths are
// quoted with QuoteLiteral; identifiers with QuoteIdentifier.
//
// The connection pool is limited to one connection. Statements carry no
// timeout of their own and run until the caller's context is done.
package database
