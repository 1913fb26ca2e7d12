// Marketlens - E-commerce Warehouse and Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketlens

// Package etl implements the extract stage: raw olist CSV files are cleaned
// and written as Parquet for the load stage.
//
// For each table the extractor:
//   - reads <raw>/<table>.csv with DuckDB type detection
//   - parses columns whose name contains "date" or "timestamp" as TIMESTAMP,
//     turning unparseable values into NULL
//   - lowercases column names
//   - drops exact duplicate rows, keeping the first occurrence in file order
//   - writes <processed>/<table>.parquet
//
// Tables are cleaned sequentially and the run stops at the first failure.
//
//	ex := etl.NewExtractor(db, cfg.Paths.RawDir, cfg.Paths.ProcessedDir, cfg.Extract.Tables)
//	stats, err := ex.Run(ctx)
package etl
