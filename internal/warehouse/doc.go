// Marketlens - E-commerce Warehouse and Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketlens

// Package warehouse implements the load stage against PostgreSQL.
//
// The Loader streams each cleaned Parquet file out of DuckDB and replaces
// the matching staging table with the COPY protocol: drop, recreate and
// copy happen in one transaction per table, so a failed load leaves the
// previous table in place. It then runs the transform script, whose
// statements share a single transaction.
//
// Connections go through database/sql with the pgx driver. ReplaceTable
// borrows the native pgx connection for CopyFrom.
//
//	wh, err := warehouse.Open(ctx, url)
//	if err != nil {
//	    return err
//	}
//	defer wh.Close()
//
//	loader := warehouse.NewLoader(duck, wh, cfg.Paths.ProcessedDir, cfg.Paths.TransformSQL, cfg.Extract.Tables)
//	stats, err := loader.Run(ctx)
package warehouse
