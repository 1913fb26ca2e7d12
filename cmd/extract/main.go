// Marketlens - E-commerce Warehouse and Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketlens

// Package main is the extract stage: it cleans the raw olist CSV tables into
// Parquet files.
//
// For each configured table it reads RAW_DIR/<table>.csv, parses date and
// timestamp columns, lowercases column names, drops exact duplicate rows and
// writes PROCESSED_DIR/<table>.parquet.
//
//	RAW_DIR=data/raw/olist_public PROCESSED_DIR=data/processed ./extract
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/tomtom215/marketlens/internal/config"
	"github.com/tomtom215/marketlens/internal/database"
	"github.com/tomtom215/marketlens/internal/etl"
	"github.com/tomtom215/marketlens/internal/logging"
	"github.com/tomtom215/marketlens/internal/stage"
)

func main() {
	os.Exit(stage.Main("extract", run))
}

func run(ctx context.Context, cfg *config.Config) error {
	db, err := database.New(&cfg.DuckDB)
	if err != nil {
		return fmt.Errorf("open duckdb: %w", err)
	}
	defer database.CloseWithLog(db, logging.Ctx(ctx), "duckdb")

	extractor := etl.NewExtractor(db, cfg.Paths.RawDir, cfg.Paths.ProcessedDir, cfg.Extract.Tables)
	if _, err := extractor.Run(ctx); err != nil {
		return err
	}
	return nil
}
