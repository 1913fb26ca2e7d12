// Marketlens - E-commerce Warehouse and Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketlens

// Package main is the load stage: it copies the processed Parquet tables into
// the PostgreSQL staging schema and runs the transform script that builds the
// analytics star schema.
//
// Each staging table is dropped and recreated, so the stage can be re-run.
// The transform script runs in a single transaction.
//
//	DB_USER=etl DB_PASSWORD=secret DB_NAME=olist ./load
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/tomtom215/marketlens/internal/config"
	"github.com/tomtom215/marketlens/internal/database"
	"github.com/tomtom215/marketlens/internal/logging"
	"github.com/tomtom215/marketlens/internal/stage"
	"github.com/tomtom215/marketlens/internal/warehouse"
)

func main() {
	os.Exit(stage.Main("load", run))
}

func run(ctx context.Context, cfg *config.Config) error {
	url, err := cfg.Database.URL(warehouse.StagingSchema)
	if err != nil {
		return err
	}

	duck, err := database.New(&cfg.DuckDB)
	if err != nil {
		return fmt.Errorf("open duckdb: %w", err)
	}
	defer database.CloseWithLog(duck, logging.Ctx(ctx), "duckdb")

	wh, err := warehouse.Open(ctx, url)
	if err != nil {
		return err
	}
	defer database.CloseWithLog(wh, logging.Ctx(ctx), "warehouse")

	loader := warehouse.NewLoader(duck, wh, cfg.Paths.ProcessedDir, cfg.Paths.TransformSQL, cfg.Extract.Tables)
	if _, err := loader.Run(ctx); err != nil {
		return err
	}
	return nil
}
