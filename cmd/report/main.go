// Marketlens - E-commerce Warehouse and Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketlens

// Package main is the report stage: it queries the analytics schema, renders
// the ten report charts as PNG files and writes summary.json to DOCS_DIR.
//
//	DB_USER=etl DB_PASSWORD=secret DB_NAME=olist DOCS_DIR=docs ./report
package main

import (
	"context"
	"os"

	"github.com/tomtom215/marketlens/internal/config"
	"github.com/tomtom215/marketlens/internal/database"
	"github.com/tomtom215/marketlens/internal/logging"
	"github.com/tomtom215/marketlens/internal/report"
	"github.com/tomtom215/marketlens/internal/stage"
	"github.com/tomtom215/marketlens/internal/warehouse"
)

func main() {
	os.Exit(stage.Main("report", run))
}

func run(ctx context.Context, cfg *config.Config) error {
	url, err := cfg.Database.URL(warehouse.AnalyticsSchema)
	if err != nil {
		return err
	}

	wh, err := warehouse.Open(ctx, url)
	if err != nil {
		return err
	}
	defer database.CloseWithLog(wh, logging.Ctx(ctx), "warehouse")

	reporter := report.NewReporter(wh.DB(), cfg.Paths.DocsDir, cfg.Report.TopN)
	if _, err := reporter.Run(ctx); err != nil {
		return err
	}
	return nil
}
