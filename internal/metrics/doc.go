// Marketlens - E-commerce Warehouse and Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketlens

/*
Package metrics provides Prometheus instrumentation for the pipeline stages.

The stages are batch jobs, so nothing is scraped. Instead each binary calls
WriteTextfile at the end of a run when METRICS_TEXTFILE is set, and the file is
picked up by the node-exporter textfile collector.

# Available Metrics

Stage Metrics:
  - pipeline_stage_duration_seconds: Stage run time (histogram)
    Labels: stage
  - pipeline_stage_runs_total: Stage runs (counter)
    Labels: stage, status
  - pipeline_stage_last_success_timestamp: Last successful run (gauge)
    Labels: stage
  - pipeline_rows_total: Rows per table (counter)
    Labels: stage, table, kind (input, output, duplicates, loaded)

Database Metrics:
  - db_query_duration_seconds: Statement time (histogram)
    Labels: engine (duckdb, postgres), operation
  - db_query_errors_total: Failed statements (counter)
    Labels: engine, operation, error_type
  - warehouse_transform_statements_total: Transform statements executed (counter)

Report Metrics:
  - report_charts_rendered_total: Charts written (counter)
    Labels: figure

Model Metrics:
  - recommend_training_duration_seconds: Training time (histogram)
    Labels: model
  - recommend_cf_test_rmse: Held-out RMSE of the CF model (gauge)
  - recommend_cf_ratings: Ratings per split (gauge)
    Labels: split
  - recommend_model_items: Items known to a model (gauge)
    Labels: model

# Usage

	start := time.Now()
	stats, err := extractor.Run(ctx)
	metrics.RecordStage("extract", time.Since(start), err)
	if err := metrics.WriteTextfile(cfg.Metrics.Textfile); err != nil {
	    logging.Ctx(ctx).Warn().Err(err).Msg("Failed to write metrics textfile")
	}
*/
package metrics
