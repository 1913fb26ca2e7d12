// Marketlens - E-commerce Warehouse and Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketlens

package metrics

import (
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Row count kinds used as the "kind" label of RowsProcessed.
const (
	RowsInput      = "input"
	RowsOutput     = "output"
	RowsDuplicates = "duplicates"
	RowsLoaded     = "loaded"
)

var (
	// Stage Metrics
	StageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pipeline_stage_duration_seconds",
			Help:    "Duration of a pipeline stage run in seconds",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600, 1800},
		},
		[]string{"stage"},
	)

	StageRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_stage_runs_total",
			Help: "Total number of pipeline stage runs",
		},
		[]string{"stage", "status"}, // status: "success", "failure"
	)

	StageLastSuccess = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "pipeline_stage_last_success_timestamp",
			Help: "Unix timestamp of the last successful stage run",
		},
		[]string{"stage"},
	)

	// Table Metrics
	RowsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_rows_total",
			Help: "Rows handled per table",
		},
		[]string{"stage", "table", "kind"}, // kind: input, output, duplicates, loaded
	)

	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Duration of database statements in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60, 300},
		},
		[]string{"engine", "operation"}, // engine: "duckdb", "postgres"
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_query_errors_total",
			Help: "Total number of failed database statements",
		},
		[]string{"engine", "operation", "error_type"},
	)

	TransformStatements = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "warehouse_transform_statements_total",
			Help: "Transform script statements executed",
		},
	)

	// Report Metrics
	ChartsRendered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "report_charts_rendered_total",
			Help: "Charts written to the docs directory",
		},
		[]string{"figure"},
	)

	// Model Metrics
	ModelTrainingDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommend_training_duration_seconds",
			Help:    "Model training duration in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 300, 600},
		},
		[]string{"model"},
	)

	ModelTestRMSE = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_cf_test_rmse",
			Help: "RMSE of the collaborative filtering model on the held-out test split",
		},
	)

	ModelRatings = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "recommend_cf_ratings",
			Help: "Ratings in each split of the last CF training run",
		},
		[]string{"split"}, // "train", "test"
	)

	ModelItems = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "recommend_model_items",
			Help: "Number of items known to a trained model",
		},
		[]string{"model"},
	)
)

// RecordStage records the outcome of one stage run.
func RecordStage(stage string, duration time.Duration, err error) {
	StageDuration.WithLabelValues(stage).Observe(duration.Seconds())
	if err != nil {
		StageRunsTotal.WithLabelValues(stage, "failure").Inc()
		return
	}
	StageRunsTotal.WithLabelValues(stage, "success").Inc()
	StageLastSuccess.WithLabelValues(stage).Set(float64(time.Now().Unix()))
}

// RecordRows adds n rows of the given kind for a table.
func RecordRows(stage, table, kind string, n int64) {
	if n <= 0 {
		return
	}
	RowsProcessed.WithLabelValues(stage, table, kind).Add(float64(n))
}

// RecordDBQuery records a database statement metric
func RecordDBQuery(engine, operation string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(engine, operation).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(engine, operation, errorType(err)).Inc()
	}
}

// errorType reduces an error to a short label value.
func errorType(err error) string {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "context canceled"), strings.Contains(msg, "deadline exceeded"):
		return "canceled"
	case strings.Contains(msg, "connection refused"), strings.Contains(msg, "connect:"):
		return "connection"
	case strings.Contains(msg, "syntax error"), strings.Contains(msg, "Parser Error"):
		return "syntax"
	case strings.Contains(msg, "does not exist"), strings.Contains(msg, "No files found"):
		return "missing_object"
	default:
		return "other"
	}
}

// RecordTransformStatement counts one executed transform statement.
func RecordTransformStatement() {
	TransformStatements.Inc()
}

// RecordChart counts one rendered chart.
func RecordChart(figure string) {
	ChartsRendered.WithLabelValues(figure).Inc()
}

// RecordModelTraining records training time and catalog size of a model.
func RecordModelTraining(model string, duration time.Duration, items int) {
	ModelTrainingDuration.WithLabelValues(model).Observe(duration.Seconds())
	ModelItems.WithLabelValues(model).Set(float64(items))
}

// SetCFEvaluation publishes the held-out evaluation of the CF model.
func SetCFEvaluation(rmse float64, trainRatings, testRatings int) {
	ModelTestRMSE.Set(rmse)
	ModelRatings.WithLabelValues("train").Set(float64(trainRatings))
	ModelRatings.WithLabelValues("test").Set(float64(testRatings))
}

// WriteTextfile writes the default registry to path in the node-exporter
// textfile collector format. An empty path is a no-op.
func WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
