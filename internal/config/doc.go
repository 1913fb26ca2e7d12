// Marketlens - E-commerce Warehouse and Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketlens

/*
Package config provides centralized configuration management for the Marketlens
pipeline stages.

# Configuration Sources

Load layers three sources with Koanf v2, later layers winning:

 1. Built-in defaults (defaultConfig)
 2. Optional YAML file: CONFIG_PATH, config.yaml or config.yml
 3. Environment variables, through an explicit name mapping

A .env file in the working directory is merged into the process environment
before the env layer is read. Variables already set are never overridden.

# Configuration Structure

  - DatabaseConfig: PostgreSQL warehouse credentials (DB_USER, DB_PASSWORD, DB_HOST, DB_PORT, DB_NAME, DB_SSLMODE)
  - DuckDBConfig: embedded engine tuning (DUCKDB_MAX_MEMORY, DUCKDB_THREADS)
  - PathsConfig: RAW_DIR, PROCESSED_DIR, MODELS_DIR, DOCS_DIR, TRANSFORM_SQL
  - ExtractConfig: EXTRACT_TABLES (comma-separated)
  - RecommendConfig: CF_FACTORS, CF_EPOCHS, CF_LEARNING_RATE, CF_REGULARIZATION,
    CF_INIT_STD_DEV, CF_TEST_SIZE, CF_SEED, CONTENT_TOP_K, MODELS_KEEP
  - ReportConfig: REPORT_TOP_N
  - MetricsConfig: METRICS_TEXTFILE
  - LoggingConfig: LOG_LEVEL, LOG_FORMAT, LOG_CALLER

# Connection URLs

Warehouse credentials are only required by the stages that connect. They are
checked when the URL is built:

	dsn, err := cfg.Database.URL("staging")
	if errors.Is(err, config.ErrCredentialsIncomplete) {
	    // DB_USER, DB_PASSWORD or DB_NAME unset
	}

# Validation

Validate runs go-playground/validator struct tags through internal/validation,
then cross-field checks (table names, rating scale). Load fails on the first
invalid configuration.
*/
package config
