// Marketlens - E-commerce Warehouse and Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketlens

package config

import "errors"

// ErrCredentialsIncomplete is returned when DB_USER, DB_PASSWORD or DB_NAME is missing.
var ErrCredentialsIncomplete = errors.New("database credentials incomplete")

// Config holds all pipeline configuration shared by the stage binaries.
type Config struct {
	Database  DatabaseConfig  `koanf:"database"`
	DuckDB    DuckDBConfig    `koanf:"duckdb"`
	Paths     PathsConfig     `koanf:"paths"`
	Extract   ExtractConfig   `koanf:"extract"`
	Recommend RecommendConfig `koanf:"recommend"`
	Report    ReportConfig    `koanf:"report"`
	Metrics   MetricsConfig   `koanf:"metrics"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// DatabaseConfig holds the PostgreSQL warehouse connection settings.
// Credentials are checked by URL, not by Validate, so stages that never
// touch the warehouse (extract) run without them.
type DatabaseConfig struct {
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	Host     string `koanf:"host"`
	Port     string `koanf:"port" validate:"omitempty,numeric"`
	Name     string `koanf:"name"`
	SSLMode  string `koanf:"sslmode" validate:"omitempty,oneof=disable allow prefer require verify-ca verify-full"`
}

// DuckDBConfig holds settings for the embedded engine used by extract and load.
type DuckDBConfig struct {
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads" validate:"gte=0"` // 0 = use runtime.NumCPU()
}

// PathsConfig holds the fixed directory layout of a pipeline checkout.
type PathsConfig struct {
	RawDir       string `koanf:"raw_dir" validate:"required"`
	ProcessedDir string `koanf:"processed_dir" validate:"required"`
	ModelsDir    string `koanf:"models_dir" validate:"required"`
	DocsDir      string `koanf:"docs_dir" validate:"required"`
	TransformSQL string `koanf:"transform_sql" validate:"required"`
}

// ExtractConfig lists the raw tables processed by extract and load, in order.
type ExtractConfig struct {
	Tables []string `koanf:"tables" validate:"min=1,dive,required"`
}

// RecommendConfig holds the modeling stage settings.
type RecommendConfig struct {
	CF      CFConfig      `koanf:"cf"`
	Content ContentConfig `koanf:"content"`

	// KeepVersions is how many saved versions of each model the train stage
	// keeps in MODELS_DIR. 0 keeps every version.
	KeepVersions int `koanf:"keep_versions" validate:"gte=0"`
}

// CFConfig holds the matrix factorization hyperparameters.
type CFConfig struct {
	Factors        int     `koanf:"factors" validate:"min=1"`
	Epochs         int     `koanf:"epochs" validate:"min=1"`
	LearningRate   float64 `koanf:"learning_rate" validate:"gt=0"`
	Regularization float64 `koanf:"regularization" validate:"gte=0"`
	InitStdDev     float64 `koanf:"init_std_dev" validate:"gt=0"`
	TestSize       float64 `koanf:"test_size" validate:"gt=0,lt=1"`
	Seed           int64   `koanf:"seed"`
	MinRating      float64 `koanf:"min_rating"`
	MaxRating      float64 `koanf:"max_rating"`
}

// ContentConfig holds the content-based model settings.
type ContentConfig struct {
	// TopK is the default result count for similar-product lookups.
	TopK int `koanf:"top_k" validate:"min=1"`
}

// ReportConfig holds the analysis stage settings.
type ReportConfig struct {
	TopN int `koanf:"top_n" validate:"min=1"`
}

// MetricsConfig holds metric export settings.
type MetricsConfig struct {
	// Textfile is written in node-exporter textfile format at the end of a run.
	// Empty disables the export.
	Textfile string `koanf:"textfile"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level" validate:"oneof=trace debug info warn warning error"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format" validate:"oneof=json console"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}
