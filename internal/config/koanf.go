// Marketlens - E-commerce Warehouse and Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketlens

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// DotEnvFile is loaded into the process environment before the env layer is read.
const DotEnvFile = ".env"

// DefaultTables is the raw table set of the olist public dataset, in load order.
var DefaultTables = []string{
	"orders",
	"order_items",
	"order_payments",
	"order_reviews",
	"customers",
	"products",
	"sellers",
	"geolocation",
}

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Host: "localhost",
			Port: "5432",
		},
		DuckDB: DuckDBConfig{
			MaxMemory: "2GB",
			Threads:   0,
		},
		Paths: PathsConfig{
			RawDir:       "data/raw/olist_public",
			ProcessedDir: "data/processed",
			ModelsDir:    "models",
			DocsDir:      "docs",
			TransformSQL: "sql/dml/transform_analytics.sql",
		},
		Extract: ExtractConfig{
			Tables: append([]string(nil), DefaultTables...),
		},
		Recommend: RecommendConfig{
			CF: CFConfig{
				Factors:        50,
				Epochs:         20,
				LearningRate:   0.005,
				Regularization: 0.02,
				InitStdDev:     0.1,
				TestSize:       0.2,
				Seed:           42,
				MinRating:      1,
				MaxRating:      5,
			},
			Content: ContentConfig{
				TopK: 5,
			},
			KeepVersions: 5,
		},
		Report: ReportConfig{
			TopN: 10,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Load loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
//
// A .env file in the working directory is merged into the process
// environment first; variables that are already set win.
func Load() (*Config, error) {
	if err := loadDotEnv(DotEnvFile); err != nil {
		return nil, err
	}

	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// DB_USER -> database.user, CF_FACTORS -> recommend.cf.factors
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadDotEnv merges a dotenv file into the environment. A missing file is not an error.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("failed to load %s: %w", path, err)
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"extract.tables",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars come in as strings, but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		// Already a slice (defaults or YAML file)
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to koanf config paths.
var envMappings = map[string]string{
	// Warehouse connection
	"db_user":     "database.user",
	"db_password": "database.password",
	"db_host":     "database.host",
	"db_port":     "database.port",
	"db_name":     "database.name",
	"db_sslmode":  "database.sslmode",

	// Embedded engine
	"duckdb_max_memory": "duckdb.max_memory",
	"duckdb_threads":    "duckdb.threads",

	// Directory layout
	"raw_dir":       "paths.raw_dir",
	"processed_dir": "paths.processed_dir",
	"models_dir":    "paths.models_dir",
	"docs_dir":      "paths.docs_dir",
	"transform_sql": "paths.transform_sql",

	"extract_tables": "extract.tables",

	// Recommenders
	"cf_factors":        "recommend.cf.factors",
	"cf_epochs":         "recommend.cf.epochs",
	"cf_learning_rate":  "recommend.cf.learning_rate",
	"cf_regularization": "recommend.cf.regularization",
	"cf_init_std_dev":   "recommend.cf.init_std_dev",
	"cf_test_size":      "recommend.cf.test_size",
	"cf_seed":           "recommend.cf.seed",
	"content_top_k":     "recommend.content.top_k",
	"models_keep":       "recommend.keep_versions",

	"report_top_n": "report.top_n",

	"metrics_textfile": "metrics.textfile",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf config paths.
// Variables without an explicit mapping are ignored so that unrelated process
// environment (PATH, HOME) never leaks into the configuration tree.
//
// Examples:
//   - DB_USER -> database.user
//   - CF_LEARNING_RATE -> recommend.cf.learning_rate
//   - LOG_LEVEL -> logging.level
func envTransformFunc(key string) string {
	if path, ok := envMappings[strings.ToLower(key)]; ok {
		return path
	}
	return ""
}
