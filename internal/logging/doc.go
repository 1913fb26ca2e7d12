// Marketlens - E-commerce Warehouse and Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketlens

// Package logging provides centralized zerolog-based structured logging for Marketlens.
//
// Every stage binary (extract, load, report, train, recommend) logs through the
// global logger configured here. Output is JSON by default and human-readable
// console output when LOG_FORMAT=console.
//
// # Quick Start
//
//	logging.Init(logging.Config{
//	    Level:  cfg.Logging.Level,
//	    Format: cfg.Logging.Format,
//	})
//
//	ctx := logging.NewRunContext(context.Background(), "load")
//	logging.Ctx(ctx).Info().Str("table", "orders").Int64("rows", n).Msg("Inserted rows")
//
// # Run Correlation
//
// NewRunContext tags a context with the stage name and a fresh run ID (UUID).
// Ctx(ctx) adds both as fields, so all log lines of one batch run can be
// grouped together.
//
// # Configuration
//
// Environment Variables:
//
//	LOG_LEVEL   - Minimum log level: trace, debug, info, warn, error (default: info)
//	LOG_FORMAT  - Output format: json, console (default: json)
//	LOG_CALLER  - Include caller file:line: true, false (default: false)
//
// Always terminate log chains with .Msg() or .Send(); an unterminated event is
// never written.
package logging
