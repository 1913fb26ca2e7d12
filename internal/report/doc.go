// Marketlens - E-commerce Warehouse and Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketlens

// Package report implements the analysis stage: ten aggregate queries over
// the analytics and staging schemas, one PNG figure per query and a
// summary.json with the ranked tables.
//
// Queries return typed rows from internal/models. Money is summed as
// PostgreSQL numeric and scanned into shopspring decimals. Figures are drawn
// with gonum/plot.
package report
