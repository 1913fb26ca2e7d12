// Marketlens - E-commerce Warehouse and Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketlens

/*
Package models defines the typed rows produced by the report stage.

Each report query scans into one of these types, and ReportSummary is the
shape of summary.json. Monetary amounts are shopspring decimals so sums
over many order items stay exact; they marshal as JSON strings.
*/
package models
