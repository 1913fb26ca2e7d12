// Marketlens - E-commerce Warehouse and Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketlens

package etl

import (
	"time"
)

// TableStats holds statistics about cleaning one raw table.
type TableStats struct {
	// Table is the raw table name (file stem).
	Table string

	// InputRows is the number of data rows in the source CSV.
	InputRows int64

	// OutputRows is the number of rows written to Parquet.
	OutputRows int64

	// Columns is the number of columns written.
	Columns int

	// DateColumns lists the (lowercased) columns parsed as timestamps.
	DateColumns []string

	// OutputPath is the Parquet file written.
	OutputPath string

	// StartTime is when cleaning started.
	StartTime time.Time

	// EndTime is when cleaning completed.
	EndTime time.Time
}

// DuplicatesDropped returns the number of exact duplicate rows removed.
func (s *TableStats) DuplicatesDropped() int64 {
	return s.InputRows - s.OutputRows
}

// Duration returns the time spent on the table.
func (s *TableStats) Duration() time.Duration {
	if s.EndTime.IsZero() {
		return time.Since(s.StartTime)
	}
	return s.EndTime.Sub(s.StartTime)
}

// RunStats holds statistics about one extract run.
type RunStats struct {
	Tables []*TableStats

	StartTime time.Time
	EndTime   time.Time
}

// Duration returns the duration of the run.
func (s *RunStats) Duration() time.Duration {
	if s.EndTime.IsZero() {
		return time.Since(s.StartTime)
	}
	return s.EndTime.Sub(s.StartTime)
}

// InputRows returns the sum of source rows over all cleaned tables.
func (s *RunStats) InputRows() int64 {
	var n int64
	for _, t := range s.Tables {
		n += t.InputRows
	}
	return n
}

// OutputRows returns the sum of written rows over all cleaned tables.
func (s *RunStats) OutputRows() int64 {
	var n int64
	for _, t := range s.Tables {
		n += t.OutputRows
	}
	return n
}
