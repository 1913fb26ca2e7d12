// Marketlens - E-commerce Warehouse and Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketlens

package database

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// mockCloser implements io.Closer for testing
type mockCloser struct {
	closed bool
	err    error
}

func (m *mockCloser) Close() error {
	m.closed = true
	return m.err
}

func TestCloseWithLog(t *testing.T) {
	t.Run("nil closer does not panic", func(t *testing.T) {
		var buf bytes.Buffer
		logger := zerolog.New(&buf)

		CloseWithLog(nil, &logger, "test")

		if buf.Len() > 0 {
			t.Errorf("Expected no log output for nil closer, got: %s", buf.String())
		}
	})

	t.Run("successful close does not log", func(t *testing.T) {
		var buf bytes.Buffer
		logger := zerolog.New(&buf)

		closer := &mockCloser{}
		CloseWithLog(closer, &logger, "test resource")

		if !closer.closed {
			t.Error("Expected closer to be closed")
		}
		if buf.Len() > 0 {
			t.Errorf("Expected no log output for successful close, got: %s", buf.String())
		}
	})

	t.Run("error during close is logged", func(t *testing.T) {
		var buf bytes.Buffer
		logger := zerolog.New(&buf)

		closer := &mockCloser{err: errors.New("close failed: connection reset")}
		CloseWithLog(closer, &logger, "parquet cursor")

		logOutput := buf.String()
		if !strings.Contains(logOutput, "Failed to close resource") {
			t.Errorf("Expected log message, got: %s", logOutput)
		}
		if !strings.Contains(logOutput, "parquet cursor") {
			t.Errorf("Expected resource type in log, got: %s", logOutput)
		}
		if !strings.Contains(logOutput, "close failed: connection reset") {
			t.Errorf("Expected error message in log, got: %s", logOutput)
		}
	})

	t.Run("nil logger falls back to global logger", func(t *testing.T) {
		closer := &mockCloser{err: errors.New("close failed")}

		CloseWithLog(closer, nil, "test resource")

		if !closer.closed {
			t.Error("Expected closer to be closed")
		}
	})
}

func TestCloseQuietly(t *testing.T) {
	t.Run("nil closer does not panic", func(t *testing.T) {
		closeQuietly(nil)
	})

	t.Run("error is ignored", func(t *testing.T) {
		closer := &mockCloser{err: errors.New("ignored")}
		closeQuietly(closer)

		if !closer.closed {
			t.Error("Expected closer to be closed")
		}
	})
}

func TestQuoting(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"identifier", QuoteIdentifier("order_id"), `"order_id"`},
		{"identifier with quote", QuoteIdentifier(`we"ird`), `"we""ird"`},
		{"literal", QuoteLiteral("data/raw/orders.csv"), `'data/raw/orders.csv'`},
		{"literal with quote", QuoteLiteral("o'brien.csv"), `'o''brien.csv'`},
		{"csv relation", CSVRelation("a.csv"), `read_csv_auto('a.csv', header = true)`},
		{"parquet relation", ParquetRelation("a.parquet"), `read_parquet('a.parquet')`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %s, want %s", tt.got, tt.want)
			}
		})
	}
}
