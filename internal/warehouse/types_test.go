// Marketlens - E-commerce Warehouse and Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketlens

package warehouse

import (
	"math/big"
	"testing"
	"time"

	duckdb "github.com/duckdb/duckdb-go/v2"
	"github.com/stretchr/testify/assert"
)

func TestPostgresType(t *testing.T) {
	tests := []struct {
		duck string
		want string
	}{
		{"VARCHAR", "text"},
		{"varchar", "text"},
		{"BIGINT", "bigint"},
		{"INTEGER", "integer"},
		{"SMALLINT", "smallint"},
		{"TINYINT", "smallint"},
		{"DOUBLE", "double precision"},
		{"FLOAT", "real"},
		{"DECIMAL(18,3)", "double precision"},
		{"BOOLEAN", "boolean"},
		{"TIMESTAMP", "timestamp"},
		{"TIMESTAMP WITH TIME ZONE", "timestamptz"},
		{"DATE", "date"},
		{"BLOB", "bytea"},
		{"HUGEINT", "text"},
		{"UBIGINT", "text"},
		{"STRUCT(a INTEGER)", "text"},
		{"", "text"},
	}

	for _, tt := range tests {
		t.Run(tt.duck, func(t *testing.T) {
			if got := PostgresType(tt.duck); got != tt.want {
				t.Errorf("PostgresType(%q) = %q, want %q", tt.duck, got, tt.want)
			}
		})
	}
}

func TestToText(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want any
	}{
		{"nil", nil, nil},
		{"string", "abc", "abc"},
		{"bytes", []byte("xyz"), "xyz"},
		{"int", int64(42), "42"},
		{"stringer", time.Duration(1500) * time.Millisecond, "1.5s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := toText(tt.in); got != tt.want {
				t.Errorf("toText(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestToFloat(t *testing.T) {
	assert.Equal(t, float64(1.5), toFloat64(float32(1.5)))
	assert.Equal(t, float64(7), toFloat64(int64(7)))
	assert.Equal(t, float64(3), toFloat64(int32(3)))
	assert.Equal(t, 2.25, toFloat64(2.25))
	assert.Nil(t, toFloat64(nil))

	dec := duckdb.Decimal{Width: 18, Scale: 2, Value: big.NewInt(1234)}
	got, ok := toFloat64(dec).(float64)
	if assert.True(t, ok, "decimal converts to float64") {
		assert.InDelta(t, 12.34, got, 1e-9)
	}

	assert.Equal(t, float32(0.5), toFloat32(0.5))
	assert.Equal(t, float32(0.25), toFloat32(float32(0.25)))
}

func TestConverterFor(t *testing.T) {
	assert.Equal(t, "x", converterFor("text")([]byte("x")))
	assert.Equal(t, float64(2), converterFor("double precision")(int64(2)))
	assert.Equal(t, int64(2), converterFor("bigint")(int64(2)))
	ts := time.Date(2018, 1, 2, 3, 4, 5, 0, time.UTC)
	assert.Equal(t, ts, converterFor("timestamp")(ts))
}
