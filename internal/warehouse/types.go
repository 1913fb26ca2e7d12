// Marketlens - E-commerce Warehouse and Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketlens

package warehouse

import (
	"fmt"
	"strings"

	duckdb "github.com/duckdb/duckdb-go/v2"
)

// PostgreSQL column types produced by PostgresType.
const (
	pgText        = "text"
	pgBigint      = "bigint"
	pgInteger     = "integer"
	pgSmallint    = "smallint"
	pgDouble      = "double precision"
	pgReal        = "real"
	pgBoolean     = "boolean"
	pgTimestamp   = "timestamp"
	pgTimestampTZ = "timestamptz"
	pgDate        = "date"
	pgBytea       = "bytea"
)

// duckToPostgres maps base DuckDB type names to PostgreSQL column types.
var duckToPostgres = map[string]string{
	"VARCHAR":                  pgText,
	"TEXT":                     pgText,
	"STRING":                   pgText,
	"UUID":                     pgText,
	"BIGINT":                   pgBigint,
	"INT8":                     pgBigint,
	"UINTEGER":                 pgBigint,
	"INTEGER":                  pgInteger,
	"INT4":                     pgInteger,
	"INT":                      pgInteger,
	"USMALLINT":                pgInteger,
	"SMALLINT":                 pgSmallint,
	"INT2":                     pgSmallint,
	"TINYINT":                  pgSmallint,
	"UTINYINT":                 pgSmallint,
	"DOUBLE":                   pgDouble,
	"FLOAT8":                   pgDouble,
	"DECIMAL":                  pgDouble,
	"NUMERIC":                  pgDouble,
	"FLOAT":                    pgReal,
	"FLOAT4":                   pgReal,
	"REAL":                     pgReal,
	"BOOLEAN":                  pgBoolean,
	"BOOL":                     pgBoolean,
	"TIMESTAMP":                pgTimestamp,
	"DATETIME":                 pgTimestamp,
	"TIMESTAMP_S":              pgTimestamp,
	"TIMESTAMP_MS":             pgTimestamp,
	"TIMESTAMP_NS":             pgTimestamp,
	"TIMESTAMP WITH TIME ZONE": pgTimestampTZ,
	"TIMESTAMPTZ":              pgTimestampTZ,
	"DATE":                     pgDate,
	"BLOB":                     pgBytea,
}

// PostgresType returns the PostgreSQL column type for a DuckDB type name.
// Type parameters are ignored (DECIMAL(18,3) maps like DECIMAL); anything
// unknown is stored as text.
func PostgresType(duckType string) string {
	base := strings.ToUpper(strings.TrimSpace(duckType))
	if i := strings.IndexByte(base, '('); i >= 0 {
		base = strings.TrimSpace(base[:i])
	}
	if pg, ok := duckToPostgres[base]; ok {
		return pg
	}
	return pgText
}

// converter adapts a value scanned from DuckDB to what pgx encodes for a column type.
type converter func(any) any

// converterFor returns the value converter for a PostgreSQL column type.
func converterFor(pgType string) converter {
	switch pgType {
	case pgText:
		return toText
	case pgDouble:
		return toFloat64
	case pgReal:
		return toFloat32
	default:
		return passThrough
	}
}

func passThrough(v any) any {
	return v
}

func toText(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case string:
		return x
	case []byte:
		return string(x)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

func toFloat64(v any) any {
	switch x := v.(type) {
	case float32:
		return float64(x)
	case duckdb.Decimal:
		return x.Float64()
	case int64:
		return float64(x)
	case int32:
		return float64(x)
	default:
		return v
	}
}

func toFloat32(v any) any {
	if x, ok := v.(float64); ok {
		return float32(x)
	}
	return v
}
