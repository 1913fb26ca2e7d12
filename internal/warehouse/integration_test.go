// Marketlens - E-commerce Warehouse and Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketlens

//go:build integration

package warehouse

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomtom215/marketlens/internal/config"
	"github.com/tomtom215/marketlens/internal/database"
	"github.com/tomtom215/marketlens/internal/sqlscript"
	"github.com/tomtom215/marketlens/internal/testinfra"
)

func TestLoader_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	testinfra.SkipIfNoDocker(t)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	pg, err := testinfra.NewPostgresContainer(ctx)
	require.NoError(t, err)
	defer testinfra.CleanupContainer(t, ctx, pg)

	duck, err := database.New(&config.DuckDBConfig{Threads: 1})
	require.NoError(t, err)
	defer duck.Close()

	processed := t.TempDir()
	require.NoError(t, testinfra.WriteStagingFixture(ctx, duck, processed))

	wh, err := Open(ctx, pg.URL)
	require.NoError(t, err)
	defer wh.Close()

	loader := NewLoader(duck, wh, processed, "../../sql/dml/transform_analytics.sql", testinfra.FixtureTables)
	stats, err := loader.Run(ctx)
	require.NoError(t, err)
	assert.Len(t, stats.Tables, len(testinfra.FixtureTables))
	assert.Positive(t, stats.Statements)

	count := func(q string) int {
		var n int
		require.NoError(t, wh.DB().QueryRowContext(ctx, q).Scan(&n))
		return n
	}

	assert.Equal(t, 4, count("SELECT count(*) FROM staging.orders"))
	assert.Equal(t, 5, count("SELECT count(*) FROM analytics.fact_order_item"))
	assert.Equal(t, 3, count("SELECT count(*) FROM analytics.dim_customers"))
	assert.Equal(t, 34, count("SELECT count(*) FROM analytics.dim_date"))
	assert.Equal(t, 1, count("SELECT count(*) FROM analytics.fact_order_item WHERE review_score IS NULL"))

	var payment string
	var score int
	require.NoError(t, wh.DB().QueryRowContext(ctx,
		"SELECT payment_type, review_score FROM analytics.fact_order_item WHERE order_id = 'o1' AND order_item_id = 1",
	).Scan(&payment, &score))
	assert.Equal(t, "credit_card", payment)
	assert.Equal(t, 5, score)

	// A second run replaces everything instead of appending.
	_, err = loader.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, count("SELECT count(*) FROM staging.orders"))
	assert.Equal(t, 5, count("SELECT count(*) FROM analytics.fact_order_item"))
}

func TestExecStatements_Integration_Rollback(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	testinfra.SkipIfNoDocker(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pg, err := testinfra.NewPostgresContainer(ctx)
	require.NoError(t, err)
	defer testinfra.CleanupContainer(t, ctx, pg)

	wh, err := Open(ctx, pg.URL)
	require.NoError(t, err)
	defer wh.Close()

	stmts := sqlscript.Parse("CREATE TABLE kept (id int);\nINSERT INTO missing VALUES (1);")
	require.Error(t, wh.ExecStatements(ctx, stmts))

	var exists bool
	require.NoError(t, wh.DB().QueryRowContext(ctx, "SELECT to_regclass('public.kept') IS NOT NULL").Scan(&exists))
	assert.False(t, exists, "failed transform must leave no partial changes")
}
