// Marketlens - E-commerce Warehouse and Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketlens

//go:build integration

package report

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomtom215/marketlens/internal/config"
	"github.com/tomtom215/marketlens/internal/database"
	"github.com/tomtom215/marketlens/internal/testinfra"
	"github.com/tomtom215/marketlens/internal/warehouse"
)

func TestReporter_Integration(t *testing.T) {
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

	wh, err := warehouse.Open(ctx, pg.URL)
	require.NoError(t, err)
	defer wh.Close()

	_, err = warehouse.NewLoader(duck, wh, processed, "../../sql/dml/transform_analytics.sql", testinfra.FixtureTables).Run(ctx)
	require.NoError(t, err)

	q := NewQueries(wh.DB())

	scores, err := q.ReviewScores(ctx)
	require.NoError(t, err)
	var reviewed int64
	for _, s := range scores {
		reviewed += s.Count
	}
	assert.Equal(t, int64(4), reviewed, "the unreviewed order item is skipped")

	delays, err := q.DeliveryDelays(ctx)
	require.NoError(t, err)
	require.Len(t, delays, 3)
	assert.Equal(t, 1, delays[0].Days)
	assert.Equal(t, 4, delays[1].Days)
	assert.Equal(t, 10, delays[2].Days)

	months, err := q.MonthlyRevenue(ctx)
	require.NoError(t, err)
	require.Len(t, months, 2)
	assert.Equal(t, "275.50", months[0].Revenue.StringFixed(2))
	assert.Equal(t, "105.50", months[1].Revenue.StringFixed(2))

	shares, err := q.PaymentTypes(ctx)
	require.NoError(t, err)
	require.Len(t, shares, 2)
	assert.Equal(t, "credit_card", shares[0].PaymentType)
	assert.Equal(t, 80.0, shares[0].Percent)

	summary, err := NewReporter(wh.DB(), t.TempDir(), 10).Run(ctx)
	require.NoError(t, err)

	require.NotEmpty(t, summary.TopCustomersByOrders)
	assert.Equal(t, "c1", summary.TopCustomersByOrders[0].CustomerID)
	assert.Equal(t, int64(2), summary.TopCustomersByOrders[0].Orders)
	require.NotEmpty(t, summary.TopCustomersBySpend)
	assert.Equal(t, "250.50", summary.TopCustomersBySpend[0].TotalSpent.StringFixed(2))
	require.Len(t, summary.TopCategories, 3)
	assert.Equal(t, "beleza_saude", summary.TopCategories[0].Category)
	assert.Equal(t, "", summary.TopCategories[2].Category)
}
