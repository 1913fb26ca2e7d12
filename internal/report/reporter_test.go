// Marketlens - E-commerce Warehouse and Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketlens

package report

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomtom215/marketlens/internal/logging"
	"github.com/tomtom215/marketlens/internal/models"
)

// expectReport queues every report query with a small, consistent result.
func expectReport(mock sqlmock.Sqlmock, topN int) {
	jan := time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(reviewScoresQuery).WillReturnRows(
		sqlmock.NewRows([]string{"score", "cnt"}).AddRow(3, 1).AddRow(4, 1).AddRow(5, 2))
	mock.ExpectQuery(dailyOrdersQuery).WillReturnRows(
		sqlmock.NewRows([]string{"day", "orders"}).AddRow(jan, 1).AddRow(jan.AddDate(0, 0, 1), 1))
	mock.ExpectQuery(monthlyRevenueQuery).WillReturnRows(
		sqlmock.NewRows([]string{"month", "revenue"}).AddRow(jan, "275.50").AddRow(jan.AddDate(0, 1, 0), "105.50"))
	mock.ExpectQuery(deliveryDelaysQuery).WillReturnRows(
		sqlmock.NewRows([]string{"delay_days", "orders"}).AddRow(1, 1).AddRow(4, 1).AddRow(10, 1))
	mock.ExpectQuery(topCustomersByOrdersQuery).WithArgs(topN).WillReturnRows(
		sqlmock.NewRows([]string{"customer_id", "orders"}).AddRow("c1", 2).AddRow("c2", 1))
	mock.ExpectQuery(topCustomersBySpendQuery).WithArgs(topN).WillReturnRows(
		sqlmock.NewRows([]string{"customer_id", "total_spent"}).AddRow("c1", "250.50").AddRow("c3", "75.25"))
	mock.ExpectQuery(topCategoriesQuery).WithArgs(topN).WillReturnRows(
		sqlmock.NewRows([]string{"category", "sales_count"}).AddRow("beleza_saude", 2).AddRow("cama_mesa_banho", 2))
	mock.ExpectQuery(paymentTypesQuery).WillReturnRows(
		sqlmock.NewRows([]string{"payment_type", "cnt"}).AddRow("credit_card", 3).AddRow("boleto", 1))
	mock.ExpectQuery(topStatesQuery).WithArgs(topN).WillReturnRows(
		sqlmock.NewRows([]string{"customer_state", "customers"}).AddRow("SP", 2).AddRow("RJ", 1))
	mock.ExpectQuery(orderFrequencyQuery).WillReturnRows(
		sqlmock.NewRows([]string{"orders", "customers"}).AddRow(1, 2).AddRow(2, 1))
}

func TestReporterRun(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()
	expectReport(mock, 2)

	docs := filepath.Join(t.TempDir(), "docs")
	ctx := logging.NewRunContext(context.Background(), "report")

	summary, err := NewReporter(db, docs, 2).Run(ctx)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())

	assert.Equal(t, Figures, summary.Figures)
	assert.Equal(t, logging.RunIDFromContext(ctx), summary.RunID)
	for _, fig := range Figures {
		_, err := os.Stat(filepath.Join(docs, fig))
		assert.NoError(t, err, fig)
	}

	data, err := os.ReadFile(filepath.Join(docs, SummaryFile))
	require.NoError(t, err)
	var written models.ReportSummary
	require.NoError(t, json.Unmarshal(data, &written))
	assert.Equal(t, 2, written.TopN)
	require.Len(t, written.TopCustomersByOrders, 2)
	assert.Equal(t, "c1", written.TopCustomersByOrders[0].CustomerID)
	require.Len(t, written.TopCustomersBySpend, 2)
	assert.Equal(t, "250.50", written.TopCustomersBySpend[0].TotalSpent.StringFixed(2))
	require.Len(t, written.TopCategories, 2)
	assert.Equal(t, "beleza_saude", written.TopCategories[0].Category)
}

func TestReporterRun_QueryFailureAborts(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	boom := errors.New("connection reset")
	mock.ExpectQuery(reviewScoresQuery).WillReturnRows(sqlmock.NewRows([]string{"score", "cnt"}).AddRow(5, 1))
	mock.ExpectQuery(dailyOrdersQuery).WillReturnError(boom)

	docs := t.TempDir()
	_, err = NewReporter(db, docs, 10).Run(context.Background())
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), FigDailyOrders)

	_, statErr := os.Stat(filepath.Join(docs, SummaryFile))
	assert.True(t, os.IsNotExist(statErr), "summary must not be written after a failure")
}

func TestReporterRun_Canceled(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = NewReporter(db, t.TempDir(), 10).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
