// Marketlens - E-commerce Warehouse and Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketlens

package report

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/marketlens/internal/logging"
	"github.com/tomtom215/marketlens/internal/models"
)

// SummaryFile is the name of the JSON summary written next to the figures.
const SummaryFile = "summary.json"

// Reporter runs every report query, renders its figure and writes the summary.
type Reporter struct {
	queries  *Queries
	renderer *Renderer
	docsDir  string
	topN     int
}

// NewReporter creates a reporter over a warehouse connection. Figures and
// summary.json are written into docsDir; ranked charts keep topN rows.
func NewReporter(db *sql.DB, docsDir string, topN int) *Reporter {
	return &Reporter{
		queries:  NewQueries(db),
		renderer: NewRenderer(docsDir),
		docsDir:  docsDir,
		topN:     topN,
	}
}

// Run renders all ten figures in order and writes summary.json.
// The first failing query or figure aborts the run.
func (r *Reporter) Run(ctx context.Context) (*models.ReportSummary, error) {
	log := logging.Ctx(ctx)

	if err := os.MkdirAll(r.docsDir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create docs directory: %w", err)
	}

	summary := &models.ReportSummary{
		RunID: logging.RunIDFromContext(ctx),
		TopN:  r.topN,
	}

	steps := []struct {
		name string
		run  func() (string, error)
	}{
		{FigReviewScores, func() (string, error) {
			rows, err := r.queries.ReviewScores(ctx)
			if err != nil {
				return "", err
			}
			return r.renderer.RenderReviewScores(rows)
		}},
		{FigDailyOrders, func() (string, error) {
			rows, err := r.queries.DailyOrders(ctx)
			if err != nil {
				return "", err
			}
			return r.renderer.RenderDailyOrders(rows)
		}},
		{FigMonthlyRevenue, func() (string, error) {
			rows, err := r.queries.MonthlyRevenue(ctx)
			if err != nil {
				return "", err
			}
			log.Info().Str("total_revenue", models.TotalRevenue(rows).StringFixed(2)).Int("months", len(rows)).Msg("Monthly revenue")
			return r.renderer.RenderMonthlyRevenue(rows)
		}},
		{FigDeliveryDelay, func() (string, error) {
			rows, err := r.queries.DeliveryDelays(ctx)
			if err != nil {
				return "", err
			}
			return r.renderer.RenderDeliveryDelays(rows)
		}},
		{FigTopCustomersOrders, func() (string, error) {
			rows, err := r.queries.TopCustomersByOrders(ctx, r.topN)
			if err != nil {
				return "", err
			}
			summary.TopCustomersByOrders = rows
			return r.renderer.RenderTopCustomersByOrders(rows)
		}},
		{FigTopCustomersSpend, func() (string, error) {
			rows, err := r.queries.TopCustomersBySpend(ctx, r.topN)
			if err != nil {
				return "", err
			}
			summary.TopCustomersBySpend = rows
			return r.renderer.RenderTopCustomersBySpend(rows)
		}},
		{FigTopCategories, func() (string, error) {
			rows, err := r.queries.TopCategories(ctx, r.topN)
			if err != nil {
				return "", err
			}
			summary.TopCategories = rows
			return r.renderer.RenderTopCategories(rows)
		}},
		{FigPaymentDistribution, func() (string, error) {
			rows, err := r.queries.PaymentTypes(ctx)
			if err != nil {
				return "", err
			}
			return r.renderer.RenderPaymentTypes(rows)
		}},
		{FigCustomerStates, func() (string, error) {
			rows, err := r.queries.TopStates(ctx, r.topN)
			if err != nil {
				return "", err
			}
			return r.renderer.RenderCustomerStates(rows)
		}},
		{FigOrderFrequency, func() (string, error) {
			rows, err := r.queries.OrderFrequency(ctx)
			if err != nil {
				return "", err
			}
			return r.renderer.RenderOrderFrequency(rows)
		}},
	}

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path, err := step.run()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.name, err)
		}
		summary.Figures = append(summary.Figures, step.name)
		log.Info().Str("figure", path).Msg("Rendered figure")
	}

	summary.GeneratedAt = time.Now().UTC()
	if err := WriteSummary(filepath.Join(r.docsDir, SummaryFile), summary); err != nil {
		return nil, err
	}

	logSummary(ctx, summary)
	return summary, nil
}

// WriteSummary writes s as indented JSON to path.
func WriteSummary(path string, s *models.ReportSummary) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o640); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}

// logSummary logs the three ranked tables row by row.
func logSummary(ctx context.Context, s *models.ReportSummary) {
	log := logging.Ctx(ctx)

	for i, c := range s.TopCustomersByOrders {
		log.Info().Int("rank", i+1).Str("customer_id", c.CustomerID).Int64("orders", c.Orders).Msg("Top customer by order count")
	}
	for i, c := range s.TopCustomersBySpend {
		log.Info().Int("rank", i+1).Str("customer_id", c.CustomerID).Str("total_spent", c.TotalSpent.StringFixed(2)).Msg("Top customer by total spend")
	}
	for i, c := range s.TopCategories {
		log.Info().Int("rank", i+1).Str("category", c.Category).Int64("sales_count", c.SalesCount).Msg("Top product category")
	}
}
