// Marketlens - E-commerce Warehouse and Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketlens

package report

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tomtom215/marketlens/internal/metrics"
	"github.com/tomtom215/marketlens/internal/models"
)

const engineName = "postgres"

// Queries runs the report aggregations against the warehouse.
type Queries struct {
	db *sql.DB
}

// NewQueries creates a query set over a warehouse connection.
func NewQueries(db *sql.DB) *Queries {
	return &Queries{db: db}
}

// scanFunc scans the current row into a T.
type scanFunc[T any] func(rows *sql.Rows) (T, error)

// queryAndScan runs query and scans every row with scan.
func queryAndScan[T any](ctx context.Context, db *sql.DB, operation, query string, args []any, scan scanFunc[T]) (results []T, err error) {
	start := time.Now()
	defer func() {
		metrics.RecordDBQuery(engineName, operation, time.Since(start), err)
	}()

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}

const reviewScoresQuery = `
	SELECT review_score::integer AS score, COUNT(*) AS cnt
	FROM analytics.fact_order_item
	WHERE review_score IS NOT NULL
	GROUP BY 1
	ORDER BY 1`

// ReviewScores counts order items per review score. Items without a review are skipped.
func (q *Queries) ReviewScores(ctx context.Context) ([]models.ScoreCount, error) {
	scan := func(rows *sql.Rows) (models.ScoreCount, error) {
		var s models.ScoreCount
		err := rows.Scan(&s.Score, &s.Count)
		return s, err
	}

	scores, err := queryAndScan(ctx, q.db, "report_review_scores", reviewScoresQuery, nil, scan)
	if err != nil {
		return nil, fmt.Errorf("failed to query review scores: %w", err)
	}
	return scores, nil
}

const dailyOrdersQuery = `
	SELECT purchase_ts::date AS day, COUNT(DISTINCT order_id) AS orders
	FROM analytics.fact_order_item
	WHERE purchase_ts IS NOT NULL
	GROUP BY 1
	ORDER BY 1`

// DailyOrders counts distinct orders per purchase date.
func (q *Queries) DailyOrders(ctx context.Context) ([]models.DailyOrders, error) {
	scan := func(rows *sql.Rows) (models.DailyOrders, error) {
		var d models.DailyOrders
		err := rows.Scan(&d.Date, &d.Orders)
		return d, err
	}

	days, err := queryAndScan(ctx, q.db, "report_daily_orders", dailyOrdersQuery, nil, scan)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily orders: %w", err)
	}
	return days, nil
}

const monthlyRevenueQuery = `
	SELECT date_trunc('month', purchase_ts)::date AS month,
	       SUM(COALESCE(item_price, 0)::numeric + COALESCE(freight_value, 0)::numeric) AS revenue
	FROM analytics.fact_order_item
	WHERE purchase_ts IS NOT NULL
	GROUP BY 1
	ORDER BY 1`

// MonthlyRevenue sums item price plus freight per purchase month.
func (q *Queries) MonthlyRevenue(ctx context.Context) ([]models.MonthlyRevenue, error) {
	scan := func(rows *sql.Rows) (models.MonthlyRevenue, error) {
		var m models.MonthlyRevenue
		err := rows.Scan(&m.Month, &m.Revenue)
		return m, err
	}

	months, err := queryAndScan(ctx, q.db, "report_monthly_revenue", monthlyRevenueQuery, nil, scan)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly revenue: %w", err)
	}
	return months, nil
}

// Whole days are floored, so a delivery one hour before purchase counts as -1.
const deliveryDelaysQuery = `
	SELECT FLOOR(EXTRACT(EPOCH FROM (order_delivered_customer_date - order_purchase_timestamp)) / 86400)::integer AS delay_days,
	       COUNT(*) AS orders
	FROM staging.orders
	WHERE order_delivered_customer_date IS NOT NULL
	  AND order_purchase_timestamp IS NOT NULL
	GROUP BY 1
	ORDER BY 1`

// DeliveryDelays counts delivered orders per whole-day delay between
// purchase and delivery. Orders never delivered are dropped.
func (q *Queries) DeliveryDelays(ctx context.Context) ([]models.DelayCount, error) {
	scan := func(rows *sql.Rows) (models.DelayCount, error) {
		var d models.DelayCount
		err := rows.Scan(&d.Days, &d.Orders)
		return d, err
	}

	delays, err := queryAndScan(ctx, q.db, "report_delivery_delays", deliveryDelaysQuery, nil, scan)
	if err != nil {
		return nil, fmt.Errorf("failed to query delivery delays: %w", err)
	}
	return delays, nil
}

const topCustomersByOrdersQuery = `
	SELECT customer_id, COUNT(DISTINCT order_id) AS orders
	FROM analytics.fact_order_item
	GROUP BY customer_id
	ORDER BY orders DESC, customer_id
	LIMIT $1`

// TopCustomersByOrders ranks customers by distinct order count.
func (q *Queries) TopCustomersByOrders(ctx context.Context, limit int) ([]models.CustomerOrders, error) {
	scan := func(rows *sql.Rows) (models.CustomerOrders, error) {
		var c models.CustomerOrders
		err := rows.Scan(&c.CustomerID, &c.Orders)
		return c, err
	}

	customers, err := queryAndScan(ctx, q.db, "report_top_customers_orders", topCustomersByOrdersQuery, []any{limit}, scan)
	if err != nil {
		return nil, fmt.Errorf("failed to query top customers by orders: %w", err)
	}
	return customers, nil
}

const topCustomersBySpendQuery = `
	SELECT customer_id, COALESCE(SUM(item_price::numeric), 0) AS total_spent
	FROM analytics.fact_order_item
	GROUP BY customer_id
	ORDER BY total_spent DESC, customer_id
	LIMIT $1`

// TopCustomersBySpend ranks customers by summed item price.
func (q *Queries) TopCustomersBySpend(ctx context.Context, limit int) ([]models.CustomerSpend, error) {
	scan := func(rows *sql.Rows) (models.CustomerSpend, error) {
		var c models.CustomerSpend
		err := rows.Scan(&c.CustomerID, &c.TotalSpent)
		return c, err
	}

	customers, err := queryAndScan(ctx, q.db, "report_top_customers_spend", topCustomersBySpendQuery, []any{limit}, scan)
	if err != nil {
		return nil, fmt.Errorf("failed to query top customers by spend: %w", err)
	}
	return customers, nil
}

const topCategoriesQuery = `
	SELECT COALESCE(dp.product_category_name, '') AS category, COUNT(*) AS sales_count
	FROM analytics.fact_order_item f
	JOIN analytics.dim_products dp USING (product_id)
	GROUP BY dp.product_category_name
	ORDER BY sales_count DESC, category
	LIMIT $1`

// TopCategories ranks product categories by order items sold.
func (q *Queries) TopCategories(ctx context.Context, limit int) ([]models.CategorySales, error) {
	scan := func(rows *sql.Rows) (models.CategorySales, error) {
		var c models.CategorySales
		err := rows.Scan(&c.Category, &c.SalesCount)
		return c, err
	}

	categories, err := queryAndScan(ctx, q.db, "report_top_categories", topCategoriesQuery, []any{limit}, scan)
	if err != nil {
		return nil, fmt.Errorf("failed to query top categories: %w", err)
	}
	return categories, nil
}

const paymentTypesQuery = `
	SELECT payment_type, COUNT(*) AS cnt
	FROM analytics.fact_order_item
	WHERE payment_type IS NOT NULL
	GROUP BY payment_type
	ORDER BY cnt DESC, payment_type`

// PaymentTypes counts order items per payment type with percentage shares.
func (q *Queries) PaymentTypes(ctx context.Context) ([]models.PaymentShare, error) {
	scan := func(rows *sql.Rows) (models.PaymentShare, error) {
		var p models.PaymentShare
		err := rows.Scan(&p.PaymentType, &p.Count)
		return p, err
	}

	shares, err := queryAndScan(ctx, q.db, "report_payment_types", paymentTypesQuery, nil, scan)
	if err != nil {
		return nil, fmt.Errorf("failed to query payment types: %w", err)
	}
	return models.WithPercentages(shares), nil
}

const topStatesQuery = `
	SELECT customer_state, COUNT(*) AS customers
	FROM analytics.dim_customers
	WHERE customer_state IS NOT NULL
	GROUP BY customer_state
	ORDER BY customers DESC, customer_state
	LIMIT $1`

// TopStates ranks customer states by number of customers.
func (q *Queries) TopStates(ctx context.Context, limit int) ([]models.StateCustomers, error) {
	scan := func(rows *sql.Rows) (models.StateCustomers, error) {
		var s models.StateCustomers
		err := rows.Scan(&s.State, &s.Customers)
		return s, err
	}

	states, err := queryAndScan(ctx, q.db, "report_top_states", topStatesQuery, []any{limit}, scan)
	if err != nil {
		return nil, fmt.Errorf("failed to query top states: %w", err)
	}
	return states, nil
}

const orderFrequencyQuery = `
	SELECT orders, COUNT(*) AS customers
	FROM (
		SELECT customer_id, COUNT(DISTINCT order_id) AS orders
		FROM analytics.fact_order_item
		GROUP BY customer_id
	) per_customer
	GROUP BY orders
	ORDER BY orders`

// OrderFrequency counts customers by how many orders they placed.
func (q *Queries) OrderFrequency(ctx context.Context) ([]models.OrderFrequency, error) {
	scan := func(rows *sql.Rows) (models.OrderFrequency, error) {
		var f models.OrderFrequency
		err := rows.Scan(&f.Orders, &f.Customers)
		return f, err
	}

	freq, err := queryAndScan(ctx, q.db, "report_order_frequency", orderFrequencyQuery, nil, scan)
	if err != nil {
		return nil, fmt.Errorf("failed to query order frequency: %w", err)
	}
	return freq, nil
}
