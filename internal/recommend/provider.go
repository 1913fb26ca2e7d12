// Marketlens - E-commerce Warehouse and Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketlens

package recommend

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tomtom215/marketlens/internal/metrics"
)

const (
	ratingsQuery = `
	SELECT customer_id, product_id, review_score::double precision
	FROM analytics.fact_order_item
	WHERE review_score IS NOT NULL
	  AND customer_id IS NOT NULL
	  AND product_id IS NOT NULL
	ORDER BY order_id, order_item_id`

	productsQuery = `
	SELECT product_id, COALESCE(product_category_name, '')
	FROM analytics.dim_products
	ORDER BY product_id`
)

// SQLDataProvider reads training data from the analytics schema.
type SQLDataProvider struct {
	db *sql.DB
}

// NewSQLDataProvider creates a provider over a warehouse connection.
func NewSQLDataProvider(db *sql.DB) *SQLDataProvider {
	return &SQLDataProvider{db: db}
}

// Ratings returns every reviewed order item as a rating, in fact-table key order.
func (p *SQLDataProvider) Ratings(ctx context.Context) (ratings []Rating, err error) {
	start := time.Now()
	defer func() {
		metrics.RecordDBQuery("postgres", "ratings", time.Since(start), err)
	}()

	rows, err := p.db.QueryContext(ctx, ratingsQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query ratings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r Rating
		if err := rows.Scan(&r.UserID, &r.ItemID, &r.Value); err != nil {
			return nil, fmt.Errorf("failed to scan rating: %w", err)
		}
		ratings = append(ratings, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ratings: %w", err)
	}
	return ratings, nil
}

// Products returns the product catalog ordered by product ID.
func (p *SQLDataProvider) Products(ctx context.Context) (products []Product, err error) {
	start := time.Now()
	defer func() {
		metrics.RecordDBQuery("postgres", "products", time.Since(start), err)
	}()

	rows, err := p.db.QueryContext(ctx, productsQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var pr Product
		if err := rows.Scan(&pr.ID, &pr.Category); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, pr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read products: %w", err)
	}
	return products, nil
}
