// Marketlens - E-commerce Warehouse and Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketlens

//go:build integration

package testinfra

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/tomtom215/marketlens/internal/database"
)

// StagingFixture holds one small, consistent order dataset per staging
// table, as DuckDB queries. Four orders by three customers: o3 was never
// delivered and has no review, o1 has two payments and two reviews.
var StagingFixture = map[string]string{
	"customers": `SELECT * FROM (VALUES
		('c1', 'u1', '01001', 'sao paulo', 'SP'),
		('c2', 'u2', '01002', 'campinas', 'SP'),
		('c3', 'u3', '20001', 'rio de janeiro', 'RJ')
	) AS t(customer_id, customer_unique_id, customer_zip_code_prefix, customer_city, customer_state)`,

	"products": `SELECT * FROM (VALUES
		('p1', 'cama_mesa_banho', 1, 500, 20, 10, 15),
		('p2', 'beleza_saude', 2, 200, 10, 5, 5),
		('p3', NULL, 1, 100, 5, 5, 5)
	) AS t(product_id, product_category_name, product_photos_qty, product_weight_g, product_length_cm, product_height_cm, product_width_cm)`,

	"sellers": `SELECT * FROM (VALUES
		('s1', '13000', 'campinas', 'SP'),
		('s2', '80000', 'curitiba', 'PR')
	) AS t(seller_id, seller_zip_code_prefix, seller_city, seller_state)`,

	"orders": `SELECT * FROM (VALUES
		('o1', 'c1', 'delivered', TIMESTAMP '2018-01-01 10:00:00', TIMESTAMP '2018-01-05 12:00:00'),
		('o2', 'c1', 'delivered', TIMESTAMP '2018-01-02 09:30:00', TIMESTAMP '2018-01-12 18:00:00'),
		('o3', 'c2', 'shipped',   TIMESTAMP '2018-02-01 14:00:00', NULL::TIMESTAMP),
		('o4', 'c3', 'delivered', TIMESTAMP '2018-02-03 08:00:00', TIMESTAMP '2018-02-04 20:00:00')
	) AS t(order_id, customer_id, order_status, order_purchase_timestamp, order_delivered_customer_date)`,

	"order_items": `SELECT * FROM (VALUES
		('o1', 1, 'p1', 's1', 100.00::DOUBLE, 10.00::DOUBLE),
		('o1', 2, 'p2', 's2', 50.50::DOUBLE, 5.00::DOUBLE),
		('o2', 1, 'p1', 's1', 100.00::DOUBLE, 10.00::DOUBLE),
		('o3', 1, 'p3', 's2', 20.00::DOUBLE, 2.50::DOUBLE),
		('o4', 1, 'p2', 's1', 75.25::DOUBLE, 7.75::DOUBLE)
	) AS t(order_id, order_item_id, product_id, seller_id, price, freight_value)`,

	"order_payments": `SELECT * FROM (VALUES
		('o1', 1, 'credit_card', 120.00::DOUBLE),
		('o1', 2, 'voucher', 45.50::DOUBLE),
		('o2', 1, 'boleto', 110.00::DOUBLE),
		('o3', 1, 'credit_card', 22.50::DOUBLE),
		('o4', 1, 'credit_card', 83.00::DOUBLE)
	) AS t(order_id, payment_sequential, payment_type, payment_value)`,

	"order_reviews": `SELECT * FROM (VALUES
		('r0', 'o1', 1, TIMESTAMP '2018-01-04 10:00:00'),
		('r1', 'o1', 5, TIMESTAMP '2018-01-06 10:00:00'),
		('r2', 'o2', 3, TIMESTAMP '2018-01-13 10:00:00'),
		('r3', 'o4', 4, TIMESTAMP '2018-02-05 10:00:00')
	) AS t(review_id, order_id, review_score, review_answer_timestamp)`,

	"geolocation": `SELECT * FROM (VALUES
		('01001', -23.55::DOUBLE, -46.63::DOUBLE, 'sao paulo', 'SP')
	) AS t(geolocation_zip_code_prefix, geolocation_lat, geolocation_lng, geolocation_city, geolocation_state)`,
}

// FixtureTables lists the StagingFixture tables in load order.
var FixtureTables = []string{
	"orders", "order_items", "order_payments", "order_reviews",
	"customers", "products", "sellers", "geolocation",
}

// WriteStagingFixture writes every StagingFixture table as
// <dir>/<table>.parquet.
func WriteStagingFixture(ctx context.Context, duck *database.DB, dir string) error {
	for _, table := range FixtureTables {
		path := filepath.Join(dir, table+".parquet")
		if err := duck.CopyToParquet(ctx, StagingFixture[table], path); err != nil {
			return fmt.Errorf("fixture %s: %w", table, err)
		}
	}
	return nil
}
