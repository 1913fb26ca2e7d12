// Marketlens - E-commerce Warehouse and Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketlens

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ScoreCount is the number of order items carrying one review score.
type ScoreCount struct {
	Score int   `json:"score"`
	Count int64 `json:"count"`
}

// DailyOrders is the number of distinct orders placed on one day.
type DailyOrders struct {
	Date   time.Time `json:"date"`
	Orders int64     `json:"orders"`
}

// MonthlyRevenue is item price plus freight summed over one calendar month.
type MonthlyRevenue struct {
	Month   time.Time       `json:"month"`
	Revenue decimal.Decimal `json:"revenue"`
}

// DelayCount is the number of delivered orders that took Days whole days
// from purchase to delivery.
type DelayCount struct {
	Days   int   `json:"days"`
	Orders int64 `json:"orders"`
}

// CustomerOrders ranks a customer by distinct order count.
type CustomerOrders struct {
	CustomerID string `json:"customer_id"`
	Orders     int64  `json:"orders"`
}

// CustomerSpend ranks a customer by total item spend (freight excluded).
type CustomerSpend struct {
	CustomerID string          `json:"customer_id"`
	TotalSpent decimal.Decimal `json:"total_spent"`
}

// CategorySales ranks a product category by number of items sold.
// Category is empty for products without a category.
type CategorySales struct {
	Category   string `json:"product_category_name"`
	SalesCount int64  `json:"sales_count"`
}

// PaymentShare is the number of order items paid with one payment type.
type PaymentShare struct {
	PaymentType string  `json:"payment_type"`
	Count       int64   `json:"count"`
	Percent     float64 `json:"percent"`
}

// StateCustomers is the number of customers registered in one state.
type StateCustomers struct {
	State     string `json:"customer_state"`
	Customers int64  `json:"customers"`
}

// OrderFrequency is how many customers placed exactly Orders orders.
type OrderFrequency struct {
	Orders    int64 `json:"orders_per_customer"`
	Customers int64 `json:"customers"`
}

// ReportSummary is written to summary.json at the end of a report run.
type ReportSummary struct {
	GeneratedAt          time.Time        `json:"generated_at"`
	RunID                string           `json:"run_id,omitempty"`
	TopN                 int              `json:"top_n"`
	Figures              []string         `json:"figures"`
	TopCustomersByOrders []CustomerOrders `json:"top_customers_by_orders"`
	TopCustomersBySpend  []CustomerSpend  `json:"top_customers_by_spend"`
	TopCategories        []CategorySales  `json:"top_categories"`
}
