// Marketlens - E-commerce Warehouse and Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketlens

package models

import (
	"github.com/shopspring/decimal"
)

// WithPercentages fills Percent on every share as its fraction of the total
// count, in percent. Shares are left at zero when the total is zero.
func WithPercentages(shares []PaymentShare) []PaymentShare {
	var total int64
	for _, s := range shares {
		total += s.Count
	}
	if total == 0 {
		return shares
	}

	denom := decimal.NewFromInt(total)
	for i := range shares {
		shares[i].Percent = decimal.NewFromInt(shares[i].Count * 100).
			DivRound(denom, 4).
			InexactFloat64()
	}
	return shares
}

// TotalRevenue sums the revenue of every month.
func TotalRevenue(months []MonthlyRevenue) decimal.Decimal {
	total := decimal.Zero
	for _, m := range months {
		total = total.Add(m.Revenue)
	}
	return total
}
