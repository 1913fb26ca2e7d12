// Marketlens - E-commerce Warehouse and Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketlens

package report

import (
	"fmt"
	"path/filepath"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/tomtom215/marketlens/internal/metrics"
	"github.com/tomtom215/marketlens/internal/models"
)

// Figure file names written into the docs directory.
const (
	FigReviewScores        = "fig1_review_score_dist.png"
	FigDailyOrders         = "fig2_daily_order_count.png"
	FigMonthlyRevenue      = "fig3_monthly_revenue.png"
	FigDeliveryDelay       = "fig4_delivery_delay.png"
	FigTopCustomersOrders  = "fig5_top_customers_orders.png"
	FigTopCustomersSpend   = "fig6_top_customers_spend.png"
	FigTopCategories       = "fig7_top_categories.png"
	FigPaymentDistribution = "fig8_payment_dist.png"
	FigCustomerStates      = "fig9_customer_states.png"
	FigOrderFrequency      = "fig10_order_frequency.png"
)

// Figures lists every figure in render order.
var Figures = []string{
	FigReviewScores,
	FigDailyOrders,
	FigMonthlyRevenue,
	FigDeliveryDelay,
	FigTopCustomersOrders,
	FigTopCustomersSpend,
	FigTopCategories,
	FigPaymentDistribution,
	FigCustomerStates,
	FigOrderFrequency,
}

const (
	reviewScoreBins = 5
	delayBins       = 20

	// uncategorized labels products without a category.
	uncategorized = "(none)"
)

// Renderer draws report figures as PNG files.
type Renderer struct {
	dir    string
	width  vg.Length
	height vg.Length
}

// NewRenderer creates a renderer writing into dir.
func NewRenderer(dir string) *Renderer {
	return &Renderer{dir: dir, width: 8 * vg.Inch, height: 5 * vg.Inch}
}

// save writes p to <dir>/<name> and returns the path.
func (r *Renderer) save(p *plot.Plot, name string) (string, error) {
	path := filepath.Join(r.dir, name)
	if err := p.Save(r.width, r.height, path); err != nil {
		return "", fmt.Errorf("failed to save %s: %w", name, err)
	}
	metrics.RecordChart(name)
	return path, nil
}

func newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	return p
}

// histogram adds a weighted histogram of xys to p. Empty input leaves p blank.
func histogram(p *plot.Plot, xys plotter.XYs, bins int) error {
	if len(xys) == 0 {
		return nil
	}
	h, err := plotter.NewHistogram(xys, bins)
	if err != nil {
		return err
	}
	h.FillColor = plotutil.Color(0)
	p.Add(h)
	return nil
}

// line adds a line with point markers to p. Empty input leaves p blank.
func line(p *plot.Plot, xys plotter.XYs) error {
	if len(xys) == 0 {
		return nil
	}
	l, err := plotter.NewLine(xys)
	if err != nil {
		return err
	}
	l.Color = plotutil.Color(0)
	p.Add(l)
	return nil
}

// bars adds one bar per value with nominal labels on the category axis.
// Horizontal bars list the first value at the top.
func bars(p *plot.Plot, values plotter.Values, labels []string, horizontal bool) (*plotter.BarChart, error) {
	if len(values) == 0 {
		return nil, nil
	}

	if horizontal {
		values = reversedValues(values)
		labels = reversedStrings(labels)
	}

	b, err := plotter.NewBarChart(values, vg.Points(14))
	if err != nil {
		return nil, err
	}
	b.Color = plotutil.Color(0)
	b.LineStyle.Width = vg.Length(0)
	b.Horizontal = horizontal
	p.Add(b)

	if horizontal {
		p.NominalY(labels...)
	} else {
		p.NominalX(labels...)
	}
	return b, nil
}

func reversedValues(v plotter.Values) plotter.Values {
	out := make(plotter.Values, len(v))
	for i, x := range v {
		out[len(v)-1-i] = x
	}
	return out
}

func reversedStrings(s []string) []string {
	out := make([]string, len(s))
	for i, x := range s {
		out[len(s)-1-i] = x
	}
	return out
}

// RenderReviewScores draws the review score histogram.
func (r *Renderer) RenderReviewScores(scores []models.ScoreCount) (string, error) {
	p := newPlot("Distribution of Review Scores", "Review Score", "Count")

	xys := make(plotter.XYs, len(scores))
	for i, s := range scores {
		xys[i] = plotter.XY{X: float64(s.Score), Y: float64(s.Count)}
	}
	if err := histogram(p, xys, reviewScoreBins); err != nil {
		return "", fmt.Errorf("review score histogram: %w", err)
	}
	return r.save(p, FigReviewScores)
}

// RenderDailyOrders draws the daily order count over time.
func (r *Renderer) RenderDailyOrders(days []models.DailyOrders) (string, error) {
	p := newPlot("Daily Order Count", "Date", "Number of Orders")
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01-02"}

	xys := make(plotter.XYs, len(days))
	for i, d := range days {
		xys[i] = plotter.XY{X: float64(d.Date.Unix()), Y: float64(d.Orders)}
	}
	if err := line(p, xys); err != nil {
		return "", fmt.Errorf("daily orders line: %w", err)
	}
	return r.save(p, FigDailyOrders)
}

// RenderMonthlyRevenue draws total revenue per month.
func (r *Renderer) RenderMonthlyRevenue(months []models.MonthlyRevenue) (string, error) {
	p := newPlot("Monthly Total Revenue", "Month", "Revenue")
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01"}

	xys := make(plotter.XYs, len(months))
	for i, m := range months {
		xys[i] = plotter.XY{X: float64(m.Month.Unix()), Y: m.Revenue.InexactFloat64()}
	}
	if err := line(p, xys); err != nil {
		return "", fmt.Errorf("monthly revenue line: %w", err)
	}
	return r.save(p, FigMonthlyRevenue)
}

// RenderDeliveryDelays draws the delivery delay histogram.
func (r *Renderer) RenderDeliveryDelays(delays []models.DelayCount) (string, error) {
	p := newPlot("Delivery Delay (Days) Distribution", "Days", "Count")

	xys := make(plotter.XYs, len(delays))
	for i, d := range delays {
		xys[i] = plotter.XY{X: float64(d.Days), Y: float64(d.Orders)}
	}
	if err := histogram(p, xys, delayBins); err != nil {
		return "", fmt.Errorf("delivery delay histogram: %w", err)
	}
	return r.save(p, FigDeliveryDelay)
}

// RenderTopCustomersByOrders draws horizontal bars of the busiest customers.
func (r *Renderer) RenderTopCustomersByOrders(customers []models.CustomerOrders) (string, error) {
	p := newPlot(fmt.Sprintf("Top %d Customers by Order Count", len(customers)), "Number of Orders", "Customer ID")

	values := make(plotter.Values, len(customers))
	labels := make([]string, len(customers))
	for i, c := range customers {
		values[i] = float64(c.Orders)
		labels[i] = c.CustomerID
	}
	if _, err := bars(p, values, labels, true); err != nil {
		return "", fmt.Errorf("top customers by orders bars: %w", err)
	}
	return r.save(p, FigTopCustomersOrders)
}

// RenderTopCustomersBySpend draws horizontal bars of the biggest spenders.
func (r *Renderer) RenderTopCustomersBySpend(customers []models.CustomerSpend) (string, error) {
	p := newPlot(fmt.Sprintf("Top %d Customers by Total Spend", len(customers)), "Total Spend", "Customer ID")

	values := make(plotter.Values, len(customers))
	labels := make([]string, len(customers))
	for i, c := range customers {
		values[i] = c.TotalSpent.InexactFloat64()
		labels[i] = c.CustomerID
	}
	if _, err := bars(p, values, labels, true); err != nil {
		return "", fmt.Errorf("top customers by spend bars: %w", err)
	}
	return r.save(p, FigTopCustomersSpend)
}

// RenderTopCategories draws horizontal bars of the best selling categories.
func (r *Renderer) RenderTopCategories(categories []models.CategorySales) (string, error) {
	p := newPlot(fmt.Sprintf("Top %d Product Categories by Sales Volume", len(categories)), "Sales Count", "Category")

	values := make(plotter.Values, len(categories))
	labels := make([]string, len(categories))
	for i, c := range categories {
		values[i] = float64(c.SalesCount)
		labels[i] = c.Category
		if labels[i] == "" {
			labels[i] = uncategorized
		}
	}
	if _, err := bars(p, values, labels, true); err != nil {
		return "", fmt.Errorf("top categories bars: %w", err)
	}
	return r.save(p, FigTopCategories)
}

// RenderPaymentTypes draws one bar per payment type labelled with its share.
func (r *Renderer) RenderPaymentTypes(shares []models.PaymentShare) (string, error) {
	p := newPlot("Payment Type Distribution", "Payment Type", "Order Items")

	values := make(plotter.Values, len(shares))
	names := make([]string, len(shares))
	points := make(plotter.XYs, len(shares))
	percents := make([]string, len(shares))
	for i, s := range shares {
		values[i] = float64(s.Count)
		names[i] = s.PaymentType
		points[i] = plotter.XY{X: float64(i), Y: float64(s.Count)}
		percents[i] = strconv.FormatFloat(s.Percent, 'f', 1, 64) + "%"
	}

	if _, err := bars(p, values, names, false); err != nil {
		return "", fmt.Errorf("payment type bars: %w", err)
	}
	if len(shares) > 0 {
		labels, err := plotter.NewLabels(plotter.XYLabels{XYs: points, Labels: percents})
		if err != nil {
			return "", fmt.Errorf("payment type labels: %w", err)
		}
		p.Add(labels)
	}
	return r.save(p, FigPaymentDistribution)
}

// RenderCustomerStates draws vertical bars of the states with most customers.
func (r *Renderer) RenderCustomerStates(states []models.StateCustomers) (string, error) {
	p := newPlot(fmt.Sprintf("Top %d Customer States", len(states)), "State", "Number of Customers")

	values := make(plotter.Values, len(states))
	labels := make([]string, len(states))
	for i, s := range states {
		values[i] = float64(s.Customers)
		labels[i] = s.State
	}
	if _, err := bars(p, values, labels, false); err != nil {
		return "", fmt.Errorf("customer states bars: %w", err)
	}
	return r.save(p, FigCustomerStates)
}

// RenderOrderFrequency draws how many customers placed each number of orders.
func (r *Renderer) RenderOrderFrequency(freq []models.OrderFrequency) (string, error) {
	p := newPlot("Order Frequency Distribution", "Number of Orders per Customer", "Customers")

	values := make(plotter.Values, len(freq))
	labels := make([]string, len(freq))
	for i, f := range freq {
		values[i] = float64(f.Customers)
		labels[i] = strconv.FormatInt(f.Orders, 10)
	}
	if _, err := bars(p, values, labels, false); err != nil {
		return "", fmt.Errorf("order frequency bars: %w", err)
	}
	return r.save(p, FigOrderFrequency)
}
