// Package analytics derives per-product sales metrics from the order
// history. All functions are pure passes over in-memory collections;
// callers are responsible for the join point, i.e. running the
// aggregator only once both the product and the order collection have
// been fetched.
package analytics

import (
	"sort"
	"time"

	"github.com/TanzilStore/store_api/internal/models"
)

const (
	// NeverSoldDays is the sentinel recency for products with no sale
	// on record.
	NeverSoldDays = 999

	// slowMoverAfterDays marks a product as a slow mover once it has
	// not sold for this many days.
	slowMoverAfterDays = 30

	// Promotion candidates sit on plenty of stock but barely sell.
	promotionMinStock = 10
	promotionMaxUnits = 5

	// monthlyWindow is the trailing number of months shown on the
	// revenue chart.
	monthlyWindow = 6
)

// ProductMetrics is the per-product sales accumulator joined back onto
// the product record.
type ProductMetrics struct {
	Product           models.Product `json:"product"`
	UnitsSold         int            `json:"unitsSold"`
	Revenue           float64        `json:"revenue"`
	LastSoldAt        *time.Time     `json:"lastSoldAt,omitempty"`
	DaysSinceLastSale int            `json:"daysSinceLastSale"`
}

// MonthRevenue is one point of the monthly revenue series. Month is a
// year-month key in "2006-01" form.
type MonthRevenue struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
}

// CategoryPerformance sums units and revenue for one category.
type CategoryPerformance struct {
	Category string  `json:"category"`
	Units    int     `json:"units"`
	Revenue  float64 `json:"revenue"`
}

// Report bundles every derived classification for the dashboard and the
// sales report screen. The three product lists are independent passes
// over the same accumulator; a product may legitimately appear in more
// than one of them.
type Report struct {
	TopSellers          []ProductMetrics      `json:"topSellers"`
	SlowMovers          []ProductMetrics      `json:"slowMovers"`
	PromotionCandidates []ProductMetrics      `json:"promotionCandidates"`
	MonthlyRevenue      []MonthRevenue        `json:"monthlyRevenue"`
	CategoryPerformance []CategoryPerformance `json:"categoryPerformance"`
	GeneratedAt         time.Time             `json:"generatedAt"`
}

type accumulator struct {
	units    int
	revenue  float64
	lastSold time.Time
}

// accumulate folds every order line item into a per-product accumulator.
// Line items referencing an unknown product are skipped silently; a
// dangling reference is not fatal.
func accumulate(products []models.Product, orders []models.Order) map[string]accumulator {
	known := make(map[string]struct{}, len(products))
	for _, p := range products {
		known[p.ID] = struct{}{}
	}

	acc := make(map[string]accumulator)
	for _, o := range orders {
		for _, item := range o.Items {
			if _, ok := known[item.ProductID]; !ok {
				continue
			}
			a := acc[item.ProductID]
			a.units += item.Quantity
			a.revenue += item.LineTotal()
			if o.CreatedAt.After(a.lastSold) {
				a.lastSold = o.CreatedAt
			}
			acc[item.ProductID] = a
		}
	}
	return acc
}

// ProductSales computes the sales metrics for every product, in product
// input order. Products never sold get zero units and the NeverSoldDays
// recency sentinel.
func ProductSales(products []models.Product, orders []models.Order, now time.Time) []ProductMetrics {
	acc := accumulate(products, orders)

	metrics := make([]ProductMetrics, 0, len(products))
	for _, p := range products {
		a := acc[p.ID]
		m := ProductMetrics{
			Product:           p,
			UnitsSold:         a.units,
			Revenue:           a.revenue,
			DaysSinceLastSale: NeverSoldDays,
		}
		if !a.lastSold.IsZero() {
			last := a.lastSold
			m.LastSoldAt = &last
			m.DaysSinceLastSale = int(now.Sub(last).Hours() / 24)
		}
		metrics = append(metrics, m)
	}
	return metrics
}

// TopSellers returns the n best-selling products, units descending.
// Products with zero sales never qualify.
func TopSellers(metrics []ProductMetrics, n int) []ProductMetrics {
	sold := filterMetrics(metrics, func(m ProductMetrics) bool { return m.UnitsSold > 0 })
	sort.SliceStable(sold, func(i, j int) bool { return sold[i].UnitsSold > sold[j].UnitsSold })
	return truncate(sold, n)
}

// SlowMovers returns the n stalest products, most stale first. Products
// qualify once they have not sold for more than 30 days; never-sold
// products qualify through the sentinel.
func SlowMovers(metrics []ProductMetrics, n int) []ProductMetrics {
	stale := filterMetrics(metrics, func(m ProductMetrics) bool { return m.DaysSinceLastSale > slowMoverAfterDays })
	sort.SliceStable(stale, func(i, j int) bool { return stale[i].DaysSinceLastSale > stale[j].DaysSinceLastSale })
	return truncate(stale, n)
}

// PromotionCandidates returns the n products with high stock but low
// sales, stock descending.
func PromotionCandidates(metrics []ProductMetrics, n int) []ProductMetrics {
	idle := filterMetrics(metrics, func(m ProductMetrics) bool {
		return m.Product.Stock > promotionMinStock && m.UnitsSold < promotionMaxUnits
	})
	sort.SliceStable(idle, func(i, j int) bool { return idle[i].Product.Stock > idle[j].Product.Stock })
	return truncate(idle, n)
}

// MonthlyRevenue groups orders by calendar month of creation, sums line
// totals per group, and returns the trailing six months chronologically.
func MonthlyRevenue(orders []models.Order) []MonthRevenue {
	byMonth := make(map[string]float64)
	for _, o := range orders {
		key := o.CreatedAt.Format("2006-01")
		byMonth[key] += o.ItemsTotal()
	}

	series := make([]MonthRevenue, 0, len(byMonth))
	for month, revenue := range byMonth {
		series = append(series, MonthRevenue{Month: month, Revenue: revenue})
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Month < series[j].Month })

	if len(series) > monthlyWindow {
		series = series[len(series)-monthlyWindow:]
	}
	return series
}

// CategoryBreakdown groups order line items by the referenced product's
// category and sums units and revenue per category, revenue descending.
// Items referencing unknown products are skipped.
func CategoryBreakdown(products []models.Product, orders []models.Order) []CategoryPerformance {
	categoryOf := make(map[string]string, len(products))
	for _, p := range products {
		categoryOf[p.ID] = p.CategoryID
	}

	type bucket struct {
		units   int
		revenue float64
	}
	byCategory := make(map[string]bucket)
	for _, o := range orders {
		for _, item := range o.Items {
			cat, ok := categoryOf[item.ProductID]
			if !ok {
				continue
			}
			b := byCategory[cat]
			b.units += item.Quantity
			b.revenue += item.LineTotal()
			byCategory[cat] = b
		}
	}

	perf := make([]CategoryPerformance, 0, len(byCategory))
	for cat, b := range byCategory {
		perf = append(perf, CategoryPerformance{Category: cat, Units: b.units, Revenue: b.revenue})
	}
	sort.SliceStable(perf, func(i, j int) bool {
		if perf[i].Revenue != perf[j].Revenue {
			return perf[i].Revenue > perf[j].Revenue
		}
		return perf[i].Category < perf[j].Category
	})
	return perf
}

// BuildReport runs every analytics pass over the two collections. topN
// bounds each product list: the dashboard uses 5, the reports screen 10.
func BuildReport(products []models.Product, orders []models.Order, topN int, now time.Time) *Report {
	metrics := ProductSales(products, orders, now)
	return &Report{
		TopSellers:          TopSellers(metrics, topN),
		SlowMovers:          SlowMovers(metrics, topN),
		PromotionCandidates: PromotionCandidates(metrics, topN),
		MonthlyRevenue:      MonthlyRevenue(orders),
		CategoryPerformance: CategoryBreakdown(products, orders),
		GeneratedAt:         now,
	}
}

func filterMetrics(in []ProductMetrics, keep func(ProductMetrics) bool) []ProductMetrics {
	out := make([]ProductMetrics, 0, len(in))
	for _, m := range in {
		if keep(m) {
			out = append(out, m)
		}
	}
	return out
}

func truncate(in []ProductMetrics, n int) []ProductMetrics {
	if n > 0 && len(in) > n {
		return in[:n]
	}
	return in
}
