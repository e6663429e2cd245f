package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TanzilStore/store_api/internal/models"
)

var now = time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

func product(id, category string, stock int) models.Product {
	return models.Product{ID: id, Name: "Product " + id, CategoryID: category, Stock: stock}
}

func order(createdAt time.Time, items ...models.OrderItem) models.Order {
	return models.Order{
		ID:        "o-" + createdAt.Format("20060102"),
		Items:     items,
		CreatedAt: createdAt,
	}
}

func item(productID string, price float64, qty int) models.OrderItem {
	return models.OrderItem{ProductID: productID, Price: price, Quantity: qty}
}

func TestProductSalesSumsAcrossOrders(t *testing.T) {
	products := []models.Product{product("p1", "c1", 10), product("p2", "c1", 10)}
	orders := []models.Order{
		order(now.AddDate(0, 0, -10), item("p1", 5, 2), item("p2", 3, 1)),
		order(now.AddDate(0, 0, -2), item("p1", 5, 3)),
	}

	metrics := ProductSales(products, orders, now)
	require.Len(t, metrics, 2)

	p1 := metrics[0]
	assert.Equal(t, 5, p1.UnitsSold)
	assert.Equal(t, 25.0, p1.Revenue)
	assert.Equal(t, 2, p1.DaysSinceLastSale, "recency uses the most recent order")

	p2 := metrics[1]
	assert.Equal(t, 1, p2.UnitsSold)
	assert.Equal(t, 10, p2.DaysSinceLastSale)
}

func TestProductSalesNeverSoldSentinel(t *testing.T) {
	products := []models.Product{product("p1", "c1", 10)}

	metrics := ProductSales(products, nil, now)
	require.Len(t, metrics, 1)
	assert.Equal(t, 0, metrics[0].UnitsSold)
	assert.Nil(t, metrics[0].LastSoldAt)
	assert.Equal(t, NeverSoldDays, metrics[0].DaysSinceLastSale)
}

func TestProductSalesSkipsDanglingReferences(t *testing.T) {
	products := []models.Product{product("p1", "c1", 10)}
	orders := []models.Order{
		order(now.AddDate(0, 0, -1), item("deleted-product", 9, 4), item("p1", 2, 1)),
	}

	metrics := ProductSales(products, orders, now)
	require.Len(t, metrics, 1)
	assert.Equal(t, 1, metrics[0].UnitsSold)
	assert.Equal(t, 2.0, metrics[0].Revenue)
}

func TestTopSellersExcludesZeroSales(t *testing.T) {
	products := []models.Product{product("p1", "c1", 10), product("p2", "c1", 10), product("p3", "c1", 10)}
	orders := []models.Order{
		order(now.AddDate(0, 0, -1), item("p2", 1, 7), item("p3", 1, 2)),
	}

	metrics := ProductSales(products, orders, now)
	top := TopSellers(metrics, 5)

	require.Len(t, top, 2, "never-sold products do not rank")
	assert.Equal(t, "p2", top[0].Product.ID)
	assert.Equal(t, "p3", top[1].Product.ID)
}

func TestSlowMoversThresholdAndOrdering(t *testing.T) {
	products := []models.Product{product("fresh", "c1", 10), product("stale", "c1", 10), product("never", "c1", 10)}
	orders := []models.Order{
		order(now.AddDate(0, 0, -5), item("fresh", 1, 1)),
		order(now.AddDate(0, 0, -40), item("stale", 1, 1)),
	}

	metrics := ProductSales(products, orders, now)
	slow := SlowMovers(metrics, 5)

	require.Len(t, slow, 2)
	assert.Equal(t, "never", slow[0].Product.ID, "never-sold ranks most stale via the sentinel")
	assert.Equal(t, "stale", slow[1].Product.ID)
}

func TestSlowMoversBoundaryAtThirtyDays(t *testing.T) {
	products := []models.Product{product("edge", "c1", 10)}
	orders := []models.Order{
		order(now.AddDate(0, 0, -30), item("edge", 1, 1)),
	}

	metrics := ProductSales(products, orders, now)
	assert.Empty(t, SlowMovers(metrics, 5), "exactly 30 days is not yet slow")
}

func TestPromotionCandidates(t *testing.T) {
	products := []models.Product{
		product("fat-stock", "c1", 20),  // 20 in stock, 1 sold: candidate
		product("thin-stock", "c1", 5),  // too little stock
		product("hot-seller", "c1", 50), // sells too well
	}
	orders := []models.Order{
		order(now.AddDate(0, 0, -3),
			item("fat-stock", 1, 1),
			item("hot-seller", 1, 9),
		),
	}

	metrics := ProductSales(products, orders, now)
	promo := PromotionCandidates(metrics, 5)

	require.Len(t, promo, 1)
	assert.Equal(t, "fat-stock", promo[0].Product.ID)
}

func TestPromotionCandidatesBoundaries(t *testing.T) {
	products := []models.Product{
		product("stock-10", "c1", 10), // stock must exceed 10
		product("units-5", "c1", 30),  // units must stay under 5
	}
	orders := []models.Order{
		order(now.AddDate(0, 0, -1), item("units-5", 1, 5)),
	}

	metrics := ProductSales(products, orders, now)
	assert.Empty(t, PromotionCandidates(metrics, 5))
}

func TestTruncateToTopN(t *testing.T) {
	products := make([]models.Product, 8)
	items := make([]models.OrderItem, 8)
	for i := range products {
		id := string(rune('a' + i))
		products[i] = product(id, "c1", 10)
		items[i] = item(id, 1, i+1)
	}
	orders := []models.Order{order(now.AddDate(0, 0, -1), items...)}

	metrics := ProductSales(products, orders, now)
	assert.Len(t, TopSellers(metrics, 5), 5)
	assert.Len(t, TopSellers(metrics, 10), 8)
}

func TestMonthlyRevenueTrailingWindow(t *testing.T) {
	var orders []models.Order
	for i := 0; i < 8; i++ {
		created := time.Date(2026, time.Month(1+i), 15, 0, 0, 0, 0, time.UTC)
		orders = append(orders, order(created, item("p1", 100, 1)))
	}

	series := MonthlyRevenue(orders)
	require.Len(t, series, 6, "only the trailing six months survive")
	assert.Equal(t, "2026-03", series[0].Month)
	assert.Equal(t, "2026-08", series[5].Month)
	assert.Equal(t, 100.0, series[0].Revenue)
}

func TestMonthlyRevenueGroupsWithinMonth(t *testing.T) {
	orders := []models.Order{
		order(time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), item("p1", 40, 1)),
		order(time.Date(2026, 7, 29, 0, 0, 0, 0, time.UTC), item("p1", 60, 1)),
	}

	series := MonthlyRevenue(orders)
	require.Len(t, series, 1)
	assert.Equal(t, "2026-07", series[0].Month)
	assert.Equal(t, 100.0, series[0].Revenue)
}

func TestCategoryBreakdownOrdersByRevenue(t *testing.T) {
	products := []models.Product{
		product("p1", "cleaners", 10),
		product("p2", "tools", 10),
		product("p3", "tools", 10),
	}
	orders := []models.Order{
		order(now.AddDate(0, 0, -1),
			item("p1", 10, 1), // cleaners: 10
			item("p2", 30, 2), // tools: 60
			item("p3", 5, 1),  // tools: 65
		),
	}

	perf := CategoryBreakdown(products, orders)
	require.Len(t, perf, 2)
	assert.Equal(t, "tools", perf[0].Category)
	assert.Equal(t, 65.0, perf[0].Revenue)
	assert.Equal(t, 3, perf[0].Units)
	assert.Equal(t, "cleaners", perf[1].Category)
}

func TestBuildReportJoinsAllSections(t *testing.T) {
	products := []models.Product{product("p1", "c1", 20)}
	orders := []models.Order{order(now.AddDate(0, 0, -2), item("p1", 10, 2))}

	report := BuildReport(products, orders, 5, now)
	require.NotNil(t, report)
	assert.Len(t, report.TopSellers, 1)
	assert.Empty(t, report.SlowMovers)
	assert.Len(t, report.PromotionCandidates, 1, "a product may appear in more than one list")
	assert.Len(t, report.MonthlyRevenue, 1)
	assert.Len(t, report.CategoryPerformance, 1)
	assert.Equal(t, now, report.GeneratedAt)
}
