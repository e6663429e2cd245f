package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/TanzilStore/store_api/internal/analytics"
	"github.com/TanzilStore/store_api/internal/cache"
	"github.com/TanzilStore/store_api/internal/models"
	"github.com/TanzilStore/store_api/internal/query"
)

// Listing sizes for the two analytics surfaces. The dashboard shows a
// short preview; the reports screen shows the full top ten.
const (
	DashboardTopN = 5
	ReportTopN    = 10
)

// DashboardService assembles the overview screen and the sales report.
// Analytics always run over the product and order snapshots loaded in
// the same pass, so the classifications never mix catalog and order
// data from different points in time.
type DashboardService struct {
	collections *Collections
	reportCache *cache.ReportCache
}

// NewDashboardService constructs a new DashboardService.
func NewDashboardService(collections *Collections, reportCache *cache.ReportCache) *DashboardService {
	return &DashboardService{collections: collections, reportCache: reportCache}
}

// DashboardStats are the headline counters of the overview screen.
type DashboardStats struct {
	TotalProducts   int     `json:"totalProducts"`
	TotalCategories int     `json:"totalCategories"`
	TotalOrders     int     `json:"totalOrders"`
	TotalUsers      int     `json:"totalUsers"`
	TotalRevenue    float64 `json:"totalRevenue"`
	PendingOrders   int     `json:"pendingOrders"`
	LowStockCount   int     `json:"lowStock"`
}

// Dashboard is the full overview payload.
type Dashboard struct {
	Stats          DashboardStats    `json:"stats"`
	RecentProducts []models.Product  `json:"recentProducts"`
	RecentOrders   []models.Order    `json:"recentOrders"`
	Report         *analytics.Report `json:"report"`
	Fallback       bool              `json:"-"`
}

const lowStockThreshold = 5

// Overview builds the dashboard payload.
func (s *DashboardService) Overview(ctx context.Context) *Dashboard {
	products := s.collections.Products()
	orders := s.collections.Orders()
	categories := s.collections.Categories(false)
	users := s.collections.Users()

	stats := DashboardStats{
		TotalProducts:   len(products.Records),
		TotalCategories: len(categories.Records),
		TotalOrders:     len(orders.Records),
		TotalUsers:      len(users.Records),
	}
	for i := range orders.Records {
		o := &orders.Records[i]
		if o.PaymentStatus == models.PaymentStatusPaid {
			stats.TotalRevenue += o.ItemsTotal()
		}
		if o.Status == models.OrderStatusPending {
			stats.PendingOrders++
		}
	}
	for i := range products.Records {
		if products.Records[i].Stock <= lowStockThreshold {
			stats.LowStockCount++
		}
	}

	byCreated := query.NewSorter(map[string]query.Compare[models.Product]{
		"createdAt": query.ByTime(func(p models.Product) time.Time { return p.CreatedAt }),
	})
	recentProducts := query.Paginate(
		byCreated.Sort(products.Records, "createdAt", query.Desc), 1, DashboardTopN).Items

	byDate := query.NewSorter(map[string]query.Compare[models.Order]{
		"date": query.ByTime(func(o models.Order) time.Time { return o.CreatedAt }),
	})
	recentOrders := query.Paginate(
		byDate.Sort(orders.Records, "date", query.Desc), 1, DashboardTopN).Items

	return &Dashboard{
		Stats:          stats,
		RecentProducts: recentProducts,
		RecentOrders:   recentOrders,
		Report:         s.report(ctx, products, orders, DashboardTopN),
		Fallback:       products.Fallback || orders.Fallback,
	}
}

// SalesReport is the full report payload with the degradation flag.
type SalesReport struct {
	Report   *analytics.Report
	Fallback bool
}

// Sales returns the ten-entry sales report for the reports screen.
func (s *DashboardService) Sales(ctx context.Context) *SalesReport {
	products := s.collections.Products()
	orders := s.collections.Orders()
	return &SalesReport{
		Report:   s.report(ctx, products, orders, ReportTopN),
		Fallback: products.Fallback || orders.Fallback,
	}
}

// Warm rebuilds and caches both report sizes. Used by the background
// worker so the first dashboard hit after a cache expiry stays fast.
func (s *DashboardService) Warm(ctx context.Context) error {
	if s.reportCache == nil {
		return nil
	}
	products := s.collections.Products()
	orders := s.collections.Orders()
	if products.Fallback || orders.Fallback {
		return nil
	}

	now := time.Now()
	for _, topN := range []int{DashboardTopN, ReportTopN} {
		report := analytics.BuildReport(products.Records, orders.Records, topN, now)
		if err := s.reportCache.Set(ctx, topN, report); err != nil {
			return err
		}
	}
	return nil
}

// report answers from the cache when possible, except over fallback data
// where a cached report could mask a recovered backend.
func (s *DashboardService) report(
	ctx context.Context,
	products models.Snapshot[models.Product],
	orders models.Snapshot[models.Order],
	topN int,
) *analytics.Report {
	cacheable := s.reportCache != nil && !products.Fallback && !orders.Fallback

	if cacheable {
		if cached, err := s.reportCache.Get(ctx, topN); err == nil && cached != nil {
			return cached
		}
	}

	report := analytics.BuildReport(products.Records, orders.Records, topN, time.Now())

	if cacheable {
		if err := s.reportCache.Set(ctx, topN, report); err != nil {
			log.Warn().Err(err).Int("top_n", topN).Msg("failed to cache sales report")
		}
	}
	return report
}
