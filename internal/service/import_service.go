package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/TanzilStore/store_api/internal/cache"
	"github.com/TanzilStore/store_api/internal/repository"
	"github.com/TanzilStore/store_api/internal/sse"
	"github.com/TanzilStore/store_api/pkg/legacyapi"
)

// ImportService synchronizes the local catalog with the legacy
// storefront API. A run upserts by identifier, so repeated imports are
// idempotent; records that vanished upstream are kept rather than
// deleted, the legacy API stays the source of truth for additions only.
type ImportService struct {
	client       *legacyapi.Client
	productRepo  *repository.ProductRepository
	categoryRepo *repository.CategoryRepository
	orderRepo    *repository.OrderRepository
	reportCache  *cache.ReportCache
	hub          *sse.Hub
}

// NewImportService constructs a new ImportService.
func NewImportService(
	client *legacyapi.Client,
	productRepo *repository.ProductRepository,
	categoryRepo *repository.CategoryRepository,
	orderRepo *repository.OrderRepository,
	reportCache *cache.ReportCache,
	hub *sse.Hub,
) *ImportService {
	return &ImportService{
		client:       client,
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		orderRepo:    orderRepo,
		reportCache:  reportCache,
		hub:          hub,
	}
}

// ImportSummary counts what one synchronization run touched.
type ImportSummary struct {
	Categories int       `json:"categories"`
	Products   int       `json:"products"`
	Orders     int       `json:"orders"`
	Skipped    int       `json:"skipped"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
}

// Run performs one full synchronization pass. Categories come first so
// imported products always reference a known category. A failing
// section is logged and skipped; the rest of the run continues.
func (s *ImportService) Run(ctx context.Context) (*ImportSummary, error) {
	summary := &ImportSummary{StartedAt: time.Now()}

	if err := s.importCategories(ctx, summary); err != nil {
		log.Error().Err(err).Msg("category import failed")
	}
	if err := s.importProducts(ctx, summary); err != nil {
		if errors.Is(err, legacyapi.ErrNoCredential) {
			log.Warn().Msg("skipping product import, no legacy API credential configured")
		} else {
			log.Error().Err(err).Msg("product import failed")
		}
	}
	if err := s.importOrders(ctx, summary); err != nil {
		log.Error().Err(err).Msg("order import failed")
	}

	summary.FinishedAt = time.Now()

	if summary.Products > 0 || summary.Orders > 0 {
		if s.reportCache != nil {
			if err := s.reportCache.Invalidate(ctx); err != nil {
				log.Warn().Err(err).Msg("failed to invalidate report cache after import")
			}
		}
		if s.hub != nil {
			s.hub.Broadcast(sse.EventCatalogImportChanged, summary)
		}
	}

	log.Info().
		Int("categories", summary.Categories).
		Int("products", summary.Products).
		Int("orders", summary.Orders).
		Int("skipped", summary.Skipped).
		Dur("duration", summary.FinishedAt.Sub(summary.StartedAt)).
		Msg("catalog import finished")
	return summary, nil
}

func (s *ImportService) importCategories(ctx context.Context, summary *ImportSummary) error {
	categories, err := s.client.GetCategories(ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	for _, raw := range categories {
		cat := raw.Normalize(now)
		if cat.ID == "" {
			summary.Skipped++
			continue
		}
		if err := s.categoryRepo.Upsert(&cat); err != nil {
			log.Warn().Err(err).Str("category_id", cat.ID).Msg("category upsert failed")
			summary.Skipped++
			continue
		}
		summary.Categories++
	}
	return nil
}

const importPageSize = 50

func (s *ImportService) importProducts(ctx context.Context, summary *ImportSummary) error {
	now := time.Now()
	for page := 1; ; page++ {
		result, err := s.client.GetProducts(ctx, page, importPageSize)
		if err != nil {
			return err
		}
		for _, raw := range result.Products {
			product := raw.Normalize(now)
			if product.ID == "" {
				summary.Skipped++
				continue
			}
			if err := s.productRepo.Upsert(&product); err != nil {
				log.Warn().Err(err).Str("product_id", product.ID).Msg("product upsert failed")
				summary.Skipped++
				continue
			}
			summary.Products++
		}
		if page >= result.Pagination.Pages || len(result.Products) == 0 {
			return nil
		}
	}
}

func (s *ImportService) importOrders(ctx context.Context, summary *ImportSummary) error {
	orders, err := s.client.GetOrders(ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	for _, raw := range orders {
		order := raw.Normalize(now)
		if order.ID == "" {
			summary.Skipped++
			continue
		}
		if err := s.orderRepo.Upsert(&order); err != nil {
			log.Warn().Err(err).Str("order_id", order.ID).Msg("order upsert failed")
			summary.Skipped++
			continue
		}
		summary.Orders++
	}
	return nil
}
