package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/TanzilStore/store_api/internal/cache"
	"github.com/TanzilStore/store_api/internal/models"
	"github.com/TanzilStore/store_api/internal/query"
	"github.com/TanzilStore/store_api/internal/repository"
	"github.com/TanzilStore/store_api/internal/utils"
)

// ProductService implements the product catalog operations. Listing runs
// entirely through the in-memory query pipeline over a collection
// snapshot so search, filter, sort and pagination behave identically on
// every screen that lists products.
type ProductService struct {
	productRepo  *repository.ProductRepository
	categoryRepo *repository.CategoryRepository
	collections  *Collections
	reportCache  *cache.ReportCache
	sorter       *query.Sorter[models.Product]
}

// NewProductService constructs a new ProductService.
func NewProductService(
	productRepo *repository.ProductRepository,
	categoryRepo *repository.CategoryRepository,
	collections *Collections,
	reportCache *cache.ReportCache,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		collections:  collections,
		reportCache:  reportCache,
		sorter: query.NewSorter(map[string]query.Compare[models.Product]{
			"name":      query.ByText(func(p models.Product) string { return p.Name }),
			"nameAr":    query.ByText(func(p models.Product) string { return p.NameAr }),
			"price":     query.ByNumber(func(p models.Product) float64 { return p.Price }),
			"stock":     query.ByNumber(func(p models.Product) float64 { return float64(p.Stock) }),
			"rating":    query.ByNumber(func(p models.Product) float64 { return p.Rating }),
			"createdAt": query.ByTime(func(p models.Product) time.Time { return p.CreatedAt }),
		}),
	}
}

// ListProductsFilter carries the normalized list parameters.
type ListProductsFilter struct {
	Search   string
	Category string
	OnSale   *bool
	Featured *bool
	SortBy   string
	SortDir  query.Direction
	Page     int
	Limit    int
}

// ProductList is a paged product listing.
type ProductList struct {
	Products   []models.Product
	Pagination query.Pagination
	Fallback   bool
}

// List returns one page of products matching the filter.
func (s *ProductService) List(filter ListProductsFilter) *ProductList {
	snap := s.collections.Products()

	spec := query.Spec[models.Product]{
		Search: filter.Search,
		TextFields: func(p models.Product) []string {
			return []string{p.Name, p.NameAr, p.Description, p.DescriptionAr}
		},
	}
	if filter.Category != "" {
		spec.Clauses = append(spec.Clauses,
			query.Equals(func(p models.Product) string { return p.CategoryID }, filter.Category))
	}
	if filter.OnSale != nil {
		spec.Clauses = append(spec.Clauses,
			query.Equals(func(p models.Product) bool { return p.IsOnSale }, *filter.OnSale))
	}
	if filter.Featured != nil {
		spec.Clauses = append(spec.Clauses,
			query.Equals(func(p models.Product) bool { return p.IsFeatured }, *filter.Featured))
	}

	matched := query.Filter(snap.Records, spec)
	sorted := s.sorter.Sort(matched, filter.SortBy, filter.SortDir)
	page := query.Paginate(sorted, filter.Page, filter.Limit)

	return &ProductList{Products: page.Items, Pagination: page.Pagination, Fallback: snap.Fallback}
}

// Get returns a single product by ID.
func (s *ProductService) Get(id string) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

// validateProduct collects every form error at once so the dashboard can
// render them together instead of one round-trip per field.
func (s *ProductService) validateProduct(p *models.Product) error {
	var messages []string
	if strings.TrimSpace(p.Name) == "" {
		messages = append(messages, "name is required")
	}
	if strings.TrimSpace(p.NameAr) == "" {
		messages = append(messages, "nameAr is required")
	}
	if p.Price <= 0 {
		messages = append(messages, "price must be greater than zero")
	}
	if p.Stock < 0 {
		messages = append(messages, "stock must not be negative")
	}
	if strings.TrimSpace(p.CategoryID) == "" {
		messages = append(messages, "category is required")
	} else if _, err := s.categoryRepo.GetByID(p.CategoryID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			messages = append(messages, "category does not exist")
		} else {
			return err
		}
	}
	if p.IsOnSale {
		if p.DiscountPercentage == nil {
			messages = append(messages, "discountPercentage is required for a product on sale")
		} else if *p.DiscountPercentage <= 0 || *p.DiscountPercentage > 100 {
			messages = append(messages, "discountPercentage must be between 0 and 100")
		}
	}
	if len(messages) > 0 {
		return &utils.ValidationError{Messages: messages}
	}
	return nil
}

// Create validates and stores a new product.
func (s *ProductService) Create(ctx context.Context, product *models.Product) error {
	if err := s.validateProduct(product); err != nil {
		return err
	}

	now := time.Now()
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	product.CreatedAt = now
	product.UpdatedAt = now

	if err := s.productRepo.Create(product); err != nil {
		return err
	}

	s.invalidateReports(ctx)
	log.Info().Str("product_id", product.ID).Str("name", product.Name).Msg("product created")
	return nil
}

// Update validates and persists changes to an existing product.
func (s *ProductService) Update(ctx context.Context, product *models.Product) error {
	existing, err := s.Get(product.ID)
	if err != nil {
		return err
	}
	if err := s.validateProduct(product); err != nil {
		return err
	}

	product.CreatedAt = existing.CreatedAt
	product.UpdatedAt = time.Now()

	if err := s.productRepo.Update(product); err != nil {
		return err
	}

	s.invalidateReports(ctx)
	log.Info().Str("product_id", product.ID).Msg("product updated")
	return nil
}

// Delete removes a product.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.productRepo.Delete(id); err != nil {
		return err
	}

	s.invalidateReports(ctx)
	log.Info().Str("product_id", id).Msg("product deleted")
	return nil
}

// invalidateReports drops cached sales reports after a catalog change.
// Cache failures are logged, not surfaced; the report rebuilds on demand.
func (s *ProductService) invalidateReports(ctx context.Context) {
	if s.reportCache == nil {
		return
	}
	if err := s.reportCache.Invalidate(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate report cache")
	}
}
