package service

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/TanzilStore/store_api/internal/models"
	"github.com/TanzilStore/store_api/internal/repository"
	"github.com/TanzilStore/store_api/internal/seed"
)

// Collections loads point-in-time snapshots of each collection and
// applies the documented degradation policy: a failed load answers with
// the seed dataset and a raised Fallback flag instead of an error, so
// list and analytics paths never have to handle a failed fetch. The
// flag travels to the response meta, keeping the degradation observable
// rather than silent.
type Collections struct {
	products   *repository.ProductRepository
	categories *repository.CategoryRepository
	orders     *repository.OrderRepository
	users      *repository.UserRepository
}

// NewCollections creates a Collections loader over the repositories.
func NewCollections(
	products *repository.ProductRepository,
	categories *repository.CategoryRepository,
	orders *repository.OrderRepository,
	users *repository.UserRepository,
) *Collections {
	return &Collections{products: products, categories: categories, orders: orders, users: users}
}

// Products returns a product snapshot, falling back to seed data.
func (l *Collections) Products() models.Snapshot[models.Product] {
	records, err := l.products.GetAll()
	if err != nil {
		log.Warn().Err(err).Msg("product collection load failed, serving seed data")
		snap := models.NewSnapshot(seed.Products(), 0, time.Now())
		snap.Fallback = true
		return snap
	}
	return models.NewSnapshot(records, len(records), time.Now())
}

// Categories returns a category snapshot, falling back to seed data.
// When activeOnly is set, inactive categories are excluded.
func (l *Collections) Categories(activeOnly bool) models.Snapshot[models.Category] {
	var (
		records []models.Category
		err     error
	)
	if activeOnly {
		records, err = l.categories.GetActive()
	} else {
		records, err = l.categories.GetAll()
	}
	if err != nil {
		log.Warn().Err(err).Msg("category collection load failed, serving seed data")
		snap := models.NewSnapshot(seed.Categories(), 0, time.Now())
		snap.Fallback = true
		return snap
	}
	return models.NewSnapshot(records, len(records), time.Now())
}

// Orders returns an order snapshot, falling back to seed data.
func (l *Collections) Orders() models.Snapshot[models.Order] {
	records, err := l.orders.GetAll()
	if err != nil {
		log.Warn().Err(err).Msg("order collection load failed, serving seed data")
		snap := models.NewSnapshot(seed.Orders(), 0, time.Now())
		snap.Fallback = true
		return snap
	}
	return models.NewSnapshot(records, len(records), time.Now())
}

// Users returns a user snapshot, falling back to seed data.
func (l *Collections) Users() models.Snapshot[models.User] {
	records, err := l.users.GetAll()
	if err != nil {
		log.Warn().Err(err).Msg("user collection load failed, serving seed data")
		snap := models.NewSnapshot(seed.Users(), 0, time.Now())
		snap.Fallback = true
		return snap
	}
	return models.NewSnapshot(records, len(records), time.Now())
}
