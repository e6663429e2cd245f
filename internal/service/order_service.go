package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/TanzilStore/store_api/internal/cache"
	"github.com/TanzilStore/store_api/internal/models"
	"github.com/TanzilStore/store_api/internal/query"
	"github.com/TanzilStore/store_api/internal/repository"
	"github.com/TanzilStore/store_api/internal/sse"
	"github.com/TanzilStore/store_api/internal/utils"
)

// OrderService implements order listing and the fulfilment lifecycle.
// Status changes go through the validated transition table on the model;
// the service persists the result, notifies SSE subscribers and drops
// cached sales reports.
type OrderService struct {
	orderRepo   *repository.OrderRepository
	collections *Collections
	reportCache *cache.ReportCache
	notifier    sse.OrderNotifier
	sorter      *query.Sorter[models.Order]
}

// NewOrderService constructs a new OrderService.
func NewOrderService(
	orderRepo *repository.OrderRepository,
	collections *Collections,
	reportCache *cache.ReportCache,
	notifier sse.OrderNotifier,
) *OrderService {
	if notifier == nil {
		notifier = &sse.NopNotifier{}
	}
	return &OrderService{
		orderRepo:   orderRepo,
		collections: collections,
		reportCache: reportCache,
		notifier:    notifier,
		sorter: query.NewSorter(map[string]query.Compare[models.Order]{
			"date":        query.ByTime(func(o models.Order) time.Time { return o.CreatedAt }),
			"total":       query.ByNumber(func(o models.Order) float64 { return o.Total }),
			"orderNumber": query.ByText(func(o models.Order) string { return o.OrderNumber }),
			"customer":    query.ByText(func(o models.Order) string { return o.CustomerName }),
		}),
	}
}

// ListOrdersFilter carries the normalized order list parameters.
type ListOrdersFilter struct {
	Search        string
	Status        string
	PaymentStatus string
	SortBy        string
	SortDir       query.Direction
	Page          int
	Limit         int
}

// OrderList is a paged order listing.
type OrderList struct {
	Orders     []models.Order
	Pagination query.Pagination
	Fallback   bool
}

// List returns one page of orders matching the filter.
func (s *OrderService) List(filter ListOrdersFilter) *OrderList {
	snap := s.collections.Orders()

	spec := query.Spec[models.Order]{
		Search: filter.Search,
		TextFields: func(o models.Order) []string {
			return []string{o.OrderNumber, o.CustomerName, o.CustomerEmail, o.CustomerPhone}
		},
	}
	if filter.Status != "" {
		spec.Clauses = append(spec.Clauses,
			query.Equals(func(o models.Order) models.OrderStatus { return o.Status }, models.OrderStatus(filter.Status)))
	}
	if filter.PaymentStatus != "" {
		spec.Clauses = append(spec.Clauses,
			query.Equals(func(o models.Order) models.PaymentStatus { return o.PaymentStatus }, models.PaymentStatus(filter.PaymentStatus)))
	}

	sortBy := filter.SortBy
	dir := filter.SortDir
	if sortBy == "" {
		// Newest orders first by default
		sortBy, dir = "date", query.Desc
	}

	matched := query.Filter(snap.Records, spec)
	sorted := s.sorter.Sort(matched, sortBy, dir)
	page := query.Paginate(sorted, filter.Page, filter.Limit)

	return &OrderList{Orders: page.Items, Pagination: page.Pagination, Fallback: snap.Fallback}
}

// Get returns a single order by ID.
func (s *OrderService) Get(id string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

// UpdateStatus moves an order along the fulfilment lifecycle. An
// illegal transition is rejected without touching the order.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, next models.OrderStatus, note string) (*models.Order, error) {
	if !next.Valid() {
		return nil, utils.ErrInvalidStatus
	}

	order, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if err := order.ApplyStatus(next, note, time.Now()); err != nil {
		return nil, utils.ErrInvalidTransition
	}

	if err := s.orderRepo.UpdateStatus(order); err != nil {
		return nil, err
	}

	s.notifier.NotifyStatusChanged(order, note)
	s.invalidateReports(ctx)

	log.Info().
		Str("order_id", order.ID).
		Str("order_number", order.OrderNumber).
		Str("status", string(next)).
		Msg("order status updated")
	return order, nil
}

// UpdatePaymentStatus moves an order's payment state.
func (s *OrderService) UpdatePaymentStatus(ctx context.Context, id string, next models.PaymentStatus) (*models.Order, error) {
	if !next.Valid() {
		return nil, utils.ErrInvalidStatus
	}

	order, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if err := order.ApplyPaymentStatus(next, time.Now()); err != nil {
		return nil, utils.ErrInvalidTransition
	}

	if err := s.orderRepo.UpdatePaymentStatus(order); err != nil {
		return nil, err
	}

	s.notifier.NotifyPaymentChanged(order)
	s.invalidateReports(ctx)

	log.Info().
		Str("order_id", order.ID).
		Str("order_number", order.OrderNumber).
		Str("payment_status", string(next)).
		Msg("order payment status updated")
	return order, nil
}

func (s *OrderService) invalidateReports(ctx context.Context) {
	if s.reportCache == nil {
		return
	}
	if err := s.reportCache.Invalidate(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate report cache")
	}
}
