package repository

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/TanzilStore/store_api/internal/models"
)

// OrderRepository handles data access for orders.
type OrderRepository struct {
	db *sqlx.DB
}

// NewOrderRepository creates a new OrderRepository.
func NewOrderRepository(db *sqlx.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// GetAll returns the full order collection, newest first.
func (r *OrderRepository) GetAll() ([]models.Order, error) {
	const q = `SELECT * FROM orders ORDER BY created_at DESC, id`
	orders := []models.Order{}
	if err := r.db.Select(&orders, q); err != nil {
		return nil, err
	}
	return orders, nil
}

// GetByID returns a single order by id.
func (r *OrderRepository) GetByID(id string) (*models.Order, error) {
	const q = `SELECT * FROM orders WHERE id = $1 LIMIT 1`
	var o models.Order
	if err := r.db.Get(&o, q, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		return nil, err
	}
	return &o, nil
}

// Create inserts a new order.
func (r *OrderRepository) Create(order *models.Order) error {
	const q = `
        INSERT INTO orders (id, order_number, customer_name, customer_email, customer_phone,
            items, total, shipping, status, payment_status, notes, status_history)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
        RETURNING created_at, updated_at`

	return r.db.QueryRowx(q,
		order.ID,
		order.OrderNumber,
		order.CustomerName,
		order.CustomerEmail,
		order.CustomerPhone,
		order.Items,
		order.Total,
		order.Shipping,
		order.Status,
		order.PaymentStatus,
		order.Notes,
		order.StatusHistory,
	).Scan(&order.CreatedAt, &order.UpdatedAt)
}

// UpdateStatus persists a status transition together with the appended
// history. The history column is replaced wholesale with the already
// appended log; entries are never rewritten individually.
func (r *OrderRepository) UpdateStatus(order *models.Order) error {
	const q = `
        UPDATE orders
        SET status = $2, status_history = $3, updated_at = NOW()
        WHERE id = $1
        RETURNING updated_at`

	return r.db.QueryRowx(q, order.ID, order.Status, order.StatusHistory).Scan(&order.UpdatedAt)
}

// UpdatePaymentStatus persists a payment status transition.
func (r *OrderRepository) UpdatePaymentStatus(order *models.Order) error {
	const q = `
        UPDATE orders
        SET payment_status = $2, updated_at = NOW()
        WHERE id = $1
        RETURNING updated_at`

	return r.db.QueryRowx(q, order.ID, order.PaymentStatus).Scan(&order.UpdatedAt)
}

// Upsert inserts or updates an order by id. Used by the catalog import.
func (r *OrderRepository) Upsert(order *models.Order) error {
	const q = `
        INSERT INTO orders (id, order_number, customer_name, customer_email, customer_phone,
            items, total, shipping, status, payment_status, notes, status_history)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
        ON CONFLICT (id) DO UPDATE SET
            order_number = EXCLUDED.order_number,
            customer_name = EXCLUDED.customer_name,
            customer_email = EXCLUDED.customer_email,
            customer_phone = EXCLUDED.customer_phone,
            items = EXCLUDED.items,
            total = EXCLUDED.total,
            shipping = EXCLUDED.shipping,
            status = EXCLUDED.status,
            payment_status = EXCLUDED.payment_status,
            notes = EXCLUDED.notes,
            status_history = EXCLUDED.status_history,
            updated_at = NOW()`

	_, err := r.db.Exec(q,
		order.ID,
		order.OrderNumber,
		order.CustomerName,
		order.CustomerEmail,
		order.CustomerPhone,
		order.Items,
		order.Total,
		order.Shipping,
		order.Status,
		order.PaymentStatus,
		order.Notes,
		order.StatusHistory,
	)
	return err
}

// Count returns the total number of orders.
func (r *OrderRepository) Count() (int, error) {
	var total int
	if err := r.db.Get(&total, `SELECT COUNT(1) FROM orders`); err != nil {
		return 0, err
	}
	return total, nil
}
