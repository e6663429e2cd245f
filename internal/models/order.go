package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type OrderStatus string
type PaymentStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed from s.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// CanTransitionTo reports whether the move from s to next is legal.
// The fulfilment chain is pending to confirmed to shipped to delivered;
// cancellation is reachable from any non-terminal state.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s.Terminal() || !next.Valid() {
		return false
	}
	if next == OrderStatusCancelled {
		return true
	}
	switch s {
	case OrderStatusPending:
		return next == OrderStatusConfirmed
	case OrderStatusConfirmed:
		return next == OrderStatusShipped
	case OrderStatusShipped:
		return next == OrderStatusDelivered
	}
	return false
}

// Valid reports whether s is a known payment status.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}

// CanTransitionTo reports whether the payment move from s to next is legal.
// Payment transitions independently of fulfilment: pending to paid or failed,
// paid to refunded.
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	switch s {
	case PaymentStatusPending:
		return next == PaymentStatusPaid || next == PaymentStatusFailed
	case PaymentStatusPaid:
		return next == PaymentStatusRefunded
	}
	return false
}

// OrderCustomer is the customer contact block embedded in an order.
type OrderCustomer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// OrderItem is one line item of an order. Price is the unit price at the
// time the order was placed.
type OrderItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// LineTotal returns price × quantity for the item.
func (i OrderItem) LineTotal() float64 {
	return i.Price * float64(i.Quantity)
}

// StatusHistoryEntry is one append-only record of a status transition.
type StatusHistoryEntry struct {
	Status    OrderStatus `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
	Note      string      `json:"note,omitempty"`
}

// OrderItems and StatusHistory are stored as JSONB columns.
type OrderItems []OrderItem
type StatusHistory []StatusHistoryEntry

func (v OrderItems) Value() (driver.Value, error)    { return json.Marshal(v) }
func (v StatusHistory) Value() (driver.Value, error) { return json.Marshal(v) }

func (v *OrderItems) Scan(src any) error    { return scanJSON(src, v) }
func (v *StatusHistory) Scan(src any) error { return scanJSON(src, v) }

func scanJSON(src, dst any) error {
	switch b := src.(type) {
	case []byte:
		return json.Unmarshal(b, dst)
	case string:
		return json.Unmarshal([]byte(b), dst)
	case nil:
		return nil
	}
	return fmt.Errorf("unsupported JSONB source type %T", src)
}

// Order captures a customer order and its fulfilment lifecycle.
type Order struct {
	ID            string        `db:"id" json:"id"`
	OrderNumber   string        `db:"order_number" json:"orderNumber"`
	CustomerName  string        `db:"customer_name" json:"-"`
	CustomerEmail string        `db:"customer_email" json:"-"`
	CustomerPhone string        `db:"customer_phone" json:"-"`
	Items         OrderItems    `db:"items" json:"items"`
	Total         float64       `db:"total" json:"total"`
	Shipping      float64       `db:"shipping" json:"shipping,omitempty"`
	Status        OrderStatus   `db:"status" json:"status"`
	PaymentStatus PaymentStatus `db:"payment_status" json:"paymentStatus"`
	Notes         string        `db:"notes" json:"notes,omitempty"`
	StatusHistory StatusHistory `db:"status_history" json:"statusHistory"`
	CreatedAt     time.Time     `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time     `db:"updated_at" json:"updatedAt"`
}

// Customer assembles the embedded contact block for JSON output.
func (o *Order) Customer() OrderCustomer {
	return OrderCustomer{Name: o.CustomerName, Email: o.CustomerEmail, Phone: o.CustomerPhone}
}

// MarshalJSON inlines the customer block the way the dashboard expects it.
func (o Order) MarshalJSON() ([]byte, error) {
	type alias Order
	return json.Marshal(struct {
		alias
		Customer OrderCustomer `json:"customer"`
	}{alias(o), o.Customer()})
}

// ItemsTotal sums the line totals of all items, excluding shipping.
func (o *Order) ItemsTotal() float64 {
	var sum float64
	for _, it := range o.Items {
		sum += it.LineTotal()
	}
	return sum
}

// ApplyStatus performs a validated status transition at the given time,
// appending one entry to the status history. An empty note defaults to a
// generated description of the transition.
func (o *Order) ApplyStatus(next OrderStatus, note string, now time.Time) error {
	if !o.Status.CanTransitionTo(next) {
		return fmt.Errorf("illegal status transition from %s to %s", o.Status, next)
	}
	if note == "" {
		note = fmt.Sprintf("Status changed from %s to %s", o.Status, next)
	}
	o.Status = next
	o.UpdatedAt = now
	o.StatusHistory = append(o.StatusHistory, StatusHistoryEntry{
		Status:    next,
		Timestamp: now,
		Note:      note,
	})
	return nil
}

// ApplyPaymentStatus performs a validated payment status transition.
func (o *Order) ApplyPaymentStatus(next PaymentStatus, now time.Time) error {
	if !o.PaymentStatus.CanTransitionTo(next) {
		return fmt.Errorf("illegal payment transition from %s to %s", o.PaymentStatus, next)
	}
	o.PaymentStatus = next
	o.UpdatedAt = now
	return nil
}
