package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderStatusTransitions(t *testing.T) {
	legal := []struct{ from, to OrderStatus }{
		{OrderStatusPending, OrderStatusConfirmed},
		{OrderStatusConfirmed, OrderStatusShipped},
		{OrderStatusShipped, OrderStatusDelivered},
		{OrderStatusPending, OrderStatusCancelled},
		{OrderStatusConfirmed, OrderStatusCancelled},
		{OrderStatusShipped, OrderStatusCancelled},
	}
	for _, tt := range legal {
		assert.True(t, tt.from.CanTransitionTo(tt.to), "%s to %s should be allowed", tt.from, tt.to)
	}

	illegal := []struct{ from, to OrderStatus }{
		{OrderStatusPending, OrderStatusShipped},
		{OrderStatusPending, OrderStatusDelivered},
		{OrderStatusConfirmed, OrderStatusDelivered},
		{OrderStatusShipped, OrderStatusConfirmed},
		{OrderStatusDelivered, OrderStatusCancelled},
		{OrderStatusCancelled, OrderStatusPending},
		{OrderStatusConfirmed, OrderStatus("teleported")},
	}
	for _, tt := range illegal {
		assert.False(t, tt.from.CanTransitionTo(tt.to), "%s to %s should be rejected", tt.from, tt.to)
	}
}

func TestPaymentStatusTransitions(t *testing.T) {
	assert.True(t, PaymentStatusPending.CanTransitionTo(PaymentStatusPaid))
	assert.True(t, PaymentStatusPending.CanTransitionTo(PaymentStatusFailed))
	assert.True(t, PaymentStatusPaid.CanTransitionTo(PaymentStatusRefunded))

	assert.False(t, PaymentStatusPaid.CanTransitionTo(PaymentStatusPending))
	assert.False(t, PaymentStatusFailed.CanTransitionTo(PaymentStatusPaid))
	assert.False(t, PaymentStatusRefunded.CanTransitionTo(PaymentStatusPaid))
}

func TestApplyStatusAppendsHistory(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	o := Order{Status: OrderStatusPending}

	require.NoError(t, o.ApplyStatus(OrderStatusConfirmed, "payment received", now))
	assert.Equal(t, OrderStatusConfirmed, o.Status)
	require.Len(t, o.StatusHistory, 1)
	assert.Equal(t, "payment received", o.StatusHistory[0].Note)
	assert.Equal(t, now, o.StatusHistory[0].Timestamp)
}

func TestApplyStatusDefaultNote(t *testing.T) {
	now := time.Now()
	o := Order{Status: OrderStatusConfirmed}

	require.NoError(t, o.ApplyStatus(OrderStatusShipped, "", now))
	require.Len(t, o.StatusHistory, 1)
	assert.Equal(t, "Status changed from confirmed to shipped", o.StatusHistory[0].Note)
}

func TestApplyStatusRejectsIllegalMove(t *testing.T) {
	o := Order{Status: OrderStatusDelivered}

	err := o.ApplyStatus(OrderStatusShipped, "", time.Now())
	require.Error(t, err)
	assert.Equal(t, OrderStatusDelivered, o.Status, "order stays untouched on rejection")
	assert.Empty(t, o.StatusHistory)
}

func TestItemsTotal(t *testing.T) {
	o := Order{Items: OrderItems{
		{ProductID: "p1", Price: 12.5, Quantity: 2},
		{ProductID: "p2", Price: 5, Quantity: 3},
	}}
	assert.InDelta(t, 40.0, o.ItemsTotal(), 0.001)
}

func TestOrderJSONInlinesCustomer(t *testing.T) {
	o := Order{
		ID:            "o1",
		OrderNumber:   "ORD-001",
		CustomerName:  "Hala Fawzy",
		CustomerEmail: "hala@example.com",
		Status:        OrderStatusPending,
		PaymentStatus: PaymentStatusPending,
	}

	raw, err := json.Marshal(o)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	customer, ok := decoded["customer"].(map[string]any)
	require.True(t, ok, "customer block must be present")
	assert.Equal(t, "Hala Fawzy", customer["name"])
	assert.NotContains(t, decoded, "customerName", "flat fields stay out of the payload")
}

func TestOrderItemsScanRoundTrip(t *testing.T) {
	items := OrderItems{{ProductID: "p1", Name: "Mop", Price: 9.99, Quantity: 1}}

	v, err := items.Value()
	require.NoError(t, err)

	var decoded OrderItems
	require.NoError(t, decoded.Scan(v))
	assert.Equal(t, items, decoded)

	var fromNil OrderItems
	require.NoError(t, fromNil.Scan(nil))
	assert.Nil(t, fromNil)
}
