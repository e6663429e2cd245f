package sse

import (
	"github.com/TanzilStore/store_api/internal/models"
)

// OrderNotifier is the interface services use to emit order events.
type OrderNotifier interface {
	NotifyStatusChanged(order *models.Order, note string)
	NotifyPaymentChanged(order *models.Order)
}

// HubNotifier implements OrderNotifier using the SSE Hub.
type HubNotifier struct {
	hub *Hub
}

// NewHubNotifier creates a notifier backed by the given Hub.
func NewHubNotifier(hub *Hub) *HubNotifier {
	return &HubNotifier{hub: hub}
}

func (n *HubNotifier) NotifyStatusChanged(order *models.Order, note string) {
	if n.hub.ClientCount() == 0 {
		return
	}
	n.hub.Broadcast(EventOrderStatusChanged, orderToEvent(order, note))
}

func (n *HubNotifier) NotifyPaymentChanged(order *models.Order) {
	if n.hub.ClientCount() == 0 {
		return
	}
	n.hub.Broadcast(EventOrderPaymentChanged, orderToEvent(order, ""))
}

func orderToEvent(order *models.Order, note string) *OrderEvent {
	return &OrderEvent{
		OrderID:       order.ID,
		OrderNumber:   order.OrderNumber,
		Status:        string(order.Status),
		PaymentStatus: string(order.PaymentStatus),
		Note:          note,
	}
}

// NopNotifier is a no-op implementation for when SSE is not needed.
type NopNotifier struct{}

func (n *NopNotifier) NotifyStatusChanged(order *models.Order, note string) {}
func (n *NopNotifier) NotifyPaymentChanged(order *models.Order)             {}
