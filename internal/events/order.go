package events

import (
	"time"

	"github.com/gordopods/storefront/internal/order"
)

const (
	TypeOrderCreated       = "order_created"
	TypeOrderStatusChanged = "order_status_changed"
)

type OrderEvent struct {
	Type        string    `json:"type"`
	OrderID     string    `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	Status      string    `json:"status"`
	Total       int64     `json:"total"`
	At          time.Time `json:"at"`
}

func NewOrderEvent(typ string, o order.Order, at time.Time) OrderEvent {
	return OrderEvent{
		Type:        typ,
		OrderID:     o.ID,
		OrderNumber: o.Number,
		Status:      string(o.Status),
		Total:       o.Total,
		At:          at.UTC(),
	}
}
