package model

import "time"

// OrderEvent is published when an escrow order changes state.
type OrderEvent struct {
	EventID    string    `json:"event_id"`
	OrderID    string    `json:"order_id"`
	BuyerID    string    `json:"buyer_id"`
	SellerID   string    `json:"seller_id"`
	Status     string    `json:"status"`
	Price      float64   `json:"price"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (e *OrderEvent) GetId() string {
	return e.EventID
}
