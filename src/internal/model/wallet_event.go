package model

import "time"

// WalletEvent is published when an admin decision adjusts a wallet balance.
type WalletEvent struct {
	EventID    string    `json:"event_id"`
	RequestID  string    `json:"request_id"`
	UserID     string    `json:"user_id"`
	Kind       string    `json:"kind"` // deposit | withdraw
	Decision   string    `json:"decision"`
	Amount     float64   `json:"amount"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (e *WalletEvent) GetId() string {
	return e.EventID
}

// DeliveryNoticePayload is the asynq task payload queued when a seller
// delivers account credentials.
type DeliveryNoticePayload struct {
	OrderID string `json:"order_id"`
	BuyerID string `json:"buyer_id"`
}
