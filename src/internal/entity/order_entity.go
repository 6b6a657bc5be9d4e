package entity

import "time"

type Order struct {
	OrderID        string     `db:"order_id"`
	BuyerID        string     `db:"buyer_id"`
	SellerID       string     `db:"seller_id"`
	AccountID      string     `db:"account_id"`
	Game           string     `db:"game"`
	Title          string     `db:"title"`
	Price          float64    `db:"price"`
	Status         string     `db:"status"`
	AccountDetails []byte     `db:"account_details"` // JSON, NULL while in escrow
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      *time.Time `db:"updated_at"`
}

// OrderFilter narrows order lookups.
type OrderFilter struct {
	OrderID  *string
	BuyerID  *string
	SellerID *string
	Status   *string
}

// AccountCredentials is the credentials payload attached when a seller
// delivers a sold account.
type AccountCredentials struct {
	Username      string `json:"username"`
	Password      string `json:"password"`
	Email         string `json:"email"`
	RecoveryEmail string `json:"recoveryEmail,omitempty"`
	Notes         string `json:"notes,omitempty"`
}
