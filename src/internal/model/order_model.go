package model

import "time"

type OrderDetailRequest struct {
	UserID  string `json:"-" validate:"required,max=100"`
	OrderID string `json:"orderId" validate:"required,max=100"`
}

type ListOrdersRequest struct {
	UserID string `json:"-" validate:"required,max=100"`
	Role   string `json:"role" validate:"omitempty,oneof=buyer seller"`
}

type DeliverCredentialsRequest struct {
	SellerID      string `json:"-" validate:"required,max=100"`
	OrderID       string `json:"orderId" validate:"required,max=100"`
	Username      string `json:"username"`
	Password      string `json:"password"`
	Email         string `json:"email"`
	RecoveryEmail string `json:"recoveryEmail,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

type RetrieveCredentialsRequest struct {
	BuyerID string `json:"-" validate:"required,max=100"`
	OrderID string `json:"orderId" validate:"required,max=100"`
}

// Acknowledgments is the irreversible-transaction disclaimer gate. All three
// must be accepted before a confirmation is processed.
type Acknowledgments struct {
	CredentialsVerified  bool `json:"credentialsVerified"`
	AccessTransferred    bool `json:"accessTransferred"`
	NoRefundUnderstood   bool `json:"noRefundUnderstood"`
}

func (a Acknowledgments) Accepted() bool {
	return a.CredentialsVerified && a.AccessTransferred && a.NoRefundUnderstood
}

type ConfirmReceiptRequest struct {
	BuyerID         string          `json:"-" validate:"required,max=100"`
	OrderID         string          `json:"orderId" validate:"required,max=100"`
	Acknowledgments Acknowledgments `json:"acknowledgments"`
}

type OrderResponse struct {
	OrderID   string     `json:"orderId"`
	BuyerID   string     `json:"buyerId"`
	SellerID  string     `json:"sellerId"`
	AccountID string     `json:"accountId"`
	Game      string     `json:"game"`
	Title     string     `json:"title"`
	Price     float64    `json:"price"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

type CredentialsResponse struct {
	OrderID       string `json:"orderId"`
	Username      string `json:"username"`
	Password      string `json:"password"`
	Email         string `json:"email"`
	RecoveryEmail string `json:"recoveryEmail,omitempty"`
	Notes         string `json:"notes,omitempty"`
}
