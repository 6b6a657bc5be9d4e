package entity

import (
	"database/sql"
	"fmt"
	"time"
)

// WalletRequest is one row of deposit_requests or withdraw_requests; both
// tables share the same shape, deposits additionally carry a receipt image.
type WalletRequest struct {
	RequestID     string         `db:"request_id"`
	UserID        string         `db:"user_id"`
	Amount        float64        `db:"amount"`
	PhoneNumber   string         `db:"phone_number"`
	Country       string         `db:"country"`
	PaymentMethod string         `db:"payment_method"`
	InstapayUser  sql.NullString `db:"instapay_user"`
	ReceiptImage  sql.NullString `db:"receipt_image"`
	Status        string         `db:"status"`
	AdminNotes    sql.NullString `db:"admin_notes"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     *time.Time     `db:"updated_at"`
}

// RequestKind selects which request table an admin action targets.
type RequestKind string

const (
	RequestKindDeposit  RequestKind = "deposit"
	RequestKindWithdraw RequestKind = "withdraw"
)

func ParseRequestKind(s string) (RequestKind, error) {
	switch RequestKind(s) {
	case RequestKindDeposit, RequestKindWithdraw:
		return RequestKind(s), nil
	}
	return "", fmt.Errorf("invalid request kind %q", s)
}
