package entity

import "time"

type User struct {
	UserID        string     `db:"user_id"`
	FullName      string     `db:"full_name"`
	Email         string     `db:"email"`
	WalletBalance float64    `db:"wallet_balance"`
	AccountLevel  int        `db:"account_level"`
	IsDisabled    bool       `db:"is_disabled"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     *time.Time `db:"updated_at"`
}
