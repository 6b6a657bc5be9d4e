package model

import "time"

type GetUserRequest struct {
	ID string `json:"id" validate:"required,max=100"`
}

type UserResponse struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	WalletBalance float64    `json:"walletBalance"`
	Level         int        `json:"level"`
	LevelProgress float64    `json:"levelProgress"`
	AtMaxLevel    bool       `json:"atMaxLevel"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty"`
}
