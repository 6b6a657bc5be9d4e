package model

import "time"

type SubmitDepositRequest struct {
	UserID        string  `json:"-" validate:"required,max=100"`
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	PhoneNumber   string  `json:"phoneNumber" validate:"required,max=20"`
	Country       string  `json:"country" validate:"required,max=50"`
	PaymentMethod string  `json:"paymentMethod" validate:"required,oneof=vodafone_cash instapay bank_transfer"`
	InstapayUser  string  `json:"instapayUser,omitempty" validate:"max=100"`
	ReceiptImage  string  `json:"receiptImage" validate:"required,max=500"`
}

type SubmitWithdrawRequest struct {
	UserID        string  `json:"-" validate:"required,max=100"`
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	PhoneNumber   string  `json:"phoneNumber" validate:"required,max=20"`
	Country       string  `json:"country" validate:"required,max=50"`
	PaymentMethod string  `json:"paymentMethod" validate:"required,oneof=vodafone_cash instapay bank_transfer"`
	InstapayUser  string  `json:"instapayUser,omitempty" validate:"max=100"`
}

type DecideRequestRequest struct {
	AdminID    string `json:"-" validate:"required,max=100"`
	Kind       string `json:"kind" validate:"required,oneof=deposit withdraw"`
	RequestID  string `json:"requestId" validate:"required,max=100"`
	AdminNotes string `json:"adminNotes,omitempty" validate:"max=1000"`
}

type UpdateAdminNotesRequest struct {
	Kind       string `json:"kind" validate:"required,oneof=deposit withdraw"`
	RequestID  string `json:"requestId" validate:"required,max=100"`
	AdminNotes string `json:"adminNotes" validate:"required,max=1000"`
}

type ListRequestsRequest struct {
	Kind   string `json:"kind" validate:"required,oneof=deposit withdraw"`
	Status string `json:"status" validate:"omitempty,oneof=pending approved rejected"`
	Query  string `json:"q" validate:"max=100"`
}

type FeeQuoteRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

type FeeQuoteResponse struct {
	Amount         float64 `json:"amount"`
	FeePercentage  float64 `json:"feePercentage"`
	FeeAmount      float64 `json:"feeAmount"`
	AmountAfterFee float64 `json:"amountAfterFee"`
	RequiredForNet float64 `json:"requiredForNet"`
}

type WalletRequestResponse struct {
	RequestID     string     `json:"requestId"`
	UserID        string     `json:"userId"`
	Amount        float64    `json:"amount"`
	PhoneNumber   string     `json:"phoneNumber"`
	Country       string     `json:"country"`
	PaymentMethod string     `json:"paymentMethod"`
	InstapayUser  string     `json:"instapayUser,omitempty"`
	ReceiptImage  string     `json:"receiptImage,omitempty"`
	Status        string     `json:"status"`
	AdminNotes    string     `json:"adminNotes,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty"`
}
