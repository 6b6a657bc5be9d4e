package converter

import (
	"time"

	"marketplace-service/src/internal/entity"
	"marketplace-service/src/internal/model"

	"github.com/google/uuid"
)

func RequestToResponse(req *entity.WalletRequest) *model.WalletRequestResponse {
	return &model.WalletRequestResponse{
		RequestID:     req.RequestID,
		UserID:        req.UserID,
		Amount:        req.Amount,
		PhoneNumber:   req.PhoneNumber,
		Country:       req.Country,
		PaymentMethod: req.PaymentMethod,
		InstapayUser:  req.InstapayUser.String,
		ReceiptImage:  req.ReceiptImage.String,
		Status:        req.Status,
		AdminNotes:    req.AdminNotes.String,
		CreatedAt:     req.CreatedAt,
		UpdatedAt:     req.UpdatedAt,
	}
}

func RequestsToResponse(reqs []entity.WalletRequest) []model.WalletRequestResponse {
	responses := make([]model.WalletRequestResponse, 0, len(reqs))
	for i := range reqs {
		responses = append(responses, *RequestToResponse(&reqs[i]))
	}
	return responses
}

func RequestToWalletEvent(req *entity.WalletRequest, kind entity.RequestKind, decision string) *model.WalletEvent {
	return &model.WalletEvent{
		EventID:    uuid.NewString(),
		RequestID:  req.RequestID,
		UserID:     req.UserID,
		Kind:       string(kind),
		Decision:   decision,
		Amount:     req.Amount,
		OccurredAt: time.Now(),
	}
}
