package converter

import (
	"time"

	"marketplace-service/src/internal/entity"
	"marketplace-service/src/internal/model"

	"github.com/google/uuid"
)

func OrderToResponse(order *entity.Order) *model.OrderResponse {
	return &model.OrderResponse{
		OrderID:   order.OrderID,
		BuyerID:   order.BuyerID,
		SellerID:  order.SellerID,
		AccountID: order.AccountID,
		Game:      order.Game,
		Title:     order.Title,
		Price:     order.Price,
		Status:    order.Status,
		CreatedAt: order.CreatedAt,
		UpdatedAt: order.UpdatedAt,
	}
}

func OrdersToResponse(orders []entity.Order) []model.OrderResponse {
	responses := make([]model.OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, *OrderToResponse(&orders[i]))
	}
	return responses
}

func OrderToEvent(order *entity.Order) *model.OrderEvent {
	return &model.OrderEvent{
		EventID:    uuid.NewString(),
		OrderID:    order.OrderID,
		BuyerID:    order.BuyerID,
		SellerID:   order.SellerID,
		Status:     order.Status,
		Price:      order.Price,
		OccurredAt: time.Now(),
	}
}

func CredentialsToResponse(orderID string, creds *entity.AccountCredentials) *model.CredentialsResponse {
	return &model.CredentialsResponse{
		OrderID:       orderID,
		Username:      creds.Username,
		Password:      creds.Password,
		Email:         creds.Email,
		RecoveryEmail: creds.RecoveryEmail,
		Notes:         creds.Notes,
	}
}
