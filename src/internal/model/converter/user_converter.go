package converter

import (
	"marketplace-service/src/internal/entity"
	"marketplace-service/src/internal/model"
	"marketplace-service/src/pkg/level"
)

func UserToResponse(user *entity.User, progress level.Progress) *model.UserResponse {
	return &model.UserResponse{
		ID:            user.UserID,
		Name:          user.FullName,
		Email:         user.Email,
		WalletBalance: user.WalletBalance,
		Level:         progress.Level,
		LevelProgress: progress.Percent,
		AtMaxLevel:    progress.AtMax,
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
	}
}

func TicketToResponse(t *entity.SupportTicket) *model.TicketResponse {
	return &model.TicketResponse{
		TicketID:      t.TicketID,
		UserID:        t.UserID,
		Subject:       t.Subject,
		Message:       t.Message,
		Priority:      t.Priority,
		Status:        t.Status,
		AdminResponse: t.AdminResponse.String,
		AdminNotes:    t.AdminNotes.String,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

func TicketsToResponse(tickets []entity.SupportTicket) []model.TicketResponse {
	responses := make([]model.TicketResponse, 0, len(tickets))
	for i := range tickets {
		responses = append(responses, *TicketToResponse(&tickets[i]))
	}
	return responses
}

func MessageToResponse(m *entity.ChatMessage) model.ChatMessageResponse {
	return model.ChatMessageResponse{
		MessageID: m.MessageID,
		RoomID:    m.RoomID,
		SenderID:  m.SenderID,
		Body:      m.Body,
		CreatedAt: m.CreatedAt,
	}
}
