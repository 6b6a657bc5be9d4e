package model

import "time"

type SendMessageRequest struct {
	SenderID    string `json:"-" validate:"required,max=100"`
	RecipientID string `json:"recipientId" validate:"required,max=100"`
	Body        string `json:"body" validate:"required,max=2000"`
}

type ChatHistoryRequest struct {
	UserID  string `json:"-" validate:"required,max=100"`
	OtherID string `json:"otherId" validate:"required,max=100"`
	Limit   int    `json:"limit" validate:"omitempty,min=1,max=200"`
}

type LastMessageRequest struct {
	UserID  string `json:"-" validate:"required,max=100"`
	OtherID string `json:"otherId" validate:"required,max=100"`
}

type ChatMessageResponse struct {
	MessageID string    `json:"messageId"`
	RoomID    string    `json:"roomId"`
	SenderID  string    `json:"senderId"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}

type ChatHistoryResponse struct {
	RoomID   string                `json:"roomId"`
	Messages []ChatMessageResponse `json:"messages"`
}

type LastMessageResponse struct {
	RoomID  string               `json:"roomId"`
	Message *ChatMessageResponse `json:"message,omitempty"`
}
