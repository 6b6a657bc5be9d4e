package model

import "time"

type CreateTicketRequest struct {
	UserID   string `json:"-" validate:"required,max=100"`
	Subject  string `json:"subject" validate:"required,min=3,max=200"`
	Message  string `json:"message" validate:"required,min=10,max=2000"`
	Priority string `json:"priority" validate:"omitempty,oneof=low medium high"`
}

type ListTicketsRequest struct {
	Status string `json:"status" validate:"omitempty,oneof=pending in_progress resolved closed"`
	Query  string `json:"q" validate:"max=100"`
}

type RespondTicketRequest struct {
	AdminID  string `json:"-" validate:"required,max=100"`
	TicketID string `json:"ticketId" validate:"required,max=100"`
	Response string `json:"response" validate:"required,max=2000"`
}

type UpdateTicketStatusRequest struct {
	TicketID string `json:"ticketId" validate:"required,max=100"`
	Status   string `json:"status" validate:"required,oneof=pending in_progress resolved closed"`
}

type TicketResponse struct {
	TicketID      string     `json:"ticketId"`
	UserID        string     `json:"userId"`
	Subject       string     `json:"subject"`
	Message       string     `json:"message"`
	Priority      string     `json:"priority"`
	Status        string     `json:"status"`
	AdminResponse string     `json:"adminResponse,omitempty"`
	AdminNotes    string     `json:"adminNotes,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty"`
}
