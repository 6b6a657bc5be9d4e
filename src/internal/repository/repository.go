package repository

import (
	"context"

	"marketplace-service/src/internal/entity"
)

// Store interfaces let usecases run against stubs in tests.

type OrderStore interface {
	FindOne(ctx context.Context, filter entity.OrderFilter) (*entity.Order, error)
	List(ctx context.Context, filter entity.OrderFilter) ([]entity.Order, error)
	AttachCredentials(ctx context.Context, orderID string, from, to entity.OrderStatus, details []byte) (bool, error)
	UpdateStatus(ctx context.Context, orderID string, from, to entity.OrderStatus) (bool, error)
	CompleteAndCredit(ctx context.Context, orderID, sellerID string, price float64) (bool, error)
	SumCompletedValue(ctx context.Context, userID string) (float64, error)
}

type UserStore interface {
	FindByID(ctx context.Context, id string) (*entity.User, error)
}

type RequestStore interface {
	Insert(ctx context.Context, kind entity.RequestKind, req *entity.WalletRequest) error
	FindByID(ctx context.Context, kind entity.RequestKind, id string) (*entity.WalletRequest, error)
	List(ctx context.Context, kind entity.RequestKind, status string) ([]entity.WalletRequest, error)
	ApproveAndAdjust(ctx context.Context, kind entity.RequestKind, id, notes string) (*entity.WalletRequest, bool, error)
	Reject(ctx context.Context, kind entity.RequestKind, id, notes string) (bool, error)
	UpdateAdminNotes(ctx context.Context, kind entity.RequestKind, id, notes string) error
}

type TicketStore interface {
	Insert(ctx context.Context, ticket *entity.SupportTicket) error
	FindByID(ctx context.Context, id string) (*entity.SupportTicket, error)
	List(ctx context.Context, status string) ([]entity.SupportTicket, error)
	ListByUser(ctx context.Context, userID string) ([]entity.SupportTicket, error)
	Respond(ctx context.Context, id, response string) error
	UpdateStatus(ctx context.Context, id string, from, to entity.TicketStatus) (bool, error)
}

type ChatStore interface {
	Insert(ctx context.Context, msg *entity.ChatMessage) error
	History(ctx context.Context, roomID string, limit int) ([]entity.ChatMessage, error)
}
