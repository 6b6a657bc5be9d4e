package usecase

import (
	"context"
	"net/http"
	"testing"

	"marketplace-service/src/internal/entity"
	"marketplace-service/src/internal/model"

	"github.com/stretchr/testify/assert"
)

func newTicketUseCase(tickets *stubTicketStore) *TicketUseCase {
	return NewTicketUseCase(silentLogger(), testValidator(), tickets)
}

func pendingTicket() *entity.SupportTicket {
	return &entity.SupportTicket{
		TicketID: "ticket-1",
		UserID:   "user-1",
		Subject:  "Order stuck in escrow",
		Message:  "My order has been in escrow for three days without delivery.",
		Priority: "medium",
		Status:   string(entity.TicketStatusPending),
	}
}

func TestCreateTicketDefaultsPriorityAndStatus(t *testing.T) {
	var inserted *entity.SupportTicket
	tickets := &stubTicketStore{
		InsertFn: func(ctx context.Context, ticket *entity.SupportTicket) error {
			inserted = ticket
			return nil
		},
	}
	uc := newTicketUseCase(tickets)

	result := uc.CreateTicket(context.Background(), &model.CreateTicketRequest{
		UserID:  "user-1",
		Subject: "Order stuck in escrow",
		Message: "My order has been in escrow for three days without delivery.",
	})

	assert.NoError(t, result.Error)
	assert.Equal(t, "medium", inserted.Priority)
	assert.Equal(t, string(entity.TicketStatusPending), inserted.Status)
	assert.NotEmpty(t, inserted.TicketID)
}

func TestCreateTicketRejectsShortMessage(t *testing.T) {
	uc := newTicketUseCase(&stubTicketStore{})

	result := uc.CreateTicket(context.Background(), &model.CreateTicketRequest{
		UserID:  "user-1",
		Subject: "Help",
		Message: "short",
	})
	assert.Equal(t, http.StatusBadRequest, errCode(t, result.Error))
}

func TestRespondMovesPendingToInProgress(t *testing.T) {
	var movedFrom, movedTo entity.TicketStatus
	tickets := &stubTicketStore{
		FindByIDFn: func(ctx context.Context, id string) (*entity.SupportTicket, error) {
			return pendingTicket(), nil
		},
		RespondFn: func(ctx context.Context, id, response string) error {
			return nil
		},
		UpdateStatusFn: func(ctx context.Context, id string, from, to entity.TicketStatus) (bool, error) {
			movedFrom, movedTo = from, to
			return true, nil
		},
	}
	uc := newTicketUseCase(tickets)

	result := uc.Respond(context.Background(), &model.RespondTicketRequest{
		AdminID:  "admin-1",
		TicketID: "ticket-1",
		Response: "We are looking into the delivery delay.",
	})

	assert.NoError(t, result.Error)
	assert.Equal(t, entity.TicketStatusPending, movedFrom)
	assert.Equal(t, entity.TicketStatusInProgress, movedTo)

	response, ok := result.Data.(*model.TicketResponse)
	assert.True(t, ok)
	assert.Equal(t, string(entity.TicketStatusInProgress), response.Status)
	assert.Equal(t, "We are looking into the delivery delay.", response.AdminResponse)
}

func TestRespondKeepsNonPendingStatus(t *testing.T) {
	statusUpdated := false
	ticket := pendingTicket()
	ticket.Status = string(entity.TicketStatusInProgress)
	tickets := &stubTicketStore{
		FindByIDFn: func(ctx context.Context, id string) (*entity.SupportTicket, error) {
			return ticket, nil
		},
		RespondFn: func(ctx context.Context, id, response string) error {
			return nil
		},
		UpdateStatusFn: func(ctx context.Context, id string, from, to entity.TicketStatus) (bool, error) {
			statusUpdated = true
			return true, nil
		},
	}
	uc := newTicketUseCase(tickets)

	result := uc.Respond(context.Background(), &model.RespondTicketRequest{
		AdminID:  "admin-1",
		TicketID: "ticket-1",
		Response: "Follow-up answer.",
	})

	assert.NoError(t, result.Error)
	assert.False(t, statusUpdated, "responding again must not touch the status")
}

func TestRespondClosedTicketConflicts(t *testing.T) {
	ticket := pendingTicket()
	ticket.Status = string(entity.TicketStatusClosed)
	tickets := &stubTicketStore{
		FindByIDFn: func(ctx context.Context, id string) (*entity.SupportTicket, error) {
			return ticket, nil
		},
	}
	uc := newTicketUseCase(tickets)

	result := uc.Respond(context.Background(), &model.RespondTicketRequest{
		AdminID:  "admin-1",
		TicketID: "ticket-1",
		Response: "Too late.",
	})
	assert.Equal(t, http.StatusConflict, errCode(t, result.Error))
}

func TestUpdateStatusRejectsInvalidTransition(t *testing.T) {
	ticket := pendingTicket()
	ticket.Status = string(entity.TicketStatusResolved)
	tickets := &stubTicketStore{
		FindByIDFn: func(ctx context.Context, id string) (*entity.SupportTicket, error) {
			return ticket, nil
		},
	}
	uc := newTicketUseCase(tickets)

	result := uc.UpdateStatus(context.Background(), &model.UpdateTicketStatusRequest{
		TicketID: "ticket-1",
		Status:   string(entity.TicketStatusInProgress),
	})
	assert.Equal(t, http.StatusConflict, errCode(t, result.Error))
}

func TestUpdateStatusAllowedTransition(t *testing.T) {
	ticket := pendingTicket()
	ticket.Status = string(entity.TicketStatusInProgress)
	tickets := &stubTicketStore{
		FindByIDFn: func(ctx context.Context, id string) (*entity.SupportTicket, error) {
			return ticket, nil
		},
		UpdateStatusFn: func(ctx context.Context, id string, from, to entity.TicketStatus) (bool, error) {
			return true, nil
		},
	}
	uc := newTicketUseCase(tickets)

	result := uc.UpdateStatus(context.Background(), &model.UpdateTicketStatusRequest{
		TicketID: "ticket-1",
		Status:   string(entity.TicketStatusResolved),
	})

	assert.NoError(t, result.Error)
	response, ok := result.Data.(*model.TicketResponse)
	assert.True(t, ok)
	assert.Equal(t, string(entity.TicketStatusResolved), response.Status)
}

func TestUpdateStatusConcurrentChangeConflicts(t *testing.T) {
	tickets := &stubTicketStore{
		FindByIDFn: func(ctx context.Context, id string) (*entity.SupportTicket, error) {
			return pendingTicket(), nil
		},
		UpdateStatusFn: func(ctx context.Context, id string, from, to entity.TicketStatus) (bool, error) {
			return false, nil
		},
	}
	uc := newTicketUseCase(tickets)

	result := uc.UpdateStatus(context.Background(), &model.UpdateTicketStatusRequest{
		TicketID: "ticket-1",
		Status:   string(entity.TicketStatusInProgress),
	})
	assert.Equal(t, http.StatusConflict, errCode(t, result.Error))
}

func TestFilterTicketsMatchesSubjectMessageAndUser(t *testing.T) {
	rows := []entity.SupportTicket{
		{TicketID: "a", UserID: "user-1", Subject: "Refund question", Message: "About my refund"},
		{TicketID: "b", UserID: "user-2", Subject: "Login issue", Message: "Cannot sign in"},
		{TicketID: "c", UserID: "searcher", Subject: "Other", Message: "Other"},
	}

	assert.Len(t, filterTickets(rows, "refund"), 1)
	assert.Len(t, filterTickets(rows, "SIGN"), 1)
	assert.Len(t, filterTickets(rows, "searcher"), 1)
	assert.Empty(t, filterTickets(rows, "nothing"))
}
