package usecase

import (
	"context"
	"fmt"
	"strings"

	"marketplace-service/src/internal/entity"
	"marketplace-service/src/internal/model"
	"marketplace-service/src/internal/model/converter"
	"marketplace-service/src/internal/repository"
	httpError "marketplace-service/src/pkg/http-error"
	"marketplace-service/src/pkg/log"
	"marketplace-service/src/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type TicketUseCase struct {
	Log              log.Log
	Validate         *validator.Validate
	TicketRepository repository.TicketStore
}

func NewTicketUseCase(
	logger log.Log,
	validate *validator.Validate,
	ticketRepository repository.TicketStore,
) *TicketUseCase {
	return &TicketUseCase{
		Log:              logger,
		Validate:         validate,
		TicketRepository: ticketRepository,
	}
}

func (c *TicketUseCase) CreateTicket(ctx context.Context, request *model.CreateTicketRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		c.Log.Error("ticket-usecase", errObj.Message, "CreateTicket", utils.ConvertString(err))
		return result
	}

	priority := request.Priority
	if priority == "" {
		priority = "medium"
	}

	ticket := &entity.SupportTicket{
		TicketID: uuid.NewString(),
		UserID:   request.UserID,
		Subject:  request.Subject,
		Message:  request.Message,
		Priority: priority,
		Status:   string(entity.TicketStatusPending),
	}

	if err := c.TicketRepository.Insert(ctx, ticket); err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "Failed to create ticket"
		result.Error = errObj
		c.Log.Error("ticket-usecase", fmt.Sprintf("Error insert ticket: %v", err), "CreateTicket", utils.ConvertString(err))
		return result
	}

	result.Data = converter.TicketToResponse(ticket)
	return result
}

func (c *TicketUseCase) ListMyTickets(ctx context.Context, userID string) utils.Result {
	var result utils.Result

	tickets, err := c.TicketRepository.ListByUser(ctx, userID)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "Failed to list tickets"
		result.Error = errObj
		c.Log.Error("ticket-usecase", fmt.Sprintf("Error list tickets: %v", err), "ListMyTickets", utils.ConvertString(err))
		return result
	}

	result.Data = converter.TicketsToResponse(tickets)
	return result
}

func (c *TicketUseCase) ListTickets(ctx context.Context, request *model.ListTicketsRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	tickets, err := c.TicketRepository.List(ctx, request.Status)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "Failed to list tickets"
		result.Error = errObj
		c.Log.Error("ticket-usecase", fmt.Sprintf("Error list tickets: %v", err), "ListTickets", utils.ConvertString(err))
		return result
	}

	if request.Query != "" {
		tickets = filterTickets(tickets, request.Query)
	}

	result.Data = converter.TicketsToResponse(tickets)
	return result
}

// Respond records the admin response and moves a pending ticket into
// in_progress. Responding to a non-pending ticket only updates the response.
func (c *TicketUseCase) Respond(ctx context.Context, request *model.RespondTicketRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	ticket, err := c.TicketRepository.FindByID(ctx, request.TicketID)
	if err != nil || ticket == nil {
		errObj := httpError.NewNotFound()
		errObj.Message = "Ticket not found"
		result.Error = errObj
		c.Log.Error("ticket-usecase", errObj.Message, "Respond", utils.ConvertString(err))
		return result
	}

	if entity.TicketStatus(ticket.Status) == entity.TicketStatusClosed {
		errObj := httpError.NewConflict()
		errObj.Message = "Ticket is closed"
		result.Error = errObj
		return result
	}

	if err := c.TicketRepository.Respond(ctx, request.TicketID, request.Response); err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "Failed to respond to ticket"
		result.Error = errObj
		c.Log.Error("ticket-usecase", fmt.Sprintf("Error respond ticket: %v", err), "Respond", utils.ConvertString(err))
		return result
	}
	ticket.AdminResponse = nullString(request.Response)

	if entity.TicketStatus(ticket.Status) == entity.TicketStatusPending {
		if ok, err := c.TicketRepository.UpdateStatus(ctx, request.TicketID, entity.TicketStatusPending, entity.TicketStatusInProgress); err == nil && ok {
			ticket.Status = string(entity.TicketStatusInProgress)
		}
	}

	result.Data = converter.TicketToResponse(ticket)
	return result
}

func (c *TicketUseCase) UpdateStatus(ctx context.Context, request *model.UpdateTicketStatusRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	ticket, err := c.TicketRepository.FindByID(ctx, request.TicketID)
	if err != nil || ticket == nil {
		errObj := httpError.NewNotFound()
		errObj.Message = "Ticket not found"
		result.Error = errObj
		c.Log.Error("ticket-usecase", errObj.Message, "UpdateStatus", utils.ConvertString(err))
		return result
	}

	from := entity.TicketStatus(ticket.Status)
	to := entity.TicketStatus(request.Status)
	if !from.CanTransitionTo(to) {
		errObj := httpError.NewConflict()
		errObj.Message = fmt.Sprintf("Ticket cannot move from %s to %s", from, to)
		result.Error = errObj
		return result
	}

	ok, err := c.TicketRepository.UpdateStatus(ctx, request.TicketID, from, to)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "Failed to update ticket status"
		result.Error = errObj
		c.Log.Error("ticket-usecase", fmt.Sprintf("Error update status: %v", err), "UpdateStatus", utils.ConvertString(err))
		return result
	}
	if !ok {
		errObj := httpError.NewConflict()
		errObj.Message = "Ticket status changed concurrently"
		result.Error = errObj
		return result
	}

	ticket.Status = string(to)
	result.Data = converter.TicketToResponse(ticket)
	return result
}

func filterTickets(tickets []entity.SupportTicket, query string) []entity.SupportTicket {
	q := strings.ToLower(query)
	filtered := make([]entity.SupportTicket, 0, len(tickets))
	for i := range tickets {
		t := &tickets[i]
		if strings.Contains(strings.ToLower(t.Subject), q) ||
			strings.Contains(strings.ToLower(t.Message), q) ||
			strings.Contains(strings.ToLower(t.UserID), q) {
			filtered = append(filtered, *t)
		}
	}
	return filtered
}
