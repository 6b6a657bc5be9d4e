package http

import (
	"marketplace-service/src/internal/delivery/http/middleware"
	"marketplace-service/src/internal/model"
	"marketplace-service/src/internal/usecase"
	"marketplace-service/src/pkg/log"
	"marketplace-service/src/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type TicketController struct {
	Log     log.Log
	UseCase *usecase.TicketUseCase
}

func NewTicketController(useCase *usecase.TicketUseCase, logger log.Log) *TicketController {
	return &TicketController{
		Log:     logger,
		UseCase: useCase,
	}
}

func (c *TicketController) CreateTicket(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	request := new(model.CreateTicketRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("TicketController.CreateTicket", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(err, ctx)
	}
	request.UserID = auth.Metadata.UserID

	result := c.UseCase.CreateTicket(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Ticket Created", fiber.StatusCreated, ctx)
}

func (c *TicketController) ListMyTickets(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	result := c.UseCase.ListMyTickets(ctx.Context(), auth.Metadata.UserID)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "My Tickets", fiber.StatusOK, ctx)
}

func (c *TicketController) ListTickets(ctx *fiber.Ctx) error {
	request := &model.ListTicketsRequest{
		Status: ctx.Query("status"),
		Query:  ctx.Query("q"),
	}
	result := c.UseCase.ListTickets(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Tickets", fiber.StatusOK, ctx)
}

func (c *TicketController) Respond(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	request := new(model.RespondTicketRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("TicketController.Respond", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(err, ctx)
	}
	request.AdminID = auth.Metadata.UserID
	request.TicketID = ctx.Params("ticketId")

	result := c.UseCase.Respond(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Ticket Response Saved", fiber.StatusOK, ctx)
}

func (c *TicketController) UpdateStatus(ctx *fiber.Ctx) error {
	request := new(model.UpdateTicketStatusRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("TicketController.UpdateStatus", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(err, ctx)
	}
	request.TicketID = ctx.Params("ticketId")

	result := c.UseCase.UpdateStatus(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Ticket Status Updated", fiber.StatusOK, ctx)
}
