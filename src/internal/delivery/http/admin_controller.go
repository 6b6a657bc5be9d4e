package http

import (
	"fmt"

	"marketplace-service/src/internal/delivery/http/middleware"
	"marketplace-service/src/internal/model"
	"marketplace-service/src/internal/usecase"
	"marketplace-service/src/pkg/log"
	"marketplace-service/src/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

// AdminController serves the deposit/withdraw review screens.
type AdminController struct {
	Log     log.Log
	UseCase *usecase.WalletUseCase
}

func NewAdminController(useCase *usecase.WalletUseCase, logger log.Log) *AdminController {
	return &AdminController{
		Log:     logger,
		UseCase: useCase,
	}
}

func (c *AdminController) ListRequests(ctx *fiber.Ctx) error {
	request := &model.ListRequestsRequest{
		Kind:   ctx.Params("kind"),
		Status: ctx.Query("status"),
		Query:  ctx.Query("q"),
	}
	result := c.UseCase.ListRequests(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Wallet Requests", fiber.StatusOK, ctx)
}

func (c *AdminController) ApproveRequest(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	request := new(model.DecideRequestRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("AdminController.ApproveRequest", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(err, ctx)
	}
	request.AdminID = auth.Metadata.UserID
	request.Kind = ctx.Params("kind")
	request.RequestID = ctx.Params("requestId")

	result := c.UseCase.ApproveRequest(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Request Approved", fiber.StatusOK, ctx)
}

func (c *AdminController) RejectRequest(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	request := new(model.DecideRequestRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("AdminController.RejectRequest", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(err, ctx)
	}
	request.AdminID = auth.Metadata.UserID
	request.Kind = ctx.Params("kind")
	request.RequestID = ctx.Params("requestId")

	result := c.UseCase.RejectRequest(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Request Rejected", fiber.StatusOK, ctx)
}

func (c *AdminController) UpdateAdminNotes(ctx *fiber.Ctx) error {
	request := new(model.UpdateAdminNotesRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("AdminController.UpdateAdminNotes", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(err, ctx)
	}
	request.Kind = ctx.Params("kind")
	request.RequestID = ctx.Params("requestId")

	result := c.UseCase.UpdateAdminNotes(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Admin Notes Updated", fiber.StatusOK, ctx)
}

// ExportRequests streams the request list as a CSV download.
func (c *AdminController) ExportRequests(ctx *fiber.Ctx) error {
	request := &model.ListRequestsRequest{
		Kind:   ctx.Params("kind"),
		Status: ctx.Query("status"),
	}
	result := c.UseCase.ExportRequests(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	payload, _ := result.Data.([]byte)
	ctx.Set(fiber.HeaderContentType, "text/csv")
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s_requests.csv"`, request.Kind))
	return ctx.Status(fiber.StatusOK).Send(payload)
}
