package http

import (
	"marketplace-service/src/internal/delivery/http/middleware"
	"marketplace-service/src/internal/model"
	"marketplace-service/src/internal/usecase"
	"marketplace-service/src/pkg/log"
	"marketplace-service/src/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type OrderController struct {
	Log     log.Log
	UseCase *usecase.OrderUseCase
}

func NewOrderController(useCase *usecase.OrderUseCase, logger log.Log) *OrderController {
	return &OrderController{
		Log:     logger,
		UseCase: useCase,
	}
}

func (c *OrderController) GetOrder(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	request := &model.OrderDetailRequest{
		UserID:  auth.Metadata.UserID,
		OrderID: ctx.Params("orderId"),
	}
	result := c.UseCase.OrderDetail(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Order Detail", fiber.StatusOK, ctx)
}

func (c *OrderController) ListOrders(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	request := &model.ListOrdersRequest{
		UserID: auth.Metadata.UserID,
		Role:   ctx.Query("role"),
	}
	result := c.UseCase.ListOrders(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Orders", fiber.StatusOK, ctx)
}

func (c *OrderController) DeliverCredentials(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	request := new(model.DeliverCredentialsRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("OrderController.DeliverCredentials", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(err, ctx)
	}
	request.SellerID = auth.Metadata.UserID
	request.OrderID = ctx.Params("orderId")

	result := c.UseCase.DeliverCredentials(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Credentials Delivered", fiber.StatusOK, ctx)
}

func (c *OrderController) RetrieveCredentials(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	request := &model.RetrieveCredentialsRequest{
		BuyerID: auth.Metadata.UserID,
		OrderID: ctx.Params("orderId"),
	}
	result := c.UseCase.RetrieveCredentials(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Account Credentials", fiber.StatusOK, ctx)
}

func (c *OrderController) ConfirmReceipt(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	request := new(model.ConfirmReceiptRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("OrderController.ConfirmReceipt", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(err, ctx)
	}
	request.BuyerID = auth.Metadata.UserID
	request.OrderID = ctx.Params("orderId")

	result := c.UseCase.ConfirmReceipt(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Order Completed", fiber.StatusOK, ctx)
}
