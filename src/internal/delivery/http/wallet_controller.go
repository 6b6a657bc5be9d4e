package http

import (
	"marketplace-service/src/internal/delivery/http/middleware"
	"marketplace-service/src/internal/model"
	"marketplace-service/src/internal/usecase"
	"marketplace-service/src/pkg/log"
	"marketplace-service/src/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type WalletController struct {
	Log     log.Log
	UseCase *usecase.WalletUseCase
}

func NewWalletController(useCase *usecase.WalletUseCase, logger log.Log) *WalletController {
	return &WalletController{
		Log:     logger,
		UseCase: useCase,
	}
}

func (c *WalletController) SubmitDeposit(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	request := new(model.SubmitDepositRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("WalletController.SubmitDeposit", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(err, ctx)
	}
	request.UserID = auth.Metadata.UserID

	result := c.UseCase.SubmitDeposit(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Deposit Request Submitted", fiber.StatusCreated, ctx)
}

func (c *WalletController) QuoteFee(ctx *fiber.Ctx) error {
	request := &model.FeeQuoteRequest{
		Amount: ctx.QueryFloat("amount"),
	}
	result := c.UseCase.QuoteFee(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Fee Quote", fiber.StatusOK, ctx)
}

func (c *WalletController) SubmitWithdraw(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	request := new(model.SubmitWithdrawRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("WalletController.SubmitWithdraw", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(err, ctx)
	}
	request.UserID = auth.Metadata.UserID

	result := c.UseCase.SubmitWithdraw(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Withdraw Request Submitted", fiber.StatusCreated, ctx)
}
