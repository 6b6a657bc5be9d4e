package http

import (
	"marketplace-service/src/internal/delivery/http/middleware"
	"marketplace-service/src/internal/model"
	"marketplace-service/src/internal/usecase"
	"marketplace-service/src/pkg/log"
	"marketplace-service/src/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type ChatController struct {
	Log     log.Log
	UseCase *usecase.ChatUseCase
}

func NewChatController(useCase *usecase.ChatUseCase, logger log.Log) *ChatController {
	return &ChatController{
		Log:     logger,
		UseCase: useCase,
	}
}

func (c *ChatController) SendMessage(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	request := new(model.SendMessageRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("ChatController.SendMessage", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(err, ctx)
	}
	request.SenderID = auth.Metadata.UserID

	result := c.UseCase.SendMessage(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Message Sent", fiber.StatusCreated, ctx)
}

func (c *ChatController) LastMessage(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	request := &model.LastMessageRequest{
		UserID:  auth.Metadata.UserID,
		OtherID: ctx.Params("otherId"),
	}
	result := c.UseCase.LastMessage(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Last Message", fiber.StatusOK, ctx)
}

func (c *ChatController) History(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	request := &model.ChatHistoryRequest{
		UserID:  auth.Metadata.UserID,
		OtherID: ctx.Params("otherId"),
		Limit:   ctx.QueryInt("limit"),
	}
	result := c.UseCase.History(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Chat History", fiber.StatusOK, ctx)
}
