package middleware

import (
	"fmt"

	"marketplace-service/src/internal/repository"
	httpError "marketplace-service/src/pkg/http-error"
	"marketplace-service/src/pkg/log"
	"marketplace-service/src/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

// VerifyActive loads the authenticated user's row and rejects disabled
// accounts with 403. Must run after VerifyBearer.
func VerifyActive(users repository.UserStore, logger log.Log) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		auth := GetUser(ctx)
		if auth == nil {
			errObj := httpError.NewUnauthorized()
			errObj.Message = "missing authentication"
			return utils.ResponseError(errObj, ctx)
		}

		user, err := users.FindByID(ctx.Context(), auth.Metadata.UserID)
		if err != nil {
			logger.Error("middleware", fmt.Sprintf("Failed to load user: %v", err), "VerifyActive", auth.Metadata.UserID)
			errObj := httpError.NewInternalServerError()
			errObj.Message = "failed to verify account"
			return utils.ResponseError(errObj, ctx)
		}
		if user == nil {
			errObj := httpError.NewUnauthorized()
			errObj.Message = "account no longer exists"
			return utils.ResponseError(errObj, ctx)
		}
		if user.IsDisabled {
			errObj := httpError.NewForbidden()
			errObj.Message = "account is disabled"
			return utils.ResponseError(errObj, ctx)
		}

		return ctx.Next()
	}
}
