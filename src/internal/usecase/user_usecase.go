package usecase

import (
	"context"
	"fmt"

	"marketplace-service/src/internal/model"
	"marketplace-service/src/internal/model/converter"
	"marketplace-service/src/internal/repository"
	httpError "marketplace-service/src/pkg/http-error"
	"marketplace-service/src/pkg/level"
	"marketplace-service/src/pkg/log"
	"marketplace-service/src/pkg/utils"

	"github.com/go-playground/validator/v10"
)

type UserUseCase struct {
	Log             log.Log
	Validate        *validator.Validate
	UserRepository  repository.UserStore
	OrderRepository repository.OrderStore
}

func NewUserUseCase(
	logger log.Log,
	validate *validator.Validate,
	userRepository repository.UserStore,
	orderRepository repository.OrderStore,
) *UserUseCase {
	return &UserUseCase{
		Log:             logger,
		Validate:        validate,
		UserRepository:  userRepository,
		OrderRepository: orderRepository,
	}
}

// GetProfile returns the user with their rank tier derived from cumulative
// completed-order value.
func (c *UserUseCase) GetProfile(ctx context.Context, request *model.GetUserRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		c.Log.Error("user-usecase", errObj.Message, "GetProfile", utils.ConvertString(err))
		return result
	}

	user, err := c.UserRepository.FindByID(ctx, request.ID)
	if err != nil || user == nil {
		errObj := httpError.NewNotFound()
		errObj.Message = fmt.Sprintf("user with id %s not found", request.ID)
		result.Error = errObj
		c.Log.Error("user-usecase", errObj.Message, "GetProfile", utils.ConvertString(err))
		return result
	}

	total, err := c.OrderRepository.SumCompletedValue(ctx, request.ID)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "Failed to compute level progress"
		result.Error = errObj
		c.Log.Error("user-usecase", fmt.Sprintf("Error sum completed value: %v", err), "GetProfile", utils.ConvertString(err))
		return result
	}

	result.Data = converter.UserToResponse(user, level.FromValue(total))
	return result
}
