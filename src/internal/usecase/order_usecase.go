package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"marketplace-service/src/internal/entity"
	"marketplace-service/src/internal/gateway/messaging"
	"marketplace-service/src/internal/model"
	"marketplace-service/src/internal/model/converter"
	"marketplace-service/src/internal/repository"
	httpError "marketplace-service/src/pkg/http-error"
	"marketplace-service/src/pkg/log"
	"marketplace-service/src/pkg/metrics"
	"marketplace-service/src/pkg/utils"
	"marketplace-service/src/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
)

const TypeDeliveryNotice = "order:delivery-notice"

type OrderUseCase struct {
	Log             log.Log
	Validate        *validator.Validate
	OrderRepository repository.OrderStore
	UserRepository  repository.UserStore
	Config          *viper.Viper
	Redis           redis.UniversalClient
	OrderProducer   *messaging.OrderProducer
	AsynqClient     *asynq.Client
	Metrics         *metrics.Metrics
}

func NewOrderUseCase(
	logger log.Log,
	validate *validator.Validate,
	orderRepository repository.OrderStore,
	userRepository repository.UserStore,
	cfg *viper.Viper,
	redisClient redis.UniversalClient,
	orderProducer *messaging.OrderProducer,
	asynqClient *asynq.Client,
	m *metrics.Metrics,
) *OrderUseCase {
	return &OrderUseCase{
		Log:             logger,
		Validate:        validate,
		OrderRepository: orderRepository,
		UserRepository:  userRepository,
		Config:          cfg,
		Redis:           redisClient,
		OrderProducer:   orderProducer,
		AsynqClient:     asynqClient,
		Metrics:         m,
	}
}

func (c *OrderUseCase) OrderDetail(ctx context.Context, request *model.OrderDetailRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		c.Log.Error("order-usecase", errObj.Message, "OrderDetail", utils.ConvertString(err))
		return result
	}

	order, err := c.OrderRepository.FindOne(ctx, entity.OrderFilter{OrderID: &request.OrderID})
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "Failed to load order"
		result.Error = errObj
		c.Metrics.Errors.WithLabelValues("order").Inc()
		c.Log.Error("order-usecase", fmt.Sprintf("Error get order: %v", err), "OrderDetail", utils.ConvertString(err))
		return result
	}
	if order == nil {
		errObj := httpError.NewNotFound()
		errObj.Message = "Order not found"
		result.Error = errObj
		return result
	}

	if order.BuyerID != request.UserID && order.SellerID != request.UserID {
		errObj := httpError.NewForbidden()
		errObj.Message = "You are not a party to this order"
		result.Error = errObj
		c.Log.Error("order-usecase", errObj.Message, "OrderDetail", request.UserID)
		return result
	}

	result.Data = converter.OrderToResponse(order)
	return result
}

func (c *OrderUseCase) ListOrders(ctx context.Context, request *model.ListOrdersRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	filter := entity.OrderFilter{}
	switch request.Role {
	case "seller":
		filter.SellerID = &request.UserID
	default:
		filter.BuyerID = &request.UserID
	}

	orders, err := c.OrderRepository.List(ctx, filter)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "Failed to list orders"
		result.Error = errObj
		c.Metrics.Errors.WithLabelValues("order").Inc()
		c.Log.Error("order-usecase", fmt.Sprintf("Error list orders: %v", err), "ListOrders", utils.ConvertString(err))
		return result
	}

	result.Data = converter.OrdersToResponse(orders)
	return result
}

// DeliverCredentials moves an escrow order to delivering, attaching the sold
// account's credentials. Required fields are checked before any repository
// call; an incomplete payload never reaches the database.
func (c *OrderUseCase) DeliverCredentials(ctx context.Context, request *model.DeliverCredentialsRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		c.Log.Error("order-usecase", errObj.Message, "DeliverCredentials", utils.ConvertString(err))
		return result
	}

	if errs := validation.ValidateAccountCredentials(request.Username, request.Password, request.Email); len(errs) > 0 {
		errObj := httpError.NewBadRequest()
		errObj.Message = strings.Join(errs, "; ")
		result.Error = errObj
		return result
	}

	order, err := c.OrderRepository.FindOne(ctx, entity.OrderFilter{OrderID: &request.OrderID})
	if err != nil || order == nil {
		errObj := httpError.NewNotFound()
		errObj.Message = "Order not found"
		result.Error = errObj
		c.Log.Error("order-usecase", errObj.Message, "DeliverCredentials", utils.ConvertString(err))
		return result
	}

	if order.SellerID != request.SellerID {
		errObj := httpError.NewForbidden()
		errObj.Message = "You are not the seller of this order"
		result.Error = errObj
		c.Log.Error("order-usecase", errObj.Message, "DeliverCredentials", request.SellerID)
		return result
	}

	switch entity.OrderStatus(order.Status) {
	case entity.OrderStatusEscrow:
		// continue
	case entity.OrderStatusCompleted, entity.OrderStatusCancelled:
		errObj := httpError.NewConflict()
		errObj.Message = "Order is no longer active (already completed or cancelled)"
		result.Error = errObj
		return result
	default:
		errObj := httpError.NewConflict()
		errObj.Message = "Credentials were already delivered for this order"
		result.Error = errObj
		return result
	}

	creds := entity.AccountCredentials{
		Username:      request.Username,
		Password:      request.Password,
		Email:         request.Email,
		RecoveryEmail: request.RecoveryEmail,
		Notes:         request.Notes,
	}
	payload, err := json.Marshal(creds)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = fmt.Sprintf("Error marshalling credentials: %v", err)
		result.Error = errObj
		c.Log.Error("order-usecase", errObj.Message, "DeliverCredentials", utils.ConvertString(err))
		return result
	}

	ok, err := c.OrderRepository.AttachCredentials(ctx, request.OrderID, entity.OrderStatusEscrow, entity.OrderStatusDelivering, payload)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "Failed to update order status to delivering"
		result.Error = errObj
		c.Metrics.Errors.WithLabelValues("order").Inc()
		c.Log.Error("order-usecase", fmt.Sprintf("Error attach credentials: %v", err), "DeliverCredentials", utils.ConvertString(err))
		return result
	}
	if !ok {
		errObj := httpError.NewConflict()
		errObj.Message = "Order could not be updated. It may have been changed concurrently."
		result.Error = errObj
		c.Log.Error("order-usecase", errObj.Message, "DeliverCredentials", "concurrent-update")
		return result
	}
	order.Status = string(entity.OrderStatusDelivering)
	c.Metrics.OrderTransitions.WithLabelValues(string(entity.OrderStatusEscrow), string(entity.OrderStatusDelivering)).Inc()

	c.enqueueDeliveryNotice(order)

	event := converter.OrderToEvent(order)
	c.Log.Info("order-usecase", "Publishing order delivered event", "DeliverCredentials", utils.ConvertString(event))
	if err = c.OrderProducer.SendDelivered(event); err != nil {
		c.Log.Error("order-usecase", fmt.Sprintf("Failed publish order delivered event : %+v", err), "DeliverCredentials", "")
	}

	result.Data = converter.OrderToResponse(order)
	return result
}

// RetrieveCredentials is the buyer pickup: the first successful read moves
// the order from delivering to awaiting_confirmation.
func (c *OrderUseCase) RetrieveCredentials(ctx context.Context, request *model.RetrieveCredentialsRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	order, err := c.OrderRepository.FindOne(ctx, entity.OrderFilter{OrderID: &request.OrderID})
	if err != nil || order == nil {
		errObj := httpError.NewNotFound()
		errObj.Message = "Order not found"
		result.Error = errObj
		c.Log.Error("order-usecase", errObj.Message, "RetrieveCredentials", utils.ConvertString(err))
		return result
	}

	if order.BuyerID != request.BuyerID {
		errObj := httpError.NewForbidden()
		errObj.Message = "You are not the buyer of this order"
		result.Error = errObj
		return result
	}

	switch entity.OrderStatus(order.Status) {
	case entity.OrderStatusEscrow:
		errObj := httpError.NewConflict()
		errObj.Message = "Seller has not delivered the account yet"
		result.Error = errObj
		return result
	case entity.OrderStatusDelivering:
		ok, err := c.OrderRepository.UpdateStatus(ctx, request.OrderID, entity.OrderStatusDelivering, entity.OrderStatusAwaitingConfirmation)
		if err != nil {
			errObj := httpError.NewInternalServerError()
			errObj.Message = "Failed to update order status"
			result.Error = errObj
			c.Metrics.Errors.WithLabelValues("order").Inc()
			c.Log.Error("order-usecase", fmt.Sprintf("Error update status: %v", err), "RetrieveCredentials", "")
			return result
		}
		if ok {
			order.Status = string(entity.OrderStatusAwaitingConfirmation)
			c.Metrics.OrderTransitions.WithLabelValues(string(entity.OrderStatusDelivering), string(entity.OrderStatusAwaitingConfirmation)).Inc()
		}
	case entity.OrderStatusAwaitingConfirmation, entity.OrderStatusCompleted:
		// credentials stay visible after pickup
	default:
		errObj := httpError.NewConflict()
		errObj.Message = "Order is cancelled"
		result.Error = errObj
		return result
	}

	if len(order.AccountDetails) == 0 {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "Order has no credentials attached"
		result.Error = errObj
		c.Metrics.Errors.WithLabelValues("order").Inc()
		c.Log.Error("order-usecase", errObj.Message, "RetrieveCredentials", order.OrderID)
		return result
	}

	var creds entity.AccountCredentials
	if err := json.Unmarshal(order.AccountDetails, &creds); err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = fmt.Sprintf("Error unmarshal credentials: %v", err)
		result.Error = errObj
		c.Log.Error("order-usecase", errObj.Message, "RetrieveCredentials", utils.ConvertString(err))
		return result
	}

	if c.Redis != nil {
		key := fmt.Sprintf("ORDER:CREDENTIALS:%s", order.OrderID)
		if redisErr := c.Redis.Set(ctx, key, order.AccountDetails, 2*time.Hour).Err(); redisErr != nil {
			c.Log.Error("order-usecase", fmt.Sprintf("Failed cache credentials: %v", redisErr), "RetrieveCredentials", "")
		}
	}

	result.Data = converter.CredentialsToResponse(order.OrderID, &creds)
	return result
}

// ConfirmReceipt is the irreversible completion step. The acknowledgment gate
// must be fully accepted, and the status flip plus seller credit happen in a
// single transaction behind a CAS, so a double submit cannot release funds
// twice.
func (c *OrderUseCase) ConfirmReceipt(ctx context.Context, request *model.ConfirmReceiptRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	if !request.Acknowledgments.Accepted() {
		errObj := httpError.NewBadRequest()
		errObj.Message = "All confirmation disclaimers must be accepted before completing the order"
		result.Error = errObj
		return result
	}

	order, err := c.OrderRepository.FindOne(ctx, entity.OrderFilter{OrderID: &request.OrderID})
	if err != nil || order == nil {
		errObj := httpError.NewNotFound()
		errObj.Message = "Order not found"
		result.Error = errObj
		c.Log.Error("order-usecase", errObj.Message, "ConfirmReceipt", utils.ConvertString(err))
		return result
	}

	if order.BuyerID != request.BuyerID {
		errObj := httpError.NewForbidden()
		errObj.Message = "You are not the buyer of this order"
		result.Error = errObj
		return result
	}

	switch entity.OrderStatus(order.Status) {
	case entity.OrderStatusAwaitingConfirmation:
		// continue
	case entity.OrderStatusCompleted:
		errObj := httpError.NewConflict()
		errObj.Message = "Order is already completed"
		result.Error = errObj
		return result
	default:
		errObj := httpError.NewConflict()
		errObj.Message = fmt.Sprintf("Order in invalid state for confirmation: %s", order.Status)
		result.Error = errObj
		return result
	}

	ok, err := c.OrderRepository.CompleteAndCredit(ctx, order.OrderID, order.SellerID, order.Price)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "Failed to complete order"
		result.Error = errObj
		c.Metrics.Errors.WithLabelValues("order").Inc()
		c.Log.Error("order-usecase", fmt.Sprintf("Error complete order: %v", err), "ConfirmReceipt", utils.ConvertString(err))
		return result
	}
	if !ok {
		errObj := httpError.NewConflict()
		errObj.Message = "Order was already confirmed. Funds are released only once."
		result.Error = errObj
		c.Log.Error("order-usecase", errObj.Message, "ConfirmReceipt", "concurrent-update")
		return result
	}
	order.Status = string(entity.OrderStatusCompleted)
	c.Metrics.OrderTransitions.WithLabelValues(string(entity.OrderStatusAwaitingConfirmation), string(entity.OrderStatusCompleted)).Inc()

	event := converter.OrderToEvent(order)
	c.Log.Info("order-usecase", "Publishing order completed event", "ConfirmReceipt", utils.ConvertString(event))
	if err = c.OrderProducer.SendCompleted(event); err != nil {
		c.Log.Error("order-usecase", fmt.Sprintf("Failed publish order completed event : %+v", err), "ConfirmReceipt", "")
	}

	result.Data = converter.OrderToResponse(order)
	return result
}

func (c *OrderUseCase) enqueueDeliveryNotice(order *entity.Order) {
	if c.AsynqClient == nil {
		return
	}
	payload, err := json.Marshal(model.DeliveryNoticePayload{OrderID: order.OrderID, BuyerID: order.BuyerID})
	if err != nil {
		c.Log.Error("order-usecase", fmt.Sprintf("Failed marshal delivery notice: %v", err), "enqueueDeliveryNotice", "")
		return
	}
	task := asynq.NewTask(TypeDeliveryNotice, payload)
	if _, err := c.AsynqClient.Enqueue(task); err != nil {
		c.Log.Error("order-usecase", fmt.Sprintf("Failed enqueue delivery notice: %v", err), "enqueueDeliveryNotice", "")
	}
}

// HandleDeliveryNotice is the asynq handler notifying the buyer that the
// seller delivered the account.
func (c *OrderUseCase) HandleDeliveryNotice(ctx context.Context, t *asynq.Task) error {
	var payload model.DeliveryNoticePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal delivery notice: %w", err)
	}
	c.Log.Info("order-usecase", fmt.Sprintf("Account delivered for order %s, notifying buyer %s", payload.OrderID, payload.BuyerID), "HandleDeliveryNotice", "")
	return nil
}
