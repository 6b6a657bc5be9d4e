package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"marketplace-service/src/internal/entity"
	"marketplace-service/src/internal/gateway/messaging"
	"marketplace-service/src/internal/model"
	"marketplace-service/src/internal/model/converter"
	"marketplace-service/src/internal/repository"
	"marketplace-service/src/pkg/fee"
	httpError "marketplace-service/src/pkg/http-error"
	"marketplace-service/src/pkg/log"
	"marketplace-service/src/pkg/metrics"
	"marketplace-service/src/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/spf13/viper"
)

type WalletUseCase struct {
	Log               log.Log
	Validate          *validator.Validate
	RequestRepository repository.RequestStore
	UserRepository    repository.UserStore
	Config            *viper.Viper
	WalletProducer    *messaging.WalletProducer
	Metrics           *metrics.Metrics
}

func NewWalletUseCase(
	logger log.Log,
	validate *validator.Validate,
	requestRepository repository.RequestStore,
	userRepository repository.UserStore,
	cfg *viper.Viper,
	walletProducer *messaging.WalletProducer,
	m *metrics.Metrics,
) *WalletUseCase {
	return &WalletUseCase{
		Log:               logger,
		Validate:          validate,
		RequestRepository: requestRepository,
		UserRepository:    userRepository,
		Config:            cfg,
		WalletProducer:    walletProducer,
		Metrics:           m,
	}
}

func (c *WalletUseCase) SubmitDeposit(ctx context.Context, request *model.SubmitDepositRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		c.Log.Error("wallet-usecase", errObj.Message, "SubmitDeposit", utils.ConvertString(err))
		return result
	}

	req := &entity.WalletRequest{
		RequestID:     uuid.NewString(),
		UserID:        request.UserID,
		Amount:        request.Amount,
		PhoneNumber:   request.PhoneNumber,
		Country:       request.Country,
		PaymentMethod: request.PaymentMethod,
		InstapayUser:  nullString(request.InstapayUser),
		ReceiptImage:  nullString(request.ReceiptImage),
		Status:        string(entity.RequestStatusPending),
	}

	if err := c.RequestRepository.Insert(ctx, entity.RequestKindDeposit, req); err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "Failed to submit deposit request"
		result.Error = errObj
		c.Metrics.Errors.WithLabelValues("wallet").Inc()
		c.Log.Error("wallet-usecase", fmt.Sprintf("Error insert deposit: %v", err), "SubmitDeposit", utils.ConvertString(err))
		return result
	}

	result.Data = converter.RequestToResponse(req)
	return result
}

func (c *WalletUseCase) SubmitWithdraw(ctx context.Context, request *model.SubmitWithdrawRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		c.Log.Error("wallet-usecase", errObj.Message, "SubmitWithdraw", utils.ConvertString(err))
		return result
	}

	user, err := c.UserRepository.FindByID(ctx, request.UserID)
	if err != nil || user == nil {
		errObj := httpError.NewNotFound()
		errObj.Message = fmt.Sprintf("user with id %s not found", request.UserID)
		result.Error = errObj
		c.Log.Error("wallet-usecase", errObj.Message, "SubmitWithdraw", utils.ConvertString(err))
		return result
	}

	if request.Amount > user.WalletBalance {
		errObj := httpError.NewBadRequest()
		errObj.Message = "insufficient balance for withdrawal"
		result.Error = errObj
		return result
	}

	req := &entity.WalletRequest{
		RequestID:     uuid.NewString(),
		UserID:        request.UserID,
		Amount:        request.Amount,
		PhoneNumber:   request.PhoneNumber,
		Country:       request.Country,
		PaymentMethod: request.PaymentMethod,
		InstapayUser:  nullString(request.InstapayUser),
		Status:        string(entity.RequestStatusPending),
	}

	if err := c.RequestRepository.Insert(ctx, entity.RequestKindWithdraw, req); err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "Failed to submit withdraw request"
		result.Error = errObj
		c.Metrics.Errors.WithLabelValues("wallet").Inc()
		c.Log.Error("wallet-usecase", fmt.Sprintf("Error insert withdraw: %v", err), "SubmitWithdraw", utils.ConvertString(err))
		return result
	}

	result.Data = converter.RequestToResponse(req)
	return result
}

// ApproveRequest applies the admin decision. The repository runs the status
// flip and the balance adjustment atomically; a request that already left
// pending comes back as a conflict and the ledger is untouched.
func (c *WalletUseCase) ApproveRequest(ctx context.Context, request *model.DecideRequestRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	kind := entity.RequestKind(request.Kind)
	req, ok, err := c.RequestRepository.ApproveAndAdjust(ctx, kind, request.RequestID, request.AdminNotes)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "Failed to approve request"
		result.Error = errObj
		c.Metrics.Errors.WithLabelValues("wallet").Inc()
		c.Log.Error("wallet-usecase", fmt.Sprintf("Error approve request: %v", err), "ApproveRequest", utils.ConvertString(err))
		return result
	}
	if req == nil {
		errObj := httpError.NewNotFound()
		errObj.Message = "Request not found"
		result.Error = errObj
		return result
	}
	if !ok {
		errObj := httpError.NewConflict()
		errObj.Message = fmt.Sprintf("Request was already %s", req.Status)
		result.Error = errObj
		c.Log.Error("wallet-usecase", errObj.Message, "ApproveRequest", request.RequestID)
		return result
	}

	c.Metrics.RequestDecisions.WithLabelValues(string(kind), "approved").Inc()
	c.Metrics.WalletAdjustments.WithLabelValues(string(kind)).Inc()

	event := converter.RequestToWalletEvent(req, kind, "approved")
	c.Log.Info("wallet-usecase", "Publishing wallet adjustment event", "ApproveRequest", utils.ConvertString(event))
	if err := c.WalletProducer.SendAdjustment(event); err != nil {
		c.Log.Error("wallet-usecase", fmt.Sprintf("Failed publish wallet event : %+v", err), "ApproveRequest", "")
	}

	result.Data = converter.RequestToResponse(req)
	return result
}

func (c *WalletUseCase) RejectRequest(ctx context.Context, request *model.DecideRequestRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	kind := entity.RequestKind(request.Kind)
	req, err := c.RequestRepository.FindByID(ctx, kind, request.RequestID)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "Failed to load request"
		result.Error = errObj
		c.Metrics.Errors.WithLabelValues("wallet").Inc()
		c.Log.Error("wallet-usecase", fmt.Sprintf("Error find request: %v", err), "RejectRequest", utils.ConvertString(err))
		return result
	}
	if req == nil {
		errObj := httpError.NewNotFound()
		errObj.Message = "Request not found"
		result.Error = errObj
		return result
	}

	ok, err := c.RequestRepository.Reject(ctx, kind, request.RequestID, request.AdminNotes)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "Failed to reject request"
		result.Error = errObj
		c.Metrics.Errors.WithLabelValues("wallet").Inc()
		c.Log.Error("wallet-usecase", fmt.Sprintf("Error reject request: %v", err), "RejectRequest", utils.ConvertString(err))
		return result
	}
	if !ok {
		// CAS lost to a concurrent decision; re-read so the conflict names
		// the status the request actually ended up in
		if decided, findErr := c.RequestRepository.FindByID(ctx, kind, request.RequestID); findErr == nil && decided != nil {
			req = decided
		}
		errObj := httpError.NewConflict()
		errObj.Message = fmt.Sprintf("Request was already %s", req.Status)
		result.Error = errObj
		return result
	}

	c.Metrics.RequestDecisions.WithLabelValues(string(kind), "rejected").Inc()

	req.Status = string(entity.RequestStatusRejected)
	event := converter.RequestToWalletEvent(req, kind, "rejected")
	if err := c.WalletProducer.SendAdjustment(event); err != nil {
		c.Log.Error("wallet-usecase", fmt.Sprintf("Failed publish wallet event : %+v", err), "RejectRequest", "")
	}

	result.Data = converter.RequestToResponse(req)
	return result
}

func (c *WalletUseCase) UpdateAdminNotes(ctx context.Context, request *model.UpdateAdminNotesRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	kind := entity.RequestKind(request.Kind)
	if err := c.RequestRepository.UpdateAdminNotes(ctx, kind, request.RequestID, request.AdminNotes); err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "Failed to update admin notes"
		result.Error = errObj
		c.Metrics.Errors.WithLabelValues("wallet").Inc()
		c.Log.Error("wallet-usecase", fmt.Sprintf("Error update notes: %v", err), "UpdateAdminNotes", utils.ConvertString(err))
		return result
	}

	result.Data = map[string]string{"requestId": request.RequestID}
	return result
}

const defaultFeePercentage = 0.05

// QuoteFee previews the platform fee split for an amount, plus the gross
// payment needed for that amount to arrive net of fees.
func (c *WalletUseCase) QuoteFee(ctx context.Context, request *model.FeeQuoteRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	percentage := defaultFeePercentage
	if c.Config != nil && c.Config.IsSet("fee.percentage") {
		percentage = c.Config.GetFloat64("fee.percentage")
	}

	breakdown := fee.Calculate(request.Amount, percentage)
	result.Data = &model.FeeQuoteResponse{
		Amount:         request.Amount,
		FeePercentage:  percentage,
		FeeAmount:      breakdown.FeeAmount,
		AmountAfterFee: breakdown.AmountAfterFee,
		RequiredForNet: fee.RequiredPayment(request.Amount, percentage),
	}
	return result
}

// ListRequests serves the admin review screens. The q filter is applied
// in-memory over the fetched rows, matching the original screens' behaviour.
func (c *WalletUseCase) ListRequests(ctx context.Context, request *model.ListRequestsRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	kind := entity.RequestKind(request.Kind)
	reqs, err := c.RequestRepository.List(ctx, kind, request.Status)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "Failed to list requests"
		result.Error = errObj
		c.Metrics.Errors.WithLabelValues("wallet").Inc()
		c.Log.Error("wallet-usecase", fmt.Sprintf("Error list requests: %v", err), "ListRequests", utils.ConvertString(err))
		return result
	}

	if request.Query != "" {
		reqs = filterRequests(reqs, request.Query)
	}

	result.Data = converter.RequestsToResponse(reqs)
	return result
}

// ExportRequests renders the current request list as CSV for the admin
// download action.
func (c *WalletUseCase) ExportRequests(ctx context.Context, request *model.ListRequestsRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	kind := entity.RequestKind(request.Kind)
	reqs, err := c.RequestRepository.List(ctx, kind, request.Status)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "Failed to export requests"
		result.Error = errObj
		c.Metrics.Errors.WithLabelValues("wallet").Inc()
		c.Log.Error("wallet-usecase", fmt.Sprintf("Error export requests: %v", err), "ExportRequests", utils.ConvertString(err))
		return result
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"request_id", "user_id", "amount", "phone_number", "country", "payment_method", "status", "admin_notes", "created_at"})
	for i := range reqs {
		r := &reqs[i]
		_ = w.Write([]string{
			r.RequestID,
			r.UserID,
			strconv.FormatFloat(r.Amount, 'f', 2, 64),
			r.PhoneNumber,
			r.Country,
			r.PaymentMethod,
			r.Status,
			r.AdminNotes.String,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = fmt.Sprintf("Error writing csv: %v", err)
		result.Error = errObj
		return result
	}

	result.Data = buf.Bytes()
	return result
}

// filterRequests keeps rows whose user id, phone number or instapay user
// contains the query, case-insensitive.
func filterRequests(reqs []entity.WalletRequest, query string) []entity.WalletRequest {
	q := strings.ToLower(query)
	filtered := make([]entity.WalletRequest, 0, len(reqs))
	for i := range reqs {
		r := &reqs[i]
		if strings.Contains(strings.ToLower(r.UserID), q) ||
			strings.Contains(strings.ToLower(r.PhoneNumber), q) ||
			strings.Contains(strings.ToLower(r.InstapayUser.String), q) {
			filtered = append(filtered, *r)
		}
	}
	return filtered
}
