package usecase

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"marketplace-service/src/internal/entity"
	"marketplace-service/src/internal/model"
	httpError "marketplace-service/src/pkg/http-error"

	"github.com/stretchr/testify/assert"
)

func newOrderUseCase(orders *stubOrderStore, users *stubUserStore, fake *fakeKafkaProducer) *OrderUseCase {
	return NewOrderUseCase(
		silentLogger(),
		testValidator(),
		orders,
		users,
		nil,
		nil,
		newTestOrderProducer(fake),
		nil,
		testMetrics(),
	)
}

func errCode(t *testing.T, err error) int {
	t.Helper()
	commonErr, ok := err.(*httpError.CommonError)
	if !ok {
		t.Fatalf("expected *httpError.CommonError, got %T", err)
	}
	return commonErr.Code
}

func escrowOrder() *entity.Order {
	return &entity.Order{
		OrderID:  "order-1",
		BuyerID:  "buyer-1",
		SellerID: "seller-1",
		Game:     "fifa",
		Title:    "FUT account, 92 rated squad",
		Price:    500,
		Status:   string(entity.OrderStatusEscrow),
	}
}

func TestOrderDetailRejectsNonParty(t *testing.T) {
	orders := &stubOrderStore{
		FindOneFn: func(ctx context.Context, filter entity.OrderFilter) (*entity.Order, error) {
			return escrowOrder(), nil
		},
	}
	uc := newOrderUseCase(orders, &stubUserStore{}, &fakeKafkaProducer{})

	result := uc.OrderDetail(context.Background(), &model.OrderDetailRequest{UserID: "stranger", OrderID: "order-1"})
	assert.Equal(t, http.StatusForbidden, errCode(t, result.Error))
}

func TestOrderDetailNotFound(t *testing.T) {
	orders := &stubOrderStore{
		FindOneFn: func(ctx context.Context, filter entity.OrderFilter) (*entity.Order, error) {
			return nil, nil
		},
	}
	uc := newOrderUseCase(orders, &stubUserStore{}, &fakeKafkaProducer{})

	result := uc.OrderDetail(context.Background(), &model.OrderDetailRequest{UserID: "buyer-1", OrderID: "missing"})
	assert.Equal(t, http.StatusNotFound, errCode(t, result.Error))
}

func TestDeliverCredentialsValidatesPayloadFirst(t *testing.T) {
	repoTouched := false
	orders := &stubOrderStore{
		FindOneFn: func(ctx context.Context, filter entity.OrderFilter) (*entity.Order, error) {
			repoTouched = true
			return escrowOrder(), nil
		},
	}
	uc := newOrderUseCase(orders, &stubUserStore{}, &fakeKafkaProducer{})

	result := uc.DeliverCredentials(context.Background(), &model.DeliverCredentialsRequest{
		SellerID: "seller-1",
		OrderID:  "order-1",
		Username: "",
		Password: "",
		Email:    "not-an-email",
	})

	assert.Equal(t, http.StatusBadRequest, errCode(t, result.Error))
	assert.False(t, repoTouched, "incomplete payload must not reach the repository")
}

func TestDeliverCredentialsForbiddenForNonSeller(t *testing.T) {
	orders := &stubOrderStore{
		FindOneFn: func(ctx context.Context, filter entity.OrderFilter) (*entity.Order, error) {
			return escrowOrder(), nil
		},
	}
	uc := newOrderUseCase(orders, &stubUserStore{}, &fakeKafkaProducer{})

	result := uc.DeliverCredentials(context.Background(), &model.DeliverCredentialsRequest{
		SellerID: "someone-else",
		OrderID:  "order-1",
		Username: "acct_user",
		Password: "s3cret",
		Email:    "acct@example.com",
	})
	assert.Equal(t, http.StatusForbidden, errCode(t, result.Error))
}

func TestDeliverCredentialsConflictWhenAlreadyDelivering(t *testing.T) {
	order := escrowOrder()
	order.Status = string(entity.OrderStatusDelivering)
	orders := &stubOrderStore{
		FindOneFn: func(ctx context.Context, filter entity.OrderFilter) (*entity.Order, error) {
			return order, nil
		},
	}
	uc := newOrderUseCase(orders, &stubUserStore{}, &fakeKafkaProducer{})

	result := uc.DeliverCredentials(context.Background(), &model.DeliverCredentialsRequest{
		SellerID: "seller-1",
		OrderID:  "order-1",
		Username: "acct_user",
		Password: "s3cret",
		Email:    "acct@example.com",
	})
	assert.Equal(t, http.StatusConflict, errCode(t, result.Error))
}

func TestDeliverCredentialsConflictOnLostRace(t *testing.T) {
	orders := &stubOrderStore{
		FindOneFn: func(ctx context.Context, filter entity.OrderFilter) (*entity.Order, error) {
			return escrowOrder(), nil
		},
		AttachCredentialsFn: func(ctx context.Context, orderID string, from, to entity.OrderStatus, details []byte) (bool, error) {
			return false, nil
		},
	}
	fake := &fakeKafkaProducer{}
	uc := newOrderUseCase(orders, &stubUserStore{}, fake)

	result := uc.DeliverCredentials(context.Background(), &model.DeliverCredentialsRequest{
		SellerID: "seller-1",
		OrderID:  "order-1",
		Username: "acct_user",
		Password: "s3cret",
		Email:    "acct@example.com",
	})

	assert.Equal(t, http.StatusConflict, errCode(t, result.Error))
	assert.Empty(t, fake.published, "no event on a lost update race")
}

func TestDeliverCredentialsHappyPath(t *testing.T) {
	var attachedFrom, attachedTo entity.OrderStatus
	var attachedDetails []byte
	orders := &stubOrderStore{
		FindOneFn: func(ctx context.Context, filter entity.OrderFilter) (*entity.Order, error) {
			return escrowOrder(), nil
		},
		AttachCredentialsFn: func(ctx context.Context, orderID string, from, to entity.OrderStatus, details []byte) (bool, error) {
			attachedFrom, attachedTo, attachedDetails = from, to, details
			return true, nil
		},
	}
	fake := &fakeKafkaProducer{}
	uc := newOrderUseCase(orders, &stubUserStore{}, fake)

	result := uc.DeliverCredentials(context.Background(), &model.DeliverCredentialsRequest{
		SellerID:      "seller-1",
		OrderID:       "order-1",
		Username:      "acct_user",
		Password:      "s3cret",
		Email:         "acct@example.com",
		RecoveryEmail: "backup@example.com",
	})

	assert.NoError(t, result.Error)
	assert.Equal(t, entity.OrderStatusEscrow, attachedFrom)
	assert.Equal(t, entity.OrderStatusDelivering, attachedTo)

	var creds entity.AccountCredentials
	assert.NoError(t, json.Unmarshal(attachedDetails, &creds))
	assert.Equal(t, "acct_user", creds.Username)
	assert.Equal(t, "backup@example.com", creds.RecoveryEmail)

	response, ok := result.Data.(*model.OrderResponse)
	assert.True(t, ok)
	assert.Equal(t, string(entity.OrderStatusDelivering), response.Status)
	assert.Equal(t, []string{"order-delivered"}, fake.topics())
}

func TestRetrieveCredentialsBeforeDelivery(t *testing.T) {
	orders := &stubOrderStore{
		FindOneFn: func(ctx context.Context, filter entity.OrderFilter) (*entity.Order, error) {
			return escrowOrder(), nil
		},
	}
	uc := newOrderUseCase(orders, &stubUserStore{}, &fakeKafkaProducer{})

	result := uc.RetrieveCredentials(context.Background(), &model.RetrieveCredentialsRequest{
		BuyerID: "buyer-1",
		OrderID: "order-1",
	})
	assert.Equal(t, http.StatusConflict, errCode(t, result.Error))
}

func TestRetrieveCredentialsFirstPickupAdvancesStatus(t *testing.T) {
	order := escrowOrder()
	order.Status = string(entity.OrderStatusDelivering)
	order.AccountDetails, _ = json.Marshal(entity.AccountCredentials{
		Username: "acct_user",
		Password: "s3cret",
		Email:    "acct@example.com",
	})

	var movedFrom, movedTo entity.OrderStatus
	orders := &stubOrderStore{
		FindOneFn: func(ctx context.Context, filter entity.OrderFilter) (*entity.Order, error) {
			return order, nil
		},
		UpdateStatusFn: func(ctx context.Context, orderID string, from, to entity.OrderStatus) (bool, error) {
			movedFrom, movedTo = from, to
			return true, nil
		},
	}
	uc := newOrderUseCase(orders, &stubUserStore{}, &fakeKafkaProducer{})

	result := uc.RetrieveCredentials(context.Background(), &model.RetrieveCredentialsRequest{
		BuyerID: "buyer-1",
		OrderID: "order-1",
	})

	assert.NoError(t, result.Error)
	assert.Equal(t, entity.OrderStatusDelivering, movedFrom)
	assert.Equal(t, entity.OrderStatusAwaitingConfirmation, movedTo)

	creds, ok := result.Data.(*model.CredentialsResponse)
	assert.True(t, ok)
	assert.Equal(t, "acct_user", creds.Username)
	assert.Equal(t, "s3cret", creds.Password)
}

func TestRetrieveCredentialsForbiddenForNonBuyer(t *testing.T) {
	order := escrowOrder()
	order.Status = string(entity.OrderStatusDelivering)
	orders := &stubOrderStore{
		FindOneFn: func(ctx context.Context, filter entity.OrderFilter) (*entity.Order, error) {
			return order, nil
		},
	}
	uc := newOrderUseCase(orders, &stubUserStore{}, &fakeKafkaProducer{})

	result := uc.RetrieveCredentials(context.Background(), &model.RetrieveCredentialsRequest{
		BuyerID: "seller-1",
		OrderID: "order-1",
	})
	assert.Equal(t, http.StatusForbidden, errCode(t, result.Error))
}

func TestConfirmReceiptRequiresAllAcknowledgments(t *testing.T) {
	creditCalled := false
	orders := &stubOrderStore{
		FindOneFn: func(ctx context.Context, filter entity.OrderFilter) (*entity.Order, error) {
			order := escrowOrder()
			order.Status = string(entity.OrderStatusAwaitingConfirmation)
			return order, nil
		},
		CompleteAndCreditFn: func(ctx context.Context, orderID, sellerID string, price float64) (bool, error) {
			creditCalled = true
			return true, nil
		},
	}
	uc := newOrderUseCase(orders, &stubUserStore{}, &fakeKafkaProducer{})

	partials := []model.Acknowledgments{
		{},
		{CredentialsVerified: true},
		{CredentialsVerified: true, AccessTransferred: true},
		{AccessTransferred: true, NoRefundUnderstood: true},
	}
	for _, acks := range partials {
		result := uc.ConfirmReceipt(context.Background(), &model.ConfirmReceiptRequest{
			BuyerID:         "buyer-1",
			OrderID:         "order-1",
			Acknowledgments: acks,
		})
		assert.Equal(t, http.StatusBadRequest, errCode(t, result.Error))
	}
	assert.False(t, creditCalled, "partial acknowledgments must never release funds")
}

func TestConfirmReceiptWrongState(t *testing.T) {
	orders := &stubOrderStore{
		FindOneFn: func(ctx context.Context, filter entity.OrderFilter) (*entity.Order, error) {
			return escrowOrder(), nil
		},
	}
	uc := newOrderUseCase(orders, &stubUserStore{}, &fakeKafkaProducer{})

	result := uc.ConfirmReceipt(context.Background(), &model.ConfirmReceiptRequest{
		BuyerID: "buyer-1",
		OrderID: "order-1",
		Acknowledgments: model.Acknowledgments{
			CredentialsVerified: true,
			AccessTransferred:   true,
			NoRefundUnderstood:  true,
		},
	})
	assert.Equal(t, http.StatusConflict, errCode(t, result.Error))
}

func TestConfirmReceiptReleasesFundsExactlyOnce(t *testing.T) {
	credits := 0
	orders := &stubOrderStore{
		FindOneFn: func(ctx context.Context, filter entity.OrderFilter) (*entity.Order, error) {
			order := escrowOrder()
			order.Status = string(entity.OrderStatusAwaitingConfirmation)
			return order, nil
		},
		CompleteAndCreditFn: func(ctx context.Context, orderID, sellerID string, price float64) (bool, error) {
			credits++
			// first call wins the compare-and-swap, the second loses
			return credits == 1, nil
		},
	}
	fake := &fakeKafkaProducer{}
	uc := newOrderUseCase(orders, &stubUserStore{}, fake)

	request := &model.ConfirmReceiptRequest{
		BuyerID: "buyer-1",
		OrderID: "order-1",
		Acknowledgments: model.Acknowledgments{
			CredentialsVerified: true,
			AccessTransferred:   true,
			NoRefundUnderstood:  true,
		},
	}

	first := uc.ConfirmReceipt(context.Background(), request)
	assert.NoError(t, first.Error)
	response, ok := first.Data.(*model.OrderResponse)
	assert.True(t, ok)
	assert.Equal(t, string(entity.OrderStatusCompleted), response.Status)

	second := uc.ConfirmReceipt(context.Background(), request)
	assert.Equal(t, http.StatusConflict, errCode(t, second.Error))

	assert.Equal(t, []string{"order-completed"}, fake.topics(), "exactly one completion event")
}

func TestConfirmReceiptCreditsSellerWithOrderPrice(t *testing.T) {
	var creditedSeller string
	var creditedAmount float64
	orders := &stubOrderStore{
		FindOneFn: func(ctx context.Context, filter entity.OrderFilter) (*entity.Order, error) {
			order := escrowOrder()
			order.Status = string(entity.OrderStatusAwaitingConfirmation)
			return order, nil
		},
		CompleteAndCreditFn: func(ctx context.Context, orderID, sellerID string, price float64) (bool, error) {
			creditedSeller, creditedAmount = sellerID, price
			return true, nil
		},
	}
	uc := newOrderUseCase(orders, &stubUserStore{}, &fakeKafkaProducer{})

	result := uc.ConfirmReceipt(context.Background(), &model.ConfirmReceiptRequest{
		BuyerID: "buyer-1",
		OrderID: "order-1",
		Acknowledgments: model.Acknowledgments{
			CredentialsVerified: true,
			AccessTransferred:   true,
			NoRefundUnderstood:  true,
		},
	})

	assert.NoError(t, result.Error)
	assert.Equal(t, "seller-1", creditedSeller)
	assert.Equal(t, 500.0, creditedAmount)
}

func TestListOrdersRoleSelectsFilter(t *testing.T) {
	var captured entity.OrderFilter
	orders := &stubOrderStore{
		ListFn: func(ctx context.Context, filter entity.OrderFilter) ([]entity.Order, error) {
			captured = filter
			return []entity.Order{*escrowOrder()}, nil
		},
	}
	uc := newOrderUseCase(orders, &stubUserStore{}, &fakeKafkaProducer{})

	result := uc.ListOrders(context.Background(), &model.ListOrdersRequest{UserID: "seller-1", Role: "seller"})
	assert.NoError(t, result.Error)
	assert.NotNil(t, captured.SellerID)
	assert.Equal(t, "seller-1", *captured.SellerID)
	assert.Nil(t, captured.BuyerID)

	result = uc.ListOrders(context.Background(), &model.ListOrdersRequest{UserID: "buyer-1"})
	assert.NoError(t, result.Error)
	assert.NotNil(t, captured.BuyerID)
	assert.Equal(t, "buyer-1", *captured.BuyerID)
	assert.Nil(t, captured.SellerID)
}
