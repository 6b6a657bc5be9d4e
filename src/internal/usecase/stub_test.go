package usecase

import (
	"context"

	"marketplace-service/src/internal/entity"
	"marketplace-service/src/internal/gateway/messaging"
	"marketplace-service/src/internal/repository"
	"marketplace-service/src/pkg/log"
	"marketplace-service/src/pkg/metrics"

	"github.com/go-playground/validator/v10"
	k "gopkg.in/confluentinc/confluent-kafka-go.v1/kafka"
)

// silentLogger drops everything; the level is above both thresholds.
func silentLogger() log.Log {
	return log.Log{LogLevel: 99}
}

func testMetrics() *metrics.Metrics {
	return metrics.Registry("test")
}

func testValidator() *validator.Validate {
	return validator.New()
}

// fakeKafkaProducer records published messages per topic.
type fakeKafkaProducer struct {
	published []*k.Message
	err       error
}

func (f *fakeKafkaProducer) Publish(message *k.Message) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, message)
	return nil
}

func (f *fakeKafkaProducer) PublishChannel(topic string, message []byte) {}

func (f *fakeKafkaProducer) topics() []string {
	out := make([]string, 0, len(f.published))
	for _, m := range f.published {
		if m.TopicPartition.Topic != nil {
			out = append(out, *m.TopicPartition.Topic)
		}
	}
	return out
}

func newTestOrderProducer(fake *fakeKafkaProducer) *messaging.OrderProducer {
	return messaging.NewOrderProducer(fake, silentLogger())
}

func newTestWalletProducer(fake *fakeKafkaProducer) *messaging.WalletProducer {
	return messaging.NewWalletProducer(fake, silentLogger())
}

type stubOrderStore struct {
	FindOneFn           func(ctx context.Context, filter entity.OrderFilter) (*entity.Order, error)
	ListFn              func(ctx context.Context, filter entity.OrderFilter) ([]entity.Order, error)
	AttachCredentialsFn func(ctx context.Context, orderID string, from, to entity.OrderStatus, details []byte) (bool, error)
	UpdateStatusFn      func(ctx context.Context, orderID string, from, to entity.OrderStatus) (bool, error)
	CompleteAndCreditFn func(ctx context.Context, orderID, sellerID string, price float64) (bool, error)
	SumCompletedValueFn func(ctx context.Context, userID string) (float64, error)
}

var _ repository.OrderStore = (*stubOrderStore)(nil)

func (s *stubOrderStore) FindOne(ctx context.Context, filter entity.OrderFilter) (*entity.Order, error) {
	return s.FindOneFn(ctx, filter)
}

func (s *stubOrderStore) List(ctx context.Context, filter entity.OrderFilter) ([]entity.Order, error) {
	return s.ListFn(ctx, filter)
}

func (s *stubOrderStore) AttachCredentials(ctx context.Context, orderID string, from, to entity.OrderStatus, details []byte) (bool, error) {
	return s.AttachCredentialsFn(ctx, orderID, from, to, details)
}

func (s *stubOrderStore) UpdateStatus(ctx context.Context, orderID string, from, to entity.OrderStatus) (bool, error) {
	return s.UpdateStatusFn(ctx, orderID, from, to)
}

func (s *stubOrderStore) CompleteAndCredit(ctx context.Context, orderID, sellerID string, price float64) (bool, error) {
	return s.CompleteAndCreditFn(ctx, orderID, sellerID, price)
}

func (s *stubOrderStore) SumCompletedValue(ctx context.Context, userID string) (float64, error) {
	return s.SumCompletedValueFn(ctx, userID)
}

type stubUserStore struct {
	FindByIDFn func(ctx context.Context, id string) (*entity.User, error)
}

var _ repository.UserStore = (*stubUserStore)(nil)

func (s *stubUserStore) FindByID(ctx context.Context, id string) (*entity.User, error) {
	return s.FindByIDFn(ctx, id)
}

type stubRequestStore struct {
	InsertFn           func(ctx context.Context, kind entity.RequestKind, req *entity.WalletRequest) error
	FindByIDFn         func(ctx context.Context, kind entity.RequestKind, id string) (*entity.WalletRequest, error)
	ListFn             func(ctx context.Context, kind entity.RequestKind, status string) ([]entity.WalletRequest, error)
	ApproveAndAdjustFn func(ctx context.Context, kind entity.RequestKind, id, notes string) (*entity.WalletRequest, bool, error)
	RejectFn           func(ctx context.Context, kind entity.RequestKind, id, notes string) (bool, error)
	UpdateAdminNotesFn func(ctx context.Context, kind entity.RequestKind, id, notes string) error
}

var _ repository.RequestStore = (*stubRequestStore)(nil)

func (s *stubRequestStore) Insert(ctx context.Context, kind entity.RequestKind, req *entity.WalletRequest) error {
	return s.InsertFn(ctx, kind, req)
}

func (s *stubRequestStore) FindByID(ctx context.Context, kind entity.RequestKind, id string) (*entity.WalletRequest, error) {
	return s.FindByIDFn(ctx, kind, id)
}

func (s *stubRequestStore) List(ctx context.Context, kind entity.RequestKind, status string) ([]entity.WalletRequest, error) {
	return s.ListFn(ctx, kind, status)
}

func (s *stubRequestStore) ApproveAndAdjust(ctx context.Context, kind entity.RequestKind, id, notes string) (*entity.WalletRequest, bool, error) {
	return s.ApproveAndAdjustFn(ctx, kind, id, notes)
}

func (s *stubRequestStore) Reject(ctx context.Context, kind entity.RequestKind, id, notes string) (bool, error) {
	return s.RejectFn(ctx, kind, id, notes)
}

func (s *stubRequestStore) UpdateAdminNotes(ctx context.Context, kind entity.RequestKind, id, notes string) error {
	return s.UpdateAdminNotesFn(ctx, kind, id, notes)
}

type stubTicketStore struct {
	InsertFn       func(ctx context.Context, ticket *entity.SupportTicket) error
	FindByIDFn     func(ctx context.Context, id string) (*entity.SupportTicket, error)
	ListFn         func(ctx context.Context, status string) ([]entity.SupportTicket, error)
	ListByUserFn   func(ctx context.Context, userID string) ([]entity.SupportTicket, error)
	RespondFn      func(ctx context.Context, id, response string) error
	UpdateStatusFn func(ctx context.Context, id string, from, to entity.TicketStatus) (bool, error)
}

var _ repository.TicketStore = (*stubTicketStore)(nil)

func (s *stubTicketStore) Insert(ctx context.Context, ticket *entity.SupportTicket) error {
	return s.InsertFn(ctx, ticket)
}

func (s *stubTicketStore) FindByID(ctx context.Context, id string) (*entity.SupportTicket, error) {
	return s.FindByIDFn(ctx, id)
}

func (s *stubTicketStore) List(ctx context.Context, status string) ([]entity.SupportTicket, error) {
	return s.ListFn(ctx, status)
}

func (s *stubTicketStore) ListByUser(ctx context.Context, userID string) ([]entity.SupportTicket, error) {
	return s.ListByUserFn(ctx, userID)
}

func (s *stubTicketStore) Respond(ctx context.Context, id, response string) error {
	return s.RespondFn(ctx, id, response)
}

func (s *stubTicketStore) UpdateStatus(ctx context.Context, id string, from, to entity.TicketStatus) (bool, error) {
	return s.UpdateStatusFn(ctx, id, from, to)
}

type stubChatStore struct {
	InsertFn  func(ctx context.Context, msg *entity.ChatMessage) error
	HistoryFn func(ctx context.Context, roomID string, limit int) ([]entity.ChatMessage, error)
}

var _ repository.ChatStore = (*stubChatStore)(nil)

func (s *stubChatStore) Insert(ctx context.Context, msg *entity.ChatMessage) error {
	return s.InsertFn(ctx, msg)
}

func (s *stubChatStore) History(ctx context.Context, roomID string, limit int) ([]entity.ChatMessage, error) {
	return s.HistoryFn(ctx, roomID, limit)
}
