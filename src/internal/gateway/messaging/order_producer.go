package messaging

import (
	"marketplace-service/src/internal/model"
	kafka "marketplace-service/src/pkg/kafka/confluent"
	"marketplace-service/src/pkg/log"
)

type OrderProducer struct {
	DeliveredProducer Producer[*model.OrderEvent]
	CompletedProducer Producer[*model.OrderEvent]
}

func NewOrderProducer(producer kafka.Producer, log log.Log) *OrderProducer {
	return &OrderProducer{
		DeliveredProducer: Producer[*model.OrderEvent]{
			Producer: producer,
			Topic:    "order-delivered",
			Log:      log,
		},
		CompletedProducer: Producer[*model.OrderEvent]{
			Producer: producer,
			Topic:    "order-completed",
			Log:      log,
		},
	}
}

func (p *OrderProducer) SendDelivered(event *model.OrderEvent) error {
	return p.DeliveredProducer.Send(event)
}

func (p *OrderProducer) SendCompleted(event *model.OrderEvent) error {
	return p.CompletedProducer.Send(event)
}
