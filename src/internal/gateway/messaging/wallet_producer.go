package messaging

import (
	"marketplace-service/src/internal/model"
	kafka "marketplace-service/src/pkg/kafka/confluent"
	"marketplace-service/src/pkg/log"
)

type WalletProducer struct {
	AdjustmentProducer Producer[*model.WalletEvent]
}

func NewWalletProducer(producer kafka.Producer, log log.Log) *WalletProducer {
	return &WalletProducer{
		AdjustmentProducer: Producer[*model.WalletEvent]{
			Producer: producer,
			Topic:    "wallet-adjusted",
			Log:      log,
		},
	}
}

func (p *WalletProducer) SendAdjustment(event *model.WalletEvent) error {
	return p.AdjustmentProducer.Send(event)
}
