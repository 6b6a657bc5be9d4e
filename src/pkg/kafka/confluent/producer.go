package kafka

import (
	"fmt"

	"marketplace-service/src/pkg/log"

	k "gopkg.in/confluentinc/confluent-kafka-go.v1/kafka"
)

type kafkaProducer struct {
	producer *k.Producer
	logger   log.Log
}

func NewProducer(config *k.ConfigMap, logger log.Log) (Producer, error) {
	producer, err := k.NewProducer(config)
	if err != nil {
		return nil, err
	}

	p := &kafkaProducer{
		producer: producer,
		logger:   logger,
	}

	// drain delivery reports so the internal queue does not fill up
	go func() {
		for e := range producer.Events() {
			if ev, ok := e.(*k.Message); ok && ev.TopicPartition.Error != nil {
				p.logger.Error("kafka-producer", fmt.Sprintf("delivery failed: %v", ev.TopicPartition.Error), "events", "")
			}
		}
	}()

	return p, nil
}

func (p *kafkaProducer) Publish(message *k.Message) error {
	return p.producer.Produce(message, nil)
}

func (p *kafkaProducer) PublishChannel(topic string, message []byte) {
	p.producer.ProduceChannel() <- &k.Message{
		TopicPartition: k.TopicPartition{Topic: &topic, Partition: k.PartitionAny},
		Value:          message,
	}
}
