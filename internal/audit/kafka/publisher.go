// Package kafka publishes audit events to a Kafka cluster.
package kafka

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	"github.com/sheikh-saqib/concurrent-banking-ledger-system/internal/interfaces"
)

// Publisher writes JSON-encoded audit events. The topic is chosen per call,
// so one publisher serves both the account and the operation streams.
type Publisher struct {
	writer *kafka.Writer
}

var _ interfaces.EventPublisher = (*Publisher)(nil)

// NewPublisher connects a publisher to the given brokers.
func NewPublisher(brokers []string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Balancer: &kafka.LeastBytes{},
		},
	}
}

// Publish marshals event to JSON and writes it to topic.
func (p *Publisher) Publish(topic string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(
		context.Background(),
		kafka.Message{
			Topic: topic,
			Value: data,
		},
	)
}

// Close flushes and releases the underlying writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
