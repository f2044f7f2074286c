package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/papertrade/papertrade/internal/events"
	"github.com/segmentio/kafka-go"
)

// Publisher writes trade events to a Kafka topic.
type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher creates a publisher against the given brokers.
func NewPublisher(brokers []string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    "trade_executed",
			Balancer: &kafka.LeastBytes{},
		},
	}
}

// Publish serializes the event as JSON, keyed by symbol so one
// symbol's trades stay ordered within a partition.
func (p *Publisher) Publish(ctx context.Context, event events.TradeExecuted) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Symbol),
		Value: data,
	})
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
