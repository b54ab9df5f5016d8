// Package kafkaproducer publishes order events to Kafka for downstream
// consumers (notifications, analytics). Events are keyed by order id so
// one order's events stay in one partition, in order.
package kafkaproducer

import (
	"context"
	"encoding/json"

	"foodhub/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

// OrderEventPublisher writes order events to two topics: one for placed
// orders and one for status changes.
type OrderEventPublisher struct {
	placedWriter *kafka.Writer
	statusWriter *kafka.Writer
}

// NewOrderEventPublisher creates a publisher over the given writers.
func NewOrderEventPublisher(placedWriter, statusWriter *kafka.Writer) *OrderEventPublisher {
	return &OrderEventPublisher{
		placedWriter: placedWriter,
		statusWriter: statusWriter,
	}
}

// NewWriter builds a kafka writer for one topic with the settings this
// service uses everywhere.
func NewWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}
}

// PublishOrderPlaced emits one message per created order.
func (p *OrderEventPublisher) PublishOrderPlaced(
	ctx context.Context, event ports.OrderPlacedEvent,
) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.placedWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.OrderID),
		Value: payload,
	})
}

// PublishOrderStatusChanged emits one message per lifecycle transition.
func (p *OrderEventPublisher) PublishOrderStatusChanged(
	ctx context.Context, event ports.OrderStatusChangedEvent,
) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.statusWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.OrderID),
		Value: payload,
	})
}

// Close flushes and closes both writers.
func (p *OrderEventPublisher) Close() error {
	if err := p.placedWriter.Close(); err != nil {
		return err
	}
	return p.statusWriter.Close()
}
