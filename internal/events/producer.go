package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Producer publishes booking lifecycle events to Kafka. A nil Producer
// is valid and drops every publish, so the service runs without a
// broker when event publishing is disabled.
type Producer struct {
	writer *kafkago.Writer
	log    *zap.Logger
}

// NewProducer creates a Producer for the given brokers.
func NewProducer(brokers []string, log *zap.Logger) *Producer {
	writer := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Balancer:     &kafkago.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafkago.RequireOne,
	}
	return &Producer{writer: writer, log: log}
}

// Publish writes one event to the given topic, keyed by the event's
// source entity id.
func (p *Producer) Publish(ctx context.Context, topic, key string, evt Event) error {
	if p == nil {
		return nil
	}

	value, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := kafkago.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: value,
		Time:  time.Now(),
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write event to kafka: %w", err)
	}
	return nil
}

// Close closes the underlying Kafka writer.
func (p *Producer) Close() error {
	if p == nil {
		return nil
	}
	return p.writer.Close()
}
