// Package kafka relays outbox messages to a Kafka topic.
package kafka

import (
	"context"
	"fmt"
	"time"

	"travelagency/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

const eventTypeHeader = "event-type"

type Config struct {
	Brokers []string
	Topic   string
}

// messageWriter is the part of *kafka.Writer the publisher uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher implements ports.EventPublisher. Messages are keyed by order id
// so every event of one order lands on the same partition in order.
type Publisher struct {
	writer messageWriter
	topic  string
}

func NewPublisher(cfg Config) *Publisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		MaxAttempts:            5,
		ReadTimeout:            10 * time.Second,
		WriteTimeout:           10 * time.Second,
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}
	return &Publisher{writer: w, topic: cfg.Topic}
}

func (p *Publisher) Publish(ctx context.Context, messages ...ports.OutboxMessage) error {
	if len(messages) == 0 {
		return nil
	}

	batch := make([]kafka.Message, 0, len(messages))
	for _, m := range messages {
		batch = append(batch, kafka.Message{
			Key:   []byte(m.AggregateID.String()),
			Value: m.Payload,
			Time:  m.OccurredAt,
			Headers: []kafka.Header{
				{Key: eventTypeHeader, Value: []byte(m.Type)},
			},
		})
	}

	if err := p.writer.WriteMessages(ctx, batch...); err != nil {
		return fmt.Errorf("failed to write %d messages to %s: %w", len(batch), p.topic, err)
	}
	return nil
}

func (p *Publisher) Topic() string {
	return p.topic
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
