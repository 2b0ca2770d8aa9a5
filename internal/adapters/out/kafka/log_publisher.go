package kafka

import (
	"context"
	"log/slog"

	"travelagency/internal/core/ports"
)

// LogPublisher writes outbox messages to the log. It stands in for the
// Kafka publisher when no brokers are configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger.With("component", "LogPublisher")}
}

func (p *LogPublisher) Publish(ctx context.Context, messages ...ports.OutboxMessage) error {
	for _, m := range messages {
		p.logger.InfoContext(ctx, "order event",
			"id", m.ID.String(),
			"type", m.Type,
			"orderId", m.AggregateID.String(),
			"payload", string(m.Payload),
		)
	}
	return nil
}
