package ports

import (
	"context"
	"time"

	"travelagency/internal/core/domain/model/kernel"
)

// OutboxMessage is a serialized domain event waiting to be relayed.
type OutboxMessage struct {
	ID          kernel.UUID
	Type        string
	AggregateID kernel.UUID
	Payload     []byte
	OccurredAt  time.Time
}

// OutboxRepository reads and acknowledges stored events. Writing happens in
// the unit of work when an aggregate with events is committed.
type OutboxRepository interface {
	// FetchPending returns up to limit unpublished messages, oldest first.
	FetchPending(ctx context.Context, limit int) ([]OutboxMessage, error)

	// MarkPublished flags the messages as relayed.
	MarkPublished(ctx context.Context, ids []kernel.UUID, publishedAt time.Time) error
}

// EventPublisher delivers outbox messages to the outside world.
type EventPublisher interface {
	Publish(ctx context.Context, messages ...OutboxMessage) error
}
