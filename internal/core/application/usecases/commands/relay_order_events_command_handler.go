package commands

import (
	"context"
	"time"

	"travelagency/internal/core/domain/model/kernel"
	"travelagency/internal/core/ports"
)

// RelayOrderEventsCommandHandler publishes pending outbox messages and marks
// them published. Delivery is at least once: a batch that fails to publish
// stays pending and is retried by the next run.
type RelayOrderEventsCommandHandler struct {
	outbox    ports.OutboxRepository
	publisher ports.EventPublisher
}

func NewRelayOrderEventsCommandHandler(outbox ports.OutboxRepository, publisher ports.EventPublisher) RelayOrderEventsCommandHandler {
	return RelayOrderEventsCommandHandler{
		outbox:    outbox,
		publisher: publisher,
	}
}

// Handle returns the number of relayed messages.
func (h RelayOrderEventsCommandHandler) Handle(ctx context.Context, cmd RelayOrderEventsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	messages, err := h.outbox.FetchPending(ctx, cmd.BatchSize())
	if err != nil {
		return 0, err
	}
	if len(messages) == 0 {
		return 0, nil
	}

	if err = h.publisher.Publish(ctx, messages...); err != nil {
		return 0, err
	}

	ids := make([]kernel.UUID, 0, len(messages))
	for _, m := range messages {
		ids = append(ids, m.ID)
	}

	if err = h.outbox.MarkPublished(ctx, ids, time.Now().UTC()); err != nil {
		return 0, err
	}

	return len(messages), nil
}
