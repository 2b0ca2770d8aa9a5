package commands_test

import (
	"errors"
	"testing"
	"time"

	"travelagency/internal/core/application/usecases/commands"
	"travelagency/internal/core/domain/model/kernel"
	"travelagency/internal/core/ports"
	"travelagency/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func pendingMessages(n int) []ports.OutboxMessage {
	out := make([]ports.OutboxMessage, 0, n)
	for range n {
		out = append(out, ports.OutboxMessage{
			ID:          kernel.NewUUID(),
			Type:        "order.created",
			AggregateID: kernel.NewUUID(),
			Payload:     []byte(`{}`),
			OccurredAt:  time.Now().UTC(),
		})
	}
	return out
}

func TestNewRelayOrderEventsCommand(t *testing.T) {
	_, err := commands.NewRelayOrderEventsCommand(0)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	cmd, err := commands.NewRelayOrderEventsCommand(50)
	require.NoError(t, err)
	assert.Equal(t, 50, cmd.BatchSize())
}

func TestRelayOrderEventsCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewRelayOrderEventsCommand(10)
	require.NoError(t, err)

	t.Run("publishes then marks", func(t *testing.T) {
		messages := pendingMessages(2)
		ids := []kernel.UUID{messages[0].ID, messages[1].ID}

		outbox := new(MockOutboxRepository)
		publisher := new(MockEventPublisher)
		mock.InOrder(
			outbox.On("FetchPending", ctx, 10).Return(messages, nil).Once(),
			publisher.On("Publish", ctx, messages).Return(nil).Once(),
			outbox.On("MarkPublished", ctx, ids, mock.AnythingOfType("time.Time")).Return(nil).Once(),
		)

		n, err := commands.NewRelayOrderEventsCommandHandler(outbox, publisher).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, 2, n)
		outbox.AssertExpectations(t)
		publisher.AssertExpectations(t)
	})

	t.Run("nothing pending", func(t *testing.T) {
		outbox := new(MockOutboxRepository)
		outbox.On("FetchPending", ctx, 10).Return([]ports.OutboxMessage{}, nil).Once()
		publisher := new(MockEventPublisher)

		n, err := commands.NewRelayOrderEventsCommandHandler(outbox, publisher).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Zero(t, n)
		publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("publish failure leaves messages pending", func(t *testing.T) {
		messages := pendingMessages(1)
		outbox := new(MockOutboxRepository)
		outbox.On("FetchPending", ctx, 10).Return(messages, nil).Once()
		publisher := new(MockEventPublisher)
		publisher.On("Publish", ctx, messages).Return(errors.New("broker unavailable")).Once()

		n, err := commands.NewRelayOrderEventsCommandHandler(outbox, publisher).Handle(ctx, cmd)

		require.EqualError(t, err, "broker unavailable")
		assert.Zero(t, n)
		outbox.AssertNotCalled(t, "MarkPublished", mock.Anything, mock.Anything, mock.Anything)
	})
}
