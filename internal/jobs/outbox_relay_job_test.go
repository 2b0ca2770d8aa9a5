package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"travelagency/internal/core/application/usecases/commands"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRelayHandler struct{ mock.Mock }

func (m *MockRelayHandler) Handle(ctx context.Context, cmd commands.RelayOrderEventsCommand) (int, error) {
	args := m.Called(ctx, cmd)
	return args.Int(0), args.Error(1)
}

type stubJob struct {
	startErr error
	started  bool
	stopped  bool
	order    *[]string
	name     string
}

func (s *stubJob) Start() error {
	if s.startErr != nil {
		return s.startErr
	}
	s.started = true
	*s.order = append(*s.order, "start "+s.name)
	return nil
}

func (s *stubJob) Stop() {
	s.stopped = true
	*s.order = append(*s.order, "stop "+s.name)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOutboxRelayJob_Run(t *testing.T) {
	t.Run("counts relayed events", func(t *testing.T) {
		handler := new(MockRelayHandler)
		handler.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.RelayOrderEventsCommand) bool {
			return cmd.BatchSize() == 50
		})).Return(3, nil).Once()
		job := NewOutboxRelayJob(handler, "", 50, "test", prometheus.NewRegistry(), discardLogger())

		job.run(context.Background())

		assert.InDelta(t, 3, testutil.ToFloat64(job.published), 0)
		assert.InDelta(t, 0, testutil.ToFloat64(job.failures), 0)
		handler.AssertExpectations(t)
	})

	t.Run("counts failures", func(t *testing.T) {
		handler := new(MockRelayHandler)
		handler.On("Handle", mock.Anything, mock.Anything).Return(0, errors.New("broker down")).Once()
		job := NewOutboxRelayJob(handler, "", 50, "test", nil, discardLogger())

		job.run(context.Background())

		assert.InDelta(t, 0, testutil.ToFloat64(job.published), 0)
		assert.InDelta(t, 1, testutil.ToFloat64(job.failures), 0)
	})

	t.Run("rejects a non-positive batch size", func(t *testing.T) {
		handler := new(MockRelayHandler)
		job := NewOutboxRelayJob(handler, "", 0, "test", nil, discardLogger())

		job.run(context.Background())

		assert.InDelta(t, 1, testutil.ToFloat64(job.failures), 0)
		handler.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})
}

func TestOutboxRelayJob_StartRejectsBadSchedule(t *testing.T) {
	job := NewOutboxRelayJob(new(MockRelayHandler), "not a schedule", 10, "test", nil, discardLogger())

	require.Error(t, job.Start())
}

func TestJobManager(t *testing.T) {
	t.Run("starts in order and stops in reverse", func(t *testing.T) {
		var order []string
		a := &stubJob{name: "a", order: &order}
		b := &stubJob{name: "b", order: &order}
		manager := NewJobManager(a, b)

		require.NoError(t, manager.StartAll())
		manager.StopAll()

		assert.Equal(t, []string{"start a", "start b", "stop b", "stop a"}, order)
	})

	t.Run("stops started jobs when one fails", func(t *testing.T) {
		var order []string
		a := &stubJob{name: "a", order: &order}
		b := &stubJob{name: "b", order: &order, startErr: errors.New("boom")}
		manager := NewJobManager(a, b)

		err := manager.StartAll()

		require.Error(t, err)
		assert.True(t, a.stopped)
		assert.False(t, b.started)
	})
}
