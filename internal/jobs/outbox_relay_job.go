package jobs

import (
	"context"
	"log/slog"

	"travelagency/internal/core/application/usecases/commands"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
)

// DefaultRelaySchedule runs the relay every five seconds.
const DefaultRelaySchedule = "*/5 * * * * *"

type RelayHandler interface {
	Handle(ctx context.Context, cmd commands.RelayOrderEventsCommand) (int, error)
}

// OutboxRelayJob periodically forwards stored order events to the broker.
// Runs never overlap: a tick that finds the previous run still busy is skipped.
type OutboxRelayJob struct {
	handler   RelayHandler
	schedule  string
	batchSize int
	cron      *cron.Cron
	logger    *slog.Logger

	published prometheus.Counter
	failures  prometheus.Counter
}

func NewOutboxRelayJob(
	handler RelayHandler,
	schedule string,
	batchSize int,
	namespace string,
	registerer prometheus.Registerer,
	logger *slog.Logger,
) *OutboxRelayJob {
	if schedule == "" {
		schedule = DefaultRelaySchedule
	}
	j := &OutboxRelayJob{
		handler:   handler,
		schedule:  schedule,
		batchSize: batchSize,
		cron:      cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:    logger.With("component", "outbox_relay_job"),
		published: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "outbox_events_published_total",
			Help:      "Order events relayed to the broker.",
		}),
		failures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "outbox_relay_failures_total",
			Help:      "Relay runs that ended with an error.",
		}),
	}
	if registerer != nil {
		registerer.MustRegister(j.published, j.failures)
	}
	return j
}

// Start schedules the relay.
func (j *OutboxRelayJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Outbox relay job started", "schedule", j.schedule, "batchSize", j.batchSize)
	return nil
}

// Stop waits for a running relay to finish.
func (j *OutboxRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Outbox relay job stopped")
}

func (j *OutboxRelayJob) run(ctx context.Context) {
	cmd, err := commands.NewRelayOrderEventsCommand(j.batchSize)
	if err != nil {
		j.failures.Inc()
		j.logger.ErrorContext(ctx, "Outbox relay misconfigured", "error", err)
		return
	}

	n, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.failures.Inc()
		j.logger.ErrorContext(ctx, "Outbox relay failed", "error", err)
		return
	}
	if n > 0 {
		j.published.Add(float64(n))
		j.logger.DebugContext(ctx, "Relayed order events", "count", n)
	}
}
