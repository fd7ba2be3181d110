package jobs

import (
	"context"
	"log/slog"

	"trackmate/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

const (
	// OutboxRelaySchedule drains the outbox every second.
	OutboxRelaySchedule = "* * * * * *"

	outboxBatchSize = 100
)

// RelayOutboxHandler publishes one outbox batch and reports how many messages it sent.
type RelayOutboxHandler interface {
	Handle(ctx context.Context, command commands.RelayOutboxCommand) (int, error)
}

// OutboxRelayJob publishes the status-changed events queued in the outbox.
type OutboxRelayJob struct {
	handler RelayOutboxHandler
	cron    *cron.Cron
	logger  *slog.Logger

	// ctx is cancelled by Stop so a blocked Kafka write gives up.
	ctx    context.Context //nolint:containedctx // scoped to the job lifetime
	cancel context.CancelFunc
}

// NewOutboxRelayJob creates a new job relaying the outbox to Kafka.
func NewOutboxRelayJob(handler RelayOutboxHandler, logger *slog.Logger) *OutboxRelayJob {
	ctx, cancel := context.WithCancel(context.Background())
	return &OutboxRelayJob{
		handler: handler,
		// A tick still draining the outbox is not started twice.
		cron:   cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger: logger.With("component", "outbox_relay_job"),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start schedules the job on OutboxRelaySchedule.
func (j *OutboxRelayJob) Start() error {
	if _, err := j.cron.AddFunc(OutboxRelaySchedule, func() { j.run(j.ctx) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox relay job started", "schedule", OutboxRelaySchedule)
	return nil
}

// Stop cancels a running tick and waits for it to return.
func (j *OutboxRelayJob) Stop() {
	j.cancel()
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Outbox relay job stopped")
}

// run publishes full batches until the outbox is drained or a publish fails.
func (j *OutboxRelayJob) run(ctx context.Context) {
	cmd, err := commands.NewRelayOutboxCommand(outboxBatchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "Outbox relay job misconfigured", "error", err)
		return
	}

	total := 0
	for {
		published, handleErr := j.handler.Handle(ctx, cmd)
		total += published
		if handleErr != nil && ctx.Err() != nil {
			j.logger.InfoContext(ctx, "Outbox relay interrupted", "published", total)
			return
		}
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Outbox relay job failed", "error", handleErr, "published", total)
			return
		}
		if published < outboxBatchSize || ctx.Err() != nil {
			break
		}
	}

	if total > 0 {
		j.logger.DebugContext(ctx, "Outbox relayed", "published", total)
	}
}
