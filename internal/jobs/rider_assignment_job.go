package jobs

import (
	"context"
	"errors"
	"log/slog"

	"trackmate/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// RiderAssignmentSchedule runs the dispatcher every five seconds.
const RiderAssignmentSchedule = "*/5 * * * * *"

// AutoAssignHandler runs one dispatch round.
type AutoAssignHandler interface {
	Handle(ctx context.Context, command commands.AutoAssignRidersCommand) error
}

// RiderAssignmentJob hands waiting parcels to active riders of the pick-up zone.
type RiderAssignmentJob struct {
	handler AutoAssignHandler
	cron    *cron.Cron
	logger  *slog.Logger

	ctx    context.Context //nolint:containedctx // cancelled by Stop
	cancel context.CancelFunc
}

// NewRiderAssignmentJob creates a new job for automatic dispatch.
func NewRiderAssignmentJob(handler AutoAssignHandler, logger *slog.Logger) *RiderAssignmentJob {
	ctx, cancel := context.WithCancel(context.Background())
	return &RiderAssignmentJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "rider_assignment_job"),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start schedules the job on RiderAssignmentSchedule.
func (j *RiderAssignmentJob) Start() error {
	if _, err := j.cron.AddFunc(RiderAssignmentSchedule, func() { j.run(j.ctx) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Rider assignment job started", "schedule", RiderAssignmentSchedule)
	return nil
}

// Stop stops the rider assignment job and waits for a running tick.
func (j *RiderAssignmentJob) Stop() {
	j.cancel()
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Rider assignment job stopped")
}

func (j *RiderAssignmentJob) run(ctx context.Context) {
	err := j.handler.Handle(ctx, commands.NewAutoAssignRidersCommand())
	if err == nil {
		j.logger.DebugContext(ctx, "Parcel assigned")
		return
	}

	if !errors.Is(err, commands.ErrNoParcelFound) && !errors.Is(err, commands.ErrNoActiveRidersFound) {
		j.logger.ErrorContext(ctx, "Rider assignment job failed", "error", err)
	}
}
