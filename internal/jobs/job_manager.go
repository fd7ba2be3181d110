package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	outboxRelayJob     *OutboxRelayJob
	riderAssignmentJob *RiderAssignmentJob
}

// NewJobManager creates a new job manager. The rider assignment job is only
// created when autoAssign is set.
func NewJobManager(
	relayHandler RelayOutboxHandler,
	assignHandler AutoAssignHandler,
	autoAssign bool,
	logger *slog.Logger,
) *JobManager {
	jm := &JobManager{
		outboxRelayJob: NewOutboxRelayJob(relayHandler, logger),
	}
	if autoAssign {
		jm.riderAssignmentJob = NewRiderAssignmentJob(assignHandler, logger)
	}
	return jm
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.outboxRelayJob.Start(); err != nil {
		return fmt.Errorf("failed to start outbox relay job: %w", err)
	}

	if jm.riderAssignmentJob == nil {
		return nil
	}

	if err := jm.riderAssignmentJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.outboxRelayJob.Stop()
		return fmt.Errorf("failed to start rider assignment job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	if jm.riderAssignmentJob != nil {
		jm.riderAssignmentJob.Stop()
	}
	jm.outboxRelayJob.Stop()
}
