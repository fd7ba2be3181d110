package commands

import (
	"context"
	"errors"
	"time"

	"trackmate/internal/core/domain/services"
	"trackmate/internal/core/ports"
	"trackmate/internal/pkg/saga"
)

// AssignRiderCommandHandler moves a Processing parcel to Rider Assigned.
// The rider must be Active; the parcel row, the tracking log entry and the
// outbox message commit together, and a concurrent change of the same
// parcel makes this handler fail with errs.ErrStaleState.
type AssignRiderCommandHandler struct {
	uowFactory UoWFactory
	workflow   services.DeliveryWorkflow
	recorder   TrackingRecorder
	cache      ports.BytesCache
}

// NewAssignRiderCommandHandler creates a handler for manual rider assignment.
func NewAssignRiderCommandHandler(
	uowFactory UoWFactory,
	workflow services.DeliveryWorkflow,
	recorder TrackingRecorder,
	cache ports.BytesCache,
) AssignRiderCommandHandler {
	return AssignRiderCommandHandler{
		uowFactory: uowFactory,
		workflow:   workflow,
		recorder:   recorder,
		cache:      cache,
	}
}

// Handle assigns the rider or fails leaving the parcel untouched.
func (h AssignRiderCommandHandler) Handle(ctx context.Context, cmd AssignRiderCommand) (err error) {
	if err = cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	parcelRepo := uow.ParcelRepository()
	riderRepo := uow.RiderRepository()

	p, err := parcelRepo.Get(ctx, cmd.ParcelID())
	if err != nil {
		return err
	}

	r, err := riderRepo.Get(ctx, cmd.RiderID())
	if err != nil {
		return err
	}

	sg := saga.New("assign rider", nil)
	defer func() {
		if err != nil {
			err = errors.Join(err, sg.Compensate(context.WithoutCancel(ctx)))
		}
	}()

	keepSnapshot(sg, p)
	entry, err := h.workflow.Assign(p, r, cmd.Details(), cmd.Actor().String(), time.Now().UTC())
	if err != nil {
		return err
	}

	if err = parcelRepo.Update(ctx, p); err != nil {
		return err
	}

	if err = h.recorder.Record(ctx, uow.TrackingLogRepository(), uow.OutboxRepository(), entry); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	sg.Clear()
	evictParcels(ctx, h.cache, p.TrackingID())
	return nil
}
