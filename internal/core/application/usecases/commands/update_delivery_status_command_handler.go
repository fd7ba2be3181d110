package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"trackmate/internal/core/domain/services"
	"trackmate/internal/core/ports"
	"trackmate/internal/pkg/errs"
	"trackmate/internal/pkg/saga"
)

// UpdateDeliveryStatusCommandHandler applies rider transitions.
//
// The requested edge is checked first, so skipping a step is reported as an
// illegal transition whoever asks. Then the actor must be the rider the
// parcel is assigned to.
//
// Example:
//
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrIllegalTransition):
//	    // 409
//	case errors.Is(err, errs.ErrForbidden):
//	    // 403
//	case errors.Is(err, errs.ErrStaleState):
//	    // someone else moved the parcel first
//	}
type UpdateDeliveryStatusCommandHandler struct {
	uowFactory UoWFactory
	workflow   services.DeliveryWorkflow
	recorder   TrackingRecorder
	cache      ports.BytesCache
}

// NewUpdateDeliveryStatusCommandHandler creates a handler for rider status updates.
func NewUpdateDeliveryStatusCommandHandler(
	uowFactory UoWFactory,
	workflow services.DeliveryWorkflow,
	recorder TrackingRecorder,
	cache ports.BytesCache,
) UpdateDeliveryStatusCommandHandler {
	return UpdateDeliveryStatusCommandHandler{
		uowFactory: uowFactory,
		workflow:   workflow,
		recorder:   recorder,
		cache:      cache,
	}
}

// Handle applies the transition and stores it with its log entry.
func (h UpdateDeliveryStatusCommandHandler) Handle(ctx context.Context, cmd UpdateDeliveryStatusCommand) (err error) {
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

	if _, err = p.DeliveryStatus().TransitionTo(cmd.Status()); err != nil {
		return err
	}

	r, err := riderRepo.GetByEmail(ctx, cmd.Actor())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return errs.NewForbiddenError(cmd.Actor().String(), fmt.Sprintf("move parcel %s to %s", p.TrackingID(), cmd.Status()))
	}
	if err != nil {
		return err
	}

	sg := saga.New("update delivery status", nil)
	defer func() {
		if err != nil {
			err = errors.Join(err, sg.Compensate(context.WithoutCancel(ctx)))
		}
	}()

	keepSnapshot(sg, p)
	entry, err := h.workflow.Advance(p, cmd.Status(), r.ID(), cmd.Details(), cmd.Actor().String(), time.Now().UTC())
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
