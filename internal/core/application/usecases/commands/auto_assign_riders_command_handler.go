package commands

import (
	"context"
	"errors"
	"time"

	"trackmate/internal/core/domain/model/kernel"
	"trackmate/internal/core/domain/model/tracking"
	"trackmate/internal/core/domain/services"
	"trackmate/internal/core/ports"
	"trackmate/internal/pkg/errs"
)

var (
	ErrNoParcelFound       = errors.New("no parcel found")
	ErrNoActiveRidersFound = errors.New("no active riders found")
)

// AutoAssignRidersCommandHandler orchestrates automatic dispatch.
// Finds the oldest Processing parcel and hands it to the Active rider of the
// sender's zone who carries the fewest open parcels. The assignment is
// logged like a manual one, with tracking.SystemActor as the actor.
//
// Example:
//
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, ErrNoParcelFound):
//	    log.Println("No pending parcels")
//	case errors.Is(err, ErrNoActiveRidersFound):
//	    log.Println("No rider works in the pick-up zone")
//	case err != nil:
//	    log.Printf("Assignment failed: %v", err)
//	}
type AutoAssignRidersCommandHandler struct {
	uowFactory UoWFactory
	dispatcher services.RiderDispatcher
	workflow   services.DeliveryWorkflow
	recorder   TrackingRecorder
	cache      ports.BytesCache
}

// NewAutoAssignRidersCommandHandler creates a handler for automatic dispatch.
func NewAutoAssignRidersCommandHandler(
	uowFactory UoWFactory,
	dispatcher services.RiderDispatcher,
	workflow services.DeliveryWorkflow,
	recorder TrackingRecorder,
	cache ports.BytesCache,
) AutoAssignRidersCommandHandler {
	return AutoAssignRidersCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		workflow:   workflow,
		recorder:   recorder,
		cache:      cache,
	}
}

// Handle assigns at most one parcel per call.
func (h AutoAssignRidersCommandHandler) Handle(ctx context.Context, command AutoAssignRidersCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	parcelRepo := uow.ParcelRepository()
	riderRepo := uow.RiderRepository()

	p, err := parcelRepo.GetFirstInProcessing(ctx)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrNoParcelFound
	}
	if err != nil {
		return err
	}

	riders, err := riderRepo.GetAllActiveInZone(ctx, p.Details().Sender().Zone())
	if err != nil {
		return err
	}
	if len(riders) == 0 {
		return ErrNoActiveRidersFound
	}

	ids := make([]kernel.UUID, 0, len(riders))
	for _, r := range riders {
		ids = append(ids, r.ID())
	}
	open, err := parcelRepo.CountOpenByRider(ctx, ids)
	if err != nil {
		return err
	}

	candidates := make([]services.RiderLoad, 0, len(riders))
	for _, r := range riders {
		candidates = append(candidates, services.RiderLoad{Rider: r, OpenParcels: open[r.ID()]})
	}

	selected, err := h.dispatcher.Dispatch(p, candidates)
	if errors.Is(err, services.ErrRiderNotFound) {
		return ErrNoActiveRidersFound
	}
	if err != nil {
		return err
	}

	entry, err := h.workflow.Assign(p, selected, "", tracking.SystemActor, time.Now().UTC())
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

	evictParcels(ctx, h.cache, p.TrackingID())
	return nil
}
