package commands

import (
	"context"

	"trackmate/internal/core/ports"
)

// DeleteParcelCommandHandler removes a booking. Only the sender may delete
// it, and only while it is still Processing and Unpaid. The tracking log of
// the parcel is kept.
type DeleteParcelCommandHandler struct {
	uowFactory ParcelUoWFactory
	cache      ports.BytesCache
}

// NewDeleteParcelCommandHandler creates a handler for booking cancellations.
func NewDeleteParcelCommandHandler(uowFactory ParcelUoWFactory, cache ports.BytesCache) DeleteParcelCommandHandler {
	return DeleteParcelCommandHandler{
		uowFactory: uowFactory,
		cache:      cache,
	}
}

// Handle deletes the parcel or returns errs.ErrForbidden /
// errs.ErrIllegalTransition without touching it.
func (h DeleteParcelCommandHandler) Handle(ctx context.Context, cmd DeleteParcelCommand) error {
	if err := cmd.Validate(); err != nil {
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
	p, err := parcelRepo.Get(ctx, cmd.ParcelID())
	if err != nil {
		return err
	}

	if err = p.CheckDeletable(cmd.Actor()); err != nil {
		return err
	}

	if err = parcelRepo.Delete(ctx, p); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	evictParcels(ctx, h.cache, p.TrackingID())
	return nil
}
