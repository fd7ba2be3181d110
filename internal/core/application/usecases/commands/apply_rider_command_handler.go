package commands

import (
	"context"
	"time"

	"trackmate/internal/core/domain/model/rider"
	"trackmate/internal/core/ports"
)

// ApplyRiderCommandHandler stores rider applications. A second application
// with the same email fails with errs.ErrObjectAlreadyExist.
type ApplyRiderCommandHandler struct {
	uowFactory RiderUoWFactory
	zones      ports.ZoneDirectory
}

// NewApplyRiderCommandHandler creates a handler for rider applications.
func NewApplyRiderCommandHandler(uowFactory RiderUoWFactory, zones ports.ZoneDirectory) ApplyRiderCommandHandler {
	return ApplyRiderCommandHandler{
		uowFactory: uowFactory,
		zones:      zones,
	}
}

// Handle resolves the district and stores the Pending application.
func (h ApplyRiderCommandHandler) Handle(ctx context.Context, cmd ApplyRiderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	zone, err := h.zones.Resolve(cmd.District())
	if err != nil {
		return err
	}

	r, err := rider.NewRider(cmd.RiderID(), cmd.Name(), cmd.Email(), cmd.Contact(), zone, time.Now().UTC())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.RiderRepository().Add(ctx, r); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
