package commands

import (
	"context"
	"errors"
	"time"

	"trackmate/internal/core/domain/model/cashout"
	"trackmate/internal/core/domain/model/kernel"
	"trackmate/internal/core/domain/model/parcel"
	"trackmate/internal/core/domain/services"
	"trackmate/internal/core/ports"
	"trackmate/internal/pkg/errs"
	"trackmate/internal/pkg/saga"
)

var ErrNothingToCashOut = errors.New("nothing to cash out")

// RequestCashoutCommandHandler turns a rider's pending earnings into a
// cashout. Every Delivered parcel with a Pending cashout status moves to
// Cashed Out in the same transaction that stores the cashout, whose amount
// is the sum of the rider's earnings on those parcels.
type RequestCashoutCommandHandler struct {
	uowFactory UoWFactory
	policy     services.EarningsPolicy
	cache      ports.BytesCache
}

// NewRequestCashoutCommandHandler creates a handler for rider cashouts.
func NewRequestCashoutCommandHandler(
	uowFactory UoWFactory,
	policy services.EarningsPolicy,
	cache ports.BytesCache,
) RequestCashoutCommandHandler {
	return RequestCashoutCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		cache:      cache,
	}
}

// Handle cashes out the rider. It returns ErrNothingToCashOut when there is
// no pending earning and errs.ErrForbidden when the actor is not the rider.
func (h RequestCashoutCommandHandler) Handle(ctx context.Context, cmd RequestCashoutCommand) (err error) {
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

	r, err := uow.RiderRepository().Get(ctx, cmd.RiderID())
	if err != nil {
		return err
	}
	if !r.Email().IsEqual(cmd.Actor()) {
		return errs.NewForbiddenError(cmd.Actor().String(), "cash out for rider "+r.Email().String())
	}

	delivered, err := parcelRepo.GetAllByRider(ctx, r.ID(), parcel.Delivered)
	if err != nil {
		return err
	}

	sg := saga.New("request cashout", nil)
	defer func() {
		if err != nil {
			err = errors.Join(err, sg.Compensate(context.WithoutCancel(ctx)))
		}
	}()

	now := time.Now().UTC()
	total := kernel.ZeroMoney()
	ids := make([]kernel.UUID, 0, len(delivered))
	trackingIDs := make([]parcel.TrackingID, 0, len(delivered))
	for _, p := range delivered {
		if p.CashoutStatus() != parcel.CashoutPending {
			continue
		}

		earning, earnErr := h.policy.Earning(p)
		if earnErr != nil {
			return earnErr
		}

		keepSnapshot(sg, p)
		if err = p.CashOut(now); err != nil {
			return err
		}
		if err = parcelRepo.Update(ctx, p); err != nil {
			return err
		}

		total = total.Add(earning)
		ids = append(ids, p.ID())
		trackingIDs = append(trackingIDs, p.TrackingID())
	}
	if len(ids) == 0 {
		return ErrNothingToCashOut
	}

	c, err := cashout.NewCashout(cmd.CashoutID(), r.ID(), total, ids, now)
	if err != nil {
		return err
	}

	if err = uow.CashoutRepository().Add(ctx, c); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	sg.Clear()
	evictParcels(ctx, h.cache, trackingIDs...)
	return nil
}
