package commands

import (
	"context"
	"time"

	"trackmate/internal/core/domain/model/payment"
	"trackmate/internal/core/ports"
)

// MarkParcelPaidCommandHandler moves a parcel from Unpaid to Paid and writes
// the payment receipt in the same transaction. Paying an already paid parcel
// succeeds without writing anything, so redelivered webhooks are harmless.
type MarkParcelPaidCommandHandler struct {
	uowFactory PaymentUoWFactory
	cache      ports.BytesCache
}

// NewMarkParcelPaidCommandHandler creates a handler for payment completions.
func NewMarkParcelPaidCommandHandler(uowFactory PaymentUoWFactory, cache ports.BytesCache) MarkParcelPaidCommandHandler {
	return MarkParcelPaidCommandHandler{
		uowFactory: uowFactory,
		cache:      cache,
	}
}

// Handle marks the parcel paid.
func (h MarkParcelPaidCommandHandler) Handle(ctx context.Context, cmd MarkParcelPaidCommand) error {
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

	changed, err := p.Pay(time.Now().UTC())
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	receipt, err := payment.ForParcel(cmd.PaymentID(), p, cmd.PaymentIntentID())
	if err != nil {
		return err
	}

	if err = parcelRepo.Update(ctx, p); err != nil {
		return err
	}
	if err = uow.PaymentRepository().Add(ctx, receipt); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	evictParcels(ctx, h.cache, p.TrackingID())
	return nil
}
