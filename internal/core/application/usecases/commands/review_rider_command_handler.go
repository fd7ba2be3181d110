package commands

import (
	"context"
	"time"
)

// ReviewRiderCommandHandler applies review decisions to rider applications.
type ReviewRiderCommandHandler struct {
	uowFactory RiderUoWFactory
}

// NewReviewRiderCommandHandler creates a handler for rider reviews.
func NewReviewRiderCommandHandler(uowFactory RiderUoWFactory) ReviewRiderCommandHandler {
	return ReviewRiderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle loads the rider, applies the decision and stores it.
func (h ReviewRiderCommandHandler) Handle(ctx context.Context, cmd ReviewRiderCommand) error {
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

	riderRepo := uow.RiderRepository()
	r, err := riderRepo.Get(ctx, cmd.RiderID())
	if err != nil {
		return err
	}

	if err = r.Review(cmd.Decision(), time.Now().UTC()); err != nil {
		return err
	}

	if err = riderRepo.Update(ctx, r); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
