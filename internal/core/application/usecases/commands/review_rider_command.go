package commands

import (
	"errors"

	"trackmate/internal/core/domain/model/kernel"
	"trackmate/internal/core/domain/model/rider"
	"trackmate/internal/pkg/guard"
)

var ErrReviewRiderCommandIsNotConstructed = errors.New(
	"ReviewRiderCommand must be created via NewReviewRiderCommand constructor",
)

// ReviewRiderCommand represents an admin decision on a rider: approve
// (Active), reject (Rejected) or deactivate (Inactive).
//
// Example:
//
//	cmd, _ := NewReviewRiderCommand(riderID, rider.Active)
//	err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrIllegalTransition) {
//	    // e.g. approving a rejected application
//	}
type ReviewRiderCommand struct { //nolint:recvcheck //using for validation
	riderID  kernel.UUID
	decision rider.ApplicationStatus

	guard guard.ConstructorGuard
}

// NewReviewRiderCommand creates a review decision.
func NewReviewRiderCommand(riderID kernel.UUID, decision rider.ApplicationStatus) (ReviewRiderCommand, error) {
	if err := errors.Join(riderID.Validate(), decision.Validate()); err != nil {
		return ReviewRiderCommand{}, err
	}

	return ReviewRiderCommand{
		riderID:  riderID,
		decision: decision,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ReviewRiderCommand) Validate() error {
	return c.guard.Validate(ErrReviewRiderCommandIsNotConstructed)
}

func (c ReviewRiderCommand) RiderID() kernel.UUID              { return c.riderID }
func (c ReviewRiderCommand) Decision() rider.ApplicationStatus { return c.decision }
