package commands

import (
	"errors"

	"trackmate/internal/core/domain/model/kernel"
	"trackmate/internal/pkg/guard"
)

var ErrRequestCashoutCommandIsNotConstructed = errors.New(
	"RequestCashoutCommand must be created via NewRequestCashoutCommand constructor",
)

// RequestCashoutCommand represents a rider asking to be paid for every
// delivered parcel that has not been cashed out yet.
//
// Example:
//
//	cmd, err := NewRequestCashoutCommand(kernel.NewUUID(), riderID, riderEmail)
//	if err != nil {
//	    return err
//	}
//	if err = handler.Handle(ctx, cmd); errors.Is(err, ErrNothingToCashOut) {
//	    // nothing delivered since the last cashout
//	}
type RequestCashoutCommand struct { //nolint:recvcheck //using for validation
	cashoutID kernel.UUID
	riderID   kernel.UUID
	actor     kernel.Email

	guard guard.ConstructorGuard
}

// NewRequestCashoutCommand creates a cashout request. cashoutID is the id
// the new cashout will be stored under.
func NewRequestCashoutCommand(cashoutID, riderID kernel.UUID, actor kernel.Email) (RequestCashoutCommand, error) {
	if err := errors.Join(cashoutID.Validate(), riderID.Validate(), actor.Validate()); err != nil {
		return RequestCashoutCommand{}, err
	}

	return RequestCashoutCommand{
		cashoutID: cashoutID,
		riderID:   riderID,
		actor:     actor,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RequestCashoutCommand) Validate() error {
	return c.guard.Validate(ErrRequestCashoutCommandIsNotConstructed)
}

func (c RequestCashoutCommand) CashoutID() kernel.UUID { return c.cashoutID }
func (c RequestCashoutCommand) RiderID() kernel.UUID   { return c.riderID }
func (c RequestCashoutCommand) Actor() kernel.Email    { return c.actor }
