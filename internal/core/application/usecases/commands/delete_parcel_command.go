package commands

import (
	"errors"

	"trackmate/internal/core/domain/model/kernel"
	"trackmate/internal/pkg/guard"
)

var ErrDeleteParcelCommandIsNotConstructed = errors.New(
	"DeleteParcelCommand must be created via NewDeleteParcelCommand constructor",
)

// DeleteParcelCommand represents a sender cancelling a booking.
type DeleteParcelCommand struct { //nolint:recvcheck //using for validation
	parcelID kernel.UUID
	actor    kernel.Email

	guard guard.ConstructorGuard
}

// NewDeleteParcelCommand creates a cancellation of parcelID by actor.
func NewDeleteParcelCommand(parcelID kernel.UUID, actor kernel.Email) (DeleteParcelCommand, error) {
	if err := errors.Join(parcelID.Validate(), actor.Validate()); err != nil {
		return DeleteParcelCommand{}, err
	}

	return DeleteParcelCommand{
		parcelID: parcelID,
		actor:    actor,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DeleteParcelCommand) Validate() error {
	return c.guard.Validate(ErrDeleteParcelCommandIsNotConstructed)
}

func (c DeleteParcelCommand) ParcelID() kernel.UUID { return c.parcelID }
func (c DeleteParcelCommand) Actor() kernel.Email   { return c.actor }
