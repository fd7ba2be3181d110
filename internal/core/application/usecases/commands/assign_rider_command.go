package commands

import (
	"errors"

	"trackmate/internal/core/domain/model/kernel"
	"trackmate/internal/pkg/guard"
)

var ErrAssignRiderCommandIsNotConstructed = errors.New(
	"AssignRiderCommand must be created via NewAssignRiderCommand constructor",
)

// AssignRiderCommand represents dispatch handing a Processing parcel to a rider.
//
// Example:
//
//	cmd, err := NewAssignRiderCommand(parcelID, riderID, "Assigned by Dhaka hub", actor)
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
type AssignRiderCommand struct { //nolint:recvcheck //using for validation
	parcelID kernel.UUID
	riderID  kernel.UUID
	details  string
	actor    kernel.Email

	guard guard.ConstructorGuard
}

// NewAssignRiderCommand creates an assignment request. details may be blank.
func NewAssignRiderCommand(parcelID, riderID kernel.UUID, details string, actor kernel.Email) (AssignRiderCommand, error) {
	c := AssignRiderCommand{
		details: details,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setParcelID(parcelID),
		c.setRiderID(riderID),
		c.setActor(actor),
	); err != nil {
		return AssignRiderCommand{}, err
	}

	return c, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignRiderCommand) Validate() error {
	return c.guard.Validate(ErrAssignRiderCommandIsNotConstructed)
}

func (c AssignRiderCommand) ParcelID() kernel.UUID { return c.parcelID }
func (c AssignRiderCommand) RiderID() kernel.UUID  { return c.riderID }
func (c AssignRiderCommand) Details() string       { return c.details }
func (c AssignRiderCommand) Actor() kernel.Email   { return c.actor }

func (c *AssignRiderCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}

	c.parcelID = parcelID
	return nil
}

func (c *AssignRiderCommand) setRiderID(riderID kernel.UUID) error {
	if err := riderID.Validate(); err != nil {
		return err
	}

	c.riderID = riderID
	return nil
}

func (c *AssignRiderCommand) setActor(actor kernel.Email) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}
