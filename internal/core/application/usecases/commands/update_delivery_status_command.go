package commands

import (
	"errors"

	"trackmate/internal/core/domain/model/kernel"
	"trackmate/internal/core/domain/model/parcel"
	"trackmate/internal/pkg/guard"
)

var ErrUpdateDeliveryStatusCommandIsNotConstructed = errors.New(
	"UpdateDeliveryStatusCommand must be created via NewUpdateDeliveryStatusCommand constructor",
)

// UpdateDeliveryStatusCommand represents a rider reporting progress on a
// parcel: pick-up (In Transit) or delivery (Delivered).
//
// Example:
//
//	cmd, err := NewUpdateDeliveryStatusCommand(parcelID, parcel.InTransit, "Picked up from the front desk", riderEmail)
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
type UpdateDeliveryStatusCommand struct { //nolint:recvcheck //using for validation
	parcelID kernel.UUID
	status   parcel.DeliveryStatus
	details  string
	actor    kernel.Email

	guard guard.ConstructorGuard
}

// NewUpdateDeliveryStatusCommand creates a status update. details may be blank.
func NewUpdateDeliveryStatusCommand(
	parcelID kernel.UUID,
	status parcel.DeliveryStatus,
	details string,
	actor kernel.Email,
) (UpdateDeliveryStatusCommand, error) {
	c := UpdateDeliveryStatusCommand{
		details: details,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setParcelID(parcelID),
		c.setStatus(status),
		c.setActor(actor),
	); err != nil {
		return UpdateDeliveryStatusCommand{}, err
	}

	return c, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateDeliveryStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDeliveryStatusCommandIsNotConstructed)
}

func (c UpdateDeliveryStatusCommand) ParcelID() kernel.UUID         { return c.parcelID }
func (c UpdateDeliveryStatusCommand) Status() parcel.DeliveryStatus { return c.status }
func (c UpdateDeliveryStatusCommand) Details() string               { return c.details }
func (c UpdateDeliveryStatusCommand) Actor() kernel.Email           { return c.actor }

func (c *UpdateDeliveryStatusCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}

	c.parcelID = parcelID
	return nil
}

func (c *UpdateDeliveryStatusCommand) setStatus(status parcel.DeliveryStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}

	c.status = status
	return nil
}

func (c *UpdateDeliveryStatusCommand) setActor(actor kernel.Email) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}
