package commands

import (
	"errors"
	"strings"

	"trackmate/internal/core/domain/model/kernel"
	"trackmate/internal/core/domain/model/parcel"
	"trackmate/internal/pkg/errs"
	"trackmate/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCreateParcelCommandIsNotConstructed = errors.New(
	"CreateParcelCommand must be created via NewCreateParcelCommand constructor",
)

// PartyForm is one side of the booking form as the sender typed it. The
// district is resolved against the zone catalog by the handler.
type PartyForm struct {
	Name     string
	Email    string
	Contact  string
	Address  string
	District string
}

// CreateParcelCommand represents a sender booking a parcel.
//
// Example:
//
//	cmd, err := NewCreateParcelCommand(
//	    kernel.NewUUID(), parcel.NonDocument, "Books", decimal.RequireFromString("4.5"),
//	    PartyForm{Name: "Rahim", Email: "rahim@example.com", Contact: "01711000000", Address: "House 7", District: "Dhaka"},
//	    PartyForm{Name: "Karim", Contact: "01811000000", Address: "Road 2", District: "Sylhet"},
//	    "", "Call before arrival",
//	    actor,
//	)
type CreateParcelCommand struct { //nolint:recvcheck //using for validation
	parcelID            kernel.UUID
	parcelType          parcel.Type
	name                string
	weightKg            decimal.Decimal
	sender              PartyForm
	receiver            PartyForm
	pickupInstruction   string
	deliveryInstruction string
	actor               kernel.Email

	guard guard.ConstructorGuard
}

// NewCreateParcelCommand checks the parts of the form that do not need the
// zone catalog. The remaining rules are checked by the domain model.
func NewCreateParcelCommand(
	parcelID kernel.UUID,
	parcelType parcel.Type,
	name string,
	weightKg decimal.Decimal,
	sender, receiver PartyForm,
	pickupInstruction, deliveryInstruction string,
	actor kernel.Email,
) (CreateParcelCommand, error) {
	c := CreateParcelCommand{
		name:                name,
		weightKg:            weightKg,
		pickupInstruction:   pickupInstruction,
		deliveryInstruction: deliveryInstruction,
		guard:               guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setParcelID(parcelID),
		c.setParcelType(parcelType),
		c.setSender(sender),
		c.setReceiver(receiver),
		c.setActor(actor),
	); err != nil {
		return CreateParcelCommand{}, err
	}

	return c, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateParcelCommand) Validate() error {
	return c.guard.Validate(ErrCreateParcelCommandIsNotConstructed)
}

func (c CreateParcelCommand) ParcelID() kernel.UUID       { return c.parcelID }
func (c CreateParcelCommand) ParcelType() parcel.Type     { return c.parcelType }
func (c CreateParcelCommand) Name() string                { return c.name }
func (c CreateParcelCommand) WeightKg() decimal.Decimal   { return c.weightKg }
func (c CreateParcelCommand) Sender() PartyForm           { return c.sender }
func (c CreateParcelCommand) Receiver() PartyForm         { return c.receiver }
func (c CreateParcelCommand) PickupInstruction() string   { return c.pickupInstruction }
func (c CreateParcelCommand) DeliveryInstruction() string { return c.deliveryInstruction }
func (c CreateParcelCommand) Actor() kernel.Email         { return c.actor }

func (c *CreateParcelCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}

	c.parcelID = parcelID
	return nil
}

func (c *CreateParcelCommand) setParcelType(parcelType parcel.Type) error {
	if err := parcelType.Validate(); err != nil {
		return err
	}

	c.parcelType = parcelType
	return nil
}

func (c *CreateParcelCommand) setSender(sender PartyForm) error {
	if strings.TrimSpace(sender.District) == "" {
		return errs.NewValueIsRequiredError("senderDistrict")
	}

	c.sender = sender
	return nil
}

func (c *CreateParcelCommand) setReceiver(receiver PartyForm) error {
	if strings.TrimSpace(receiver.District) == "" {
		return errs.NewValueIsRequiredError("receiverDistrict")
	}

	c.receiver = receiver
	return nil
}

func (c *CreateParcelCommand) setActor(actor kernel.Email) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}
