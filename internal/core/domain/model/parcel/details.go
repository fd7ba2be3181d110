package parcel

import (
	"errors"
	"strings"

	"trackmate/internal/pkg/errs"
	"trackmate/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrDetailsAreNotConstructed is returned for a zero Details.
var ErrDetailsAreNotConstructed = errs.NewValueIsRequiredError("details must be created via NewDetails")

// Details is what the sender declares when booking: everything pricing and
// delivery need, and nothing the workflow changes later.
type Details struct { //nolint:recvcheck // setters use pointer receivers
	parcelType          Type
	name                string
	weightKg            decimal.Decimal
	sender              Party
	receiver            Party
	pickupInstruction   string
	deliveryInstruction string
	guard               guard.ConstructorGuard
}

// NewDetails validates the booking form.
//
// Parameters:
//   - parcelType: Document or NonDocument
//   - name: a short description of the contents (required)
//   - weightKg: declared weight, must not be negative; only priced for NonDocument
//   - sender: the booking party; its email is required
//   - receiver: the destination party
//   - pickupInstruction, deliveryInstruction: optional free text
//
// Returns:
//   - Details: the validated declaration
//   - error: every failed rule joined with errors.Join
func NewDetails(
	parcelType Type,
	name string,
	weightKg decimal.Decimal,
	sender, receiver Party,
	pickupInstruction, deliveryInstruction string,
) (Details, error) {
	d := Details{
		pickupInstruction:   strings.TrimSpace(pickupInstruction),
		deliveryInstruction: strings.TrimSpace(deliveryInstruction),
		guard:               guard.NewConstructorGuard(),
	}
	if err := errors.Join(
		d.setType(parcelType),
		d.setName(name),
		d.setWeight(weightKg),
		d.setSender(sender),
		d.setReceiver(receiver),
	); err != nil {
		return Details{}, err
	}
	return d, nil
}

func (d Details) Validate() error {
	return d.guard.Validate(ErrDetailsAreNotConstructed)
}

func (d Details) Type() Type                  { return d.parcelType }
func (d Details) Name() string                { return d.name }
func (d Details) WeightKg() decimal.Decimal   { return d.weightKg }
func (d Details) Sender() Party               { return d.sender }
func (d Details) Receiver() Party             { return d.receiver }
func (d Details) PickupInstruction() string   { return d.pickupInstruction }
func (d Details) DeliveryInstruction() string { return d.deliveryInstruction }

// SameZone reports whether sender and receiver share a district warehouse.
func (d Details) SameZone() bool {
	return d.sender.Zone().IsSameArea(d.receiver.Zone())
}

func (d *Details) setType(t Type) error {
	if err := t.Validate(); err != nil {
		return err
	}
	d.parcelType = t
	return nil
}

func (d *Details) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("parcelName")
	}
	d.name = name
	return nil
}

func (d *Details) setWeight(weightKg decimal.Decimal) error {
	if weightKg.IsNegative() {
		return errs.NewValueIsOutOfRangeError("weightKg", weightKg.String(), 0, "∞")
	}
	d.weightKg = weightKg
	return nil
}

func (d *Details) setSender(sender Party) error {
	if err := sender.Validate(); err != nil {
		return err
	}
	if err := sender.Email().Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("senderEmail", err)
	}
	d.sender = sender
	return nil
}

func (d *Details) setReceiver(receiver Party) error {
	if err := receiver.Validate(); err != nil {
		return err
	}
	d.receiver = receiver
	return nil
}
