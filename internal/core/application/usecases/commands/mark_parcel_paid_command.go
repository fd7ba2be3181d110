package commands

import (
	"errors"
	"strings"

	"trackmate/internal/core/domain/model/kernel"
	"trackmate/internal/pkg/guard"
)

var ErrMarkParcelPaidCommandIsNotConstructed = errors.New(
	"MarkParcelPaidCommand must be created via NewMarkParcelPaidCommand constructor",
)

// MarkParcelPaidCommand records that the sender paid for a parcel. It is
// sent by the payment webhook and by admins settling cash payments.
type MarkParcelPaidCommand struct { //nolint:recvcheck //using for validation
	paymentID       kernel.UUID
	parcelID        kernel.UUID
	paymentIntentID string

	guard guard.ConstructorGuard
}

// NewMarkParcelPaidCommand creates a payment completion for parcelID.
// paymentID names the receipt to write. paymentIntentID is the processor's
// intent id, empty for manual settlements.
func NewMarkParcelPaidCommand(paymentID, parcelID kernel.UUID, paymentIntentID string) (MarkParcelPaidCommand, error) {
	if err := paymentID.Validate(); err != nil {
		return MarkParcelPaidCommand{}, err
	}
	if err := parcelID.Validate(); err != nil {
		return MarkParcelPaidCommand{}, err
	}

	return MarkParcelPaidCommand{
		paymentID:       paymentID,
		parcelID:        parcelID,
		paymentIntentID: strings.TrimSpace(paymentIntentID),
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkParcelPaidCommand) Validate() error {
	return c.guard.Validate(ErrMarkParcelPaidCommandIsNotConstructed)
}

// PaymentID returns the id of the receipt.
func (c MarkParcelPaidCommand) PaymentID() kernel.UUID {
	return c.paymentID
}

// ParcelID returns the paid parcel.
func (c MarkParcelPaidCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

func (c MarkParcelPaidCommand) PaymentIntentID() string {
	return c.paymentIntentID
}
