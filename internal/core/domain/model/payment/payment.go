// Package payment records completed parcel payments for the sender's
// payment history.
package payment

import (
	"errors"
	"strings"
	"time"

	"trackmate/internal/core/domain/model/kernel"
	"trackmate/internal/core/domain/model/parcel"
	"trackmate/internal/pkg/errs"
)

// ErrPaymentIsNotConstructed is returned for a zero Payment.
var ErrPaymentIsNotConstructed = errors.New("Payment must be created via ForParcel constructor")

// StatusSucceeded is the status of every recorded payment. Failed card
// attempts never reach the service.
const StatusSucceeded = "succeeded"

// Method says how the sender paid.
type Method int

const (
	UnknownMethod Method = iota
	Card
	Manual
)

func getMethodStrings() map[Method]string {
	//nolint:exhaustive // UnknownMethod is not a wire value
	return map[Method]string{
		Card:   "card",
		Manual: "manual",
	}
}

func (m Method) String() string {
	if s, ok := getMethodStrings()[m]; ok {
		return s
	}
	return "unknown"
}

// Payment is the receipt of one parcel payment. A parcel is paid at most
// once, so it has at most one Payment.
type Payment struct {
	id              kernel.UUID
	parcelID        kernel.UUID
	trackingID      parcel.TrackingID
	payer           kernel.Email
	amount          kernel.Money
	method          Method
	paymentIntentID string
	paidAt          time.Time
	isConstructed   bool
}

// ForParcel builds the receipt of a parcel that has just been paid. The
// amount is the parcel price and the time is the parcel's paidAt. An empty
// paymentIntentID means an admin settled the parcel by hand.
//
// Returns errs.ErrIllegalTransition when p is not Paid.
func ForParcel(id kernel.UUID, p *parcel.Parcel, paymentIntentID string) (*Payment, error) {
	if err := errors.Join(id.Validate(), p.Validate()); err != nil {
		return nil, err
	}
	if p.PaymentStatus() != parcel.Paid || p.PaidAt() == nil {
		return nil, errs.NewIllegalTransitionError("paymentStatus", p.PaymentStatus().String(), "receipt")
	}

	method := Card
	paymentIntentID = strings.TrimSpace(paymentIntentID)
	if paymentIntentID == "" {
		method = Manual
	}

	return &Payment{
		id:              id,
		parcelID:        p.ID(),
		trackingID:      p.TrackingID(),
		payer:           p.Details().Sender().Email(),
		amount:          p.Price(),
		method:          method,
		paymentIntentID: paymentIntentID,
		paidAt:          p.PaidAt().UTC(),
		isConstructed:   true,
	}, nil
}

func (p *Payment) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPaymentIsNotConstructed
	}
	return nil
}

func (p *Payment) ID() kernel.UUID               { return p.id }
func (p *Payment) ParcelID() kernel.UUID         { return p.parcelID }
func (p *Payment) TrackingID() parcel.TrackingID { return p.trackingID }
func (p *Payment) Payer() kernel.Email           { return p.payer }
func (p *Payment) Amount() kernel.Money          { return p.amount }
func (p *Payment) Method() Method                { return p.method }
func (p *Payment) PaymentIntentID() string       { return p.paymentIntentID }
func (p *Payment) PaidAt() time.Time             { return p.paidAt }
func (p *Payment) Status() string                { return StatusSucceeded }
