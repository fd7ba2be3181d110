package parcel

import (
	"errors"
	"fmt"
	"time"

	"trackmate/internal/core/domain/model/kernel"
	"trackmate/internal/pkg/errs"
)

var (
	// ErrParcelIsNotConstructed is returned when a Parcel was not created through
	// NewParcel or RestoreParcel.
	ErrParcelIsNotConstructed = errors.New("Parcel must be created via NewParcel constructor")
)

// Parcel is the aggregate root of a booked shipment. It owns the delivery
// workflow, payment and rider cashout state of one parcel.
//
// Parcel follows these invariants:
//   - The tracking id is assigned once, by NewParcel, and never changes
//   - The price is set once, by NewParcel, and never recomputed
//   - Delivery status only advances along Processing → Rider Assigned → In Transit → Delivered
//   - A Processing parcel has no rider; every later status has one
//   - Only the assigned rider may pick up and deliver the parcel
//   - A parcel can be cashed out only once it is Delivered, and only once
//
// Version is the optimistic concurrency token used by the repository to
// serialize concurrent transitions (first write wins).
type Parcel struct {
	id             kernel.UUID
	trackingID     TrackingID
	details        Details
	price          kernel.Money
	paymentStatus  PaymentStatus
	deliveryStatus DeliveryStatus
	cashoutStatus  CashoutStatus
	riderID        *kernel.UUID
	createdBy      kernel.Email
	createdAt      time.Time
	assignedAt     *time.Time
	pickedAt       *time.Time
	deliveredAt    *time.Time
	paidAt         *time.Time
	cashedOutAt    *time.Time
	version        int

	// isConstructed ensures the parcel was created via NewParcel or RestoreParcel
	isConstructed bool
}

// State is the full, exported picture of a Parcel. Repositories build
// parcels from it and handlers keep one as an undo snapshot.
type State struct {
	ID             kernel.UUID
	TrackingID     TrackingID
	Details        Details
	Price          kernel.Money
	PaymentStatus  PaymentStatus
	DeliveryStatus DeliveryStatus
	CashoutStatus  CashoutStatus
	RiderID        *kernel.UUID
	CreatedBy      kernel.Email
	CreatedAt      time.Time
	AssignedAt     *time.Time
	PickedAt       *time.Time
	DeliveredAt    *time.Time
	PaidAt         *time.Time
	CashedOutAt    *time.Time
	Version        int
}

// NewParcel books a new parcel in Processing, Unpaid, with a pending cashout.
//
// Parameters:
//   - id: server-assigned identifier
//   - trackingID: the generated, already reserved tracking code
//   - details: the validated booking declaration
//   - price: the quote total computed by the pricing engine for details
//   - createdBy: the acting user
//   - createdAt: booking instant
//
// Returns:
//   - *Parcel: the booked parcel, version 0 until persisted
//   - error: joined validation errors
//
// Example:
//
//	quote, _ := pricing.Quote(details.Type(), details.WeightKg(), details.SameZone())
//	p, err := parcel.NewParcel(kernel.NewUUID(), parcel.GenerateTrackingID(now), details, quote.Total, actor, now)
func NewParcel(
	id kernel.UUID,
	trackingID TrackingID,
	details Details,
	price kernel.Money,
	createdBy kernel.Email,
	createdAt time.Time,
) (*Parcel, error) {
	if err := errors.Join(
		id.Validate(),
		trackingID.Validate(),
		details.Validate(),
		price.Validate(),
		createdBy.Validate(),
	); err != nil {
		return nil, err
	}

	return &Parcel{
		id:             id,
		trackingID:     trackingID,
		details:        details,
		price:          price,
		paymentStatus:  Unpaid,
		deliveryStatus: Processing,
		cashoutStatus:  CashoutPending,
		createdBy:      createdBy,
		createdAt:      createdAt.UTC(),
		isConstructed:  true,
	}, nil
}

// RestoreParcel rebuilds a parcel from persisted state and checks that the
// state is consistent with the workflow invariants.
//
// Returns:
//   - *Parcel: the restored parcel
//   - error: joined validation errors when the state is corrupt
func RestoreParcel(s State) (*Parcel, error) {
	if err := errors.Join(
		s.ID.Validate(),
		s.TrackingID.Validate(),
		s.Details.Validate(),
		s.Price.Validate(),
		s.PaymentStatus.Validate(),
		s.DeliveryStatus.Validate(),
		s.CashoutStatus.Validate(),
		s.CreatedBy.Validate(),
		validateRider(s.DeliveryStatus, s.RiderID),
		validateCashout(s.DeliveryStatus, s.CashoutStatus),
	); err != nil {
		return nil, err
	}

	return &Parcel{
		id:             s.ID,
		trackingID:     s.TrackingID,
		details:        s.Details,
		price:          s.Price,
		paymentStatus:  s.PaymentStatus,
		deliveryStatus: s.DeliveryStatus,
		cashoutStatus:  s.CashoutStatus,
		riderID:        copyUUID(s.RiderID),
		createdBy:      s.CreatedBy,
		createdAt:      s.CreatedAt,
		assignedAt:     copyTime(s.AssignedAt),
		pickedAt:       copyTime(s.PickedAt),
		deliveredAt:    copyTime(s.DeliveredAt),
		paidAt:         copyTime(s.PaidAt),
		cashedOutAt:    copyTime(s.CashedOutAt),
		version:        s.Version,
		isConstructed:  true,
	}, nil
}

// Snapshot returns a deep copy of the parcel state.
func (p *Parcel) Snapshot() State {
	return State{
		ID:             p.id,
		TrackingID:     p.trackingID,
		Details:        p.details,
		Price:          p.price,
		PaymentStatus:  p.paymentStatus,
		DeliveryStatus: p.deliveryStatus,
		CashoutStatus:  p.cashoutStatus,
		RiderID:        copyUUID(p.riderID),
		CreatedBy:      p.createdBy,
		CreatedAt:      p.createdAt,
		AssignedAt:     copyTime(p.assignedAt),
		PickedAt:       copyTime(p.pickedAt),
		DeliveredAt:    copyTime(p.deliveredAt),
		PaidAt:         copyTime(p.paidAt),
		CashedOutAt:    copyTime(p.cashedOutAt),
		Version:        p.version,
	}
}

// Revert puts the parcel back into a state taken earlier with Snapshot.
// Only a snapshot of the same parcel is accepted.
func (p *Parcel) Revert(s State) error {
	if !s.ID.IsEqual(p.id) {
		return errs.NewValueIsInvalidErrorWithCause("snapshot", fmt.Errorf("snapshot of %s cannot revert %s", s.ID, p.id))
	}
	restored, err := RestoreParcel(s)
	if err != nil {
		return err
	}
	*p = *restored
	return nil
}

// Validate ensures the Parcel was built by NewParcel or RestoreParcel.
func (p *Parcel) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrParcelIsNotConstructed
	}
	return nil
}

func (p *Parcel) ID() kernel.UUID                { return p.id }
func (p *Parcel) TrackingID() TrackingID         { return p.trackingID }
func (p *Parcel) Details() Details               { return p.details }
func (p *Parcel) Price() kernel.Money            { return p.price }
func (p *Parcel) PaymentStatus() PaymentStatus   { return p.paymentStatus }
func (p *Parcel) DeliveryStatus() DeliveryStatus { return p.deliveryStatus }
func (p *Parcel) CashoutStatus() CashoutStatus   { return p.cashoutStatus }
func (p *Parcel) CreatedBy() kernel.Email        { return p.createdBy }
func (p *Parcel) CreatedAt() time.Time           { return p.createdAt }
func (p *Parcel) AssignedAt() *time.Time         { return copyTime(p.assignedAt) }
func (p *Parcel) PickedAt() *time.Time           { return copyTime(p.pickedAt) }
func (p *Parcel) DeliveredAt() *time.Time        { return copyTime(p.deliveredAt) }
func (p *Parcel) PaidAt() *time.Time             { return copyTime(p.paidAt) }
func (p *Parcel) CashedOutAt() *time.Time        { return copyTime(p.cashedOutAt) }
func (p *Parcel) Version() int                   { return p.version }

// Rider returns the assigned rider, nil while Processing.
func (p *Parcel) Rider() *kernel.UUID {
	return copyUUID(p.riderID)
}

// SameZone reports whether sender and receiver share a district warehouse.
func (p *Parcel) SameZone() bool {
	return p.details.SameZone()
}

// IsOwnedBy reports whether actor booked the parcel or is its sender.
func (p *Parcel) IsOwnedBy(actor kernel.Email) bool {
	return p.createdBy.IsEqual(actor) || p.details.Sender().Email().IsEqual(actor)
}

// IsAssignedTo reports whether riderID is the rider on the parcel.
func (p *Parcel) IsAssignedTo(riderID kernel.UUID) bool {
	return p.riderID != nil && p.riderID.IsEqual(riderID)
}

// Advance moves the parcel one step along the delivery workflow.
//
// The edge is checked first, so a skipped or backward step is an
// IllegalTransitionError whoever asks for it. Then:
//   - RiderAssigned records riderID as the parcel's rider
//   - InTransit and Delivered require riderID to be the assigned rider,
//     otherwise a ForbiddenError is returned
//
// On error the parcel is left unchanged.
//
// Parameters:
//   - next: the requested status
//   - riderID: the rider being assigned, or the rider performing the action
//   - at: the instant of the transition
//
// Example:
//
//	if err := p.Advance(parcel.InTransit, riderID, time.Now()); err != nil {
//	    // errs.ErrIllegalTransition or errs.ErrForbidden
//	}
func (p *Parcel) Advance(next DeliveryStatus, riderID kernel.UUID, at time.Time) error {
	if err := p.Validate(); err != nil {
		return err
	}

	newStatus, err := p.deliveryStatus.TransitionTo(next)
	if err != nil {
		return err
	}
	if err = riderID.Validate(); err != nil {
		return err
	}

	at = at.UTC()
	switch newStatus { //nolint:exhaustive // TransitionTo never returns Processing
	case RiderAssigned:
		p.riderID = &riderID
		p.assignedAt = &at
	case InTransit:
		if !p.IsAssignedTo(riderID) {
			return p.forbiddenFor(riderID, newStatus)
		}
		p.pickedAt = &at
	case Delivered:
		if !p.IsAssignedTo(riderID) {
			return p.forbiddenFor(riderID, newStatus)
		}
		p.deliveredAt = &at
	}

	p.deliveryStatus = newStatus
	return nil
}

// AssignRider is the dispatch transition Processing → Rider Assigned.
func (p *Parcel) AssignRider(riderID kernel.UUID, at time.Time) error {
	return p.Advance(RiderAssigned, riderID, at)
}

// PickUp is the rider transition Rider Assigned → In Transit.
func (p *Parcel) PickUp(riderID kernel.UUID, at time.Time) error {
	return p.Advance(InTransit, riderID, at)
}

// Deliver is the rider transition In Transit → Delivered.
func (p *Parcel) Deliver(riderID kernel.UUID, at time.Time) error {
	return p.Advance(Delivered, riderID, at)
}

// Pay records payment completion. Paying twice is not an error: the second
// call reports changed == false and leaves paidAt alone, so webhook
// redeliveries are harmless.
func (p *Parcel) Pay(at time.Time) (bool, error) {
	if err := p.Validate(); err != nil {
		return false, err
	}
	if p.paymentStatus == Paid {
		return false, nil
	}

	at = at.UTC()
	p.paymentStatus = Paid
	p.paidAt = &at
	return true, nil
}

// CashOut marks the rider's earning on a delivered parcel as paid out.
//
// Returns:
//   - nil on success
//   - ValueIsInvalidError when the parcel is not Delivered yet
//   - IllegalTransitionError when it was already cashed out
func (p *Parcel) CashOut(at time.Time) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.deliveryStatus != Delivered {
		return errs.NewValueIsInvalidErrorWithCause(
			"cashoutStatus",
			fmt.Errorf("parcel %s is %s, not %s", p.trackingID, p.deliveryStatus, Delivered),
		)
	}
	if p.cashoutStatus != CashoutPending {
		return errs.NewIllegalTransitionError("cashoutStatus", p.cashoutStatus.String(), CashedOut.String())
	}

	at = at.UTC()
	p.cashoutStatus = CashedOut
	p.cashedOutAt = &at
	return nil
}

// CheckDeletable tells whether actor may delete the parcel now. Only the
// owner may, and only while it is still Processing and Unpaid.
func (p *Parcel) CheckDeletable(actor kernel.Email) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if !p.IsOwnedBy(actor) {
		return errs.NewForbiddenError(actor.String(), fmt.Sprintf("delete parcel %s", p.trackingID))
	}
	if p.deliveryStatus != Processing {
		return errs.NewIllegalTransitionError("parcel", p.deliveryStatus.String(), "Deleted")
	}
	if p.paymentStatus != Unpaid {
		return errs.NewIllegalTransitionError("parcel", p.paymentStatus.String(), "Deleted")
	}
	return nil
}

// MarkPersisted bumps the version after the repository stored the parcel.
func (p *Parcel) MarkPersisted() {
	p.version++
}

func (p *Parcel) forbiddenFor(riderID kernel.UUID, next DeliveryStatus) error {
	return errs.NewForbiddenError(
		riderID.String(),
		fmt.Sprintf("move parcel %s to %s", p.trackingID, next),
	)
}

func validateRider(status DeliveryStatus, riderID *kernel.UUID) error {
	if status == Processing && riderID != nil {
		return errs.NewValueIsInvalidErrorWithCause("riderId", errors.New("a Processing parcel has no rider"))
	}
	if status != Processing && status.Validate() == nil {
		if riderID == nil {
			return errs.NewValueIsRequiredErrorWithCause("riderId", fmt.Errorf("a %s parcel has a rider", status))
		}
		return riderID.Validate()
	}
	return nil
}

func validateCashout(status DeliveryStatus, cashout CashoutStatus) error {
	if cashout == CashedOut && status != Delivered {
		return errs.NewValueIsInvalidErrorWithCause("cashoutStatus", fmt.Errorf("a %s parcel cannot be cashed out", status))
	}
	return nil
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

func copyUUID(id *kernel.UUID) *kernel.UUID {
	if id == nil {
		return nil
	}
	c := *id
	return &c
}
