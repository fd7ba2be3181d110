package services

import (
	"fmt"
	"time"

	"trackmate/internal/core/domain/model/kernel"
	"trackmate/internal/core/domain/model/parcel"
	"trackmate/internal/core/domain/model/rider"
	"trackmate/internal/core/domain/model/tracking"
	"trackmate/internal/pkg/errs"
)

// DeliveryWorkflow applies delivery-status transitions to parcels and
// produces the tracking log entry every applied transition must leave.
//
// Business rules:
//   - Only Processing → Rider Assigned → In Transit → Delivered edges exist
//   - Rider Assigned is reached through Assign, with an Active rider
//   - In Transit and Delivered are reached through Advance, by the assigned rider
//   - A failed call leaves the parcel unchanged and produces no entry
//
// Example usage:
//
//	workflow := services.NewDeliveryWorkflow()
//	entry, err := workflow.Advance(p, parcel.InTransit, riderID, "picked up at gate", actor, now)
//	if err != nil {
//	    // errs.ErrIllegalTransition, errs.ErrForbidden
//	}
//	// persist p and entry in one transaction
type DeliveryWorkflow interface {
	Book(p *parcel.Parcel, actor string) (tracking.LogEntry, error)
	Assign(p *parcel.Parcel, r *rider.Rider, details, actor string, at time.Time) (tracking.LogEntry, error)
	Advance(
		p *parcel.Parcel,
		next parcel.DeliveryStatus,
		riderID kernel.UUID,
		details, actor string,
		at time.Time,
	) (tracking.LogEntry, error)
}

var _ DeliveryWorkflow = &deliveryWorkflow{}

type deliveryWorkflow struct{}

// NewDeliveryWorkflow returns the workflow service.
func NewDeliveryWorkflow() DeliveryWorkflow {
	return &deliveryWorkflow{}
}

// Book returns the Processing entry of a freshly booked parcel.
func (w *deliveryWorkflow) Book(p *parcel.Parcel, actor string) (tracking.LogEntry, error) {
	if err := p.Validate(); err != nil {
		return tracking.LogEntry{}, err
	}
	if p.DeliveryStatus() != parcel.Processing {
		return tracking.LogEntry{}, errs.NewIllegalTransitionError("deliveryStatus", p.DeliveryStatus().String(), parcel.Processing.String())
	}
	return tracking.NewLogEntry(kernel.NewUUID(), p.TrackingID(), parcel.Processing, "", actor, p.CreatedAt())
}

// Assign moves a Processing parcel to Rider Assigned with r as its rider.
//
// Returns:
//   - tracking.LogEntry: the entry to append
//   - error: IllegalTransitionError when the parcel is past Processing,
//     ValueIsInvalidError when r is not Active
func (w *deliveryWorkflow) Assign(
	p *parcel.Parcel,
	r *rider.Rider,
	details, actor string,
	at time.Time,
) (tracking.LogEntry, error) {
	if err := p.Validate(); err != nil {
		return tracking.LogEntry{}, err
	}
	if _, err := p.DeliveryStatus().TransitionTo(parcel.RiderAssigned); err != nil {
		return tracking.LogEntry{}, err
	}
	if err := r.Validate(); err != nil {
		return tracking.LogEntry{}, err
	}
	if !r.IsActive() {
		return tracking.LogEntry{}, errs.NewValueIsInvalidErrorWithCause(
			"riderId",
			fmt.Errorf("rider %s is %s, not %s", r.Email(), r.Status(), rider.Active),
		)
	}

	return w.apply(p, parcel.RiderAssigned, r.ID(), details, actor, at)
}

// Advance applies a rider action: pick-up (In Transit) or delivery
// (Delivered). The edge is checked before the actor, so a skipped step is
// reported as an illegal transition whoever asks for it.
//
// Returns:
//   - tracking.LogEntry: the entry to append
//   - error: IllegalTransitionError for a missing edge, ForbiddenError when
//     next is Rider Assigned or riderID is not the assigned rider
func (w *deliveryWorkflow) Advance(
	p *parcel.Parcel,
	next parcel.DeliveryStatus,
	riderID kernel.UUID,
	details, actor string,
	at time.Time,
) (tracking.LogEntry, error) {
	if err := p.Validate(); err != nil {
		return tracking.LogEntry{}, err
	}
	if _, err := p.DeliveryStatus().TransitionTo(next); err != nil {
		return tracking.LogEntry{}, err
	}
	if next == parcel.RiderAssigned {
		return tracking.LogEntry{}, errs.NewForbiddenError(actor, "assign riders through a status update")
	}

	return w.apply(p, next, riderID, details, actor, at)
}

func (w *deliveryWorkflow) apply(
	p *parcel.Parcel,
	next parcel.DeliveryStatus,
	riderID kernel.UUID,
	details, actor string,
	at time.Time,
) (tracking.LogEntry, error) {
	snapshot := p.Snapshot()
	if err := p.Advance(next, riderID, at); err != nil {
		return tracking.LogEntry{}, err
	}

	entry, err := tracking.NewLogEntry(kernel.NewUUID(), p.TrackingID(), next, details, actor, at)
	if err != nil {
		if revertErr := p.Revert(snapshot); revertErr != nil {
			return tracking.LogEntry{}, fmt.Errorf("%w (revert: %w)", err, revertErr)
		}
		return tracking.LogEntry{}, err
	}
	return entry, nil
}
