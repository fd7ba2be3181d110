package services

import (
	"errors"

	"trackmate/internal/core/domain/model/parcel"
	"trackmate/internal/core/domain/model/rider"
)

// ErrRiderNotFound is returned when no Active rider works in the parcel's
// pick-up zone.
var ErrRiderNotFound = errors.New("rider not found")

// RiderLoad is a candidate rider together with the number of parcels they
// currently carry (Rider Assigned or In Transit).
type RiderLoad struct {
	Rider       *rider.Rider
	OpenParcels int
}

// RiderDispatcher picks the rider a Processing parcel should be assigned to.
//
// Selection rules:
//   - The rider must be Active
//   - The rider must work in the sender's zone, where the parcel is picked up
//   - Among those, the rider with the fewest open parcels wins; ties go to
//     the earlier candidate
//
// The dispatcher only selects. The assignment itself goes through
// DeliveryWorkflow.Assign so that it is logged like a manual one.
type RiderDispatcher struct{}

// NewRiderDispatcher creates a RiderDispatcher.
func NewRiderDispatcher() RiderDispatcher {
	return RiderDispatcher{}
}

// Dispatch returns the best rider for p.
//
// Returns:
//   - *rider.Rider: the selected rider
//   - error: ErrRiderNotFound when no candidate qualifies, an
//     IllegalTransitionError when p cannot be assigned any more
func (d RiderDispatcher) Dispatch(p *parcel.Parcel, candidates []RiderLoad) (*rider.Rider, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if _, err := p.DeliveryStatus().TransitionTo(parcel.RiderAssigned); err != nil {
		return nil, err
	}

	pickupZone := p.Details().Sender().Zone()
	var (
		best     *rider.Rider
		bestLoad int
	)
	for _, c := range candidates {
		if err := c.Rider.Validate(); err != nil {
			return nil, err
		}
		if !c.Rider.IsActive() || !c.Rider.Zone().IsSameArea(pickupZone) {
			continue
		}
		if best == nil || c.OpenParcels < bestLoad {
			best = c.Rider
			bestLoad = c.OpenParcels
		}
	}

	if best == nil {
		return nil, ErrRiderNotFound
	}
	return best, nil
}
