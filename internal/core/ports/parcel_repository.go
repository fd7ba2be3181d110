// Package ports defines the contracts between the parcel service core and its
// infrastructure: repositories, the unit of work, caches, the event
// publisher and the zone directory.
package ports

import (
	"context"

	"trackmate/internal/core/domain/model/kernel"
	"trackmate/internal/core/domain/model/parcel"
)

// ParcelRepository defines the persistence contract for parcel aggregates.
//
// Writes are optimistic: Update and Delete only touch the row when its
// version still equals the aggregate's, otherwise they fail with
// errs.ErrStaleState and nothing is written. This serializes concurrent
// transitions of the same parcel (first write wins).
type ParcelRepository interface {
	// Add persists a newly booked parcel. A taken tracking id fails with
	// errs.ErrObjectAlreadyExist.
	Add(ctx context.Context, aggregate *parcel.Parcel) error

	// Update persists the new state of a parcel and bumps its version.
	Update(ctx context.Context, aggregate *parcel.Parcel) error

	// Delete removes a parcel that is still at the version that was read.
	Delete(ctx context.Context, aggregate *parcel.Parcel) error

	// Get retrieves a parcel by id or fails with errs.ErrObjectNotFound.
	Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error)

	// GetByTrackingID retrieves a parcel by tracking id or fails with errs.ErrObjectNotFound.
	GetByTrackingID(ctx context.Context, trackingID parcel.TrackingID) (*parcel.Parcel, error)

	// GetFirstInProcessing returns the oldest parcel still waiting for a rider,
	// skipping rows locked by concurrent dispatchers.
	GetFirstInProcessing(ctx context.Context) (*parcel.Parcel, error)

	// GetAllByRider returns the rider's parcels, oldest first, optionally
	// restricted to the given statuses.
	GetAllByRider(ctx context.Context, riderID kernel.UUID, statuses ...parcel.DeliveryStatus) ([]*parcel.Parcel, error)

	// CountOpenByRider counts Rider Assigned and In Transit parcels per rider.
	// Riders without open parcels are absent from the map.
	CountOpenByRider(ctx context.Context, riderIDs []kernel.UUID) (map[kernel.UUID]int, error)
}
