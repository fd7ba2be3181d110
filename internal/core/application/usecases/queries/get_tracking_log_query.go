package queries

import (
	"errors"

	"trackmate/internal/core/domain/model/parcel"
	"trackmate/internal/pkg/guard"
)

var ErrGetTrackingLogQueryIsNotConstructed = errors.New(
	"GetTrackingLogQuery must be created via NewGetTrackingLogQuery constructor",
)

// GetTrackingLogQuery retrieves the history of one parcel.
type GetTrackingLogQuery struct {
	trackingID parcel.TrackingID

	guard guard.ConstructorGuard
}

// NewGetTrackingLogQuery creates a history query for a tracking id.
func NewGetTrackingLogQuery(trackingID parcel.TrackingID) (GetTrackingLogQuery, error) {
	if err := trackingID.Validate(); err != nil {
		return GetTrackingLogQuery{}, err
	}

	return GetTrackingLogQuery{trackingID: trackingID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetTrackingLogQuery) Validate() error {
	return q.guard.Validate(ErrGetTrackingLogQueryIsNotConstructed)
}

func (q GetTrackingLogQuery) TrackingID() parcel.TrackingID { return q.trackingID }
