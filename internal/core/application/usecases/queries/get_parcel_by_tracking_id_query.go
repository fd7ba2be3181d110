package queries

import (
	"errors"

	"trackmate/internal/core/domain/model/parcel"
	"trackmate/internal/pkg/guard"
)

var ErrGetParcelByTrackingIDQueryIsNotConstructed = errors.New(
	"GetParcelByTrackingIDQuery must be created via NewGetParcelByTrackingIDQuery constructor",
)

// GetParcelByTrackingIDQuery is the public tracking lookup.
type GetParcelByTrackingIDQuery struct {
	trackingID parcel.TrackingID

	guard guard.ConstructorGuard
}

// NewGetParcelByTrackingIDQuery creates a lookup by tracking id.
func NewGetParcelByTrackingIDQuery(trackingID parcel.TrackingID) (GetParcelByTrackingIDQuery, error) {
	if err := trackingID.Validate(); err != nil {
		return GetParcelByTrackingIDQuery{}, err
	}

	return GetParcelByTrackingIDQuery{trackingID: trackingID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetParcelByTrackingIDQuery) Validate() error {
	return q.guard.Validate(ErrGetParcelByTrackingIDQueryIsNotConstructed)
}

func (q GetParcelByTrackingIDQuery) TrackingID() parcel.TrackingID { return q.trackingID }
