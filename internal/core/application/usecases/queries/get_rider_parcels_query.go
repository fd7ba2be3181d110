package queries

import (
	"errors"

	"trackmate/internal/core/domain/model/kernel"
	"trackmate/internal/core/domain/model/parcel"
	"trackmate/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetRiderParcelsQueryIsNotConstructed = errors.New(
	"GetRiderParcelsQuery must be created via NewGetRiderParcelsQuery constructor",
)

// GetRiderParcelsQuery lists the parcels assigned to a rider. With no
// statuses every parcel of the rider is returned.
//
// Example:
//
//	// the rider's "Pending Deliveries" page
//	query, err := NewGetRiderParcelsQuery(riderID, parcel.RiderAssigned, parcel.InTransit)
type GetRiderParcelsQuery struct {
	riderID  kernel.UUID
	statuses []parcel.DeliveryStatus

	guard guard.ConstructorGuard
}

// NewGetRiderParcelsQuery creates a query for a rider's parcels.
func NewGetRiderParcelsQuery(riderID kernel.UUID, statuses ...parcel.DeliveryStatus) (GetRiderParcelsQuery, error) {
	if err := riderID.Validate(); err != nil {
		return GetRiderParcelsQuery{}, err
	}

	for _, s := range statuses {
		if err := s.Validate(); err != nil {
			return GetRiderParcelsQuery{}, err
		}
	}

	return GetRiderParcelsQuery{
		riderID:  riderID,
		statuses: append([]parcel.DeliveryStatus(nil), statuses...),
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetRiderParcelsQuery) Validate() error {
	return q.guard.Validate(ErrGetRiderParcelsQueryIsNotConstructed)
}

func (q GetRiderParcelsQuery) RiderID() kernel.UUID { return q.riderID }

func (q GetRiderParcelsQuery) Statuses() []parcel.DeliveryStatus {
	return append([]parcel.DeliveryStatus(nil), q.statuses...)
}

// RiderParcelView is a parcel as its rider sees it. Earning is only set
// once the parcel is Delivered.
type RiderParcelView struct {
	ParcelView
	Earning *decimal.Decimal `json:"earning,omitempty"`
}
