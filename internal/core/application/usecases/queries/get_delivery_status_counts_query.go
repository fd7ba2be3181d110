package queries

import (
	"errors"

	"trackmate/internal/pkg/guard"
)

var ErrGetDeliveryStatusCountsQueryIsNotConstructed = errors.New(
	"GetDeliveryStatusCountsQuery must be created via NewGetDeliveryStatusCountsQuery constructor",
)

// GetDeliveryStatusCountsQuery counts parcels per delivery status for the
// admin dashboard.
type GetDeliveryStatusCountsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetDeliveryStatusCountsQuery creates the dashboard query.
func NewGetDeliveryStatusCountsQuery() GetDeliveryStatusCountsQuery {
	return GetDeliveryStatusCountsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetDeliveryStatusCountsQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryStatusCountsQueryIsNotConstructed)
}

// DeliveryStatusCount is the number of parcels in one status.
type DeliveryStatusCount struct {
	DeliveryStatus string `json:"deliveryStatus"`
	Count          int    `json:"count"`
}
