package queries

import (
	"errors"
	"time"

	"trackmate/internal/core/domain/model/kernel"
	"trackmate/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetRiderCashoutsQueryIsNotConstructed = errors.New(
	"GetRiderCashoutsQuery must be created via NewGetRiderCashoutsQuery constructor",
)

// GetRiderCashoutsQuery lists the payout requests of a rider.
type GetRiderCashoutsQuery struct {
	riderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetRiderCashoutsQuery creates a payout history query.
func NewGetRiderCashoutsQuery(riderID kernel.UUID) (GetRiderCashoutsQuery, error) {
	if err := riderID.Validate(); err != nil {
		return GetRiderCashoutsQuery{}, err
	}

	return GetRiderCashoutsQuery{riderID: riderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetRiderCashoutsQuery) Validate() error {
	return q.guard.Validate(ErrGetRiderCashoutsQueryIsNotConstructed)
}

func (q GetRiderCashoutsQuery) RiderID() kernel.UUID { return q.riderID }

// CashoutView is one payout request.
type CashoutView struct {
	ID          string          `json:"id"`
	RiderID     string          `json:"riderId"`
	Amount      decimal.Decimal `json:"amount"`
	ParcelIDs   []string        `json:"parcelIds"`
	RequestedAt time.Time       `json:"requestedAt"`
}
