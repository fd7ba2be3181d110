package queries

import (
	"errors"
	"time"

	"trackmate/internal/core/domain/model/kernel"
	"trackmate/internal/core/domain/services"
	"trackmate/internal/pkg/errs"
	"trackmate/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetRiderEarningsQueryIsNotConstructed = errors.New(
	"GetRiderEarningsQuery must be created via NewGetRiderEarningsQuery constructor",
)

// GetRiderEarningsQuery summarizes what a rider earned. The period is taken
// relative to at, in at's location.
//
// Example:
//
//	query, err := NewGetRiderEarningsQuery(riderID, services.ThisMonth, time.Now())
type GetRiderEarningsQuery struct {
	riderID kernel.UUID
	period  services.Period
	at      time.Time

	guard guard.ConstructorGuard
}

// NewGetRiderEarningsQuery creates an earnings summary query.
func NewGetRiderEarningsQuery(riderID kernel.UUID, period services.Period, at time.Time) (GetRiderEarningsQuery, error) {
	if err := riderID.Validate(); err != nil {
		return GetRiderEarningsQuery{}, err
	}
	if at.IsZero() {
		return GetRiderEarningsQuery{}, errs.NewValueIsRequiredError("at")
	}

	return GetRiderEarningsQuery{
		riderID: riderID,
		period:  period,
		at:      at,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetRiderEarningsQuery) Validate() error {
	return q.guard.Validate(ErrGetRiderEarningsQueryIsNotConstructed)
}

func (q GetRiderEarningsQuery) RiderID() kernel.UUID    { return q.riderID }
func (q GetRiderEarningsQuery) Period() services.Period { return q.period }
func (q GetRiderEarningsQuery) At() time.Time           { return q.at }

// EarningsView is the rider earnings dashboard. Amounts are in BDT.
type EarningsView struct {
	RiderID          string          `json:"riderId"`
	Period           string          `json:"period"`
	Deliveries       int             `json:"deliveries"`
	Total            decimal.Decimal `json:"total"`
	CashedOut        decimal.Decimal `json:"cashedOut"`
	Pending          decimal.Decimal `json:"pending"`
	PeriodDeliveries int             `json:"periodDeliveries"`
	PeriodTotal      decimal.Decimal `json:"periodTotal"`
}
