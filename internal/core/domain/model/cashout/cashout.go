// Package cashout contains the payout request a rider raises for the
// earnings of delivered parcels.
package cashout

import (
	"errors"
	"time"

	"trackmate/internal/core/domain/model/kernel"
	"trackmate/internal/pkg/errs"
)

// ErrCashoutIsNotConstructed is returned for a zero Cashout.
var ErrCashoutIsNotConstructed = errors.New("Cashout must be created via NewCashout constructor")

// Cashout converts the pending earnings of a set of delivered parcels into
// one payout request. A parcel belongs to at most one cashout.
type Cashout struct {
	id            kernel.UUID
	riderID       kernel.UUID
	amount        kernel.Money
	parcelIDs     []kernel.UUID
	requestedAt   time.Time
	isConstructed bool
}

// NewCashout validates and builds a payout request.
//
// Returns:
//   - *Cashout: the request
//   - error: joined validation errors; an empty parcel list is ValueIsRequired
func NewCashout(
	id kernel.UUID,
	riderID kernel.UUID,
	amount kernel.Money,
	parcelIDs []kernel.UUID,
	requestedAt time.Time,
) (*Cashout, error) {
	errList := []error{id.Validate(), riderID.Validate(), amount.Validate()}
	if len(parcelIDs) == 0 {
		errList = append(errList, errs.NewValueIsRequiredError("parcelIds"))
	}
	for _, parcelID := range parcelIDs {
		errList = append(errList, parcelID.Validate())
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	return &Cashout{
		id:            id,
		riderID:       riderID,
		amount:        amount,
		parcelIDs:     append([]kernel.UUID(nil), parcelIDs...),
		requestedAt:   requestedAt.UTC(),
		isConstructed: true,
	}, nil
}

func (c *Cashout) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCashoutIsNotConstructed
	}
	return nil
}

func (c *Cashout) ID() kernel.UUID        { return c.id }
func (c *Cashout) RiderID() kernel.UUID   { return c.riderID }
func (c *Cashout) Amount() kernel.Money   { return c.amount }
func (c *Cashout) RequestedAt() time.Time { return c.requestedAt }

// ParcelIDs returns a copy of the parcels covered by the request.
func (c *Cashout) ParcelIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), c.parcelIDs...)
}
