package services

import (
	"fmt"
	"strings"
	"time"

	"trackmate/internal/core/domain/model/kernel"
	"trackmate/internal/core/domain/model/parcel"
	"trackmate/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Default rider shares of the parcel price.
var (
	DefaultSameZoneRate  = decimal.RequireFromString("0.8")
	DefaultCrossZoneRate = decimal.RequireFromString("0.3")
)

// Period filters deliveries by when they happened.
type Period int

const (
	Overall Period = iota
	Today
	ThisWeek
	ThisMonth
	ThisYear
)

func getPeriodStrings() map[Period]string {
	return map[Period]string{
		Overall:   "overall",
		Today:     "today",
		ThisWeek:  "week",
		ThisMonth: "month",
		ThisYear:  "year",
	}
}

// ParsePeriod accepts today, week, month, year and overall. An empty string
// is Overall.
func ParsePeriod(s string) (Period, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Overall, nil
	}
	for p, name := range getPeriodStrings() {
		if name == s {
			return p, nil
		}
	}
	return Overall, errs.NewValueIsInvalidErrorWithCause("period", fmt.Errorf("%q is not a period", s))
}

func (p Period) String() string {
	if s, ok := getPeriodStrings()[p]; ok {
		return s
	}
	return "unknown"
}

// Contains reports whether t falls in the period that contains now, in
// now's location. Weeks start on Sunday.
func (p Period) Contains(t, now time.Time) bool {
	t = t.In(now.Location())
	y, m, d := now.Date()
	var start, end time.Time

	switch p {
	case Overall:
		return true
	case Today:
		start = time.Date(y, m, d, 0, 0, 0, 0, now.Location())
		end = start.AddDate(0, 0, 1)
	case ThisWeek:
		start = time.Date(y, m, d-int(now.Weekday()), 0, 0, 0, 0, now.Location())
		end = start.AddDate(0, 0, 7)
	case ThisMonth:
		start = time.Date(y, m, 1, 0, 0, 0, 0, now.Location())
		end = start.AddDate(0, 1, 0)
	case ThisYear:
		start = time.Date(y, time.January, 1, 0, 0, 0, 0, now.Location())
		end = start.AddDate(1, 0, 0)
	default:
		return false
	}
	return !t.Before(start) && t.Before(end)
}

// EarningsSummary is the rider earnings dashboard.
type EarningsSummary struct {
	Period           Period
	Deliveries       int
	Total            kernel.Money
	CashedOut        kernel.Money
	Pending          kernel.Money
	PeriodDeliveries int
	PeriodTotal      kernel.Money
}

// EarningsPolicy projects what a rider earns on delivered parcels. The
// projection is recomputed on every read and never stored.
type EarningsPolicy struct {
	sameZoneRate  decimal.Decimal
	crossZoneRate decimal.Decimal
}

// NewEarningsPolicy validates that both shares are within [0, 1].
func NewEarningsPolicy(sameZoneRate, crossZoneRate decimal.Decimal) (EarningsPolicy, error) {
	one := decimal.NewFromInt(1)
	for name, rate := range map[string]decimal.Decimal{"sameZoneRate": sameZoneRate, "crossZoneRate": crossZoneRate} {
		if rate.IsNegative() || rate.GreaterThan(one) {
			return EarningsPolicy{}, errs.NewValueIsOutOfRangeError(name, rate.String(), 0, 1)
		}
	}
	return EarningsPolicy{sameZoneRate: sameZoneRate, crossZoneRate: crossZoneRate}, nil
}

// DefaultEarningsPolicy pays 80% of the price inside a zone and 30% across zones.
func DefaultEarningsPolicy() EarningsPolicy {
	return EarningsPolicy{sameZoneRate: DefaultSameZoneRate, crossZoneRate: DefaultCrossZoneRate}
}

func (e EarningsPolicy) SameZoneRate() decimal.Decimal  { return e.sameZoneRate }
func (e EarningsPolicy) CrossZoneRate() decimal.Decimal { return e.crossZoneRate }

// Delivery is what the earnings projection needs to know about one
// delivered parcel. Read models build it straight from storage.
type Delivery struct {
	Price       kernel.Money
	SameZone    bool
	CashedOut   bool
	DeliveredAt time.Time
}

// DeliveryOf extracts the Delivery of a Delivered parcel.
func DeliveryOf(p *parcel.Parcel) (Delivery, error) {
	if err := p.Validate(); err != nil {
		return Delivery{}, err
	}
	deliveredAt := p.DeliveredAt()
	if p.DeliveryStatus() != parcel.Delivered || deliveredAt == nil {
		return Delivery{}, errs.NewValueIsInvalidErrorWithCause(
			"deliveryStatus",
			fmt.Errorf("parcel %s earns nothing while %s", p.TrackingID(), p.DeliveryStatus()),
		)
	}
	return Delivery{
		Price:       p.Price(),
		SameZone:    p.SameZone(),
		CashedOut:   p.CashoutStatus() == parcel.CashedOut,
		DeliveredAt: *deliveredAt,
	}, nil
}

// Earning returns price × share for a Delivered parcel, rounded to the
// poisha.
//
// Example:
//
//	// price 200, sender and receiver in the same district
//	policy.Earning(p) // 160
//	// price 200, different districts
//	policy.Earning(p) // 60
func (e EarningsPolicy) Earning(p *parcel.Parcel) (kernel.Money, error) {
	d, err := DeliveryOf(p)
	if err != nil {
		return kernel.Money{}, err
	}
	return e.Share(d)
}

// Share returns the rider's part of one delivery.
func (e EarningsPolicy) Share(d Delivery) (kernel.Money, error) {
	rate := e.crossZoneRate
	if d.SameZone {
		rate = e.sameZoneRate
	}
	earning, err := d.Price.MulRate(rate)
	if err != nil {
		return kernel.Money{}, err
	}
	return kernel.NewMoney(earning.Amount().Round(2))
}

// Summarize totals a rider's deliveries. The period total is filtered on
// delivery time.
func (e EarningsPolicy) Summarize(deliveries []Delivery, period Period, now time.Time) (EarningsSummary, error) {
	s := EarningsSummary{
		Period:      period,
		Total:       kernel.ZeroMoney(),
		CashedOut:   kernel.ZeroMoney(),
		Pending:     kernel.ZeroMoney(),
		PeriodTotal: kernel.ZeroMoney(),
	}

	for _, d := range deliveries {
		earning, err := e.Share(d)
		if err != nil {
			return EarningsSummary{}, err
		}

		s.Deliveries++
		s.Total = s.Total.Add(earning)
		if d.CashedOut {
			s.CashedOut = s.CashedOut.Add(earning)
		} else {
			s.Pending = s.Pending.Add(earning)
		}

		if period.Contains(d.DeliveredAt, now) {
			s.PeriodDeliveries++
			s.PeriodTotal = s.PeriodTotal.Add(earning)
		}
	}
	return s, nil
}

// SummarizeParcels is Summarize over the Delivered parcels among parcels.
func (e EarningsPolicy) SummarizeParcels(parcels []*parcel.Parcel, period Period, now time.Time) (EarningsSummary, error) {
	deliveries := make([]Delivery, 0, len(parcels))
	for _, p := range parcels {
		if p.DeliveryStatus() != parcel.Delivered {
			continue
		}
		d, err := DeliveryOf(p)
		if err != nil {
			return EarningsSummary{}, err
		}
		deliveries = append(deliveries, d)
	}
	return e.Summarize(deliveries, period, now)
}
