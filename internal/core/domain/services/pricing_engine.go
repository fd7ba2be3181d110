package services

import (
	"fmt"

	"trackmate/internal/core/domain/model/kernel"
	"trackmate/internal/core/domain/model/parcel"
	"trackmate/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Tariff in BDT.
const (
	documentSameZoneCharge     = 60
	documentOutsideZoneCharge  = 80
	nonDocumentSameZoneBase    = 110
	nonDocumentOutsideZoneBase = 150
	includedWeightKg           = 3
	extraChargePerKg           = 40
	outsideZoneSurcharge       = 40
)

// ChargeLine is one named line of a quote. Detail is only set for the
// weight line ("2kg × 40").
type ChargeLine struct {
	Label  string
	Detail string
	Amount kernel.Money
}

// String renders the line the way it is shown to senders, e.g.
// "Base (first 3kg): 110" or "Extra: 2kg × 40 = 80".
func (l ChargeLine) String() string {
	if l.Detail != "" {
		return fmt.Sprintf("%s: %s = %s", l.Label, l.Detail, l.Amount)
	}
	return fmt.Sprintf("%s: %s", l.Label, l.Amount)
}

// Quote is an ordered cost breakdown. Total is the sum of the lines.
type Quote struct {
	Lines []ChargeLine
	Total kernel.Money
}

// Texts returns the rendered lines in order.
func (q Quote) Texts() []string {
	texts := make([]string, 0, len(q.Lines))
	for _, l := range q.Lines {
		texts = append(texts, l.String())
	}
	return texts
}

// PricingEngine quotes parcels.
type PricingEngine interface {
	Quote(parcelType parcel.Type, weightKg decimal.Decimal, sameZone bool) (Quote, error)
}

var _ PricingEngine = &pricingEngine{}

type pricingEngine struct{}

// NewPricingEngine returns the tariff engine.
func NewPricingEngine() PricingEngine {
	return &pricingEngine{}
}

// Quote computes the breakdown for a parcel.
//
// Tariff:
//   - Document: 60 inside the zone, 80 outside, whatever the weight
//   - Non-Document up to 3kg: 110 inside the zone, 150 outside
//   - Non-Document over 3kg: the same base for the first 3kg, plus 40 per
//     extra kg, plus a flat 40 surcharge outside the zone
//
// Returns:
//   - Quote: the breakdown; the same input always yields the same quote
//   - error: ValueIsOutOfRangeError for a negative weight,
//     ValueIsInvalidError for an unknown parcel type
//
// Example:
//
//	q, _ := engine.Quote(parcel.NonDocument, decimal.NewFromInt(5), true)
//	q.Texts() // ["Base (first 3kg): 110", "Extra: 2kg × 40 = 80"]
//	q.Total   // 190
func (e *pricingEngine) Quote(parcelType parcel.Type, weightKg decimal.Decimal, sameZone bool) (Quote, error) {
	if weightKg.IsNegative() {
		return Quote{}, errs.NewValueIsOutOfRangeError("weightKg", weightKg.String(), 0, "∞")
	}

	switch parcelType {
	case parcel.Document:
		charge := pick(sameZone, documentSameZoneCharge, documentOutsideZoneCharge)
		return newQuote(line("Base Charge", charge)), nil

	case parcel.NonDocument:
		base := pick(sameZone, nonDocumentSameZoneBase, nonDocumentOutsideZoneBase)
		included := decimal.NewFromInt(includedWeightKg)
		if weightKg.LessThanOrEqual(included) {
			return newQuote(line("Base (up to 3kg)", base)), nil
		}

		extraKg := weightKg.Sub(included)
		extraCharge := extraKg.Mul(decimal.NewFromInt(extraChargePerKg))
		lines := []ChargeLine{
			line("Base (first 3kg)", base),
			{
				Label:  "Extra",
				Detail: fmt.Sprintf("%skg × %d", extraKg, extraChargePerKg),
				Amount: mustMoney(extraCharge),
			},
		}
		if !sameZone {
			lines = append(lines, line("Outside zone surcharge", outsideZoneSurcharge))
		}
		return newQuote(lines...), nil

	case parcel.UnknownType:
	}

	return Quote{}, errs.NewValueIsInvalidErrorWithCause(
		"parcelType",
		fmt.Errorf("%d is not a valid parcel type", parcelType),
	)
}

func newQuote(lines ...ChargeLine) Quote {
	total := kernel.ZeroMoney()
	for _, l := range lines {
		total = total.Add(l.Amount)
	}
	return Quote{Lines: lines, Total: total}
}

func line(label string, amount int64) ChargeLine {
	return ChargeLine{Label: label, Amount: kernel.MoneyFromInt(amount)}
}

func pick(sameZone bool, inside, outside int64) int64 {
	if sameZone {
		return inside
	}
	return outside
}

// mustMoney wraps amounts that are non-negative by construction.
func mustMoney(amount decimal.Decimal) kernel.Money {
	m, err := kernel.NewMoney(amount)
	if err != nil {
		panic(err)
	}
	return m
}
