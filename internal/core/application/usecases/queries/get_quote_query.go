package queries

import (
	"errors"
	"strings"

	"trackmate/internal/core/domain/model/parcel"
	"trackmate/internal/pkg/errs"
	"trackmate/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetQuoteQueryIsNotConstructed = errors.New(
	"GetQuoteQuery must be created via NewGetQuoteQuery constructor",
)

// GetQuoteQuery prices a parcel before it is booked, so the sender can see
// the breakdown on the confirmation step.
type GetQuoteQuery struct {
	parcelType       parcel.Type
	weightKg         decimal.Decimal
	senderDistrict   string
	receiverDistrict string

	guard guard.ConstructorGuard
}

// NewGetQuoteQuery creates a price quote request. The weight is checked by
// the pricing engine.
func NewGetQuoteQuery(
	parcelType parcel.Type,
	weightKg decimal.Decimal,
	senderDistrict, receiverDistrict string,
) (GetQuoteQuery, error) {
	var errList []error
	if err := parcelType.Validate(); err != nil {
		errList = append(errList, err)
	}
	if strings.TrimSpace(senderDistrict) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("senderDistrict"))
	}
	if strings.TrimSpace(receiverDistrict) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("receiverDistrict"))
	}
	if err := errors.Join(errList...); err != nil {
		return GetQuoteQuery{}, err
	}

	return GetQuoteQuery{
		parcelType:       parcelType,
		weightKg:         weightKg,
		senderDistrict:   senderDistrict,
		receiverDistrict: receiverDistrict,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetQuoteQuery) Validate() error {
	return q.guard.Validate(ErrGetQuoteQueryIsNotConstructed)
}

func (q GetQuoteQuery) ParcelType() parcel.Type   { return q.parcelType }
func (q GetQuoteQuery) WeightKg() decimal.Decimal { return q.weightKg }
func (q GetQuoteQuery) SenderDistrict() string    { return q.senderDistrict }
func (q GetQuoteQuery) ReceiverDistrict() string  { return q.receiverDistrict }

// QuoteLineView is one line of the breakdown. Text is the line as shown to
// the sender, e.g. "Extra: 2kg × 40 = 80".
type QuoteLineView struct {
	Label  string          `json:"label"`
	Detail string          `json:"detail,omitempty"`
	Amount decimal.Decimal `json:"amount"`
	Text   string          `json:"text"`
}

// QuoteView is the priced breakdown.
type QuoteView struct {
	ParcelType string          `json:"parcelType"`
	WeightKg   decimal.Decimal `json:"weightKg"`
	SameZone   bool            `json:"sameZone"`
	Lines      []QuoteLineView `json:"lines"`
	Total      decimal.Decimal `json:"total"`
}
