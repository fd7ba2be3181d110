package queries

import (
	"context"

	"trackmate/internal/core/domain/services"
	"trackmate/internal/core/ports"
)

// GetQuoteQueryHandler prices a parcel with the same engine the booking
// uses, so the quote always matches the stored price.
type GetQuoteQueryHandler struct {
	zones   ports.ZoneDirectory
	pricing services.PricingEngine
}

// NewGetQuoteQueryHandler creates the quote handler.
func NewGetQuoteQueryHandler(zones ports.ZoneDirectory, pricing services.PricingEngine) GetQuoteQueryHandler {
	return GetQuoteQueryHandler{zones: zones, pricing: pricing}
}

// Handle resolves both districts against the zone catalog and prices the
// parcel. An unserved district is a ValueIsInvalidError.
func (h GetQuoteQueryHandler) Handle(_ context.Context, query GetQuoteQuery) (QuoteView, error) {
	if err := query.Validate(); err != nil {
		return QuoteView{}, err
	}

	from, err := h.zones.Resolve(query.SenderDistrict())
	if err != nil {
		return QuoteView{}, err
	}
	to, err := h.zones.Resolve(query.ReceiverDistrict())
	if err != nil {
		return QuoteView{}, err
	}

	sameZone := from.IsSameArea(to)
	quote, err := h.pricing.Quote(query.ParcelType(), query.WeightKg(), sameZone)
	if err != nil {
		return QuoteView{}, err
	}

	lines := make([]QuoteLineView, 0, len(quote.Lines))
	for _, l := range quote.Lines {
		lines = append(lines, QuoteLineView{
			Label:  l.Label,
			Detail: l.Detail,
			Amount: l.Amount.Amount(),
			Text:   l.String(),
		})
	}

	return QuoteView{
		ParcelType: query.ParcelType().String(),
		WeightKg:   query.WeightKg(),
		SameZone:   sameZone,
		Lines:      lines,
		Total:      quote.Total.Amount(),
	}, nil
}
