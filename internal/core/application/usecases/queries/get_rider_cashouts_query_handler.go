package queries

import (
	"context"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// GetRiderCashoutsQueryHandler reads payout requests.
type GetRiderCashoutsQueryHandler struct {
	db *gorm.DB
}

// NewGetRiderCashoutsQueryHandler creates a handler for payout histories.
func NewGetRiderCashoutsQueryHandler(db *gorm.DB) GetRiderCashoutsQueryHandler {
	return GetRiderCashoutsQueryHandler{db: db}
}

// Handle returns the rider's cashouts, newest first.
func (h GetRiderCashoutsQueryHandler) Handle(ctx context.Context, query GetRiderCashoutsQuery) ([]CashoutView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, rider_id, amount, parcel_ids, requested_at
		FROM cashouts
		WHERE rider_id = ?
		ORDER BY requested_at DESC, id
	`, query.RiderID().Google()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cashouts := make([]CashoutView, 0)
	for rows.Next() {
		var (
			v           CashoutView
			id, riderID uuid.UUID
			parcelIDs   pq.StringArray
		)
		if err = rows.Scan(&id, &riderID, &v.Amount, &parcelIDs, &v.RequestedAt); err != nil {
			return nil, err
		}
		v.ID = id.String()
		v.RiderID = riderID.String()
		v.ParcelIDs = []string(parcelIDs)
		v.RequestedAt = v.RequestedAt.UTC()
		cashouts = append(cashouts, v)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return cashouts, nil
}
