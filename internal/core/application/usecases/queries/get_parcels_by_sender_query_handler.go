package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetParcelsBySenderQueryHandler reads the parcels booked by a sender.
type GetParcelsBySenderQueryHandler struct {
	db *gorm.DB
}

// NewGetParcelsBySenderQueryHandler creates a handler for sender parcel lists.
func NewGetParcelsBySenderQueryHandler(db *gorm.DB) GetParcelsBySenderQueryHandler {
	return GetParcelsBySenderQueryHandler{db: db}
}

// Handle returns the sender's parcels, newest first. An unknown sender has
// no parcels, which is not an error.
func (h GetParcelsBySenderQueryHandler) Handle(ctx context.Context, query GetParcelsBySenderQuery) ([]ParcelView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+parcelColumns+`
		FROM parcels p
		WHERE p.sender_email = ?
		ORDER BY p.created_at DESC, p.id
	`, query.Email().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanParcels(rows)
}
