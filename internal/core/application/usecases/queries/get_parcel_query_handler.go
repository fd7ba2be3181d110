package queries

import (
	"context"

	"trackmate/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetParcelQueryHandler reads a parcel view by id.
type GetParcelQueryHandler struct {
	db *gorm.DB
}

// NewGetParcelQueryHandler creates a handler for single parcel lookups.
func NewGetParcelQueryHandler(db *gorm.DB) GetParcelQueryHandler {
	return GetParcelQueryHandler{db: db}
}

// Handle returns the parcel or an ObjectNotFoundError.
func (h GetParcelQueryHandler) Handle(ctx context.Context, query GetParcelQuery) (ParcelView, error) {
	if err := query.Validate(); err != nil {
		return ParcelView{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+parcelColumns+`
		FROM parcels p
		WHERE p.id = ?
	`, query.ParcelID().Google()).Rows()
	if err != nil {
		return ParcelView{}, err
	}
	defer rows.Close()

	parcels, err := scanParcels(rows)
	if err != nil {
		return ParcelView{}, err
	}
	if len(parcels) == 0 {
		return ParcelView{}, errs.NewObjectNotFoundError("parcelId", query.ParcelID())
	}

	return parcels[0], nil
}
