package queries

import (
	"context"

	"trackmate/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetTrackingLogQueryHandler reads the tracking log of a parcel.
type GetTrackingLogQueryHandler struct {
	db *gorm.DB
}

// NewGetTrackingLogQueryHandler creates a handler for parcel histories.
func NewGetTrackingLogQueryHandler(db *gorm.DB) GetTrackingLogQueryHandler {
	return GetTrackingLogQueryHandler{db: db}
}

// Handle returns the entries oldest first; entries recorded at the same
// instant keep their insertion order. Every booked parcel has at least its
// creation entry, so an empty log means the tracking id is unknown.
func (h GetTrackingLogQueryHandler) Handle(ctx context.Context, query GetTrackingLogQuery) ([]TrackingLogView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+trackingLogColumns+`
		FROM tracking_logs t
		WHERE t.tracking_id = ?
		ORDER BY t.recorded_at, t.seq
	`, query.TrackingID().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries, err := scanTrackingLogs(rows)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, errs.NewObjectNotFoundError("trackingId", query.TrackingID())
	}

	return entries, nil
}
