package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetUserTrackingLogQueryHandler reads the tracking log across a sender's parcels.
type GetUserTrackingLogQueryHandler struct {
	db *gorm.DB
}

// NewGetUserTrackingLogQueryHandler creates a handler for sender histories.
func NewGetUserTrackingLogQueryHandler(db *gorm.DB) GetUserTrackingLogQueryHandler {
	return GetUserTrackingLogQueryHandler{db: db}
}

// Handle returns the entries oldest first. A sender without parcels gets an
// empty list.
func (h GetUserTrackingLogQueryHandler) Handle(ctx context.Context, query GetUserTrackingLogQuery) ([]TrackingLogView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+trackingLogColumns+`
		FROM tracking_logs t
		JOIN parcels p ON p.tracking_id = t.tracking_id
		WHERE p.sender_email = ?
		ORDER BY t.recorded_at, t.seq
	`, query.Email().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTrackingLogs(rows)
}
