package queries

import (
	"database/sql"
	"time"

	"trackmate/internal/core/domain/model/parcel"
)

// TrackingLogView is one tracking log entry on the wire. Kafka
// status-changed events carry the same fields.
type TrackingLogView struct {
	TrackingID     string    `json:"trackingId"`
	DeliveryStatus string    `json:"deliveryStatus"`
	Details        string    `json:"details"`
	UpdatedBy      string    `json:"updatedBy"`
	CreatedAt      time.Time `json:"createdAt"`
}

const trackingLogColumns = `t.tracking_id, t.status, t.details, t.actor, t.recorded_at`

func scanTrackingLogs(rows *sql.Rows) ([]TrackingLogView, error) {
	entries := make([]TrackingLogView, 0)
	for rows.Next() {
		var (
			v      TrackingLogView
			status int
		)
		if err := rows.Scan(&v.TrackingID, &status, &v.Details, &v.UpdatedBy, &v.CreatedAt); err != nil {
			return nil, err
		}
		v.DeliveryStatus = parcel.DeliveryStatus(status).String()
		v.CreatedAt = v.CreatedAt.UTC()
		entries = append(entries, v)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
