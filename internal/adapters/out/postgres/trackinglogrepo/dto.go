// Package trackinglogrepo appends tracking log entries to the tracking_logs table.
package trackinglogrepo

import (
	"time"

	"trackmate/internal/core/domain/model/tracking"

	"github.com/google/uuid"
)

// TrackingLogDTO is one row of the append-only tracking log. Seq is the
// insertion order and breaks ties between entries with the same timestamp.
type TrackingLogDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq        int64     `gorm:"autoIncrement;not null;uniqueIndex"`
	TrackingID string    `gorm:"type:varchar(32);not null;index"`
	Status     int       `gorm:"type:smallint;not null"`
	Details    string    `gorm:"type:text;not null"`
	Actor      string    `gorm:"type:varchar(255);not null"`
	RecordedAt time.Time `gorm:"not null"`
}

// TableName specifies the database table name for tracking log entries.
func (TrackingLogDTO) TableName() string {
	return "tracking_logs"
}

func fromDomain(e tracking.LogEntry) TrackingLogDTO {
	return TrackingLogDTO{
		ID:         e.ID().Google(),
		TrackingID: e.TrackingID().String(),
		Status:     int(e.Status()),
		Details:    e.Details(),
		Actor:      e.Actor(),
		RecordedAt: e.Timestamp(),
	}
}
