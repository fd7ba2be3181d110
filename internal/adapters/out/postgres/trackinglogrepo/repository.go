package trackinglogrepo

import (
	"context"

	"trackmate/internal/core/domain/model/tracking"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// GormTrackingLogRepository implements TrackingLogRepository using GORM.
// Entries are only ever inserted.
type GormTrackingLogRepository struct {
	db *gorm.DB
}

func NewGormTrackingLogRepository(db *gorm.DB) *GormTrackingLogRepository {
	return &GormTrackingLogRepository{db: db}
}

// Append inserts a validated entry.
func (r *GormTrackingLogRepository) Append(ctx context.Context, entry tracking.LogEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entry)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return errors.Wrap(err, "append tracking log entry")
	}
	return nil
}
