package cashoutrepo

import (
	"context"

	"trackmate/internal/core/domain/model/cashout"
	"trackmate/internal/core/domain/model/kernel"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// GormCashoutRepository implements CashoutRepository using GORM.
type GormCashoutRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormCashoutRepository(db *gorm.DB, tracker aggregateTracker) *GormCashoutRepository {
	return &GormCashoutRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add stores a payout request.
func (r *GormCashoutRepository) Add(ctx context.Context, aggregate *cashout.Cashout) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return errors.Wrap(err, "insert cashout")
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}
