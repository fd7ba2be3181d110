package paymentrepo

import (
	"context"

	"trackmate/internal/adapters/out/postgres/pgerrs"
	"trackmate/internal/core/domain/model/kernel"
	"trackmate/internal/core/domain/model/payment"
	"trackmate/internal/pkg/errs"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// GormPaymentRepository implements PaymentRepository using GORM.
type GormPaymentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormPaymentRepository(db *gorm.DB, tracker aggregateTracker) *GormPaymentRepository {
	return &GormPaymentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add stores a receipt. A second receipt for the same parcel is
// errs.ErrObjectAlreadyExist.
func (r *GormPaymentRepository) Add(ctx context.Context, aggregate *payment.Payment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if pgerrs.IsUniqueViolation(err, "idx_payments_parcel_id") {
			return errs.NewObjectAlreadyExistErrorWithCause("parcelId", aggregate.ParcelID().String(), err)
		}
		return errors.Wrap(err, "insert payment")
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}
