package riderrepo

import (
	"context"

	"trackmate/internal/adapters/out/postgres/pgerrs"
	"trackmate/internal/core/domain/model/kernel"
	"trackmate/internal/core/domain/model/rider"
	"trackmate/internal/pkg/errs"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// GormRiderRepository implements RiderRepository using GORM.
type GormRiderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormRiderRepository creates a new GORM rider repository.
func NewGormRiderRepository(db *gorm.DB, tracker aggregateTracker) *GormRiderRepository {
	return &GormRiderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new rider application.
func (r *GormRiderRepository) Add(ctx context.Context, aggregate *rider.Rider) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if pgerrs.IsUniqueViolation(err, "idx_riders_email") {
			return errs.NewObjectAlreadyExistErrorWithCause("email", dto.Email, err)
		}
		return errors.Wrap(err, "insert rider")
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves the review state of an existing rider.
func (r *GormRiderRepository) Update(ctx context.Context, aggregate *rider.Rider) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&RiderDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"status":            dto.Status,
			"status_updated_at": dto.StatusUpdatedAt,
		})
	if result.Error != nil {
		return errors.Wrap(result.Error, "update rider")
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("riderId", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a rider by ID.
func (r *GormRiderRepository) Get(ctx context.Context, id kernel.UUID) (*rider.Rider, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RiderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Google()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("riderId", id.String())
		}
		return nil, errors.Wrap(err, "select rider")
	}

	return toDomain(dto)
}

// GetByEmail retrieves a rider by email.
func (r *GormRiderRepository) GetByEmail(ctx context.Context, email kernel.Email) (*rider.Rider, error) {
	if err := email.Validate(); err != nil {
		return nil, err
	}

	var dto RiderDTO
	if err := r.db.WithContext(ctx).First(&dto, "email = ?", email.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("email", email.String())
		}
		return nil, errors.Wrap(err, "select rider by email")
	}

	return toDomain(dto)
}

// GetAllActiveInZone returns the Active riders of the zone's district.
func (r *GormRiderRepository) GetAllActiveInZone(ctx context.Context, zone kernel.Zone) ([]*rider.Rider, error) {
	if err := zone.Validate(); err != nil {
		return nil, err
	}

	var dtos []RiderDTO
	err := r.db.WithContext(ctx).
		Where("district_key = ? AND status = ?", zone.Key(), int(rider.Active)).
		Order("applied_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, errors.Wrap(err, "select active riders")
	}

	riders := make([]*rider.Rider, 0, len(dtos))
	for _, dto := range dtos {
		rd, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		riders = append(riders, rd)
	}

	return riders, nil
}
