package parcelrepo

import (
	"context"

	"trackmate/internal/adapters/out/postgres/pgerrs"
	"trackmate/internal/core/domain/model/kernel"
	"trackmate/internal/core/domain/model/parcel"
	"trackmate/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormParcelRepository implements ParcelRepository using GORM.
type GormParcelRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormParcelRepository creates a new GORM parcel repository.
func NewGormParcelRepository(db *gorm.DB, tracker aggregateTracker) *GormParcelRepository {
	return &GormParcelRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a newly booked parcel.
func (r *GormParcelRepository) Add(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if pgerrs.IsUniqueViolation(err) {
			return errs.NewObjectAlreadyExistErrorWithCause("trackingId", dto.TrackingID, err)
		}
		return errors.Wrap(err, "insert parcel")
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the parcel only if nobody changed it since it was read.
func (r *GormParcelRepository) Update(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = aggregate.Version() + 1

	result := r.db.WithContext(ctx).
		Model(&ParcelDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Select("*").
		Omit("id", "tracking_id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return errors.Wrap(result.Error, "update parcel")
	}

	if result.RowsAffected == 0 {
		return errs.NewStaleStateError("parcel", aggregate.ID(), aggregate.Version())
	}

	aggregate.MarkPersisted()
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Delete removes the parcel if it is still at the version that was read.
func (r *GormParcelRepository) Delete(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Where("id = ? AND version = ?", aggregate.ID().Google(), aggregate.Version()).
		Delete(&ParcelDTO{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "delete parcel")
	}

	if result.RowsAffected == 0 {
		return errs.NewStaleStateError("parcel", aggregate.ID(), aggregate.Version())
	}

	return nil
}

// Get retrieves a parcel by ID.
func (r *GormParcelRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ParcelDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Google()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("parcelId", id.String())
		}
		return nil, errors.Wrap(err, "select parcel")
	}

	return toDomain(dto)
}

// GetByTrackingID retrieves a parcel by its tracking code.
func (r *GormParcelRepository) GetByTrackingID(ctx context.Context, trackingID parcel.TrackingID) (*parcel.Parcel, error) {
	if err := trackingID.Validate(); err != nil {
		return nil, err
	}

	var dto ParcelDTO
	if err := r.db.WithContext(ctx).First(&dto, "tracking_id = ?", trackingID.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("trackingId", trackingID.String())
		}
		return nil, errors.Wrap(err, "select parcel by tracking id")
	}

	return toDomain(dto)
}

// GetFirstInProcessing locks the oldest unassigned parcel. Rows locked by
// another dispatcher are skipped.
func (r *GormParcelRepository) GetFirstInProcessing(ctx context.Context) (*parcel.Parcel, error) {
	var dto ParcelDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("delivery_status = ?", int(parcel.Processing)).
		Order("created_at, id").
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("parcel", "first in processing status")
		}
		return nil, errors.Wrap(err, "select first processing parcel")
	}

	return toDomain(dto)
}

// GetAllByRider retrieves the rider's parcels, oldest first.
func (r *GormParcelRepository) GetAllByRider(
	ctx context.Context,
	riderID kernel.UUID,
	statuses ...parcel.DeliveryStatus,
) ([]*parcel.Parcel, error) {
	if err := riderID.Validate(); err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx).Where("rider_id = ?", riderID.Google())
	if len(statuses) > 0 {
		query = query.Where("delivery_status IN ?", statusOrdinals(statuses))
	}

	var dtos []ParcelDTO
	if err := query.Order("created_at, id").Find(&dtos).Error; err != nil {
		return nil, errors.Wrap(err, "select rider parcels")
	}

	parcels := make([]*parcel.Parcel, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		parcels = append(parcels, p)
	}

	return parcels, nil
}

// CountOpenByRider counts the Rider Assigned and In Transit parcels of each rider.
func (r *GormParcelRepository) CountOpenByRider(ctx context.Context, riderIDs []kernel.UUID) (map[kernel.UUID]int, error) {
	counts := make(map[kernel.UUID]int, len(riderIDs))
	if len(riderIDs) == 0 {
		return counts, nil
	}

	ids := make([]uuid.UUID, 0, len(riderIDs))
	for _, id := range riderIDs {
		ids = append(ids, id.Google())
	}

	var rows []struct {
		RiderID   uuid.UUID
		OpenCount int
	}
	err := r.db.WithContext(ctx).
		Model(&ParcelDTO{}).
		Select("rider_id, COUNT(*) AS open_count").
		Where("rider_id IN ? AND delivery_status IN ?", ids, statusOrdinals([]parcel.DeliveryStatus{
			parcel.RiderAssigned,
			parcel.InTransit,
		})).
		Group("rider_id").
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "count open parcels")
	}

	for _, row := range rows {
		id, err := kernel.UUIDFromGoogle(row.RiderID)
		if err != nil {
			return nil, err
		}
		counts[id] = row.OpenCount
	}

	return counts, nil
}

func statusOrdinals(statuses []parcel.DeliveryStatus) []int {
	ordinals := make([]int, 0, len(statuses))
	for _, s := range statuses {
		ordinals = append(ordinals, int(s))
	}
	return ordinals
}
