// Package riderrepo maps rider aggregates to the riders table.
package riderrepo

import (
	"time"

	"trackmate/internal/core/domain/model/kernel"
	"trackmate/internal/core/domain/model/rider"

	"github.com/google/uuid"
)

// RiderDTO represents the database structure for persisting rider aggregates.
type RiderDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name            string    `gorm:"type:varchar(255);not null"`
	Email           string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_riders_email"`
	Contact         string    `gorm:"type:varchar(64);not null"`
	Region          string    `gorm:"type:varchar(128);not null"`
	District        string    `gorm:"type:varchar(128);not null"`
	DistrictKey     string    `gorm:"type:varchar(128);not null;index"`
	Status          int       `gorm:"type:smallint;not null;index"`
	AppliedAt       time.Time `gorm:"not null"`
	StatusUpdatedAt time.Time `gorm:"not null"`
}

// TableName specifies the database table name for rider entities.
func (RiderDTO) TableName() string {
	return "riders"
}

func fromDomain(r *rider.Rider) RiderDTO {
	return RiderDTO{
		ID:              r.ID().Google(),
		Name:            r.Name(),
		Email:           r.Email().String(),
		Contact:         r.Contact(),
		Region:          r.Zone().Region(),
		District:        r.Zone().District(),
		DistrictKey:     r.Zone().Key(),
		Status:          int(r.Status()),
		AppliedAt:       r.AppliedAt(),
		StatusUpdatedAt: r.StatusUpdatedAt(),
	}
}

func toDomain(dto RiderDTO) (*rider.Rider, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}

	email, err := kernel.NewEmail(dto.Email)
	if err != nil {
		return nil, err
	}

	zone, err := kernel.NewZone(dto.Region, dto.District)
	if err != nil {
		return nil, err
	}

	return rider.RestoreRider(
		id,
		dto.Name,
		email,
		dto.Contact,
		zone,
		rider.ApplicationStatus(dto.Status),
		dto.AppliedAt.UTC(),
		dto.StatusUpdatedAt.UTC(),
	)
}
