package ports

import (
	"context"

	"trackmate/internal/core/domain/model/kernel"
	"trackmate/internal/core/domain/model/rider"
)

// RiderRepository defines the persistence contract for rider aggregates.
type RiderRepository interface {
	// Add persists a new application. A taken email fails with errs.ErrObjectAlreadyExist.
	Add(ctx context.Context, aggregate *rider.Rider) error

	// Update persists a review decision.
	Update(ctx context.Context, aggregate *rider.Rider) error

	// Get retrieves a rider by id or fails with errs.ErrObjectNotFound.
	Get(ctx context.Context, id kernel.UUID) (*rider.Rider, error)

	// GetByEmail retrieves a rider by email or fails with errs.ErrObjectNotFound.
	GetByEmail(ctx context.Context, email kernel.Email) (*rider.Rider, error)

	// GetAllActiveInZone returns the Active riders of a district, oldest application first.
	GetAllActiveInZone(ctx context.Context, zone kernel.Zone) ([]*rider.Rider, error)
}
