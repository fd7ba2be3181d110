package queries

import (
	"errors"
	"strings"
	"time"

	"trackmate/internal/core/domain/model/rider"
	"trackmate/internal/pkg/guard"
)

var ErrGetRidersQueryIsNotConstructed = errors.New(
	"GetRidersQuery must be created via NewGetRidersQuery constructor",
)

// GetRidersQuery lists riders, optionally only those in one application
// status ("Pending Riders", "Active Riders") and matching a search term.
type GetRidersQuery struct {
	status *rider.ApplicationStatus
	search string

	guard guard.ConstructorGuard
}

// NewGetRidersQuery creates a rider listing. A nil status lists everyone.
// search matches name, email or district case-insensitively; empty matches all.
func NewGetRidersQuery(status *rider.ApplicationStatus, search string) (GetRidersQuery, error) {
	q := GetRidersQuery{
		search: strings.TrimSpace(search),
		guard:  guard.NewConstructorGuard(),
	}
	if status != nil {
		if err := status.Validate(); err != nil {
			return GetRidersQuery{}, err
		}
		s := *status
		q.status = &s
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetRidersQuery) Validate() error {
	return q.guard.Validate(ErrGetRidersQueryIsNotConstructed)
}

func (q GetRidersQuery) Status() *rider.ApplicationStatus { return q.status }

func (q GetRidersQuery) Search() string { return q.search }

// RiderView is the read model of a rider application.
type RiderView struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Contact         string    `json:"contact"`
	Region          string    `json:"region"`
	District        string    `json:"district"`
	Status          string    `json:"status"`
	AppliedAt       time.Time `json:"appliedAt"`
	StatusUpdatedAt time.Time `json:"statusUpdatedAt"`
}
