package queries

import (
	"errors"

	"trackmate/internal/core/domain/model/kernel"
	"trackmate/internal/pkg/guard"
)

var ErrGetParcelsBySenderQueryIsNotConstructed = errors.New(
	"GetParcelsBySenderQuery must be created via NewGetParcelsBySenderQuery constructor",
)

// GetParcelsBySenderQuery lists the parcels a user booked, newest first.
// This backs the "My Parcels" page.
type GetParcelsBySenderQuery struct {
	email kernel.Email

	guard guard.ConstructorGuard
}

// NewGetParcelsBySenderQuery creates a query for the parcels sent by email.
func NewGetParcelsBySenderQuery(email kernel.Email) (GetParcelsBySenderQuery, error) {
	if err := email.Validate(); err != nil {
		return GetParcelsBySenderQuery{}, err
	}

	return GetParcelsBySenderQuery{email: email, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetParcelsBySenderQuery) Validate() error {
	return q.guard.Validate(ErrGetParcelsBySenderQueryIsNotConstructed)
}

func (q GetParcelsBySenderQuery) Email() kernel.Email { return q.email }
