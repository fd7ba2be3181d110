package queries

import (
	"errors"

	"trackmate/internal/core/domain/model/kernel"
	"trackmate/internal/pkg/guard"
)

var ErrGetUserTrackingLogQueryIsNotConstructed = errors.New(
	"GetUserTrackingLogQuery must be created via NewGetUserTrackingLogQuery constructor",
)

// GetUserTrackingLogQuery retrieves the tracking entries of every parcel a
// user sent.
type GetUserTrackingLogQuery struct {
	email kernel.Email

	guard guard.ConstructorGuard
}

// NewGetUserTrackingLogQuery creates a history query for a sender.
func NewGetUserTrackingLogQuery(email kernel.Email) (GetUserTrackingLogQuery, error) {
	if err := email.Validate(); err != nil {
		return GetUserTrackingLogQuery{}, err
	}

	return GetUserTrackingLogQuery{email: email, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetUserTrackingLogQuery) Validate() error {
	return q.guard.Validate(ErrGetUserTrackingLogQueryIsNotConstructed)
}

func (q GetUserTrackingLogQuery) Email() kernel.Email { return q.email }
