package rider

import (
	"errors"
	"strings"
	"time"

	"trackmate/internal/core/domain/model/kernel"
	"trackmate/internal/pkg/errs"
	"trackmate/internal/pkg/guard"
)

var (
	// ErrNameIsRequired is returned when a rider applies without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrContactIsRequired is returned when a rider applies without a phone number.
	ErrContactIsRequired = errs.NewValueIsRequiredError("contact")
	// ErrRiderIsNotConstructed is returned when using an improperly initialized Rider.
	ErrRiderIsNotConstructed = errors.New("Rider must be created via NewRider constructor")
)

// Rider is the aggregate root of a rider application and, once approved,
// of the rider who carries parcels in a single zone.
//
// Business rules:
//   - A rider is identified by a unique email
//   - A rider works in exactly one zone
//   - Review decisions follow Pending → Active | Rejected and Active → Inactive
//
// Example usage:
//
//	zone, _ := kernel.NewZone("Dhaka", "Gazipur")
//	email, _ := kernel.NewEmail("rider@example.com")
//	r, err := rider.NewRider(kernel.NewUUID(), "Jamal", email, "01700000000", zone, time.Now())
//	if err != nil {
//	    // Handle construction error
//	}
//	err = r.Approve(time.Now())
type Rider struct { //nolint:recvcheck // setters use pointer receivers
	id              kernel.UUID
	name            string
	email           kernel.Email
	contact         string
	zone            kernel.Zone
	status          ApplicationStatus
	appliedAt       time.Time
	statusUpdatedAt time.Time
	guard           guard.ConstructorGuard
}

// NewRider registers a rider application in Pending.
//
// Parameters:
//   - id: identifier of the rider
//   - name, contact: required personal data
//   - email: the applicant's identity
//   - zone: the service zone the rider will work in
//   - appliedAt: the application instant
//
// Returns:
//   - *Rider: the pending application
//   - error: joined validation errors
func NewRider(
	id kernel.UUID,
	name string,
	email kernel.Email,
	contact string,
	zone kernel.Zone,
	appliedAt time.Time,
) (*Rider, error) {
	r := &Rider{
		status:          Pending,
		appliedAt:       appliedAt.UTC(),
		statusUpdatedAt: appliedAt.UTC(),
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(id),
		r.setName(name),
		r.setEmail(email),
		r.setContact(contact),
		r.setZone(zone),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// RestoreRider rebuilds a rider from persistent storage.
func RestoreRider(
	id kernel.UUID,
	name string,
	email kernel.Email,
	contact string,
	zone kernel.Zone,
	status ApplicationStatus,
	appliedAt time.Time,
	statusUpdatedAt time.Time,
) (*Rider, error) {
	r, err := NewRider(id, name, email, contact, zone, appliedAt)
	if err != nil {
		return nil, err
	}
	if err = status.Validate(); err != nil {
		return nil, err
	}

	r.status = status
	r.statusUpdatedAt = statusUpdatedAt
	return r, nil
}

// Validate ensures the Rider was built by NewRider or RestoreRider.
func (r *Rider) Validate() error {
	if r == nil {
		return ErrRiderIsNotConstructed
	}
	return r.guard.Validate(ErrRiderIsNotConstructed)
}

func (r *Rider) ID() kernel.UUID            { return r.id }
func (r *Rider) Name() string               { return r.name }
func (r *Rider) Email() kernel.Email        { return r.email }
func (r *Rider) Contact() string            { return r.contact }
func (r *Rider) Zone() kernel.Zone          { return r.zone }
func (r *Rider) Status() ApplicationStatus  { return r.status }
func (r *Rider) AppliedAt() time.Time       { return r.appliedAt }
func (r *Rider) StatusUpdatedAt() time.Time { return r.statusUpdatedAt }
func (r *Rider) IsActive() bool             { return r.status == Active }
func (r *Rider) IsEqual(other *Rider) bool  { return other != nil && r.id.IsEqual(other.id) }

// Review applies an admin decision to the application.
//
// Returns:
//   - nil when the decision is allowed from the current status
//   - IllegalTransitionError otherwise, leaving the rider unchanged
func (r *Rider) Review(decision ApplicationStatus, at time.Time) error {
	if err := r.Validate(); err != nil {
		return err
	}

	next, err := r.status.TransitionTo(decision)
	if err != nil {
		return err
	}

	r.status = next
	r.statusUpdatedAt = at.UTC()
	return nil
}

// Approve is Review(Active, at).
func (r *Rider) Approve(at time.Time) error {
	return r.Review(Active, at)
}

// Reject is Review(Rejected, at).
func (r *Rider) Reject(at time.Time) error {
	return r.Review(Rejected, at)
}

// Deactivate is Review(Inactive, at).
func (r *Rider) Deactivate(at time.Time) error {
	return r.Review(Inactive, at)
}

func (r *Rider) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Rider) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	r.name = name
	return nil
}

func (r *Rider) setEmail(email kernel.Email) error {
	if err := email.Validate(); err != nil {
		return err
	}
	r.email = email
	return nil
}

func (r *Rider) setContact(contact string) error {
	contact = strings.TrimSpace(contact)
	if contact == "" {
		return ErrContactIsRequired
	}
	r.contact = contact
	return nil
}

func (r *Rider) setZone(zone kernel.Zone) error {
	if err := zone.Validate(); err != nil {
		return err
	}
	r.zone = zone
	return nil
}
