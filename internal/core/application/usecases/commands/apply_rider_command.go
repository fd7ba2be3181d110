package commands

import (
	"errors"
	"strings"

	"trackmate/internal/core/domain/model/kernel"
	"trackmate/internal/pkg/errs"
	"trackmate/internal/pkg/guard"
)

var ErrApplyRiderCommandIsNotConstructed = errors.New(
	"ApplyRiderCommand must be created via NewApplyRiderCommand constructor",
)

// ApplyRiderCommand represents a person applying to become a rider in a
// district. The application starts Pending.
type ApplyRiderCommand struct { //nolint:recvcheck //using for validation
	riderID  kernel.UUID
	name     string
	email    kernel.Email
	contact  string
	district string

	guard guard.ConstructorGuard
}

// NewApplyRiderCommand creates a rider application.
func NewApplyRiderCommand(
	riderID kernel.UUID,
	name string,
	email kernel.Email,
	contact, district string,
) (ApplyRiderCommand, error) {
	c := ApplyRiderCommand{
		name:    name,
		contact: contact,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setRiderID(riderID),
		c.setEmail(email),
		c.setDistrict(district),
	); err != nil {
		return ApplyRiderCommand{}, err
	}

	return c, nil
}

// Validate ensures the command was created through the constructor.
func (c ApplyRiderCommand) Validate() error {
	return c.guard.Validate(ErrApplyRiderCommandIsNotConstructed)
}

func (c ApplyRiderCommand) RiderID() kernel.UUID { return c.riderID }
func (c ApplyRiderCommand) Name() string         { return c.name }
func (c ApplyRiderCommand) Email() kernel.Email  { return c.email }
func (c ApplyRiderCommand) Contact() string      { return c.contact }
func (c ApplyRiderCommand) District() string     { return c.district }

func (c *ApplyRiderCommand) setRiderID(riderID kernel.UUID) error {
	if err := riderID.Validate(); err != nil {
		return err
	}

	c.riderID = riderID
	return nil
}

func (c *ApplyRiderCommand) setEmail(email kernel.Email) error {
	if err := email.Validate(); err != nil {
		return err
	}

	c.email = email
	return nil
}

func (c *ApplyRiderCommand) setDistrict(district string) error {
	if strings.TrimSpace(district) == "" {
		return errs.NewValueIsRequiredError("district")
	}

	c.district = district
	return nil
}
