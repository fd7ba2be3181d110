package parcel

import (
	"errors"
	"strings"

	"trackmate/internal/core/domain/model/kernel"
	"trackmate/internal/pkg/errs"
	"trackmate/internal/pkg/guard"
)

// ErrPartyIsNotConstructed is returned for a zero Party.
var ErrPartyIsNotConstructed = errs.NewValueIsRequiredError("party must be created via NewParty")

// Party is the sender or the receiver of a parcel. The email is optional for
// receivers; a sender's email identifies the owner of the parcel.
type Party struct { //nolint:recvcheck // setters use pointer receivers
	name    string
	email   kernel.Email
	contact string
	address string
	zone    kernel.Zone
	guard   guard.ConstructorGuard
}

// NewParty validates and builds a Party. Pass a zero kernel.Email when the
// party has no address on file.
func NewParty(name string, email kernel.Email, contact, address string, zone kernel.Zone) (Party, error) {
	p := Party{email: email, guard: guard.NewConstructorGuard()}
	if err := errors.Join(
		p.setName(name),
		p.setContact(contact),
		p.setAddress(address),
		p.setZone(zone),
	); err != nil {
		return Party{}, err
	}
	return p, nil
}

func (p Party) Validate() error {
	return p.guard.Validate(ErrPartyIsNotConstructed)
}

func (p Party) Name() string        { return p.name }
func (p Party) Email() kernel.Email { return p.email }
func (p Party) Contact() string     { return p.contact }
func (p Party) Address() string     { return p.address }
func (p Party) Zone() kernel.Zone   { return p.zone }

func (p *Party) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	p.name = name
	return nil
}

func (p *Party) setContact(contact string) error {
	contact = strings.TrimSpace(contact)
	if contact == "" {
		return errs.NewValueIsRequiredError("contact")
	}
	p.contact = contact
	return nil
}

func (p *Party) setAddress(address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return errs.NewValueIsRequiredError("address")
	}
	p.address = address
	return nil
}

func (p *Party) setZone(zone kernel.Zone) error {
	if err := zone.Validate(); err != nil {
		return err
	}
	p.zone = zone
	return nil
}
