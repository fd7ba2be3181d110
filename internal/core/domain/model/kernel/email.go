package kernel

import (
	"fmt"
	"regexp"
	"strings"

	"trackmate/internal/pkg/errs"
	"trackmate/internal/pkg/guard"
)

// ErrEmailIsNotConstructed is returned when an Email was not created via NewEmail.
var ErrEmailIsNotConstructed = errs.NewValueIsRequiredError("email must be created via NewEmail")

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// Email identifies senders, riders and acting users. It is stored lower case.
type Email struct {
	value string
	guard guard.ConstructorGuard
}

// NewEmail trims and lower-cases s and checks it looks like an address.
func NewEmail(s string) (Email, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Email{}, errs.NewValueIsRequiredError("email")
	}
	if !emailPattern.MatchString(s) {
		return Email{}, errs.NewValueIsInvalidErrorWithCause("email", fmt.Errorf("%q is not an email address", s))
	}
	return Email{value: s, guard: guard.NewConstructorGuard()}, nil
}

// Validate returns ErrEmailIsNotConstructed for the zero value.
func (e Email) Validate() error {
	return e.guard.Validate(ErrEmailIsNotConstructed)
}

// IsZero reports whether the value is the zero Email. Optional emails use it.
func (e Email) IsZero() bool {
	return e.Validate() != nil
}

func (e Email) IsEqual(other Email) bool {
	return e.value == other.value
}

func (e Email) String() string {
	return e.value
}
