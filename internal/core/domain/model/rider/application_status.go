package rider

import (
	"fmt"
	"strings"

	"trackmate/internal/pkg/errs"
)

// ApplicationStatus is the review state of a rider application.
type ApplicationStatus int

const (
	UnknownStatus ApplicationStatus = iota
	// Pending is set when a user applies to become a rider.
	Pending
	// Active riders may be assigned parcels.
	Active
	// Rejected applications are final.
	Rejected
	// Inactive riders were active once and were deactivated by an admin.
	Inactive
)

func getStatusStrings() map[ApplicationStatus]string {
	//nolint:exhaustive // UnknownStatus is not a wire value
	return map[ApplicationStatus]string{
		Pending:  "Pending",
		Active:   "Active",
		Rejected: "Rejected",
		Inactive: "Inactive",
	}
}

// getTransitions lists the review decisions allowed from each status.
func getTransitions() map[ApplicationStatus][]ApplicationStatus {
	//nolint:exhaustive // Rejected and Inactive are final
	return map[ApplicationStatus][]ApplicationStatus{
		Pending: {Active, Rejected},
		Active:  {Inactive},
	}
}

func ParseApplicationStatus(s string) (ApplicationStatus, error) {
	for status, name := range getStatusStrings() {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return status, nil
		}
	}
	return UnknownStatus, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a rider status", s))
}

func (s ApplicationStatus) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid rider status", s))
	}
	return nil
}

func (s ApplicationStatus) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// TransitionTo returns next when the review decision is allowed from s and
// an IllegalTransitionError otherwise.
func (s ApplicationStatus) TransitionTo(next ApplicationStatus) (ApplicationStatus, error) {
	if err := next.Validate(); err != nil {
		return UnknownStatus, err
	}
	for _, allowed := range getTransitions()[s] {
		if allowed == next {
			return next, nil
		}
	}
	return UnknownStatus, errs.NewIllegalTransitionError("riderStatus", s.String(), next.String())
}
