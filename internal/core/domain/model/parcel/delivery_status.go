package parcel

import (
	"fmt"
	"strings"

	"trackmate/internal/pkg/errs"
)

// DeliveryStatus is the position of a parcel in the delivery workflow.
//
// State transitions:
//
//	Processing ──> Rider Assigned ──> In Transit ──> Delivered
//	 (dispatch)       (rider pick-up)    (rider delivery)
//
// There are no other edges: no skipping, no regression, and Delivered is
// terminal.
type DeliveryStatus int

const (
	// UnknownDeliveryStatus catches uninitialized values.
	UnknownDeliveryStatus DeliveryStatus = iota

	// Processing is the initial status set when the parcel is booked.
	Processing

	// RiderAssigned is set by dispatch when a rider is assigned.
	RiderAssigned

	// InTransit is set when the assigned rider picks the parcel up.
	InTransit

	// Delivered is set when the assigned rider hands the parcel over.
	Delivered
)

func getDeliveryStatusStrings() map[DeliveryStatus]string {
	//nolint:exhaustive // UnknownDeliveryStatus is not a wire value
	return map[DeliveryStatus]string{
		Processing:    "Processing",
		RiderAssigned: "Rider Assigned",
		InTransit:     "In Transit",
		Delivered:     "Delivered",
	}
}

// getNextDeliveryStatus holds the only legal edges of the workflow.
func getNextDeliveryStatus() map[DeliveryStatus]DeliveryStatus {
	//nolint:exhaustive // Delivered and UnknownDeliveryStatus have no successor
	return map[DeliveryStatus]DeliveryStatus{
		Processing:    RiderAssigned,
		RiderAssigned: InTransit,
		InTransit:     Delivered,
	}
}

// AllDeliveryStatuses returns the valid statuses in workflow order.
func AllDeliveryStatuses() []DeliveryStatus {
	return []DeliveryStatus{Processing, RiderAssigned, InTransit, Delivered}
}

// ParseDeliveryStatus accepts the display names ("Rider Assigned") as well as
// compact or snake forms ("RiderAssigned", "rider_assigned"), in any case.
//
// Returns:
//   - DeliveryStatus: the parsed status
//   - error: ValueIsInvalidError when s names no status
func ParseDeliveryStatus(s string) (DeliveryStatus, error) {
	key := strings.NewReplacer(" ", "", "_", "", "-", "").Replace(strings.ToLower(s))
	for status, name := range getDeliveryStatusStrings() {
		if strings.ReplaceAll(strings.ToLower(name), " ", "") == key {
			return status, nil
		}
	}
	return UnknownDeliveryStatus, errs.NewValueIsInvalidErrorWithCause(
		"deliveryStatus",
		fmt.Errorf("%q is not a delivery status", s),
	)
}

// Validate returns an error for UnknownDeliveryStatus and out-of-range values.
func (s DeliveryStatus) Validate() error {
	if _, ok := getDeliveryStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("deliveryStatus", fmt.Errorf("%d is not a valid delivery status", s))
	}
	return nil
}

// String returns the display name, e.g. "Rider Assigned".
func (s DeliveryStatus) String() string {
	if str, ok := getDeliveryStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Next returns the single status reachable from s, if any.
func (s DeliveryStatus) Next() (DeliveryStatus, bool) {
	next, ok := getNextDeliveryStatus()[s]
	return next, ok
}

// IsTerminal reports whether no transition leaves s.
func (s DeliveryStatus) IsTerminal() bool {
	_, ok := s.Next()
	return s.Validate() == nil && !ok
}

// CanTransitionTo reports whether s → next is an edge of the workflow.
func (s DeliveryStatus) CanTransitionTo(next DeliveryStatus) bool {
	expected, ok := s.Next()
	return ok && expected == next
}

// TransitionTo validates the edge s → next.
//
// Returns:
//   - (next, nil) when the edge exists
//   - (UnknownDeliveryStatus, ValueIsInvalidError) when next is not a status
//   - (UnknownDeliveryStatus, IllegalTransitionError) for any other edge
//
// Example:
//
//	_, err := parcel.Processing.TransitionTo(parcel.InTransit)
//	errors.Is(err, errs.ErrIllegalTransition) // true
func (s DeliveryStatus) TransitionTo(next DeliveryStatus) (DeliveryStatus, error) {
	if err := next.Validate(); err != nil {
		return UnknownDeliveryStatus, err
	}
	if !s.CanTransitionTo(next) {
		return UnknownDeliveryStatus, errs.NewIllegalTransitionError("deliveryStatus", s.String(), next.String())
	}
	return next, nil
}
