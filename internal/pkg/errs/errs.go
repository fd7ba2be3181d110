package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrObjectNotFound     = errors.New("object not found")
	ErrValueIsInvalid     = errors.New("value is invalid")
	ErrValueIsOutOfRange  = errors.New("value is out of range")
	ErrValueIsRequired    = errors.New("value is required")
	ErrVersionIsInvalid   = errors.New("version is invalid")
	ErrIllegalTransition  = errors.New("illegal transition")
	ErrStaleState         = errors.New("stale state")
	ErrObjectAlreadyExist = errors.New("object already exists")
	ErrForbidden          = errors.New("forbidden")
)

// ObjectNotFoundError is returned when a lookup by identifier finds nothing.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{
		ParamName: paramName,
		ID:        id,
	}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{
		ParamName: paramName,
		ID:        id,
		Cause:     cause,
	}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %v)",
			ErrObjectNotFound, e.ParamName, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError is returned when a value fails a domain rule.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{
		ParamName: paramName,
		Cause:     cause,
	}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrValueIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError is returned when a value falls outside [Min, Max].
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{
		ParamName: paramName,
		Value:     value,
		Min:       minValue,
		Max:       maxValue,
	}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string,
	value, minValue, maxValue any,
	cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{
		ParamName: paramName,
		Value:     value,
		Min:       minValue,
		Max:       maxValue,
		Cause:     cause,
	}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %v is %s, min value is %v, max value is %v",
		ErrValueIsInvalid, e.Value, e.ParamName, e.Min, e.Max)
	if e.Cause != nil {
		msg = fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return sanitize(msg)
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ValueIsRequiredError is returned when a mandatory value is empty.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{
		ParamName: paramName,
		Cause:     cause,
	}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrValueIsRequired, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// VersionIsInvalidError is returned when a persisted version token does not
// match the expected one.
type VersionIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewVersionIsInvalidError(paramName string, cause error) *VersionIsInvalidError {
	return &VersionIsInvalidError{
		ParamName: paramName,
		Cause:     cause,
	}
}

// NewVersionIsInvalidErrorWithCause keeps the historical name; it builds an
// error without a cause.
func NewVersionIsInvalidErrorWithCause(paramName string) *VersionIsInvalidError {
	return &VersionIsInvalidError{ParamName: paramName}
}

func (e *VersionIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrVersionIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrVersionIsInvalid, e.ParamName)
}

func (e *VersionIsInvalidError) Unwrap() error {
	return ErrVersionIsInvalid
}

// IllegalTransitionError is returned when a state machine is asked to move
// along an edge it does not have.
type IllegalTransitionError struct {
	ParamName string
	From      string
	To        string
}

func NewIllegalTransitionError(paramName, from, to string) *IllegalTransitionError {
	return &IllegalTransitionError{
		ParamName: paramName,
		From:      from,
		To:        to,
	}
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("%s: %s cannot move from %q to %q", ErrIllegalTransition, e.ParamName, e.From, e.To)
}

func (e *IllegalTransitionError) Unwrap() error {
	return ErrIllegalTransition
}

// StaleStateError is returned when an update loses an optimistic concurrency
// race: the row was changed after it was read.
type StaleStateError struct {
	ParamName string
	ID        any
	Version   int
}

func NewStaleStateError(paramName string, id any, version int) *StaleStateError {
	return &StaleStateError{
		ParamName: paramName,
		ID:        id,
		Version:   version,
	}
}

func (e *StaleStateError) Error() string {
	return fmt.Sprintf("%s: %s %v was modified after version %d", ErrStaleState, e.ParamName, e.ID, e.Version)
}

func (e *StaleStateError) Unwrap() error {
	return ErrStaleState
}

// ObjectAlreadyExistError is returned when a unique key is taken.
type ObjectAlreadyExistError struct {
	ParamName string
	Value     any
	Cause     error
}

func NewObjectAlreadyExistError(paramName string, value any) *ObjectAlreadyExistError {
	return &ObjectAlreadyExistError{
		ParamName: paramName,
		Value:     value,
	}
}

func NewObjectAlreadyExistErrorWithCause(paramName string, value any, cause error) *ObjectAlreadyExistError {
	return &ObjectAlreadyExistError{
		ParamName: paramName,
		Value:     value,
		Cause:     cause,
	}
}

func (e *ObjectAlreadyExistError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s is %v (cause: %v)", ErrObjectAlreadyExist, e.ParamName, e.Value, e.Cause)
	}
	return fmt.Sprintf("%s: %s is %v", ErrObjectAlreadyExist, e.ParamName, e.Value)
}

func (e *ObjectAlreadyExistError) Unwrap() error {
	return ErrObjectAlreadyExist
}

// ForbiddenError is returned when the acting identity may not perform an
// operation on an object.
type ForbiddenError struct {
	Actor  string
	Action string
}

func NewForbiddenError(actor, action string) *ForbiddenError {
	return &ForbiddenError{
		Actor:  actor,
		Action: action,
	}
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("%s: %q may not %s", ErrForbidden, e.Actor, e.Action)
}

func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}

func sanitize(s string) string {
	return strings.ReplaceAll(s, "\n", " ")
}
