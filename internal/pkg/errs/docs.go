// Package errs holds the error vocabulary shared by the domain, the use cases
// and the adapters.
//
// Every kind of failure has a sentinel (ErrObjectNotFound, ErrValueIsInvalid,
// ErrIllegalTransition, ErrStaleState, ErrForbidden and so on) plus a struct
// that carries the details and unwraps to that sentinel. Callers classify with
// errors.Is against the sentinel; the HTTP adapter maps each sentinel to a
// status code.
//
//	if errors.Is(err, errs.ErrIllegalTransition) {
//		// 409
//	}
//
// Constructors come in pairs where a cause is useful: NewXError and
// NewXErrorWithCause. Messages begin with the sentinel text so logs stay
// greppable.
package errs
