package parcel

import (
	"fmt"
	"strings"

	"trackmate/internal/pkg/errs"
)

// PaymentStatus tracks whether the sender has paid for the parcel.
type PaymentStatus int

const (
	UnknownPaymentStatus PaymentStatus = iota
	Unpaid
	Paid
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	//nolint:exhaustive // UnknownPaymentStatus is not a wire value
	return map[PaymentStatus]string{
		Unpaid: "Unpaid",
		Paid:   "Paid",
	}
}

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	for status, name := range getPaymentStatusStrings() {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return status, nil
		}
	}
	return UnknownPaymentStatus, errs.NewValueIsInvalidErrorWithCause(
		"paymentStatus",
		fmt.Errorf("%q is not a payment status", s),
	)
}

func (s PaymentStatus) Validate() error {
	if _, ok := getPaymentStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("paymentStatus", fmt.Errorf("%d is not a valid payment status", s))
	}
	return nil
}

func (s PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}
