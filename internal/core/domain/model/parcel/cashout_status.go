package parcel

import (
	"fmt"
	"strings"

	"trackmate/internal/pkg/errs"
)

// CashoutStatus tracks whether the rider's earning for a delivered parcel
// has been converted into a payout request.
type CashoutStatus int

const (
	UnknownCashoutStatus CashoutStatus = iota
	CashoutPending
	CashedOut
)

func getCashoutStatusStrings() map[CashoutStatus]string {
	//nolint:exhaustive // UnknownCashoutStatus is not a wire value
	return map[CashoutStatus]string{
		CashoutPending: "Pending",
		CashedOut:      "Cashed Out",
	}
}

func ParseCashoutStatus(s string) (CashoutStatus, error) {
	key := strings.ReplaceAll(strings.ToLower(s), " ", "")
	for status, name := range getCashoutStatusStrings() {
		if strings.ReplaceAll(strings.ToLower(name), " ", "") == key {
			return status, nil
		}
	}
	return UnknownCashoutStatus, errs.NewValueIsInvalidErrorWithCause(
		"cashoutStatus",
		fmt.Errorf("%q is not a cashout status", s),
	)
}

func (s CashoutStatus) Validate() error {
	if _, ok := getCashoutStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("cashoutStatus", fmt.Errorf("%d is not a valid cashout status", s))
	}
	return nil
}

func (s CashoutStatus) String() string {
	if str, ok := getCashoutStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}
