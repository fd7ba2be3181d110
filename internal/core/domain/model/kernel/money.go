package kernel

import (
	"fmt"

	"trackmate/internal/pkg/errs"
	"trackmate/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// Currency of every amount handled by the service.
const Currency = "BDT"

// ErrMoneyIsNotConstructed is returned when a Money was not created via its constructors.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError("money must be created via NewMoney or MoneyFromInt")

// Money is a non-negative amount in BDT. Arithmetic is decimal, so
// 2.5kg × 40 is exactly 100.
type Money struct {
	amount decimal.Decimal
	guard  guard.ConstructorGuard
}

// NewMoney validates that amount is not negative.
//
// Returns:
//   - Money: the amount
//   - error: ValueIsOutOfRangeError when amount < 0
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsOutOfRangeError("amount", amount.String(), 0, "∞")
	}
	return Money{amount: amount, guard: guard.NewConstructorGuard()}, nil
}

// MoneyFromInt builds a whole-taka amount. It panics on negative input, so it
// is meant for constants.
func MoneyFromInt(amount int64) Money {
	m, err := NewMoney(decimal.NewFromInt(amount))
	if err != nil {
		panic(err)
	}
	return m
}

// ZeroMoney is the neutral element for Add.
func ZeroMoney() Money {
	return MoneyFromInt(0)
}

// Validate returns ErrMoneyIsNotConstructed for the zero value.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount), guard: guard.NewConstructorGuard()}
}

// MulRate returns m × rate, where rate is a share in [0, 1].
func (m Money) MulRate(rate decimal.Decimal) (Money, error) {
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return Money{}, errs.NewValueIsOutOfRangeError("rate", rate.String(), 0, 1)
	}
	return Money{amount: m.amount.Mul(rate), guard: guard.NewConstructorGuard()}, nil
}

func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// String prints the amount without trailing zeros, e.g. "190" or "112.5".
func (m Money) String() string {
	return m.amount.String()
}

// Format prints the amount with the currency, e.g. "190 BDT".
func (m Money) Format() string {
	return fmt.Sprintf("%s %s", m.amount.String(), Currency)
}
