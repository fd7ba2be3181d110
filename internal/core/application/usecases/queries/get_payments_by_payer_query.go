package queries

import (
	"errors"
	"time"

	"trackmate/internal/core/domain/model/kernel"
	"trackmate/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetPaymentsByPayerQueryIsNotConstructed = errors.New(
	"GetPaymentsByPayerQuery must be created via NewGetPaymentsByPayerQuery constructor",
)

// GetPaymentsByPayerQuery lists the payment history of a sender.
type GetPaymentsByPayerQuery struct {
	email kernel.Email

	guard guard.ConstructorGuard
}

// NewGetPaymentsByPayerQuery creates a payment history query for email.
func NewGetPaymentsByPayerQuery(email kernel.Email) (GetPaymentsByPayerQuery, error) {
	if err := email.Validate(); err != nil {
		return GetPaymentsByPayerQuery{}, err
	}

	return GetPaymentsByPayerQuery{email: email, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetPaymentsByPayerQuery) Validate() error {
	return q.guard.Validate(ErrGetPaymentsByPayerQueryIsNotConstructed)
}

func (q GetPaymentsByPayerQuery) Email() kernel.Email { return q.email }

// PaymentView is one payment receipt.
type PaymentView struct {
	ID              string          `json:"id"`
	ParcelID        string          `json:"parcelId"`
	TrackingID      string          `json:"trackingId"`
	Amount          decimal.Decimal `json:"amount"`
	Method          string          `json:"method"`
	PaymentIntentID string          `json:"paymentIntentId,omitempty"`
	Status          string          `json:"status"`
	PaidAt          time.Time       `json:"paidAt"`
}
