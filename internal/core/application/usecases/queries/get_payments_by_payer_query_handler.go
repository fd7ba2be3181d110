package queries

import (
	"context"

	"trackmate/internal/core/domain/model/payment"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetPaymentsByPayerQueryHandler reads payment receipts.
type GetPaymentsByPayerQueryHandler struct {
	db *gorm.DB
}

// NewGetPaymentsByPayerQueryHandler creates a handler for payment histories.
func NewGetPaymentsByPayerQueryHandler(db *gorm.DB) GetPaymentsByPayerQueryHandler {
	return GetPaymentsByPayerQueryHandler{db: db}
}

// Handle returns the payer's receipts, newest first.
func (h GetPaymentsByPayerQueryHandler) Handle(ctx context.Context, query GetPaymentsByPayerQuery) ([]PaymentView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, parcel_id, tracking_id, amount, method, payment_intent_id, status, paid_at
		FROM payments
		WHERE payer_email = ?
		ORDER BY paid_at DESC, id
	`, query.Email().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := make([]PaymentView, 0)
	for rows.Next() {
		var (
			v            PaymentView
			id, parcelID uuid.UUID
			method       int
		)
		if err = rows.Scan(&id, &parcelID, &v.TrackingID, &v.Amount, &method,
			&v.PaymentIntentID, &v.Status, &v.PaidAt); err != nil {
			return nil, err
		}
		v.ID = id.String()
		v.ParcelID = parcelID.String()
		v.Method = payment.Method(method).String()
		v.PaidAt = v.PaidAt.UTC()
		payments = append(payments, v)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return payments, nil
}
