package ports

import (
	"context"

	"trackmate/internal/core/domain/model/payment"
)

// PaymentRepository stores payment receipts. The history is read through
// queries.
type PaymentRepository interface {
	Add(ctx context.Context, aggregate *payment.Payment) error
}
