package ports

import (
	"context"

	"trackmate/internal/core/domain/model/cashout"
)

// CashoutRepository persists payout requests. Reads go through queries.
type CashoutRepository interface {
	Add(ctx context.Context, aggregate *cashout.Cashout) error
}
