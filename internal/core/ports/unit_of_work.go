package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Every repository it hands
// out works inside the transaction started by Begin.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	ParcelRepository() ParcelRepository
	RiderRepository() RiderRepository
	TrackingLogRepository() TrackingLogRepository
	CashoutRepository() CashoutRepository
	PaymentRepository() PaymentRepository
	OutboxRepository() OutboxRepository
}
