package ports

import (
	"context"
	"time"

	"trackmate/internal/core/domain/model/kernel"
)

// OutboxMessage is an integration event stored in the same transaction as
// the change it describes and relayed to the broker afterwards.
type OutboxMessage struct {
	ID        kernel.UUID
	Topic     string
	Key       string
	Payload   []byte
	CreatedAt time.Time
}

// OutboxRepository stores and drains the transactional outbox.
type OutboxRepository interface {
	// Add stores a message in the current transaction.
	Add(ctx context.Context, msg OutboxMessage) error

	// GetUnpublished locks and returns up to limit unpublished messages,
	// oldest first, skipping rows locked by another relay.
	GetUnpublished(ctx context.Context, limit int) ([]OutboxMessage, error)

	// MarkPublished records that the messages reached the broker.
	MarkPublished(ctx context.Context, ids []kernel.UUID, at time.Time) error
}
