package outboxrepo

import (
	"context"
	"time"

	"trackmate/internal/core/domain/model/kernel"
	"trackmate/internal/core/ports"
	"trackmate/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOutboxRepository implements OutboxRepository using GORM.
type GormOutboxRepository struct {
	db *gorm.DB
}

func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

// Add stores msg in the current transaction.
func (r *GormOutboxRepository) Add(ctx context.Context, msg ports.OutboxMessage) error {
	if err := msg.ID.Validate(); err != nil {
		return err
	}
	if msg.Topic == "" {
		return errs.NewValueIsRequiredError("topic")
	}

	dto := fromDomain(msg)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return errors.Wrap(err, "insert outbox message")
	}
	return nil
}

// GetUnpublished locks up to limit unpublished messages in insertion order.
// Rows already locked by another relay are skipped.
func (r *GormOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	if limit <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("limit", limit, 1, "∞")
	}

	var dtos []OutboxDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("published_at IS NULL").
		Order("seq").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, errors.Wrap(err, "select unpublished outbox messages")
	}

	messages := make([]ports.OutboxMessage, 0, len(dtos))
	for _, dto := range dtos {
		msg, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}

	return messages, nil
}

// MarkPublished stamps the messages as relayed.
func (r *GormOutboxRepository) MarkPublished(ctx context.Context, ids []kernel.UUID, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Google())
	}

	err := r.db.WithContext(ctx).
		Model(&OutboxDTO{}).
		Where("id IN ?", raw).
		Update("published_at", at.UTC()).Error
	if err != nil {
		return errors.Wrap(err, "mark outbox messages published")
	}
	return nil
}
