// Package outboxrepo implements the transactional outbox on the outbox_messages table.
package outboxrepo

import (
	"time"

	"trackmate/internal/core/domain/model/kernel"
	"trackmate/internal/core/ports"

	"github.com/google/uuid"
)

// OutboxDTO is a message waiting to be relayed. Seq fixes the relay order.
type OutboxDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Seq         int64      `gorm:"autoIncrement;not null;uniqueIndex"`
	Topic       string     `gorm:"type:varchar(255);not null"`
	MessageKey  string     `gorm:"type:varchar(255);not null"`
	Payload     []byte     `gorm:"type:bytea;not null"`
	CreatedAt   time.Time  `gorm:"not null"`
	PublishedAt *time.Time `gorm:"index"`
}

// TableName specifies the database table name for outbox messages.
func (OutboxDTO) TableName() string {
	return "outbox_messages"
}

func fromDomain(msg ports.OutboxMessage) OutboxDTO {
	return OutboxDTO{
		ID:         msg.ID.Google(),
		Topic:      msg.Topic,
		MessageKey: msg.Key,
		Payload:    msg.Payload,
		CreatedAt:  msg.CreatedAt.UTC(),
	}
}

func toDomain(dto OutboxDTO) (ports.OutboxMessage, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return ports.OutboxMessage{}, err
	}
	return ports.OutboxMessage{
		ID:        id,
		Topic:     dto.Topic,
		Key:       dto.MessageKey,
		Payload:   dto.Payload,
		CreatedAt: dto.CreatedAt.UTC(),
	}, nil
}
