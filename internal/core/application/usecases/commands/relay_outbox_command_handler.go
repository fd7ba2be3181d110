package commands

import (
	"context"
	"errors"
	"time"

	"trackmate/internal/core/domain/model/kernel"
	"trackmate/internal/core/ports"
)

// RelayOutboxCommandHandler publishes outbox messages in creation order.
// A message is marked only after the broker accepted it; the first failed
// publish stops the run and later messages wait for the next one, so
// per-parcel ordering is kept.
type RelayOutboxCommandHandler struct {
	uowFactory OutboxUoWFactory
	publisher  ports.EventPublisher
}

// NewRelayOutboxCommandHandler creates a handler for the outbox relay.
func NewRelayOutboxCommandHandler(uowFactory OutboxUoWFactory, publisher ports.EventPublisher) RelayOutboxCommandHandler {
	return RelayOutboxCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle returns how many messages reached the broker. The count is valid
// even when err is not nil.
func (h RelayOutboxCommandHandler) Handle(ctx context.Context, cmd RelayOutboxCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outboxRepo := uow.OutboxRepository()
	messages, err := outboxRepo.GetUnpublished(ctx, cmd.BatchSize())
	if err != nil {
		return 0, err
	}
	if len(messages) == 0 {
		return 0, nil
	}

	published := make([]kernel.UUID, 0, len(messages))
	var publishErr error
	for _, msg := range messages {
		if publishErr = h.publisher.Publish(ctx, msg.Topic, msg.Key, msg.Payload); publishErr != nil {
			break
		}
		published = append(published, msg.ID)
	}
	if len(published) == 0 {
		return 0, publishErr
	}

	if err = outboxRepo.MarkPublished(ctx, published, time.Now().UTC()); err != nil {
		return 0, errors.Join(publishErr, err)
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, errors.Join(publishErr, err)
	}

	return len(published), publishErr
}
