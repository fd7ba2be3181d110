package commands

import (
	"errors"

	"trackmate/internal/pkg/errs"
	"trackmate/internal/pkg/guard"
)

// DefaultRelayBatchSize is the number of outbox messages relayed per run
// when the caller does not choose one.
const DefaultRelayBatchSize = 100

var ErrRelayOutboxCommandIsNotConstructed = errors.New(
	"RelayOutboxCommand must be created via NewRelayOutboxCommand constructor",
)

// RelayOutboxCommand triggers publishing of queued integration events.
type RelayOutboxCommand struct { //nolint:recvcheck //using for validation
	batchSize int

	guard guard.ConstructorGuard
}

// NewRelayOutboxCommand creates a relay run over at most batchSize messages.
func NewRelayOutboxCommand(batchSize int) (RelayOutboxCommand, error) {
	if batchSize <= 0 {
		return RelayOutboxCommand{}, errs.NewValueIsOutOfRangeError("batchSize", batchSize, 1, "unbounded")
	}

	return RelayOutboxCommand{
		batchSize: batchSize,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RelayOutboxCommand) Validate() error {
	return c.guard.Validate(ErrRelayOutboxCommandIsNotConstructed)
}

// BatchSize returns the maximum number of messages per run.
func (c RelayOutboxCommand) BatchSize() int {
	return c.batchSize
}
