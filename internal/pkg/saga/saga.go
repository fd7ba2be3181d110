// Package saga keeps a stack of compensating actions for a multi-step
// operation: every tentative step registers its undo, and when a later step
// fails the undos run in reverse order.
package saga

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// CompensationFunc undoes one step. It must be safe to run after the step
// only partly happened.
type CompensationFunc func(ctx context.Context) error

type step struct {
	name string
	fn   CompensationFunc
}

// Saga is not safe for concurrent use; each operation owns its own.
type Saga struct {
	name   string
	steps  []step
	logger *slog.Logger
}

// New creates an empty saga. A nil logger discards output.
func New(name string, logger *slog.Logger) *Saga {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Saga{name: name, logger: logger.With("saga", name)}
}

// Add registers the undo of a step that has just been applied.
func (s *Saga) Add(name string, fn CompensationFunc) {
	if fn == nil {
		s.logger.Warn("saga.add: nil compensation ignored", "step", name)
		return
	}
	s.steps = append(s.steps, step{name: name, fn: fn})
}

// Len returns the number of pending compensations.
func (s *Saga) Len() int {
	return len(s.steps)
}

// Compensate runs all registered undos, last first. Every undo runs even if
// an earlier one failed; the failures are joined. The saga is empty afterwards.
func (s *Saga) Compensate(ctx context.Context) error {
	var errList []error
	for i := len(s.steps) - 1; i >= 0; i-- {
		st := s.steps[i]
		if err := st.fn(ctx); err != nil {
			s.logger.ErrorContext(ctx, "compensation failed", "step", st.name, "error", err)
			errList = append(errList, fmt.Errorf("compensate %s: %w", st.name, err))
			continue
		}
		s.logger.DebugContext(ctx, "compensated", "step", st.name)
	}
	s.steps = nil
	return errors.Join(errList...)
}

// Clear forgets all compensations once the operation has committed.
func (s *Saga) Clear() {
	s.steps = nil
}
