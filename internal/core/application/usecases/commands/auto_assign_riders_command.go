package commands

import (
	"errors"

	"trackmate/internal/pkg/guard"
)

var ErrAutoAssignRidersCommandIsNotConstructed = errors.New(
	"AutoAssignRidersCommand must be created via NewAutoAssignRidersCommand constructor",
)

// AutoAssignRidersCommand triggers the assignment of the oldest Processing
// parcel to a rider of its pick-up zone. It is sent by a scheduled job.
//
// Example:
//
//	cmd := NewAutoAssignRidersCommand()
//	handler := NewAutoAssignRidersCommandHandler(uowFactory, dispatcher, workflow, recorder, cache)
//	err := handler.Handle(ctx, cmd)
//	if errors.Is(err, ErrNoParcelFound) {
//	    // nothing waiting
//	}
type AutoAssignRidersCommand struct {
	guard guard.ConstructorGuard
}

// NewAutoAssignRidersCommand creates the parameterless dispatch trigger.
func NewAutoAssignRidersCommand() AutoAssignRidersCommand {
	return AutoAssignRidersCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c *AutoAssignRidersCommand) Validate() error {
	return c.guard.Validate(ErrAutoAssignRidersCommandIsNotConstructed)
}
