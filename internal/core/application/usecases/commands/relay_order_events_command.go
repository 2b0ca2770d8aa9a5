package commands

import (
	"errors"

	"travelagency/internal/pkg/errs"
	"travelagency/internal/pkg/guard"
)

var ErrRelayOrderEventsCommandIsNotConstructed = errors.New(
	"RelayOrderEventsCommand must be created via NewRelayOrderEventsCommand constructor",
)

// RelayOrderEventsCommand forwards one batch of stored order events.
type RelayOrderEventsCommand struct {
	batchSize int

	guard guard.ConstructorGuard
}

func NewRelayOrderEventsCommand(batchSize int) (RelayOrderEventsCommand, error) {
	if batchSize <= 0 {
		return RelayOrderEventsCommand{}, errs.NewValueIsOutOfRangeError("batchSize", batchSize, 1, "unbounded")
	}

	return RelayOrderEventsCommand{
		batchSize: batchSize,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c RelayOrderEventsCommand) BatchSize() int {
	return c.batchSize
}

func (c RelayOrderEventsCommand) Validate() error {
	return c.guard.Validate(ErrRelayOrderEventsCommandIsNotConstructed)
}
