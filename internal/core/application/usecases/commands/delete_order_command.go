package commands

import (
	"errors"

	"travelagency/internal/core/domain/model/access"
	"travelagency/internal/core/domain/model/kernel"
	"travelagency/internal/pkg/guard"
)

var ErrDeleteOrderCommandIsNotConstructed = errors.New(
	"DeleteOrderCommand must be created via NewDeleteOrderCommand constructor",
)

// DeleteOrderCommand removes an order in any status.
type DeleteOrderCommand struct {
	principal access.Principal
	orderID   kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeleteOrderCommand(principal access.Principal, orderID kernel.UUID) (DeleteOrderCommand, error) {
	if err := errors.Join(principal.Validate(), orderID.Validate()); err != nil {
		return DeleteOrderCommand{}, err
	}

	return DeleteOrderCommand{
		principal: principal,
		orderID:   orderID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c DeleteOrderCommand) Principal() access.Principal {
	return c.principal
}

func (c DeleteOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c DeleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeleteOrderCommandIsNotConstructed)
}
