package commands

import (
	"errors"

	"travelagency/internal/core/domain/model/access"
	"travelagency/internal/core/domain/model/kernel"
	"travelagency/internal/core/domain/model/order"
	"travelagency/internal/pkg/guard"
)

var ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
	"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
)

// ChangeOrderStatusCommand moves an order through its lifecycle.
type ChangeOrderStatusCommand struct {
	principal access.Principal
	orderID   kernel.UUID
	status    order.Status

	guard guard.ConstructorGuard
}

func NewChangeOrderStatusCommand(principal access.Principal, orderID kernel.UUID, status order.Status) (ChangeOrderStatusCommand, error) {
	if err := errors.Join(principal.Validate(), orderID.Validate(), status.Validate()); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	return ChangeOrderStatusCommand{
		principal: principal,
		orderID:   orderID,
		status:    status,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c ChangeOrderStatusCommand) Principal() access.Principal {
	return c.principal
}

func (c ChangeOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c ChangeOrderStatusCommand) Status() order.Status {
	return c.status
}

func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}
