package commands

import (
	"errors"

	"travelagency/internal/core/domain/model/access"
	"travelagency/internal/core/domain/model/kernel"
	"travelagency/internal/core/domain/model/order"
	"travelagency/internal/pkg/guard"
)

var ErrUpdateOrderCommandIsNotConstructed = errors.New(
	"UpdateOrderCommand must be created via NewUpdateOrderCommand constructor",
)

// UpdateOrderCommand edits an order. Whether the owner field set or the staff
// field set applies is decided by the handler from the principal's roles and
// the order's ownership.
type UpdateOrderCommand struct {
	principal access.Principal
	orderID   kernel.UUID
	changes   order.StaffChanges

	guard guard.ConstructorGuard
}

func NewUpdateOrderCommand(principal access.Principal, orderID kernel.UUID, changes order.StaffChanges) (UpdateOrderCommand, error) {
	if err := errors.Join(principal.Validate(), orderID.Validate()); err != nil {
		return UpdateOrderCommand{}, err
	}

	return UpdateOrderCommand{
		principal: principal,
		orderID:   orderID,
		changes:   changes,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateOrderCommand) Principal() access.Principal {
	return c.principal
}

func (c UpdateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c UpdateOrderCommand) Changes() order.StaffChanges {
	return c.changes
}

// TouchesStaffFields reports whether the edit sets a field only staff may
// change.
func (c UpdateOrderCommand) TouchesStaffFields() bool {
	return c.changes.OrderDate != nil || c.changes.Status != nil || c.changes.Price != nil
}

func (c UpdateOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderCommandIsNotConstructed)
}
