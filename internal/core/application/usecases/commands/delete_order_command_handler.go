package commands

import (
	"context"

	"travelagency/internal/core/domain/model/order"
	"travelagency/internal/core/domain/services"
)

// DeleteOrderCommandHandler deletes orders. Admins only; non-admins are
// denied before the order is looked up.
type DeleteOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     services.OrderAccessPolicy
}

func NewDeleteOrderCommandHandler(uowFactory OrderUoWFactory) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{
		uowFactory: uowFactory,
		policy:     services.NewOrderAccessPolicy(),
	}
}

// Handle returns the deleted order.
func (h DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if err := h.policy.CanDelete(cmd.Principal()); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	o.MarkDeleted()

	if err = orderRepo.Delete(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
