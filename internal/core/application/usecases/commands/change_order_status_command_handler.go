package commands

import (
	"context"

	"travelagency/internal/core/domain/model/order"
	"travelagency/internal/core/domain/services"
)

// ChangeOrderStatusCommandHandler changes order status. Admins may set any
// status, the assigned agent follows the transition table and the owner may
// confirm or decline an offer or cancel an order nobody picked up yet.
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     services.OrderAccessPolicy
}

func NewChangeOrderStatusCommandHandler(uowFactory OrderUoWFactory) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		policy:     services.NewOrderAccessPolicy(),
	}
}

func (h ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
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

	bypass, err := h.policy.AuthorizeStatusChange(cmd.Principal(), o, cmd.Status())
	if err != nil {
		return nil, err
	}

	if err = o.ChangeStatus(cmd.Status(), bypass); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
