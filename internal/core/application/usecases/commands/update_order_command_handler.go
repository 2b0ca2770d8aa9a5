package commands

import (
	"context"

	"travelagency/internal/core/domain/model/order"
	"travelagency/internal/core/domain/services"
	"travelagency/internal/pkg/errs"
)

// UpdateOrderCommandHandler applies owner and staff edits.
//
// Business rules:
//   - Staff edit every booking field; agents follow the lifecycle, admins bypass it
//   - A status change needs the same rights as ChangeOrderStatusCommand: admin or assigned agent
//   - Owners edit flight, return flight, passengers and notes while WaitForAgent
//   - Everyone else is denied
type UpdateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     services.OrderAccessPolicy
}

func NewUpdateOrderCommandHandler(uowFactory OrderUoWFactory) UpdateOrderCommandHandler {
	return UpdateOrderCommandHandler{
		uowFactory: uowFactory,
		policy:     services.NewOrderAccessPolicy(),
	}
}

func (h UpdateOrderCommandHandler) Handle(ctx context.Context, cmd UpdateOrderCommand) (*order.Order, error) {
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

	mode, bypass, err := h.policy.UpdateMode(cmd.Principal(), o)
	if err != nil {
		return nil, err
	}

	changes := cmd.Changes()
	switch mode {
	case services.UpdateAsStaff:
		if changes.Status != nil {
			if bypass, err = h.policy.AuthorizeStatusChange(cmd.Principal(), o, *changes.Status); err != nil {
				return nil, err
			}
		}
		err = o.UpdateByStaff(changes, bypass)
	case services.UpdateAsOwner:
		if cmd.TouchesStaffFields() {
			return nil, errs.NewAccessDeniedError("only agents and admins can change order date, status or price")
		}
		err = o.UpdateByCustomer(order.CustomerChanges{
			Flight:       changes.Flight,
			ReturnFlight: changes.ReturnFlight,
			Passengers:   changes.Passengers,
			Notes:        changes.Notes,
		})
	default:
		err = errs.NewAccessDeniedError("you are not authorized to update this order")
	}
	if err != nil {
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
