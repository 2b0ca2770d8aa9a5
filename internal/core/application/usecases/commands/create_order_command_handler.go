package commands

import (
	"context"

	"travelagency/internal/core/domain/model/kernel"
	"travelagency/internal/core/domain/model/order"
	"travelagency/internal/core/domain/model/user"
	"travelagency/internal/pkg/errs"
)

// CreateOrderCommandHandler places bookings.
//
// The caller's persisted user record is copied into the customer snapshot.
// A booking for the same customer, origin, destination and flight date is a
// conflict; the store's unique index enforces the same rule for concurrent
// creates.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	o, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrAlreadyExists) {
//	    // duplicate booking
//	}
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
}

func NewCreateOrderCommandHandler(uowFactory UoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns the new order in WaitForAgent status.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
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

	customer, err := uow.UserRepository().Get(ctx, cmd.Principal().UserID())
	if err != nil {
		return nil, err
	}

	orderRepo := uow.OrderRepository()
	exists, err := orderRepo.ExistsForCustomerFlight(ctx, customer.ID(), cmd.Flight())
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errs.NewAlreadyExistsError("order", "")
	}

	snapshot, err := snapshotOf(customer)
	if err != nil {
		return nil, err
	}

	o, err := order.NewOrder(
		kernel.NewUUID(),
		snapshot,
		cmd.OrderDate(),
		cmd.Flight(),
		cmd.ReturnFlight(),
		cmd.Passengers(),
		cmd.Notes(),
		cmd.Price(),
	)
	if err != nil {
		return nil, err
	}

	if err = orderRepo.Add(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}

// snapshotOf copies the contact details of u into an order party.
func snapshotOf(u *user.User) (order.Party, error) {
	return order.NewParty(u.ID(), u.Name().Full(), u.Email(), u.Phone())
}
