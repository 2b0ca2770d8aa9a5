package queries

import (
	"context"

	"travelagency/internal/core/domain/model/order"
	"travelagency/internal/core/domain/services"
)

// ListMyOrdersQueryHandler returns the orders whose customer or agent
// snapshot is the caller, newest orderDate first.
type ListMyOrdersQueryHandler struct {
	orders OrderReader
}

func NewListMyOrdersQueryHandler(orders OrderReader) ListMyOrdersQueryHandler {
	return ListMyOrdersQueryHandler{orders: orders}
}

func (h ListMyOrdersQueryHandler) Handle(ctx context.Context, query ListMyOrdersQuery) ([]*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return h.orders.ListByParticipant(ctx, query.Principal().UserID())
}

// ListAllOrdersQueryHandler returns every order to agents and admins.
type ListAllOrdersQueryHandler struct {
	orders OrderReader
	policy services.OrderAccessPolicy
}

func NewListAllOrdersQueryHandler(orders OrderReader) ListAllOrdersQueryHandler {
	return ListAllOrdersQueryHandler{
		orders: orders,
		policy: services.NewOrderAccessPolicy(),
	}
}

func (h ListAllOrdersQueryHandler) Handle(ctx context.Context, query ListAllOrdersQuery) ([]*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if err := h.policy.CanListAll(query.Principal()); err != nil {
		return nil, err
	}

	return h.orders.ListAll(ctx)
}
