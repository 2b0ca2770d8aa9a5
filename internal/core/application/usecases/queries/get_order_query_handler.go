package queries

import (
	"context"

	"travelagency/internal/core/domain/model/order"
	"travelagency/internal/core/domain/services"
)

// GetOrderQueryHandler returns an order to its owner or to staff. A missing
// order yields errs.ObjectNotFoundError, a foreign one errs.AccessDeniedError.
type GetOrderQueryHandler struct {
	orders OrderReader
	policy services.OrderAccessPolicy
}

func NewGetOrderQueryHandler(orders OrderReader) GetOrderQueryHandler {
	return GetOrderQueryHandler{
		orders: orders,
		policy: services.NewOrderAccessPolicy(),
	}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	o, err := h.orders.Get(ctx, query.OrderID())
	if err != nil {
		return nil, err
	}

	if err = h.policy.CanRead(query.Principal(), o); err != nil {
		return nil, err
	}

	return o, nil
}
