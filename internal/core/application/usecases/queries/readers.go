// Package queries contains read operations. Each query is a constructor
// guarded object paired with a handler that checks the caller's access and
// reads through a narrow reader interface.
package queries

import (
	"context"

	"travelagency/internal/core/domain/model/kernel"
	"travelagency/internal/core/domain/model/order"
	"travelagency/internal/core/domain/model/user"
)

// OrderReader is the read side of ports.OrderRepository.
type OrderReader interface {
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
	ListByParticipant(ctx context.Context, userID kernel.UUID) ([]*order.Order, error)
	ListAll(ctx context.Context) ([]*order.Order, error)
}

// UserReader is the read side of ports.UserRepository.
type UserReader interface {
	Get(ctx context.Context, id kernel.UUID) (*user.User, error)
}
