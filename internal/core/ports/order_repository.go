package ports

import (
	"context"

	"travelagency/internal/core/domain/model/kernel"
	"travelagency/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order. An order for the same customer and the same
	// origin, destination and flight date yields errs.AlreadyExistsError.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes with a compare-and-swap on the aggregate's
	// version. A concurrent modification yields errs.VersionIsInvalidError and
	// a missing order errs.ObjectNotFoundError. On success the aggregate's
	// version is advanced.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get returns the order or errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// Delete removes the order. Its domain events are still recorded.
	Delete(ctx context.Context, aggregate *order.Order) error

	// ExistsForCustomerFlight reports whether customerID already booked the
	// same outbound origin, destination and date.
	ExistsForCustomerFlight(ctx context.Context, customerID kernel.UUID, flight order.Flight) (bool, error)

	// ListByParticipant returns the orders whose customer or agent snapshot is
	// userID, newest orderDate first.
	ListByParticipant(ctx context.Context, userID kernel.UUID) ([]*order.Order, error)

	// ListAll returns every order, newest orderDate first.
	ListAll(ctx context.Context) ([]*order.Order, error)
}
