package commands

import (
	"errors"
	"time"

	"travelagency/internal/core/domain/model/access"
	"travelagency/internal/core/domain/model/order"
	"travelagency/internal/pkg/errs"
	"travelagency/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand places a booking for the calling principal, who always
// acts as the customer.
//
// Example:
//
//	flight, _ := order.NewFlight("SFO", "JFK", date, "", "")
//	cmd, err := NewCreateOrderCommand(principal, flight, nil, passengers, "", 0, time.Time{})
//	o, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct {
	principal    access.Principal
	flight       order.Flight
	returnFlight *order.Flight
	passengers   []order.Passenger
	notes        string
	price        float64
	orderDate    time.Time

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the booking input. A zero orderDate means
// now.
func NewCreateOrderCommand(
	principal access.Principal,
	flight order.Flight,
	returnFlight *order.Flight,
	passengers []order.Passenger,
	notes string,
	price float64,
	orderDate time.Time,
) (CreateOrderCommand, error) {
	if err := errors.Join(principal.Validate(), flight.Validate()); err != nil {
		return CreateOrderCommand{}, err
	}
	if len(passengers) == 0 {
		return CreateOrderCommand{}, errs.NewValueIsRequiredError("passengers")
	}

	return CreateOrderCommand{
		principal:    principal,
		flight:       flight,
		returnFlight: returnFlight,
		passengers:   passengers,
		notes:        notes,
		price:        price,
		orderDate:    orderDate,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c CreateOrderCommand) Principal() access.Principal {
	return c.principal
}

func (c CreateOrderCommand) Flight() order.Flight {
	return c.flight
}

func (c CreateOrderCommand) ReturnFlight() *order.Flight {
	return c.returnFlight
}

func (c CreateOrderCommand) Passengers() []order.Passenger {
	return c.passengers
}

func (c CreateOrderCommand) Notes() string {
	return c.notes
}

func (c CreateOrderCommand) Price() float64 {
	return c.price
}

func (c CreateOrderCommand) OrderDate() time.Time {
	return c.orderDate
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}
