package order

import (
	"errors"
	"fmt"
	"time"

	"travelagency/internal/core/domain/model/kernel"
	"travelagency/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is a flight booking. It is the aggregate root that owns the booking
// details, the customer and agent snapshots and the lifecycle status.
//
// Order follows these invariants:
//   - Must have a valid identifier and customer snapshot
//   - Must have a valid outbound flight; the return flight is optional
//   - Must have at least one passenger
//   - Price is never negative
//   - Status is always one of the five lifecycle statuses
//
// Every mutation that matters to other systems records an Event; the unit of
// work persists them with the order.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// customer is the snapshot of the user who placed the order
	customer Party

	// agent is the snapshot of the assigned agent (nil if unassigned)
	agent *Party

	orderDate    time.Time
	flight       Flight
	returnFlight *Flight
	status       Status
	price        float64
	passengers   []Passenger
	notes        string

	// version is the persisted revision used for compare-and-swap updates
	version int64

	events []Event

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder places a booking for customer. The status is always WaitForAgent
// and no agent is assigned. A zero orderDate defaults to the current time.
//
// Example:
//
//	customer, _ := order.NewParty(userID, "Ada Lovelace", "ada@example.com", "0501234567")
//	flight, _ := order.NewFlight("SFO", "JFK", date, "", "")
//	o, err := order.NewOrder(kernel.NewUUID(), customer, time.Time{}, flight, nil, passengers, "", 0)
func NewOrder(
	id kernel.UUID,
	customer Party,
	orderDate time.Time,
	flight Flight,
	returnFlight *Flight,
	passengers []Passenger,
	notes string,
	price float64,
) (*Order, error) {
	if orderDate.IsZero() {
		orderDate = time.Now()
	}

	o := &Order{
		orderDate:     orderDate.UTC(),
		status:        WaitForAgent,
		notes:         notes,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomer(customer),
		o.setFlight(flight),
		o.setReturnFlight(returnFlight),
		o.setPassengers(passengers),
		o.setPrice(price),
	); err != nil {
		return nil, err
	}

	o.raise(EventCreated, Unknown)
	return o, nil
}

// RestoreOrder rebuilds a persisted order. No events are recorded.
func RestoreOrder(
	id kernel.UUID,
	customer Party,
	agent *Party,
	orderDate time.Time,
	flight Flight,
	returnFlight *Flight,
	status Status,
	price float64,
	passengers []Passenger,
	notes string,
	version int64,
) (*Order, error) {
	o := &Order{
		orderDate:     orderDate.UTC(),
		notes:         notes,
		version:       version,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomer(customer),
		o.setAgent(agent),
		o.setFlight(flight),
		o.setReturnFlight(returnFlight),
		o.setStatus(status),
		o.setPassengers(passengers),
		o.setPrice(price),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) Customer() Party {
	return o.customer
}

// Agent returns the assigned agent snapshot or nil.
func (o *Order) Agent() *Party {
	if o.agent == nil {
		return nil
	}
	a := *o.agent
	return &a
}

func (o *Order) OrderDate() time.Time {
	return o.orderDate
}

func (o *Order) Flight() Flight {
	return o.flight
}

// ReturnFlight returns the return leg or nil for one-way bookings.
func (o *Order) ReturnFlight() *Flight {
	if o.returnFlight == nil {
		return nil
	}
	f := *o.returnFlight
	return &f
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) Price() float64 {
	return o.price
}

// Passengers returns a copy of the passenger list in booking order.
func (o *Order) Passengers() []Passenger {
	out := make([]Passenger, len(o.passengers))
	copy(out, o.passengers)
	return out
}

func (o *Order) Notes() string {
	return o.notes
}

func (o *Order) Version() int64 {
	return o.version
}

// MarkPersisted records the version stored by a successful write.
func (o *Order) MarkPersisted(version int64) {
	o.version = version
}

// IsOwnedBy reports whether userID placed the order.
func (o *Order) IsOwnedBy(userID kernel.UUID) bool {
	return o.customer.Is(userID)
}

// IsAssignedTo reports whether userID is the assigned agent.
func (o *Order) IsAssignedTo(userID kernel.UUID) bool {
	return o.agent != nil && o.agent.Is(userID)
}

// CustomerChanges is the subset of fields the owner may edit. Nil fields are
// left untouched. ReturnFlight patches the existing return leg or starts a new
// one.
type CustomerChanges struct {
	Flight       *FlightPatch
	ReturnFlight *FlightPatch
	Passengers   []Passenger
	Notes        *string
}

// UpdateByCustomer applies the owner's edits. Owners may only edit orders
// still waiting for an agent.
func (o *Order) UpdateByCustomer(changes CustomerChanges) error {
	if o.status != WaitForAgent {
		return errs.NewAccessDeniedErrorWithCause(
			"update order",
			fmt.Errorf("order in status %s can no longer be changed by its owner", o.status),
		)
	}

	next := o.clone()
	if err := next.applyBooking(changes.Flight, changes.ReturnFlight, changes.Passengers, changes.Notes); err != nil {
		return err
	}

	o.adopt(next)
	return nil
}

// StaffChanges is the set of fields agents and admins may edit. Nil fields are
// left untouched.
type StaffChanges struct {
	OrderDate    *time.Time
	Flight       *FlightPatch
	ReturnFlight *FlightPatch
	Status       *Status
	Price        *float64
	Passengers   []Passenger
	Notes        *string
}

// UpdateByStaff applies an agent or admin edit. Unless bypass is set (admin
// callers), terminal orders are frozen and a status change must follow the
// transition table. A new status must always agree with the agent assignment;
// the agent itself only changes through AssignAgent.
func (o *Order) UpdateByStaff(changes StaffChanges, bypass bool) error {
	if !bypass && o.status.IsTerminal() {
		return errs.NewAccessDeniedErrorWithCause(
			"update order",
			fmt.Errorf("order in status %s cannot be changed", o.status),
		)
	}

	next := o.clone()
	if err := next.applyBooking(changes.Flight, changes.ReturnFlight, changes.Passengers, changes.Notes); err != nil {
		return err
	}
	if changes.OrderDate != nil {
		if changes.OrderDate.IsZero() {
			return errs.NewValueIsRequiredError("orderDate")
		}
		next.orderDate = changes.OrderDate.UTC()
	}
	if changes.Price != nil {
		if err := next.setPrice(*changes.Price); err != nil {
			return err
		}
	}
	if changes.Status != nil {
		status, err := o.status.TransitionTo(*changes.Status, bypass)
		if err != nil {
			return err
		}
		if err = status.ValidateCanHaveAgent(next.agent != nil); err != nil {
			return err
		}
		next.status = status
	}

	previous := o.status
	o.adopt(next)
	if o.status != previous {
		o.raise(EventStatusChanged, previous)
	}
	return nil
}

// AssignAgent sets or clears the agent. A non-nil agent moves the order to
// InProgress; nil clears the agent and moves it back to WaitForAgent.
// Without bypass, only non-terminal orders accept an assignment.
func (o *Order) AssignAgent(agent *Party, bypass bool) error {
	if !bypass && o.status.IsTerminal() {
		return errs.NewAccessDeniedErrorWithCause(
			"assign agent",
			fmt.Errorf("order in status %s cannot be reassigned", o.status),
		)
	}

	previous := o.status
	if agent == nil {
		o.agent = nil
		o.status = WaitForAgent
	} else {
		if err := agent.Validate(); err != nil {
			return err
		}
		a := *agent
		o.agent = &a
		o.status = InProgress
	}

	o.raise(EventAgentAssigned, previous)
	return nil
}

// ChangeStatus moves the order to next. Without bypass the transition table
// applies. The new status must agree with the agent assignment even for
// admins. Setting the current status again is a no-op.
func (o *Order) ChangeStatus(next Status, bypass bool) error {
	status, err := o.status.TransitionTo(next, bypass)
	if err != nil {
		return err
	}
	if status == o.status {
		return nil
	}
	if err = status.ValidateCanHaveAgent(o.agent != nil); err != nil {
		return err
	}

	previous := o.status
	o.status = status
	o.raise(EventStatusChanged, previous)
	return nil
}

// MarkDeleted records the deletion event. The repository removes the document.
func (o *Order) MarkDeleted() {
	o.raise(EventDeleted, o.status)
}

func (o *Order) clone() *Order {
	c := *o
	c.passengers = o.Passengers()
	c.events = nil
	return &c
}

// adopt copies the booking state of next into o, keeping o's events.
func (o *Order) adopt(next *Order) {
	events := o.events
	*o = *next
	o.events = events
}

func (o *Order) applyBooking(flight, returnFlight *FlightPatch, passengers []Passenger, notes *string) error {
	var err error
	if flight != nil {
		f, applyErr := o.flight.Apply(*flight)
		if applyErr == nil {
			o.flight = f
		}
		err = errors.Join(err, applyErr)
	}
	if returnFlight != nil {
		base := Flight{}
		if o.returnFlight != nil {
			base = *o.returnFlight
		}
		f, applyErr := base.Apply(*returnFlight)
		if applyErr == nil {
			o.returnFlight = &f
		}
		err = errors.Join(err, applyErr)
	}
	if passengers != nil {
		err = errors.Join(err, o.setPassengers(passengers))
	}
	if notes != nil {
		o.notes = *notes
	}
	return err
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomer(customer Party) error {
	if err := customer.Validate(); err != nil {
		return err
	}
	o.customer = customer
	return nil
}

func (o *Order) setAgent(agent *Party) error {
	if agent == nil {
		o.agent = nil
		return nil
	}
	if err := agent.Validate(); err != nil {
		return err
	}
	a := *agent
	o.agent = &a
	return nil
}

func (o *Order) setFlight(flight Flight) error {
	if err := flight.Validate(); err != nil {
		return err
	}
	o.flight = flight
	return nil
}

func (o *Order) setReturnFlight(flight *Flight) error {
	if flight == nil {
		o.returnFlight = nil
		return nil
	}
	if err := flight.Validate(); err != nil {
		return err
	}
	f := *flight
	o.returnFlight = &f
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

// setPassengers requires at least one passenger and validates each of them.
func (o *Order) setPassengers(passengers []Passenger) error {
	if len(passengers) == 0 {
		return errs.NewValueIsRequiredErrorWithCause("passengers", errors.New("order must have at least one passenger"))
	}
	for i, p := range passengers {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("passenger %d: %w", i, err)
		}
	}
	o.passengers = make([]Passenger, len(passengers))
	copy(o.passengers, passengers)
	return nil
}

// setPrice validates and sets the price. Price must not be negative.
func (o *Order) setPrice(price float64) error {
	if price < 0 {
		return errs.NewValueIsInvalidErrorWithCause("price is invalid", fmt.Errorf("%v is less than 0", price))
	}
	o.price = price
	return nil
}
