package order

import (
	"time"

	"travelagency/internal/core/domain/model/kernel"
)

// EventType names a fact about an order published through the outbox.
type EventType string

const (
	EventCreated       EventType = "order.created"
	EventStatusChanged EventType = "order.status_changed"
	EventAgentAssigned EventType = "order.agent_assigned"
	EventDeleted       EventType = "order.deleted"
)

// Event is a domain event recorded by the Order aggregate. It is written to
// the outbox in the same transaction as the order and relayed later.
type Event struct {
	ID             kernel.UUID
	Type           EventType
	OrderID        kernel.UUID
	CustomerID     kernel.UUID
	AgentID        *kernel.UUID
	Status         Status
	PreviousStatus Status
	OccurredAt     time.Time
}

func (o *Order) raise(eventType EventType, previous Status) {
	e := Event{
		ID:             kernel.NewUUID(),
		Type:           eventType,
		OrderID:        o.id,
		CustomerID:     o.customer.Number,
		Status:         o.status,
		PreviousStatus: previous,
		OccurredAt:     time.Now().UTC(),
	}
	if o.agent != nil {
		agentID := o.agent.Number
		e.AgentID = &agentID
	}
	o.events = append(o.events, e)
}

// DomainEvents returns the events recorded since the order was loaded or
// since the last ClearDomainEvents.
func (o *Order) DomainEvents() []Event {
	out := make([]Event, len(o.events))
	copy(out, o.events)
	return out
}

// ClearDomainEvents drops recorded events once they are stored.
func (o *Order) ClearDomainEvents() {
	o.events = nil
}
