// Package events turns order domain events into outbox messages.
package events

import (
	"encoding/json"
	"time"

	"travelagency/internal/core/domain/model/order"
	"travelagency/internal/core/ports"
)

// OrderEventPayload is the published shape of an order event.
type OrderEventPayload struct {
	ID             string    `json:"id"`
	Type           string    `json:"type"`
	OrderID        string    `json:"orderId"`
	CustomerID     string    `json:"customerId"`
	AgentID        *string   `json:"agentId"`
	Status         string    `json:"orderStatus"`
	PreviousStatus string    `json:"previousStatus,omitempty"`
	OccurredAt     time.Time `json:"occurredAt"`
}

// EncodeOrderEvent serializes e into an outbox message keyed by the order id.
func EncodeOrderEvent(e order.Event) (ports.OutboxMessage, error) {
	payload := OrderEventPayload{
		ID:         e.ID.String(),
		Type:       string(e.Type),
		OrderID:    e.OrderID.String(),
		CustomerID: e.CustomerID.String(),
		Status:     e.Status.String(),
		OccurredAt: e.OccurredAt,
	}
	if e.AgentID != nil {
		agentID := e.AgentID.String()
		payload.AgentID = &agentID
	}
	if e.PreviousStatus != order.Unknown {
		payload.PreviousStatus = e.PreviousStatus.String()
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return ports.OutboxMessage{}, err
	}

	return ports.OutboxMessage{
		ID:          e.ID,
		Type:        string(e.Type),
		AggregateID: e.OrderID,
		Payload:     raw,
		OccurredAt:  e.OccurredAt,
	}, nil
}

// EncodeOrderEvents drains the recorded events of every order.
func EncodeOrderEvents(orders ...*order.Order) ([]ports.OutboxMessage, error) {
	var messages []ports.OutboxMessage
	for _, o := range orders {
		for _, e := range o.DomainEvents() {
			m, err := EncodeOrderEvent(e)
			if err != nil {
				return nil, err
			}
			messages = append(messages, m)
		}
	}
	return messages, nil
}
