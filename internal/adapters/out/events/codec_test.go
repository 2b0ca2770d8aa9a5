package events_test

import (
	"encoding/json"
	"testing"
	"time"

	"travelagency/internal/adapters/out/events"
	"travelagency/internal/core/domain/model/kernel"
	"travelagency/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrder(t *testing.T) *order.Order {
	t.Helper()
	customer, err := order.NewParty(kernel.NewUUID(), "Ada Lovelace", "ada@example.com", "0501234567")
	require.NoError(t, err)
	flight, err := order.NewFlight("SFO", "JFK", time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), "", "")
	require.NoError(t, err)
	passenger, err := order.NewPassenger("Ada", "Lovelace", "P1", "GB", time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC), order.Female, nil)
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), customer, time.Time{}, flight, nil, []order.Passenger{passenger}, "", 0)
	require.NoError(t, err)
	return o
}

func TestEncodeOrderEvents(t *testing.T) {
	o := newOrder(t)
	agent, err := order.NewParty(kernel.NewUUID(), "Bob Agent", "bob@example.com", "0507654321")
	require.NoError(t, err)
	require.NoError(t, o.AssignAgent(&agent, true))

	messages, err := events.EncodeOrderEvents(o)
	require.NoError(t, err)
	require.Len(t, messages, 2)

	created := messages[0]
	assert.Equal(t, "order.created", created.Type)
	assert.True(t, created.AggregateID.IsEqual(o.ID()))

	var payload events.OrderEventPayload
	require.NoError(t, json.Unmarshal(messages[1].Payload, &payload))
	assert.Equal(t, "order.agent_assigned", payload.Type)
	assert.Equal(t, o.ID().String(), payload.OrderID)
	require.NotNil(t, payload.AgentID)
	assert.Equal(t, agent.Number.String(), *payload.AgentID)
	assert.Equal(t, order.InProgress.String(), payload.Status)
	assert.Equal(t, order.WaitForAgent.String(), payload.PreviousStatus)
}

func TestEncodeOrderEvents_NoEvents(t *testing.T) {
	o := newOrder(t)
	o.ClearDomainEvents()

	messages, err := events.EncodeOrderEvents(o)

	require.NoError(t, err)
	assert.Empty(t, messages)
}
