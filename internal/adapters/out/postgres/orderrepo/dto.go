// Package orderrepo maps order aggregates onto the orders table. Searchable
// fields are plain columns; the embedded snapshots, flights and passengers
// are JSONB documents.
package orderrepo

import (
	"time"

	"travelagency/internal/adapters/out/documents"
	"travelagency/internal/core/domain/model/kernel"
	"travelagency/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// OrderDTO is the row of the orders table. The unique index over customer
// and outbound route rejects duplicate bookings.
type OrderDTO struct {
	ID           uuid.UUID                                `gorm:"type:uuid;primaryKey"`
	CustomerID   uuid.UUID                                `gorm:"type:uuid;not null;uniqueIndex:idx_orders_customer_flight,priority:1"`
	AgentID      *uuid.UUID                               `gorm:"type:uuid;index"`
	FlightFrom   string                                   `gorm:"not null;uniqueIndex:idx_orders_customer_flight,priority:2"`
	FlightTo     string                                   `gorm:"not null;uniqueIndex:idx_orders_customer_flight,priority:3"`
	FlightDate   time.Time                                `gorm:"not null;uniqueIndex:idx_orders_customer_flight,priority:4"`
	OrderDate    time.Time                                `gorm:"not null;index"`
	Status       string                                   `gorm:"not null"`
	Price        float64                                  `gorm:"not null;default:0"`
	Notes        string                                   `gorm:"not null;default:''"`
	Customer     datatypes.JSONType[documents.Party]      `gorm:"type:jsonb;not null"`
	Agent        datatypes.JSONType[*documents.Party]     `gorm:"type:jsonb;not null"`
	Flight       datatypes.JSONType[documents.Flight]     `gorm:"type:jsonb;not null"`
	ReturnFlight datatypes.JSONType[*documents.Flight]    `gorm:"type:jsonb;not null"`
	Passengers   datatypes.JSONSlice[documents.Passenger] `gorm:"type:jsonb;not null"`
	Version      int64                                    `gorm:"not null;default:0"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(o *order.Order) OrderDTO {
	var agentID *uuid.UUID
	if agent := o.Agent(); agent != nil {
		raw := agent.Number.Bytes()
		agentID = &raw
	}

	flight := o.Flight()
	return OrderDTO{
		ID:           o.ID().Bytes(),
		CustomerID:   o.Customer().Number.Bytes(),
		AgentID:      agentID,
		FlightFrom:   flight.From,
		FlightTo:     flight.To,
		FlightDate:   flight.Date.UTC(),
		OrderDate:    o.OrderDate().UTC(),
		Status:       o.Status().String(),
		Price:        o.Price(),
		Notes:        o.Notes(),
		Customer:     datatypes.NewJSONType(documents.FromParty(o.Customer())),
		Agent:        datatypes.NewJSONType(documents.FromPartyPtr(o.Agent())),
		Flight:       datatypes.NewJSONType(documents.FromFlight(flight)),
		ReturnFlight: datatypes.NewJSONType(documents.FromFlightPtr(o.ReturnFlight())),
		Passengers:   datatypes.NewJSONSlice(documents.FromPassengers(o.Passengers())),
		Version:      o.Version(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customer, err := dto.Customer.Data().ToDomain()
	if err != nil {
		return nil, err
	}

	agent, err := dto.Agent.Data().ToDomainPtr()
	if err != nil {
		return nil, err
	}

	flight, err := dto.Flight.Data().ToDomain()
	if err != nil {
		return nil, err
	}

	returnFlight, err := dto.ReturnFlight.Data().ToDomainPtr()
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	passengers, err := documents.ToPassengers(dto.Passengers)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		customer,
		agent,
		dto.OrderDate,
		flight,
		returnFlight,
		status,
		dto.Price,
		passengers,
		dto.Notes,
		dto.Version,
	)
}
