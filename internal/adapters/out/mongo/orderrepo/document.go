// Package orderrepo stores order aggregates in the orders collection with the
// customer and agent snapshots, flights and passengers embedded.
package orderrepo

import (
	"time"

	"travelagency/internal/adapters/out/documents"
	"travelagency/internal/core/domain/model/kernel"
	"travelagency/internal/core/domain/model/order"
)

const CollectionName = "orders"

type OrderDocument struct {
	ID           string                `bson:"_id"`
	Customer     documents.Party       `bson:"customer"`
	Agent        *documents.Party      `bson:"agent"`
	OrderDate    time.Time             `bson:"orderDate"`
	Flight       documents.Flight      `bson:"flight"`
	ReturnFlight *documents.Flight     `bson:"returnFlight,omitempty"`
	Status       string                `bson:"orderStatus"`
	Price        float64               `bson:"price"`
	Passengers   []documents.Passenger `bson:"passengers"`
	Notes        string                `bson:"notes"`
	Version      int64                 `bson:"version"`
}

func fromDomain(o *order.Order) OrderDocument {
	return OrderDocument{
		ID:           o.ID().String(),
		Customer:     documents.FromParty(o.Customer()),
		Agent:        documents.FromPartyPtr(o.Agent()),
		OrderDate:    o.OrderDate().UTC(),
		Flight:       documents.FromFlight(o.Flight()),
		ReturnFlight: documents.FromFlightPtr(o.ReturnFlight()),
		Status:       o.Status().String(),
		Price:        o.Price(),
		Passengers:   documents.FromPassengers(o.Passengers()),
		Notes:        o.Notes(),
		Version:      o.Version(),
	}
}

func toDomain(doc OrderDocument) (*order.Order, error) {
	id, err := kernel.UUIDFromString(doc.ID)
	if err != nil {
		return nil, err
	}

	customer, err := doc.Customer.ToDomain()
	if err != nil {
		return nil, err
	}

	agent, err := doc.Agent.ToDomainPtr()
	if err != nil {
		return nil, err
	}

	flight, err := doc.Flight.ToDomain()
	if err != nil {
		return nil, err
	}

	returnFlight, err := doc.ReturnFlight.ToDomainPtr()
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(doc.Status)
	if err != nil {
		return nil, err
	}

	passengers, err := documents.ToPassengers(doc.Passengers)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		customer,
		agent,
		doc.OrderDate,
		flight,
		returnFlight,
		status,
		doc.Price,
		passengers,
		doc.Notes,
		doc.Version,
	)
}
