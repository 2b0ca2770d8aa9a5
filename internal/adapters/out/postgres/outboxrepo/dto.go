// Package outboxrepo stores order events in the order_events table until the
// relay job publishes them.
package outboxrepo

import (
	"time"

	"travelagency/internal/core/domain/model/kernel"
	"travelagency/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type EventDTO struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Type        string         `gorm:"not null"`
	AggregateID uuid.UUID      `gorm:"type:uuid;not null;index"`
	Payload     datatypes.JSON `gorm:"type:jsonb;not null"`
	OccurredAt  time.Time      `gorm:"not null;index"`
	PublishedAt *time.Time     `gorm:"index"`
}

func (EventDTO) TableName() string {
	return "order_events"
}

func fromMessage(m ports.OutboxMessage) EventDTO {
	return EventDTO{
		ID:          m.ID.Bytes(),
		Type:        m.Type,
		AggregateID: m.AggregateID.Bytes(),
		Payload:     datatypes.JSON(m.Payload),
		OccurredAt:  m.OccurredAt.UTC(),
	}
}

func toMessage(dto EventDTO) (ports.OutboxMessage, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.OutboxMessage{}, err
	}
	aggregateID, err := kernel.UUIDFromBytes(dto.AggregateID[:])
	if err != nil {
		return ports.OutboxMessage{}, err
	}

	return ports.OutboxMessage{
		ID:          id,
		Type:        dto.Type,
		AggregateID: aggregateID,
		Payload:     []byte(dto.Payload),
		OccurredAt:  dto.OccurredAt,
	}, nil
}
