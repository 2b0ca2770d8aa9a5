package outboxrepo

import (
	"context"
	"time"

	"travelagency/internal/core/domain/model/kernel"
	"travelagency/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOutboxRepository implements ports.OutboxRepository. Append is used by
// the unit of work inside its transaction.
type GormOutboxRepository struct {
	db *gorm.DB
}

func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

func (r *GormOutboxRepository) Append(ctx context.Context, messages ...ports.OutboxMessage) error {
	if len(messages) == 0 {
		return nil
	}

	dtos := make([]EventDTO, 0, len(messages))
	for _, m := range messages {
		dtos = append(dtos, fromMessage(m))
	}
	return r.db.WithContext(ctx).Create(&dtos).Error
}

func (r *GormOutboxRepository) FetchPending(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	var dtos []EventDTO
	err := r.db.WithContext(ctx).
		Where("published_at IS NULL").
		Order("occurred_at ASC").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	messages := make([]ports.OutboxMessage, 0, len(dtos))
	for _, dto := range dtos {
		m, convErr := toMessage(dto)
		if convErr != nil {
			return nil, convErr
		}
		messages = append(messages, m)
	}
	return messages, nil
}

func (r *GormOutboxRepository) MarkPublished(ctx context.Context, ids []kernel.UUID, publishedAt time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}

	return r.db.WithContext(ctx).
		Model(&EventDTO{}).
		Where("id IN ?", raw).
		Update("published_at", publishedAt.UTC()).Error
}
