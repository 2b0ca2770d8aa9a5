package orderrepo

import (
	"context"
	"errors"

	"travelagency/internal/core/domain/model/kernel"
	"travelagency/internal/core/domain/model/order"
	"travelagency/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM. The
// connection must be opened with TranslateError so unique violations surface
// as gorm.ErrDuplicatedKey.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker receives every order written through the repository so
// the unit of work can store its events.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = 1
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewAlreadyExistsError("order", "")
		}
		return err
	}

	aggregate.MarkPersisted(dto.Version)
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the order only if the stored version still matches.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	expected := dto.Version
	dto.Version = expected + 1

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, expected).
		Select("*").
		Omit("id").
		Updates(&dto)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return errs.NewAlreadyExistsError("order", "")
		}
		return result.Error
	}

	if result.RowsAffected == 0 {
		return r.missOrConflict(ctx, aggregate.ID())
	}

	aggregate.MarkPersisted(dto.Version)
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormOrderRepository) Delete(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&OrderDTO{}, "id = ?", aggregate.ID().Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormOrderRepository) ExistsForCustomerFlight(ctx context.Context, customerID kernel.UUID, flight order.Flight) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("customer_id = ? AND flight_from = ? AND flight_to = ? AND flight_date = ?",
			customerID.Bytes(), flight.From, flight.To, flight.Date.UTC()).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormOrderRepository) ListByParticipant(ctx context.Context, userID kernel.UUID) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where("customer_id = ? OR agent_id = ?", userID.Bytes(), userID.Bytes()).
		Order("order_date DESC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}
	return toDomainList(dtos)
}

func (r *GormOrderRepository) ListAll(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).Order("order_date DESC").Find(&dtos).Error; err != nil {
		return nil, err
	}
	return toDomainList(dtos)
}

func (r *GormOrderRepository) missOrConflict(ctx context.Context, id kernel.UUID) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", id.Bytes()).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("order", id.String())
	}
	return errs.NewVersionIsInvalidError("order")
}

func toDomainList(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}
