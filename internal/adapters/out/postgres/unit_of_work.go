// Package postgres provides the GORM implementation of the unit of work.
//
// A unit of work wraps one database transaction. Repositories handed out by
// it run inside that transaction and report every order they write; Commit
// turns the recorded domain events of those orders into order_events rows
// before committing, so an order change and its events are stored
// atomically.
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.OrderRepository().Update(ctx, o); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
package postgres

import (
	"context"

	"travelagency/internal/adapters/out/events"
	"travelagency/internal/adapters/out/postgres/orderrepo"
	"travelagency/internal/adapters/out/postgres/outboxrepo"
	"travelagency/internal/adapters/out/postgres/userrepo"
	"travelagency/internal/core/domain/model/kernel"
	"travelagency/internal/core/domain/model/order"
	"travelagency/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate is an aggregate written during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates a fresh unit of work per business operation.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one transaction and tracks the aggregates
// written through its repositories.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin starts the transaction. Calling it twice is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit stores the pending order events and commits. Events are cleared
// from the aggregates only after a successful commit.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	orders := uow.trackedOrders()
	messages, err := events.EncodeOrderEvents(orders...)
	if err != nil {
		return err
	}

	if err = outboxrepo.NewGormOutboxRepository(uow.tx).Append(ctx, messages...); err != nil {
		return err
	}

	err = uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		return err
	}

	for _, o := range orders {
		o.ClearDomainEvents()
	}
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return nil
}

// Rollback aborts the transaction. After Commit or a previous Rollback it
// does nothing.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return nil
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

func (uow *GormUnitOfWork) UserRepository() ports.UserRepository {
	return userrepo.NewGormUserRepository(uow.conn())
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

// TrackAggregate registers an aggregate written within this unit of work.
// Writing the same aggregate twice tracks it once.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	for _, tracked := range uow.trackedAggregates {
		if tracked.ID.IsEqual(id) {
			return
		}
	}
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) trackedOrders() []*order.Order {
	orders := make([]*order.Order, 0, len(uow.trackedAggregates))
	for _, tracked := range uow.trackedAggregates {
		if o, ok := tracked.Aggregate.(*order.Order); ok {
			orders = append(orders, o)
		}
	}
	return orders
}
