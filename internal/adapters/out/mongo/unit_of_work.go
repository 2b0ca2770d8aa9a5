// Package mongo provides the MongoDB implementation of the unit of work.
//
// A unit of work owns one client session with a multi-document transaction,
// which requires a replica set. Repositories handed out after Begin join the
// session; Commit writes the recorded order events to order_events inside the
// same transaction.
package mongo

import (
	"context"
	"errors"

	"travelagency/internal/adapters/out/events"
	"travelagency/internal/adapters/out/mongo/orderrepo"
	"travelagency/internal/adapters/out/mongo/outboxrepo"
	"travelagency/internal/adapters/out/mongo/userrepo"
	"travelagency/internal/core/domain/model/kernel"
	"travelagency/internal/core/domain/model/order"
	"travelagency/internal/core/ports"

	"go.mongodb.org/mongo-driver/mongo"
)

var ErrNoTransaction = errors.New("mongo unit of work: no transaction in progress")

type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

type MongoUnitOfWorkFactory struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewMongoUnitOfWorkFactory(client *mongo.Client, db *mongo.Database) *MongoUnitOfWorkFactory {
	return &MongoUnitOfWorkFactory{client: client, db: db}
}

func (f *MongoUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &MongoUnitOfWork{
		client: f.client,
		db:     f.db,
	}
}

// MongoUnitOfWork coordinates one session transaction.
type MongoUnitOfWork struct {
	client            *mongo.Client
	db                *mongo.Database
	session           mongo.Session
	trackedAggregates []trackedAggregate
}

// Begin starts a session and its transaction. Calling it twice is a no-op.
func (uow *MongoUnitOfWork) Begin(ctx context.Context) error {
	if uow.session != nil {
		return nil
	}

	session, err := uow.client.StartSession()
	if err != nil {
		return err
	}
	if err = session.StartTransaction(); err != nil {
		session.EndSession(ctx)
		return err
	}

	uow.session = session
	return nil
}

// Commit stores the pending order events and commits. Events are cleared
// from the aggregates only after a successful commit.
func (uow *MongoUnitOfWork) Commit(ctx context.Context) error {
	if uow.session == nil {
		return ErrNoTransaction
	}

	orders := uow.trackedOrders()
	messages, err := events.EncodeOrderEvents(orders...)
	if err != nil {
		return err
	}

	if err = outboxrepo.NewMongoOutboxRepository(uow.db, uow.session).Append(ctx, messages...); err != nil {
		return err
	}

	session := uow.session
	err = session.CommitTransaction(mongo.NewSessionContext(ctx, session))
	session.EndSession(ctx)
	uow.session = nil
	if err != nil {
		uow.trackedAggregates = uow.trackedAggregates[:0]
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
func (uow *MongoUnitOfWork) Rollback(ctx context.Context) error {
	if uow.session == nil {
		return nil
	}

	session := uow.session
	err := session.AbortTransaction(mongo.NewSessionContext(ctx, session))
	session.EndSession(ctx)
	uow.session = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

func (uow *MongoUnitOfWork) UserRepository() ports.UserRepository {
	return userrepo.NewMongoUserRepository(uow.db, uow.session)
}

func (uow *MongoUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewMongoOrderRepository(uow.db, uow.session, uow)
}

// TrackAggregate registers an aggregate written within this unit of work.
func (uow *MongoUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
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

func (uow *MongoUnitOfWork) trackedOrders() []*order.Order {
	orders := make([]*order.Order, 0, len(uow.trackedAggregates))
	for _, tracked := range uow.trackedAggregates {
		if o, ok := tracked.Aggregate.(*order.Order); ok {
			orders = append(orders, o)
		}
	}
	return orders
}
