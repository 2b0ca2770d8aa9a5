package orderrepo

import (
	"context"
	"errors"

	"travelagency/internal/core/domain/model/kernel"
	"travelagency/internal/core/domain/model/order"
	"travelagency/internal/pkg/errs"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// MongoOrderRepository implements ports.OrderRepository. When session is set
// every call joins its transaction.
type MongoOrderRepository struct {
	collection *mongo.Collection
	session    mongo.Session
	tracker    aggregateTracker
}

func NewMongoOrderRepository(db *mongo.Database, session mongo.Session, tracker aggregateTracker) *MongoOrderRepository {
	return &MongoOrderRepository{
		collection: db.Collection(CollectionName),
		session:    session,
		tracker:    tracker,
	}
}

// EnsureIndexes creates the duplicate-booking guard and the lookup indexes.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(CollectionName).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "customer.number", Value: 1},
				{Key: "flight.flightFrom", Value: 1},
				{Key: "flight.flightTo", Value: 1},
				{Key: "flight.flightDate", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("uniq_customer_flight"),
		},
		{Keys: bson.D{{Key: "agent.number", Value: 1}}},
		{Keys: bson.D{{Key: "orderDate", Value: -1}}},
	})
	return err
}

func (r *MongoOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	doc := fromDomain(aggregate)
	doc.Version = 1
	if _, err := r.collection.InsertOne(r.bind(ctx), doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errs.NewAlreadyExistsError("order", "")
		}
		return err
	}

	aggregate.MarkPersisted(doc.Version)
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update replaces the document only if the stored version still matches.
func (r *MongoOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	ctx = r.bind(ctx)
	doc := fromDomain(aggregate)
	expected := doc.Version
	doc.Version = expected + 1

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": doc.ID, "version": expected}, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errs.NewAlreadyExistsError("order", "")
		}
		return err
	}

	if result.MatchedCount == 0 {
		count, countErr := r.collection.CountDocuments(ctx, bson.M{"_id": doc.ID})
		if countErr != nil {
			return countErr
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("order", doc.ID)
		}
		return errs.NewVersionIsInvalidError("order")
	}

	aggregate.MarkPersisted(doc.Version)
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *MongoOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var doc OrderDocument
	err := r.collection.FindOne(r.bind(ctx), bson.M{"_id": id.String()}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	if err != nil {
		return nil, err
	}

	return toDomain(doc)
}

func (r *MongoOrderRepository) Delete(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result, err := r.collection.DeleteOne(r.bind(ctx), bson.M{"_id": aggregate.ID().String()})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *MongoOrderRepository) ExistsForCustomerFlight(ctx context.Context, customerID kernel.UUID, flight order.Flight) (bool, error) {
	count, err := r.collection.CountDocuments(r.bind(ctx), bson.M{
		"customer.number":   customerID.String(),
		"flight.flightFrom": flight.From,
		"flight.flightTo":   flight.To,
		"flight.flightDate": flight.Date.UTC(),
	}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *MongoOrderRepository) ListByParticipant(ctx context.Context, userID kernel.UUID) ([]*order.Order, error) {
	return r.find(ctx, bson.M{"$or": bson.A{
		bson.M{"customer.number": userID.String()},
		bson.M{"agent.number": userID.String()},
	}})
}

func (r *MongoOrderRepository) ListAll(ctx context.Context) ([]*order.Order, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoOrderRepository) find(ctx context.Context, filter bson.M) ([]*order.Order, error) {
	ctx = r.bind(ctx)
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "orderDate", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []OrderDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(docs))
	for _, doc := range docs {
		o, convErr := toDomain(doc)
		if convErr != nil {
			return nil, convErr
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (r *MongoOrderRepository) bind(ctx context.Context) context.Context {
	if r.session == nil {
		return ctx
	}
	return mongo.NewSessionContext(ctx, r.session)
}
