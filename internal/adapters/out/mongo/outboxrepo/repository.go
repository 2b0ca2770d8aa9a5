// Package outboxrepo keeps order events in the order_events collection until
// the relay job publishes them.
package outboxrepo

import (
	"context"
	"time"

	"travelagency/internal/core/domain/model/kernel"
	"travelagency/internal/core/ports"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "order_events"

type EventDocument struct {
	ID          string     `bson:"_id"`
	Type        string     `bson:"type"`
	AggregateID string     `bson:"aggregateId"`
	Payload     string     `bson:"payload"`
	OccurredAt  time.Time  `bson:"occurredAt"`
	PublishedAt *time.Time `bson:"publishedAt"`
}

// MongoOutboxRepository implements ports.OutboxRepository.
type MongoOutboxRepository struct {
	collection *mongo.Collection
	session    mongo.Session
}

func NewMongoOutboxRepository(db *mongo.Database, session mongo.Session) *MongoOutboxRepository {
	return &MongoOutboxRepository{
		collection: db.Collection(CollectionName),
		session:    session,
	}
}

func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(CollectionName).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "publishedAt", Value: 1}, {Key: "occurredAt", Value: 1}}},
		{Keys: bson.M{"aggregateId": 1}},
	})
	return err
}

func (r *MongoOutboxRepository) Append(ctx context.Context, messages ...ports.OutboxMessage) error {
	if len(messages) == 0 {
		return nil
	}

	docs := make([]any, 0, len(messages))
	for _, m := range messages {
		docs = append(docs, EventDocument{
			ID:          m.ID.String(),
			Type:        m.Type,
			AggregateID: m.AggregateID.String(),
			Payload:     string(m.Payload),
			OccurredAt:  m.OccurredAt.UTC(),
		})
	}

	_, err := r.collection.InsertMany(r.bind(ctx), docs)
	return err
}

func (r *MongoOutboxRepository) FetchPending(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	ctx = r.bind(ctx)
	opts := options.Find().
		SetSort(bson.D{{Key: "occurredAt", Value: 1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{"publishedAt": nil}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []EventDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	messages := make([]ports.OutboxMessage, 0, len(docs))
	for _, doc := range docs {
		id, convErr := kernel.UUIDFromString(doc.ID)
		if convErr != nil {
			return nil, convErr
		}
		aggregateID, convErr := kernel.UUIDFromString(doc.AggregateID)
		if convErr != nil {
			return nil, convErr
		}
		messages = append(messages, ports.OutboxMessage{
			ID:          id,
			Type:        doc.Type,
			AggregateID: aggregateID,
			Payload:     []byte(doc.Payload),
			OccurredAt:  doc.OccurredAt,
		})
	}
	return messages, nil
}

func (r *MongoOutboxRepository) MarkPublished(ctx context.Context, ids []kernel.UUID, publishedAt time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	raw := make(bson.A, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.String())
	}

	_, err := r.collection.UpdateMany(
		r.bind(ctx),
		bson.M{"_id": bson.M{"$in": raw}},
		bson.M{"$set": bson.M{"publishedAt": publishedAt.UTC()}},
	)
	return err
}

func (r *MongoOutboxRepository) bind(ctx context.Context) context.Context {
	if r.session == nil {
		return ctx
	}
	return mongo.NewSessionContext(ctx, r.session)
}
