package userrepo

import (
	"context"
	"errors"
	"strings"

	"travelagency/internal/core/domain/model/kernel"
	"travelagency/internal/core/domain/model/user"
	"travelagency/internal/pkg/errs"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoUserRepository implements ports.UserRepository.
type MongoUserRepository struct {
	collection *mongo.Collection
	session    mongo.Session
}

func NewMongoUserRepository(db *mongo.Database, session mongo.Session) *MongoUserRepository {
	return &MongoUserRepository{
		collection: db.Collection(CollectionName),
		session:    session,
	}
}

// EnsureIndexes creates the unique email and phone indexes.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(CollectionName).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.M{"email": 1},
			Options: options.Index().SetUnique(true).SetName("uniq_email"),
		},
		{
			Keys:    bson.M{"phone": 1},
			Options: options.Index().SetUnique(true).SetName("uniq_phone"),
		},
	})
	return err
}

func (r *MongoUserRepository) Add(ctx context.Context, aggregate *user.User) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	doc := fromDomain(aggregate)
	doc.Version = 1
	if _, err := r.collection.InsertOne(r.bind(ctx), doc); err != nil {
		return translateWriteError(err)
	}

	aggregate.MarkPersisted(doc.Version)
	return nil
}

// Update replaces the document only if the stored version still matches.
func (r *MongoUserRepository) Update(ctx context.Context, aggregate *user.User) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	ctx = r.bind(ctx)
	doc := fromDomain(aggregate)
	expected := doc.Version
	doc.Version = expected + 1

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": doc.ID, "version": expected}, doc)
	if err != nil {
		return translateWriteError(err)
	}

	if result.MatchedCount == 0 {
		count, countErr := r.collection.CountDocuments(ctx, bson.M{"_id": doc.ID})
		if countErr != nil {
			return countErr
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("user", doc.ID)
		}
		return errs.NewVersionIsInvalidError("user")
	}

	aggregate.MarkPersisted(doc.Version)
	return nil
}

func (r *MongoUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": id.String()}, id.String())
}

func (r *MongoUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.findOne(ctx, bson.M{"email": email}, email)
}

func (r *MongoUserRepository) GetByPhone(ctx context.Context, phone string) (*user.User, error) {
	phone = strings.TrimSpace(phone)
	return r.findOne(ctx, bson.M{"phone": phone}, phone)
}

func (r *MongoUserRepository) Delete(ctx context.Context, id kernel.UUID) error {
	result, err := r.collection.DeleteOne(r.bind(ctx), bson.M{"_id": id.String()})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return errs.NewObjectNotFoundError("user", id.String())
	}
	return nil
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M, key string) (*user.User, error) {
	var doc UserDocument
	err := r.collection.FindOne(r.bind(ctx), filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errs.NewObjectNotFoundError("user", key)
	}
	if err != nil {
		return nil, err
	}
	return toDomain(doc)
}

func (r *MongoUserRepository) bind(ctx context.Context) context.Context {
	if r.session == nil {
		return ctx
	}
	return mongo.NewSessionContext(ctx, r.session)
}

func translateWriteError(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return errs.NewAlreadyExistsError("user", "")
	}
	return err
}
