package mongo

import (
	"context"
	"fmt"
	"time"

	"travelagency/internal/adapters/out/mongo/orderrepo"
	"travelagency/internal/adapters/out/mongo/outboxrepo"
	"travelagency/internal/adapters/out/mongo/userrepo"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const connectTimeout = 10 * time.Second

// Connect dials the deployment and pings the primary. Credentials are applied
// only when user is set.
func Connect(ctx context.Context, uri, user, password string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	opts := options.Client().ApplyURI(uri)
	if user != "" {
		opts.SetAuth(options.Credential{
			Username: user,
			Password: password,
		})
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err = client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return client, nil
}

// EnsureIndexes creates the unique and lookup indexes of every collection.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	if err := userrepo.EnsureIndexes(ctx, db); err != nil {
		return fmt.Errorf("users indexes: %w", err)
	}
	if err := orderrepo.EnsureIndexes(ctx, db); err != nil {
		return fmt.Errorf("orders indexes: %w", err)
	}
	if err := outboxrepo.EnsureIndexes(ctx, db); err != nil {
		return fmt.Errorf("order_events indexes: %w", err)
	}
	return nil
}
