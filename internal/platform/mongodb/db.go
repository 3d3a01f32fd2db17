package mongodb

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/phrazzld/crm-api/internal/config"
	"github.com/phrazzld/crm-api/internal/store"
)

// Collection names.
const (
	usersCollection   = "users"
	clientsCollection = "clients"
	tasksCollection   = "tasks"
)

const connectTimeout = 10 * time.Second

// DB is an explicit handle on the MongoDB connection. It is safe for
// concurrent use; the driver maintains its own connection pool.
type DB struct {
	client *mongo.Client
	db     *mongo.Database
	closed atomic.Bool
	logger *slog.Logger
}

// Connect establishes the MongoDB connection and verifies it with a
// ping. The returned handle stays valid until Close is called.
func Connect(ctx context.Context, cfg config.MongoConfig, logger *slog.Logger) (*DB, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	logger.Info("mongodb connected", "database", cfg.Database)

	return &DB{
		client: client,
		db:     client.Database(cfg.Database),
		logger: logger.With(slog.String("component", "mongodb")),
	}, nil
}

// Close tears the connection down. The handle is invalid afterwards;
// subsequent store operations fail with store.ErrNotConnected.
func (d *DB) Close(ctx context.Context) error {
	if d.closed.Swap(true) {
		return nil
	}
	d.logger.Info("mongodb disconnected")
	return d.client.Disconnect(ctx)
}

// collection returns the named collection or store.ErrNotConnected when
// the handle has been closed.
func (d *DB) collection(name string) (*mongo.Collection, error) {
	if d.closed.Load() {
		return nil, store.ErrNotConnected
	}
	return d.db.Collection(name), nil
}
