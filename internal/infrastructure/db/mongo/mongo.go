package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	defaultTimeout  = 10 * time.Second
	defaultDatabase = "task_system"
)

// Config holds the connection settings for the task store.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect opens a client against the task store and pings it before handing
// it out, so a bad URI fails at startup rather than on the first request.
// Zero-value Timeout and Database fall back to package defaults.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	name := cfg.Database
	if name == "" {
		name = defaultDatabase
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, client.Database(name), nil
}

// indexEnsurer is implemented by the repositories in this package that own
// collection indexes.
type indexEnsurer interface {
	EnsureIndexes(ctx context.Context) error
}

// EnsureIndexes builds the indexes of every given repository, stopping at the
// first failure. Run it once at startup, after Connect.
func EnsureIndexes(ctx context.Context, repos ...indexEnsurer) error {
	for _, repo := range repos {
		if err := repo.EnsureIndexes(ctx); err != nil {
			return fmt.Errorf("ensure indexes: %w", err)
		}
	}
	return nil
}
