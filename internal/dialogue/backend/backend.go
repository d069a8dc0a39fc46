// Package backend assembles the configured dialogue store and its decorator
// chain for the server and CLI.
package backend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"parley/internal/dialogue/models"
	"parley/internal/dialogue/serializer"
	"parley/internal/dialogue/storage"
	"parley/internal/platform/config"
	"parley/internal/platform/metrics"
	"parley/internal/platform/redis"
	"parley/internal/platform/sqldb"
)

// Store is the dialogue storage type served by parley.
type Store = storage.Storage[models.State]

// closerFunc adapts a function to io.Closer.
type closerFunc func() error

func (f closerFunc) Close() error { return f() }

var noopCloser = closerFunc(func() error { return nil })

// New builds the configured backend, wraps it in the instrumented decorator
// and, when enabled, the trace decorator (outermost). The closer releases the
// backend's client, pool or file.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger, m *metrics.Metrics) (Store, io.Closer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}
	codec, err := serializer.ByName[models.State](cfg.Storage.Serializer)
	if err != nil {
		return nil, nil, err
	}

	base, closer, err := open(ctx, cfg, codec)
	if err != nil {
		return nil, nil, err
	}
	logger.InfoContext(ctx, "dialogue storage ready",
		"backend", cfg.Storage.Backend,
		"serializer", cfg.Storage.Serializer,
		"trace", cfg.Storage.Trace,
	)

	var store Store = storage.NewInstrumented[models.State](base, m)
	if cfg.Storage.Trace {
		store = storage.NewTrace[models.State](store,
			storage.WithTraceLogger(logger.With("component", "dialogue_storage")),
		)
	}
	return store, closer, nil
}

func open(ctx context.Context, cfg config.Config, codec serializer.Serializer[models.State]) (Store, io.Closer, error) {
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		return storage.NewMemory[models.State](), noopCloser, nil

	case config.BackendRedis:
		client, err := redis.New(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		if client == nil {
			return nil, nil, errors.New("redis backend selected but REDIS_URL is empty")
		}
		return storage.NewRedis[models.State](client.Client, codec), client, nil

	case config.BackendPostgres:
		return openSQL(ctx, sqldb.DriverPostgres, cfg.Storage.DatabaseURL, storage.Postgres, codec)

	case config.BackendSQLite:
		return openSQL(ctx, sqldb.DriverSQLite, sqldb.SQLiteDSN(cfg.Storage.SQLitePath), storage.SQLite, codec)

	case config.BackendBolt:
		store, err := storage.OpenBolt[models.State](cfg.Storage.BoltPath, codec)
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

func openSQL(ctx context.Context, driver, dsn string, dialect storage.Dialect, codec serializer.Serializer[models.State]) (Store, io.Closer, error) {
	db, err := sqldb.Open(ctx, driver, dsn)
	if err != nil {
		return nil, nil, err
	}
	store, err := storage.NewSQL[models.State](db, dialect, codec)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	if err := store.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return store, db, nil
}
