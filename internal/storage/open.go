package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/internal/config"
	"go.uber.org/zap"
)

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// Open builds the configured key-value store. The returned closer releases its connections.
func Open(ctx context.Context, cfg config.StorageConfig, logger *zap.Logger) (KeyValueStore, io.Closer, error) {
	var (
		store  KeyValueStore
		closer io.Closer
	)

	switch cfg.Driver {
	case config.DriverMemory:
		store = NewMemoryStore()
		closer = closerFunc(func() error { return nil })

	case config.DriverSQLite:
		s, err := NewSQLiteStore(cfg.SQLitePath, logger)
		if err != nil {
			return nil, nil, err
		}
		store, closer = s, s

	case config.DriverRedis:
		s, err := NewRedisStore(ctx, cfg.RedisURL, logger)
		if err != nil {
			return nil, nil, err
		}
		store, closer = s, s

	case config.DriverPostgres:
		pool, err := pgxpool.New(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("failed to ping database: %w", err)
		}
		s := NewPostgresStore(pool, logger)
		if err := s.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		store = s
		closer = closerFunc(func() error { pool.Close(); return nil })

	default:
		return nil, nil, fmt.Errorf("unknown storage driver: %q", cfg.Driver)
	}

	logger.Info("slot store opened", zap.String("driver", cfg.Driver))

	return WithPrefix(store, cfg.KeyPrefix), closer, nil
}
