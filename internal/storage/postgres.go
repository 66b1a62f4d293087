package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// PostgresStore keeps slots in a Postgres table
type PostgresStore struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// NewPostgresStore creates a store on an existing pool
func NewPostgresStore(db *pgxpool.Pool, logger *zap.Logger) *PostgresStore {
	return &PostgresStore{
		db:     db,
		logger: logger,
	}
}

// EnsureSchema creates the slot table if it does not exist
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS kv_slots (
			slot_key   TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`

	if _, err := s.db.Exec(ctx, query); err != nil {
		s.logger.Error("failed to create slot table", zap.Error(err))
		return fmt.Errorf("failed to create slot table: %w", err)
	}
	return nil
}

// Get returns the value stored under key
func (s *PostgresStore) Get(ctx context.Context, key string) (string, error) {
	query := `SELECT value FROM kv_slots WHERE slot_key = $1`

	var value string
	err := s.db.QueryRow(ctx, query, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		s.logger.Error("failed to read slot", zap.Error(err), zap.String("key", key))
		return "", fmt.Errorf("failed to read slot %s: %w", key, err)
	}
	return value, nil
}

// Set upserts value under key
func (s *PostgresStore) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO kv_slots (slot_key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (slot_key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`

	if _, err := s.db.Exec(ctx, query, key, value); err != nil {
		s.logger.Error("failed to write slot", zap.Error(err), zap.String("key", key))
		return fmt.Errorf("failed to write slot %s: %w", key, err)
	}
	return nil
}

// Delete removes key
func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM kv_slots WHERE slot_key = $1`

	if _, err := s.db.Exec(ctx, query, key); err != nil {
		s.logger.Error("failed to delete slot", zap.Error(err), zap.String("key", key))
		return fmt.Errorf("failed to delete slot %s: %w", key, err)
	}
	return nil
}
