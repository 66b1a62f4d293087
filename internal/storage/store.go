package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key holds no value
var ErrNotFound = errors.New("storage: key not found")

// KeyValueStore is a string key-value port for small on-device blobs
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Slot keys used by the local repositories
const (
	KeyAuthToken    = "@auth_token"
	KeyGoals        = "@health_goals"
	KeyLogs         = "@health_logs"
	KeyProfile      = "@user_profile"
	KeyMoodCheckIns = "@mood_checkins"
	KeyAuditTrail   = "@audit_trail"
)

// LocalDataKeys lists every slot holding user health data
var LocalDataKeys = []string{KeyGoals, KeyLogs, KeyProfile, KeyMoodCheckIns}

// prefixedStore namespaces every key of an underlying store
type prefixedStore struct {
	inner  KeyValueStore
	prefix string
}

// WithPrefix namespaces keys, letting several profiles share one backend
func WithPrefix(store KeyValueStore, prefix string) KeyValueStore {
	if prefix == "" {
		return store
	}
	return &prefixedStore{inner: store, prefix: prefix}
}

func (p *prefixedStore) Get(ctx context.Context, key string) (string, error) {
	return p.inner.Get(ctx, p.prefix+key)
}

func (p *prefixedStore) Set(ctx context.Context, key, value string) error {
	return p.inner.Set(ctx, p.prefix+key, value)
}

func (p *prefixedStore) Delete(ctx context.Context, key string) error {
	return p.inner.Delete(ctx, p.prefix+key)
}
