package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

type lockKey struct {
	store KeyValueStore
	key   string
}

// slotLocks holds one mutex per (store, key) so every JSONSlot over the same
// slot serializes its read-modify-write cycles.
var slotLocks sync.Map

func lockFor(store KeyValueStore, key string) *sync.Mutex {
	m, _ := slotLocks.LoadOrStore(lockKey{store: store, key: key}, &sync.Mutex{})
	return m.(*sync.Mutex)
}

// JSONSlot stores one JSON-serialized value (a collection or an object) under a fixed key
type JSONSlot[T any] struct {
	store  KeyValueStore
	key    string
	mu     *sync.Mutex
	logger *zap.Logger
}

// NewJSONSlot binds a typed slot to key in store
func NewJSONSlot[T any](store KeyValueStore, key string, logger *zap.Logger) *JSONSlot[T] {
	return &JSONSlot[T]{
		store:  store,
		key:    key,
		mu:     lockFor(store, key),
		logger: logger,
	}
}

// Key returns the slot key
func (s *JSONSlot[T]) Key() string {
	return s.key
}

// Load returns the stored value. An empty slot, a read failure or a parse failure
// all yield the zero value and false; failures are logged, not returned.
func (s *JSONSlot[T]) Load(ctx context.Context) (T, bool) {
	v, ok, err := s.read(ctx)
	if err != nil {
		s.logger.Error("failed to read slot, treating as empty", zap.Error(err), zap.String("key", s.key))
	}
	return v, ok
}

// Save overwrites the slot with v
func (s *JSONSlot[T]) Save(ctx context.Context, v T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.write(ctx, v)
}

// Update runs a read-modify-write cycle while holding the slot lock.
// fn receives the current value (zero value and false when the slot is empty or unparsable).
// A store read failure aborts the update so a transient error cannot wipe the slot.
func (s *JSONSlot[T]) Update(ctx context.Context, fn func(current T, ok bool) (T, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok, err := s.read(ctx)
	if err != nil {
		var perr *parseError
		if !errors.As(err, &perr) {
			return err
		}
		s.logger.Warn("slot held unparsable data, starting from empty", zap.Error(err), zap.String("key", s.key))
	}

	next, err := fn(current, ok)
	if err != nil {
		return err
	}

	return s.write(ctx, next)
}

// Clear removes the slot
func (s *JSONSlot[T]) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("failed to clear slot %s: %w", s.key, err)
	}
	return nil
}

type parseError struct {
	key string
	err error
}

func (e *parseError) Error() string {
	return fmt.Sprintf("failed to parse slot %s: %v", e.key, e.err)
}

func (e *parseError) Unwrap() error {
	return e.err
}

func (s *JSONSlot[T]) read(ctx context.Context) (T, bool, error) {
	var zero T

	raw, err := s.store.Get(ctx, s.key)
	if errors.Is(err, ErrNotFound) {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, fmt.Errorf("failed to read slot %s: %w", s.key, err)
	}
	if raw == "" {
		return zero, false, nil
	}

	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return zero, false, &parseError{key: s.key, err: err}
	}
	return v, true, nil
}

func (s *JSONSlot[T]) write(ctx context.Context, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to serialize slot %s: %w", s.key, err)
	}

	if err := s.store.Set(ctx, s.key, string(data)); err != nil {
		s.logger.Error("failed to write slot", zap.Error(err), zap.String("key", s.key))
		return fmt.Errorf("failed to write slot %s: %w", s.key, err)
	}
	return nil
}
