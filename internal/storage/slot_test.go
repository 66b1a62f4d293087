package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type item struct {
	ID string `json:"id"`
}

// failingReadStore fails every Get with a transport error
type failingReadStore struct {
	*MemoryStore
}

func (s failingReadStore) Get(ctx context.Context, key string) (string, error) {
	return "", errors.New("connection reset")
}

func TestJSONSlot_LoadEmpty(t *testing.T) {
	slot := NewJSONSlot[[]item](NewMemoryStore(), KeyGoals, zap.NewNop())

	v, ok := slot.Load(context.Background())
	assert.False(t, ok)
	assert.Nil(t, v)
}

func TestJSONSlot_SaveLoad(t *testing.T) {
	ctx := context.Background()
	slot := NewJSONSlot[[]item](NewMemoryStore(), KeyGoals, zap.NewNop())

	require.NoError(t, slot.Save(ctx, []item{{ID: "a"}, {ID: "b"}}))

	v, ok := slot.Load(ctx)
	require.True(t, ok)
	assert.Equal(t, []item{{ID: "a"}, {ID: "b"}}, v)
}

func TestJSONSlot_ParseFailureIsLoggedAndTreatedAsEmpty(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Set(ctx, KeyLogs, "{not json"))

	core, logs := observer.New(zapcore.ErrorLevel)
	slot := NewJSONSlot[[]item](store, KeyLogs, zap.New(core))

	v, ok := slot.Load(ctx)
	assert.False(t, ok)
	assert.Empty(t, v)
	assert.Equal(t, 1, logs.FilterMessage("failed to read slot, treating as empty").Len())
}

func TestJSONSlot_UpdateStartsFromEmptyOnParseFailure(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Set(ctx, KeyLogs, "{not json"))
	slot := NewJSONSlot[[]item](store, KeyLogs, zap.NewNop())

	err := slot.Update(ctx, func(cur []item, ok bool) ([]item, error) {
		assert.False(t, ok)
		return append(cur, item{ID: "x"}), nil
	})
	require.NoError(t, err)

	v, ok := slot.Load(ctx)
	require.True(t, ok)
	assert.Equal(t, []item{{ID: "x"}}, v)
}

func TestJSONSlot_UpdateAbortsOnReadFailure(t *testing.T) {
	store := failingReadStore{NewMemoryStore()}
	slot := NewJSONSlot[[]item](store, KeyLogs, zap.NewNop())

	called := false
	err := slot.Update(context.Background(), func(cur []item, ok bool) ([]item, error) {
		called = true
		return cur, nil
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
	assert.False(t, called)
	assert.Empty(t, store.Keys())
}

func TestJSONSlot_WriteFailureIsReturned(t *testing.T) {
	store := NewMemoryStore()
	store.FailWrites = true
	slot := NewJSONSlot[[]item](store, KeyGoals, zap.NewNop())

	err := slot.Save(context.Background(), []item{{ID: "a"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write slot")
}

func TestJSONSlot_UpdateCallbackErrorLeavesSlotUntouched(t *testing.T) {
	ctx := context.Background()
	slot := NewJSONSlot[[]item](NewMemoryStore(), KeyGoals, zap.NewNop())
	require.NoError(t, slot.Save(ctx, []item{{ID: "a"}}))

	err := slot.Update(ctx, func(cur []item, ok bool) ([]item, error) {
		return nil, errors.New("goal not found")
	})
	require.Error(t, err)

	v, _ := slot.Load(ctx)
	assert.Equal(t, []item{{ID: "a"}}, v)
}

func TestJSONSlot_ConcurrentUpdatesAreNotLost(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	const writers = 50
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// separate slot values over the same store/key share one lock
			slot := NewJSONSlot[[]item](store, KeyLogs, zap.NewNop())
			err := slot.Update(ctx, func(cur []item, ok bool) ([]item, error) {
				return append(cur, item{ID: fmt.Sprintf("log-%d", i)}), nil
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	v, ok := NewJSONSlot[[]item](store, KeyLogs, zap.NewNop()).Load(ctx)
	require.True(t, ok)
	assert.Len(t, v, writers)
}

func TestJSONSlot_Clear(t *testing.T) {
	ctx := context.Background()
	slot := NewJSONSlot[map[string]int](NewMemoryStore(), KeyProfile, zap.NewNop())
	require.NoError(t, slot.Save(ctx, map[string]int{"age": 30}))
	require.NoError(t, slot.Clear(ctx))

	_, ok := slot.Load(ctx)
	assert.False(t, ok)
}
