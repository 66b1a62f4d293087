package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/internal/storage"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/pkg/model"
	"go.uber.org/zap"
)

// setupTestStore opens a sqlite-backed store in a temp directory
func setupTestStore(t *testing.T) (storage.KeyValueStore, func()) {
	store, err := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "repo.db"), zap.NewNop())
	require.NoError(t, err)

	cleanup := func() {
		if err := store.Close(); err != nil {
			t.Logf("failed to close store: %s", err)
		}
	}
	return store, cleanup
}

// Goal ids stay unique across many creates
func TestProperty_GoalIDsAreUnique(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	repo := NewGoalRepository(store, zap.NewNop())
	properties := gopter.NewProperties(nil)

	userID := int64(0)
	properties.Property("each created goal receives a unique ID", prop.ForAll(
		func(n int) bool {
			ctx := context.Background()
			userID++

			for i := 0; i < n; i++ {
				goal := &model.HealthGoal{
					UserID:      userID,
					Type:        model.GoalTypeSteps,
					Title:       "Walk",
					TargetValue: 10000,
					Unit:        "steps",
					Status:      model.GoalStatusActive,
				}
				if err := repo.Create(ctx, goal); err != nil {
					t.Logf("Failed to create goal: %v", err)
					return false
				}
			}

			goals, err := repo.GetUserGoals(ctx, userID)
			if err != nil {
				return false
			}

			ids := make(map[string]bool)
			for _, g := range goals {
				ids[g.ID] = true
			}
			return len(goals) == n && len(ids) == n
		},
		gen.IntRange(1, 10),
	))

	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 30
	properties.TestingRun(t, params)
}

// Updating a goal keeps its id and applies the new fields
func TestProperty_GoalUpdatePreservesID(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	repo := NewGoalRepository(store, zap.NewNop())
	properties := gopter.NewProperties(nil)

	properties.Property("goal ID is preserved after update", prop.ForAll(
		func(title, description string, target float64) bool {
			ctx := context.Background()

			goal := &model.HealthGoal{
				UserID:      1,
				Type:        model.GoalTypeCustom,
				Title:       title,
				TargetValue: target,
				Unit:        "units",
				Status:      model.GoalStatusActive,
			}
			if err := repo.Create(ctx, goal); err != nil {
				t.Logf("Failed to create goal: %v", err)
				return false
			}
			originalID := goal.ID

			goal.Description = description
			goal.Title = title + " (updated)"
			if err := repo.Update(ctx, goal); err != nil {
				t.Logf("Failed to update goal: %v", err)
				return false
			}

			retrieved, err := repo.GetByID(ctx, originalID)
			if err != nil {
				t.Logf("Failed to retrieve goal: %v", err)
				return false
			}

			return retrieved.ID == originalID &&
				retrieved.Title == title+" (updated)" &&
				retrieved.Description == description
		},
		gen.AlphaString().SuchThat(func(s string) bool { return len(s) > 0 && len(s) < 90 }),
		gen.AlphaString().SuchThat(func(s string) bool { return len(s) < 200 }),
		gen.Float64Range(1, 100000),
	))

	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 50
	properties.TestingRun(t, params)
}

// Deleted logs no longer appear in the user's list
func TestProperty_LogDeletionRemovesRecord(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	repo := NewLogRepository(store, zap.NewNop())
	properties := gopter.NewProperties(nil)

	properties.Property("deleted log does not appear in user's log list", prop.ForAll(
		func(value float64) bool {
			ctx := context.Background()

			entry := &model.HealthLog{UserID: 1, Type: model.LogTypeWaterIntake, Value: value, Unit: "ml"}
			if err := repo.Create(ctx, entry); err != nil {
				return false
			}

			if err := repo.Delete(ctx, entry.ID); err != nil {
				t.Logf("Failed to delete log: %v", err)
				return false
			}

			logs, err := repo.GetUserLogs(ctx, 1, model.LogFilter{})
			if err != nil {
				return false
			}
			for _, l := range logs {
				if l.ID == entry.ID {
					return false
				}
			}
			return true
		},
		gen.Float64Range(0, 10000),
	))

	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 50
	properties.TestingRun(t, params)
}
