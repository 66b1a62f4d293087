package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/oapi-codegen/runtime/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/internal/mocks"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/pkg/model"
	"go.uber.org/zap"
)

func day(y int, m time.Month, d int) types.Date {
	return types.Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func validGoal() *model.HealthGoal {
	return &model.HealthGoal{
		UserID:      1,
		Type:        model.GoalTypeWeight,
		Title:       "Lose 5 kg",
		TargetValue: 5,
		Unit:        "kg",
		StartDate:   day(2024, 1, 1),
		TargetDate:  day(2024, 4, 1),
	}
}

func TestCreateHealthGoal_Validation(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(*model.HealthGoal)
		expectedField string
	}{
		{name: "missing user", mutate: func(g *model.HealthGoal) { g.UserID = 0 }, expectedField: "user_id"},
		{name: "unknown type", mutate: func(g *model.HealthGoal) { g.Type = "swimming" }, expectedField: "type"},
		{name: "missing title", mutate: func(g *model.HealthGoal) { g.Title = "  " }, expectedField: "title"},
		{name: "title too long", mutate: func(g *model.HealthGoal) { g.Title = strings.Repeat("t", 101) }, expectedField: "title"},
		{name: "zero target", mutate: func(g *model.HealthGoal) { g.TargetValue = 0 }, expectedField: "target_value"},
		{name: "negative current", mutate: func(g *model.HealthGoal) { g.CurrentValue = -1 }, expectedField: "current_value"},
		{name: "missing unit", mutate: func(g *model.HealthGoal) { g.Unit = "" }, expectedField: "unit"},
		{name: "unknown status", mutate: func(g *model.HealthGoal) { g.Status = "archived" }, expectedField: "status"},
		{name: "target before start", mutate: func(g *model.HealthGoal) { g.TargetDate = day(2023, 12, 31) }, expectedField: "target_date"},
		{name: "target equals start", mutate: func(g *model.HealthGoal) { g.TargetDate = g.StartDate }, expectedField: "target_date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockGoalRepository)
			goal := validGoal()
			tt.mutate(goal)

			_, err := NewCreateHealthGoal(repo, zap.NewNop()).Execute(context.Background(), goal)

			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tt.expectedField, vErr.Field)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateHealthGoal_AppliesDefaults(t *testing.T) {
	repo := new(mocks.MockGoalRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	uc := NewCreateHealthGoal(repo, zap.NewNop())
	uc.now = func() time.Time { return time.Date(2024, 2, 10, 15, 30, 0, 0, time.UTC) }

	goal := validGoal()
	goal.StartDate = types.Date{}

	created, err := uc.Execute(context.Background(), goal)
	require.NoError(t, err)
	assert.Equal(t, model.GoalStatusActive, created.Status)
	assert.Equal(t, day(2024, 2, 10), created.StartDate)
	assert.Equal(t, 0.0, created.CurrentValue)
	repo.AssertExpectations(t)
}

func TestUpdateGoalProgress(t *testing.T) {
	repo := new(mocks.MockGoalRepository)
	completed := &model.HealthGoal{ID: "g1", TargetValue: 10, CurrentValue: 10, Status: model.GoalStatusCompleted}
	repo.On("UpdateProgress", mock.Anything, "g1", 10.0).Return(completed, nil)
	uc := NewUpdateGoalProgress(repo, zap.NewNop())

	got, err := uc.Execute(context.Background(), UpdateGoalProgressInput{GoalID: "g1", CurrentValue: 10})
	require.NoError(t, err)
	assert.Equal(t, model.GoalStatusCompleted, got.Status)

	_, err = uc.Execute(context.Background(), UpdateGoalProgressInput{GoalID: "g1", CurrentValue: -1})
	assert.True(t, IsValidationError(err))

	_, err = uc.Execute(context.Background(), UpdateGoalProgressInput{CurrentValue: 1})
	assert.True(t, IsValidationError(err))

	repo.AssertNumberOfCalls(t, "UpdateProgress", 1)
}

func TestUpdateGoalStatus_RejectsUnknownStatus(t *testing.T) {
	repo := new(mocks.MockGoalRepository)
	uc := NewUpdateGoalStatus(repo, zap.NewNop())

	_, err := uc.Execute(context.Background(), UpdateGoalStatusInput{GoalID: "g1", Status: "done"})
	assert.True(t, IsValidationError(err))
	repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetUserGoalsAndDelete(t *testing.T) {
	repo := new(mocks.MockGoalRepository)
	repo.On("GetUserGoals", mock.Anything, int64(1)).Return([]model.HealthGoal{{ID: "g1"}}, nil)
	repo.On("Delete", mock.Anything, "g1").Return(nil)

	goals, err := NewGetUserGoals(repo, zap.NewNop()).Execute(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, goals, 1)

	require.NoError(t, NewDeleteGoal(repo, zap.NewNop()).Execute(context.Background(), "g1"))
	assert.True(t, IsValidationError(NewDeleteGoal(repo, zap.NewNop()).Execute(context.Background(), "")))
}
