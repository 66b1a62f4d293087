package viewmodel

import (
	"context"

	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/internal/usecase"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/pkg/model"
	"go.uber.org/zap"
)

// GoalsUseCases are the actions behind GoalsViewModel
type GoalsUseCases struct {
	Create         *usecase.CreateHealthGoal
	GetUserGoals   *usecase.GetUserGoals
	UpdateProgress *usecase.UpdateGoalProgress
	UpdateStatus   *usecase.UpdateGoalStatus
	Delete         *usecase.DeleteGoal
}

// GoalsViewModel holds the user's goals
type GoalsViewModel struct {
	*Store[[]model.HealthGoal]
	uc     GoalsUseCases
	logger *zap.Logger
}

// NewGoalsViewModel creates a new GoalsViewModel
func NewGoalsViewModel(uc GoalsUseCases, logger *zap.Logger) *GoalsViewModel {
	return &GoalsViewModel{
		Store:  NewStore[[]model.HealthGoal](nil),
		uc:     uc,
		logger: logger,
	}
}

// Load replaces the list with the stored goals
func (vm *GoalsViewModel) Load(ctx context.Context, userID int64) ([]model.HealthGoal, error) {
	return load(vm.Store, func() ([]model.HealthGoal, error) {
		return vm.uc.GetUserGoals.Execute(ctx, userID)
	})
}

// Create adds a goal
func (vm *GoalsViewModel) Create(ctx context.Context, goal *model.HealthGoal) (*model.HealthGoal, error) {
	return mutate(vm.Store, func() (*model.HealthGoal, error) {
		return vm.uc.Create.Execute(ctx, goal)
	}, func(cur []model.HealthGoal, g *model.HealthGoal) []model.HealthGoal {
		return appendCopy(cur, *g)
	})
}

// UpdateProgress records progress on a goal
func (vm *GoalsViewModel) UpdateProgress(ctx context.Context, goalID string, current float64) (*model.HealthGoal, error) {
	return mutate(vm.Store, func() (*model.HealthGoal, error) {
		return vm.uc.UpdateProgress.Execute(ctx, usecase.UpdateGoalProgressInput{GoalID: goalID, CurrentValue: current})
	}, vm.replaceGoal)
}

// UpdateStatus pauses, resumes, completes or cancels a goal
func (vm *GoalsViewModel) UpdateStatus(ctx context.Context, goalID string, status model.GoalStatus) (*model.HealthGoal, error) {
	return mutate(vm.Store, func() (*model.HealthGoal, error) {
		return vm.uc.UpdateStatus.Execute(ctx, usecase.UpdateGoalStatusInput{GoalID: goalID, Status: status})
	}, vm.replaceGoal)
}

// Delete removes a goal
func (vm *GoalsViewModel) Delete(ctx context.Context, goalID string) error {
	_, err := mutate(vm.Store, func() (struct{}, error) {
		return struct{}{}, vm.uc.Delete.Execute(ctx, goalID)
	}, func(cur []model.HealthGoal, _ struct{}) []model.HealthGoal {
		return removeWhere(cur, func(g model.HealthGoal) bool { return g.ID == goalID })
	})
	return err
}

func (vm *GoalsViewModel) replaceGoal(cur []model.HealthGoal, g *model.HealthGoal) []model.HealthGoal {
	return replaceWhere(cur, *g, func(e model.HealthGoal) bool { return e.ID == g.ID })
}
