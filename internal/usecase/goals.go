package usecase

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/oapi-codegen/runtime/types"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/pkg/model"
	"go.uber.org/zap"
)

// MaxGoalTitleLength bounds goal titles
const MaxGoalTitleLength = 100

func validateGoal(goal *model.HealthGoal) error {
	if goal.UserID <= 0 {
		return required("user_id", "user ID")
	}
	if !goal.Type.Valid() {
		return invalid("type", "invalid goal type: %s", goal.Type)
	}
	title := strings.TrimSpace(goal.Title)
	if title == "" {
		return required("title", "title")
	}
	if len([]rune(title)) > MaxGoalTitleLength {
		return invalid("title", "title must be at most %d characters", MaxGoalTitleLength)
	}
	if math.IsNaN(goal.TargetValue) || math.IsInf(goal.TargetValue, 0) || goal.TargetValue <= 0 {
		return invalid("target_value", "target value must be greater than 0")
	}
	if goal.CurrentValue < 0 || math.IsNaN(goal.CurrentValue) {
		return invalid("current_value", "current value must not be negative")
	}
	if strings.TrimSpace(goal.Unit) == "" {
		return required("unit", "unit")
	}
	if goal.Status != "" && !goal.Status.Valid() {
		return invalid("status", "invalid goal status: %s", goal.Status)
	}
	if !goal.TargetDate.Time.IsZero() && !goal.StartDate.Time.IsZero() && !goal.TargetDate.Time.After(goal.StartDate.Time) {
		return invalid("target_date", "target date must be after start date")
	}
	return nil
}

// CreateHealthGoal starts tracking a new goal
type CreateHealthGoal struct {
	repo   GoalRepository
	now    func() time.Time
	logger *zap.Logger
}

// NewCreateHealthGoal creates a new CreateHealthGoal use-case
func NewCreateHealthGoal(repo GoalRepository, logger *zap.Logger) *CreateHealthGoal {
	return &CreateHealthGoal{repo: repo, now: time.Now, logger: logger}
}

// Execute validates the goal, fills defaults (status active, start date today) and stores it
func (uc *CreateHealthGoal) Execute(ctx context.Context, goal *model.HealthGoal) (*model.HealthGoal, error) {
	if goal == nil {
		return nil, required("goal", "goal")
	}
	uc.applyDefaults(goal)
	if err := validateGoal(goal); err != nil {
		return nil, err
	}

	if err := uc.repo.Create(ctx, goal); err != nil {
		return nil, err
	}

	uc.logger.Info("goal created",
		zap.String("goal_id", goal.ID),
		zap.Int64("user_id", goal.UserID),
	)
	return goal, nil
}

// applyDefaults sets a missing start date to today and a missing status to active
func (uc *CreateHealthGoal) applyDefaults(goal *model.HealthGoal) {
	if goal.StartDate.Time.IsZero() {
		now := uc.now().UTC()
		goal.StartDate = types.Date{Time: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)}
	}
	if goal.Status == "" {
		goal.Status = model.GoalStatusActive
	}
}

// GetUserGoals lists a user's goals
type GetUserGoals struct {
	repo   GoalRepository
	logger *zap.Logger
}

// NewGetUserGoals creates a new GetUserGoals use-case
func NewGetUserGoals(repo GoalRepository, logger *zap.Logger) *GetUserGoals {
	return &GetUserGoals{repo: repo, logger: logger}
}

// Execute lists the goals
func (uc *GetUserGoals) Execute(ctx context.Context, userID int64) ([]model.HealthGoal, error) {
	if userID <= 0 {
		return nil, required("user_id", "user ID")
	}
	goals, err := uc.repo.GetUserGoals(ctx, userID)
	if err != nil {
		return nil, err
	}
	uc.logger.Debug("goals loaded", zap.Int64("user_id", userID), zap.Int("count", len(goals)))
	return goals, nil
}

// UpdateGoalProgressInput sets the current value of a goal
type UpdateGoalProgressInput struct {
	GoalID       string
	CurrentValue float64
}

// UpdateGoalProgress records progress towards a goal
type UpdateGoalProgress struct {
	repo   GoalRepository
	logger *zap.Logger
}

// NewUpdateGoalProgress creates a new UpdateGoalProgress use-case
func NewUpdateGoalProgress(repo GoalRepository, logger *zap.Logger) *UpdateGoalProgress {
	return &UpdateGoalProgress{repo: repo, logger: logger}
}

// Execute stores the new value; an active goal that reaches its target becomes completed
func (uc *UpdateGoalProgress) Execute(ctx context.Context, in UpdateGoalProgressInput) (*model.HealthGoal, error) {
	if in.GoalID == "" {
		return nil, required("goal_id", "goal ID")
	}
	if math.IsNaN(in.CurrentValue) || math.IsInf(in.CurrentValue, 0) || in.CurrentValue < 0 {
		return nil, invalid("current_value", "current value must not be negative")
	}

	goal, err := uc.repo.UpdateProgress(ctx, in.GoalID, in.CurrentValue)
	if err != nil {
		return nil, err
	}

	if goal.Status == model.GoalStatusCompleted {
		uc.logger.Info("goal completed", zap.String("goal_id", goal.ID))
	}
	return goal, nil
}

// UpdateGoalStatusInput changes a goal's lifecycle state
type UpdateGoalStatusInput struct {
	GoalID string
	Status model.GoalStatus
}

// UpdateGoalStatus pauses, resumes, completes or cancels a goal
type UpdateGoalStatus struct {
	repo   GoalRepository
	logger *zap.Logger
}

// NewUpdateGoalStatus creates a new UpdateGoalStatus use-case
func NewUpdateGoalStatus(repo GoalRepository, logger *zap.Logger) *UpdateGoalStatus {
	return &UpdateGoalStatus{repo: repo, logger: logger}
}

// Execute validates the status and applies it
func (uc *UpdateGoalStatus) Execute(ctx context.Context, in UpdateGoalStatusInput) (*model.HealthGoal, error) {
	if in.GoalID == "" {
		return nil, required("goal_id", "goal ID")
	}
	if !in.Status.Valid() {
		return nil, invalid("status", "invalid goal status: %s", in.Status)
	}
	goal, err := uc.repo.UpdateStatus(ctx, in.GoalID, in.Status)
	if err != nil {
		return nil, err
	}
	uc.logger.Info("goal status changed", zap.String("goal_id", in.GoalID), zap.String("status", string(in.Status)))
	return goal, nil
}

// DeleteGoal removes a goal
type DeleteGoal struct {
	repo   GoalRepository
	logger *zap.Logger
}

// NewDeleteGoal creates a new DeleteGoal use-case
func NewDeleteGoal(repo GoalRepository, logger *zap.Logger) *DeleteGoal {
	return &DeleteGoal{repo: repo, logger: logger}
}

// Execute deletes the goal
func (uc *DeleteGoal) Execute(ctx context.Context, goalID string) error {
	if goalID == "" {
		return required("goal_id", "goal ID")
	}
	if err := uc.repo.Delete(ctx, goalID); err != nil {
		return err
	}
	uc.logger.Info("goal deleted", zap.String("goal_id", goalID))
	return nil
}
