package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/internal/storage"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/pkg/model"
	"go.uber.org/zap"
)

// GoalRepository keeps health goals in the @health_goals slot
type GoalRepository struct {
	slot   *storage.JSONSlot[[]model.HealthGoal]
	logger *zap.Logger
}

// NewGoalRepository creates a new GoalRepository
func NewGoalRepository(store storage.KeyValueStore, logger *zap.Logger) *GoalRepository {
	return &GoalRepository{
		slot:   storage.NewJSONSlot[[]model.HealthGoal](store, storage.KeyGoals, logger),
		logger: logger,
	}
}

// Create appends a goal, assigning an id when it has none
func (r *GoalRepository) Create(ctx context.Context, goal *model.HealthGoal) error {
	if goal.ID == "" {
		goal.ID = uuid.New().String()
	}

	err := r.slot.Update(ctx, func(goals []model.HealthGoal, _ bool) ([]model.HealthGoal, error) {
		return append(goals, *goal), nil
	})
	if err != nil {
		return fmt.Errorf("failed to save goal: %w", err)
	}

	r.logger.Debug("goal created",
		zap.String("goal_id", goal.ID),
		zap.Int64("user_id", goal.UserID),
		zap.String("type", string(goal.Type)),
	)
	return nil
}

// GetUserGoals returns the user's goals in creation order
func (r *GoalRepository) GetUserGoals(ctx context.Context, userID int64) ([]model.HealthGoal, error) {
	goals, _ := r.slot.Load(ctx)

	result := make([]model.HealthGoal, 0, len(goals))
	for _, g := range goals {
		if g.UserID == userID {
			result = append(result, g)
		}
	}
	return result, nil
}

// GetByID returns one goal
func (r *GoalRepository) GetByID(ctx context.Context, id string) (*model.HealthGoal, error) {
	goals, _ := r.slot.Load(ctx)

	for i := range goals {
		if goals[i].ID == id {
			return &goals[i], nil
		}
	}
	return nil, fmt.Errorf("goal %s %w", id, ErrNotFound)
}

// Update replaces a stored goal
func (r *GoalRepository) Update(ctx context.Context, goal *model.HealthGoal) error {
	_, err := r.modify(ctx, goal.ID, func(g *model.HealthGoal) {
		*g = *goal
	})
	return err
}

// UpdateProgress sets the current value and marks the goal completed once it reaches the target
func (r *GoalRepository) UpdateProgress(ctx context.Context, id string, current float64) (*model.HealthGoal, error) {
	return r.modify(ctx, id, func(g *model.HealthGoal) {
		g.CurrentValue = current
		if g.Status == model.GoalStatusActive && g.CurrentValue >= g.TargetValue {
			g.Status = model.GoalStatusCompleted
		}
	})
}

// UpdateStatus changes the lifecycle state of a goal
func (r *GoalRepository) UpdateStatus(ctx context.Context, id string, status model.GoalStatus) (*model.HealthGoal, error) {
	return r.modify(ctx, id, func(g *model.HealthGoal) {
		g.Status = status
	})
}

func (r *GoalRepository) modify(ctx context.Context, id string, fn func(*model.HealthGoal)) (*model.HealthGoal, error) {
	var updated *model.HealthGoal

	err := r.slot.Update(ctx, func(goals []model.HealthGoal, _ bool) ([]model.HealthGoal, error) {
		for i := range goals {
			if goals[i].ID == id {
				fn(&goals[i])
				g := goals[i]
				updated = &g
				return goals, nil
			}
		}
		return nil, fmt.Errorf("goal %s %w", id, ErrNotFound)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a goal
func (r *GoalRepository) Delete(ctx context.Context, id string) error {
	return r.slot.Update(ctx, func(goals []model.HealthGoal, _ bool) ([]model.HealthGoal, error) {
		for i := range goals {
			if goals[i].ID == id {
				return append(goals[:i], goals[i+1:]...), nil
			}
		}
		return nil, fmt.Errorf("goal %s %w", id, ErrNotFound)
	})
}
