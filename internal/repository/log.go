package repository

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/internal/storage"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/pkg/model"
	"go.uber.org/zap"
)

// LogRepository keeps logged data points in the @health_logs slot
type LogRepository struct {
	slot   *storage.JSONSlot[[]model.HealthLog]
	logger *zap.Logger
}

// NewLogRepository creates a new LogRepository
func NewLogRepository(store storage.KeyValueStore, logger *zap.Logger) *LogRepository {
	return &LogRepository{
		slot:   storage.NewJSONSlot[[]model.HealthLog](store, storage.KeyLogs, logger),
		logger: logger,
	}
}

// Create appends a log entry, assigning an id and timestamp when missing
func (r *LogRepository) Create(ctx context.Context, entry *model.HealthLog) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.LoggedAt.IsZero() {
		entry.LoggedAt = time.Now().UTC()
	}

	err := r.slot.Update(ctx, func(logs []model.HealthLog, _ bool) ([]model.HealthLog, error) {
		return append(logs, *entry), nil
	})
	if err != nil {
		return fmt.Errorf("failed to save health log: %w", err)
	}

	r.logger.Debug("health log created",
		zap.String("log_id", entry.ID),
		zap.Int64("user_id", entry.UserID),
		zap.String("type", string(entry.Type)),
	)
	return nil
}

// GetUserLogs returns the user's logs matching filter, most recent first
func (r *LogRepository) GetUserLogs(ctx context.Context, userID int64, filter model.LogFilter) ([]model.HealthLog, error) {
	logs, _ := r.slot.Load(ctx)

	result := make([]model.HealthLog, 0, len(logs))
	for i := range logs {
		if logs[i].UserID == userID && filter.Matches(&logs[i]) {
			result = append(result, logs[i])
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].LoggedAt.After(result[j].LoggedAt)
	})
	return result, nil
}

// GetLatest returns the most recent log of the given type
func (r *LogRepository) GetLatest(ctx context.Context, userID int64, logType model.LogType) (*model.HealthLog, error) {
	logs, err := r.GetUserLogs(ctx, userID, model.LogFilter{Type: logType})
	if err != nil {
		return nil, err
	}
	if len(logs) == 0 {
		return nil, fmt.Errorf("%s log %w", logType, ErrNotFound)
	}
	return &logs[0], nil
}

// Delete removes a log entry
func (r *LogRepository) Delete(ctx context.Context, id string) error {
	return r.slot.Update(ctx, func(logs []model.HealthLog, _ bool) ([]model.HealthLog, error) {
		for i := range logs {
			if logs[i].ID == id {
				return append(logs[:i], logs[i+1:]...), nil
			}
		}
		return nil, fmt.Errorf("health log %s %w", id, ErrNotFound)
	})
}
