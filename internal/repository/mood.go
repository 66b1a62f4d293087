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

// MoodRepository keeps mood check-ins in the @mood_checkins slot
type MoodRepository struct {
	slot   *storage.JSONSlot[[]model.MoodCheckIn]
	logger *zap.Logger
}

// NewMoodRepository creates a new MoodRepository
func NewMoodRepository(store storage.KeyValueStore, logger *zap.Logger) *MoodRepository {
	return &MoodRepository{
		slot:   storage.NewJSONSlot[[]model.MoodCheckIn](store, storage.KeyMoodCheckIns, logger),
		logger: logger,
	}
}

// Create appends a check-in
func (r *MoodRepository) Create(ctx context.Context, checkIn *model.MoodCheckIn) error {
	if checkIn.ID == "" {
		checkIn.ID = uuid.New().String()
	}
	if checkIn.CheckedInAt.IsZero() {
		checkIn.CheckedInAt = time.Now().UTC()
	}

	err := r.slot.Update(ctx, func(entries []model.MoodCheckIn, _ bool) ([]model.MoodCheckIn, error) {
		return append(entries, *checkIn), nil
	})
	if err != nil {
		return fmt.Errorf("failed to save mood check-in: %w", err)
	}

	r.logger.Debug("mood check-in recorded",
		zap.String("checkin_id", checkIn.ID),
		zap.Int64("user_id", checkIn.UserID),
		zap.String("mood", string(checkIn.Mood)),
	)
	return nil
}

// GetUserCheckIns returns the user's check-ins within [from, to], most recent first.
// Zero bounds are open.
func (r *MoodRepository) GetUserCheckIns(ctx context.Context, userID int64, from, to time.Time) ([]model.MoodCheckIn, error) {
	entries, _ := r.slot.Load(ctx)

	result := make([]model.MoodCheckIn, 0, len(entries))
	for _, e := range entries {
		if e.UserID != userID {
			continue
		}
		if !from.IsZero() && e.CheckedInAt.Before(from) {
			continue
		}
		if !to.IsZero() && e.CheckedInAt.After(to) {
			continue
		}
		result = append(result, e)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CheckedInAt.After(result[j].CheckedInAt)
	})
	return result, nil
}

// Delete removes a check-in
func (r *MoodRepository) Delete(ctx context.Context, id string) error {
	return r.slot.Update(ctx, func(entries []model.MoodCheckIn, _ bool) ([]model.MoodCheckIn, error) {
		for i := range entries {
			if entries[i].ID == id {
				return append(entries[:i], entries[i+1:]...), nil
			}
		}
		return nil, fmt.Errorf("mood check-in %s %w", id, ErrNotFound)
	})
}
