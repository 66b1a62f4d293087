// Package privacy implements the on-device data portability and erasure operations.
package privacy

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/internal/audit"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/internal/repository"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/internal/session"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/internal/storage"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/pkg/model"
	"go.uber.org/zap"
)

// Bundle is everything the device holds about a user
type Bundle struct {
	UserID       int64               `json:"user_id"`
	Profile      *model.UserProfile  `json:"profile"`
	Goals        []model.HealthGoal  `json:"goals"`
	Logs         []model.HealthLog   `json:"logs"`
	MoodCheckIns []model.MoodCheckIn `json:"mood_checkins"`
	AuditTrail   []audit.Entry       `json:"audit_trail"`
	ExportedAt   time.Time           `json:"exported_at"`
}

// Service exports and erases local data
type Service struct {
	store    storage.KeyValueStore
	tokens   session.TokenStore
	goals    *repository.GoalRepository
	logs     *repository.LogRepository
	profiles *repository.ProfileRepository
	moods    *repository.MoodRepository
	audit    *audit.Logger
	now      func() time.Time
	logger   *zap.Logger
}

// NewService creates a new privacy service over the local store
func NewService(store storage.KeyValueStore, tokens session.TokenStore, auditLogger *audit.Logger, logger *zap.Logger) *Service {
	return &Service{
		store:    store,
		tokens:   tokens,
		goals:    repository.NewGoalRepository(store, logger),
		logs:     repository.NewLogRepository(store, logger),
		profiles: repository.NewProfileRepository(store, logger),
		moods:    repository.NewMoodRepository(store, logger),
		audit:    auditLogger,
		now:      time.Now,
		logger:   logger,
	}
}

// Export serializes the user's local data as indented JSON
func (s *Service) Export(ctx context.Context, userID int64) ([]byte, error) {
	s.logger.Info("starting local data export", zap.Int64("user_id", userID))

	bundle := Bundle{
		UserID:     userID,
		ExportedAt: s.now().UTC(),
	}

	profile, err := s.profiles.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	// the profile slot is device wide; only export it when it belongs to the user
	if profile != nil && profile.UserID == userID {
		bundle.Profile = profile
	}

	if bundle.Goals, err = s.goals.GetUserGoals(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to get goals: %w", err)
	}
	if bundle.Logs, err = s.logs.GetUserLogs(ctx, userID, model.LogFilter{}); err != nil {
		return nil, fmt.Errorf("failed to get health logs: %w", err)
	}
	if bundle.MoodCheckIns, err = s.moods.GetUserCheckIns(ctx, userID, time.Time{}, time.Time{}); err != nil {
		return nil, fmt.Errorf("failed to get mood check-ins: %w", err)
	}
	bundle.AuditTrail = s.audit.Entries(ctx, userID, 0)

	data, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal export data: %w", err)
	}

	if err := s.audit.LogExport(ctx, userID, audit.ResourceLocalData, ""); err != nil {
		s.logger.Error("failed to log audit entry for data export", zap.Error(err))
	}

	s.logger.Info("local data export completed",
		zap.Int64("user_id", userID),
		zap.Int("goals", len(bundle.Goals)),
		zap.Int("logs", len(bundle.Logs)),
		zap.Int("mood_checkins", len(bundle.MoodCheckIns)),
		zap.Int("size_bytes", len(data)),
	)
	return data, nil
}

// Erase deletes every local health data slot and the stored session token.
// The audit trail is kept and records the erasure.
func (s *Service) Erase(ctx context.Context, userID int64) error {
	s.logger.Info("starting local data erasure", zap.Int64("user_id", userID))

	for _, key := range storage.LocalDataKeys {
		if err := storage.NewJSONSlot[json.RawMessage](s.store, key, s.logger).Clear(ctx); err != nil {
			return fmt.Errorf("failed to erase local data: %w", err)
		}
	}

	if err := s.tokens.ClearToken(ctx); err != nil {
		return fmt.Errorf("failed to clear session token: %w", err)
	}

	if err := s.audit.LogDelete(ctx, userID, audit.ResourceLocalData, map[string]string{
		"slots": fmt.Sprint(len(storage.LocalDataKeys)),
	}); err != nil {
		s.logger.Error("failed to log audit entry for data erasure", zap.Error(err))
	}

	s.logger.Info("local data erasure completed", zap.Int64("user_id", userID))
	return nil
}
