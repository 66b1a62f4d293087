package usecase

import (
	"context"
	"time"

	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/pkg/model"
	"go.uber.org/zap"
)

const (
	MinMoodScale, MaxMoodScale = 1, 5
	MaxSleepHours              = 24.0
)

func validateCheckIn(c *model.MoodCheckIn) error {
	if c.UserID <= 0 {
		return required("user_id", "user ID")
	}
	if !c.Mood.Valid() {
		return invalid("mood", "invalid mood: must be great, good, okay, low, or bad")
	}
	return firstViolation(
		checkIntRange("energy_level", "energy level", c.EnergyLevel, MinMoodScale, MaxMoodScale),
		checkIntRange("stress_level", "stress level", c.StressLevel, MinMoodScale, MaxMoodScale),
		checkRange("sleep_hours", "sleep hours", c.SleepHours, 0, MaxSleepHours),
	)
}

// RecordMoodCheckIn stores a daily mood check-in
type RecordMoodCheckIn struct {
	repo   MoodRepository
	now    func() time.Time
	logger *zap.Logger
}

// NewRecordMoodCheckIn creates a new RecordMoodCheckIn use-case
func NewRecordMoodCheckIn(repo MoodRepository, logger *zap.Logger) *RecordMoodCheckIn {
	return &RecordMoodCheckIn{repo: repo, now: time.Now, logger: logger}
}

// Execute validates and stores the check-in
func (uc *RecordMoodCheckIn) Execute(ctx context.Context, checkIn *model.MoodCheckIn) (*model.MoodCheckIn, error) {
	if checkIn == nil {
		return nil, required("checkin", "check-in")
	}
	if err := validateCheckIn(checkIn); err != nil {
		return nil, err
	}
	if checkIn.CheckedInAt.IsZero() {
		checkIn.CheckedInAt = uc.now().UTC()
	}

	if err := uc.repo.Create(ctx, checkIn); err != nil {
		return nil, err
	}

	uc.logger.Info("mood check-in recorded",
		zap.String("checkin_id", checkIn.ID),
		zap.Int64("user_id", checkIn.UserID),
	)
	return checkIn, nil
}

// GetMoodHistoryInput selects check-ins of one user; zero bounds are open
type GetMoodHistoryInput struct {
	UserID int64
	From   time.Time
	To     time.Time
}

// GetMoodHistory lists past check-ins
type GetMoodHistory struct {
	repo   MoodRepository
	logger *zap.Logger
}

// NewGetMoodHistory creates a new GetMoodHistory use-case
func NewGetMoodHistory(repo MoodRepository, logger *zap.Logger) *GetMoodHistory {
	return &GetMoodHistory{repo: repo, logger: logger}
}

// Execute validates the range and lists check-ins, most recent first
func (uc *GetMoodHistory) Execute(ctx context.Context, in GetMoodHistoryInput) ([]model.MoodCheckIn, error) {
	if in.UserID <= 0 {
		return nil, required("user_id", "user ID")
	}
	if !in.From.IsZero() && !in.To.IsZero() && in.From.After(in.To) {
		return nil, invalid("from", "start of range must not be after its end")
	}
	history, err := uc.repo.GetUserCheckIns(ctx, in.UserID, in.From, in.To)
	if err != nil {
		return nil, err
	}
	uc.logger.Debug("mood history loaded", zap.Int64("user_id", in.UserID), zap.Int("count", len(history)))
	return history, nil
}
