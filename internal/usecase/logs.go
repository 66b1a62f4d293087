package usecase

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/pkg/model"
	"go.uber.org/zap"
)

type valueRange struct {
	label  string
	lo, hi float64
}

// logRanges holds the plausible value range per log type
var logRanges = map[model.LogType]valueRange{
	model.LogTypeWeight:        {label: "weight", lo: 10, hi: 300},
	model.LogTypeHeartRate:     {label: "heart rate", lo: 30, hi: 220},
	model.LogTypeBloodPressure: {label: "systolic", lo: 70, hi: 250},
	model.LogTypeSteps:         {label: "steps", lo: 0, hi: 100000},
	model.LogTypeSleep:         {label: "sleep hours", lo: 0, hi: 24},
	model.LogTypeWaterIntake:   {label: "water intake", lo: 0, hi: 10000},
	model.LogTypeExercise:      {label: "exercise minutes", lo: 0, hi: 1440},
	model.LogTypeMedication:    {label: "medication dose", lo: 0, hi: math.MaxFloat64},
}

func validateLog(entry *model.HealthLog) error {
	if entry.UserID <= 0 {
		return required("user_id", "user ID")
	}
	if !entry.Type.Valid() {
		return invalid("type", "invalid log type: %s", entry.Type)
	}

	r := logRanges[entry.Type]
	if math.IsNaN(entry.Value) || math.IsInf(entry.Value, 0) {
		return invalid("value", "value must be a finite number")
	}
	if entry.Type == model.LogTypeMedication {
		if entry.Value < 0 {
			return invalid("value", "invalid %s value: must not be negative", r.label)
		}
	} else if err := checkRange("value", r.label, entry.Value, r.lo, r.hi); err != nil {
		return err
	}

	if entry.Type == model.LogTypeBloodPressure {
		if entry.SecondaryValue == nil {
			return required("secondary_value", "diastolic value")
		}
		if err := checkRange("secondary_value", "diastolic", *entry.SecondaryValue, MinDiastolic, MaxDiastolic); err != nil {
			return err
		}
	}

	if strings.TrimSpace(entry.Unit) == "" {
		return required("unit", "unit")
	}
	return nil
}

// LogHealthData records a data point
type LogHealthData struct {
	repo   LogRepository
	now    func() time.Time
	logger *zap.Logger
}

// NewLogHealthData creates a new LogHealthData use-case
func NewLogHealthData(repo LogRepository, logger *zap.Logger) *LogHealthData {
	return &LogHealthData{repo: repo, now: time.Now, logger: logger}
}

// Execute validates the entry against its type's range and stores it
func (uc *LogHealthData) Execute(ctx context.Context, entry *model.HealthLog) (*model.HealthLog, error) {
	if entry == nil {
		return nil, required("log", "health log")
	}
	if err := validateLog(entry); err != nil {
		return nil, err
	}
	if entry.LoggedAt.IsZero() {
		entry.LoggedAt = uc.now().UTC()
	}

	if err := uc.repo.Create(ctx, entry); err != nil {
		return nil, err
	}

	uc.logger.Info("health data logged",
		zap.String("log_id", entry.ID),
		zap.Int64("user_id", entry.UserID),
		zap.String("type", string(entry.Type)),
	)
	return entry, nil
}

// GetUserLogsInput selects logs of one user
type GetUserLogsInput struct {
	UserID int64
	Filter model.LogFilter
}

// GetUserLogs queries logged data
type GetUserLogs struct {
	repo   LogRepository
	logger *zap.Logger
}

// NewGetUserLogs creates a new GetUserLogs use-case
func NewGetUserLogs(repo LogRepository, logger *zap.Logger) *GetUserLogs {
	return &GetUserLogs{repo: repo, logger: logger}
}

// Execute validates the query and returns matching logs, most recent first
func (uc *GetUserLogs) Execute(ctx context.Context, in GetUserLogsInput) ([]model.HealthLog, error) {
	if in.UserID <= 0 {
		return nil, required("user_id", "user ID")
	}
	if in.Filter.Type != "" && !in.Filter.Type.Valid() {
		return nil, invalid("type", "invalid log type: %s", in.Filter.Type)
	}
	if !in.Filter.From.IsZero() && !in.Filter.To.IsZero() && in.Filter.From.After(in.Filter.To) {
		return nil, invalid("from", "start of range must not be after its end")
	}
	logs, err := uc.repo.GetUserLogs(ctx, in.UserID, in.Filter)
	if err != nil {
		return nil, err
	}
	uc.logger.Debug("health logs loaded", zap.Int64("user_id", in.UserID), zap.Int("count", len(logs)))
	return logs, nil
}

// DeleteLog removes a data point
type DeleteLog struct {
	repo   LogRepository
	logger *zap.Logger
}

// NewDeleteLog creates a new DeleteLog use-case
func NewDeleteLog(repo LogRepository, logger *zap.Logger) *DeleteLog {
	return &DeleteLog{repo: repo, logger: logger}
}

// Execute deletes the log
func (uc *DeleteLog) Execute(ctx context.Context, logID string) error {
	if logID == "" {
		return required("log_id", "log ID")
	}
	if err := uc.repo.Delete(ctx, logID); err != nil {
		return err
	}
	uc.logger.Info("health log deleted", zap.String("log_id", logID))
	return nil
}
