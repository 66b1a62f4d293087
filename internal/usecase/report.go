package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/internal/report"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/pkg/model"
	"go.uber.org/zap"
)

// ReportRenderer turns collected data into a document
type ReportRenderer interface {
	Generate(data *report.Data) ([]byte, error)
}

// ReportSink stores a rendered report and returns its location
type ReportSink interface {
	Upload(ctx context.Context, filename string, data []byte) (string, error)
}

// ExportHealthReportInput selects the report period; zero bounds are open
type ExportHealthReportInput struct {
	UserID   int64
	UserName string
	From     time.Time
	To       time.Time
}

// ExportHealthReportResult tells where the report went
type ExportHealthReportResult struct {
	Location  string
	Filename  string
	SizeBytes int
}

// ExportHealthReport collects remote and local data into a PDF summary
type ExportHealthReport struct {
	profiles ProfileRepository
	health   HealthRepository
	goals    GoalRepository
	logs     LogRepository
	moods    MoodRepository
	renderer ReportRenderer
	sink     ReportSink
	now      func() time.Time
	logger   *zap.Logger
}

// NewExportHealthReport creates a new ExportHealthReport use-case
func NewExportHealthReport(
	profiles ProfileRepository,
	health HealthRepository,
	goals GoalRepository,
	logs LogRepository,
	moods MoodRepository,
	renderer ReportRenderer,
	sink ReportSink,
	logger *zap.Logger,
) *ExportHealthReport {
	return &ExportHealthReport{
		profiles: profiles,
		health:   health,
		goals:    goals,
		logs:     logs,
		moods:    moods,
		renderer: renderer,
		sink:     sink,
		now:      time.Now,
		logger:   logger,
	}
}

// Execute gathers the data, renders it and hands it to the sink
func (uc *ExportHealthReport) Execute(ctx context.Context, in ExportHealthReportInput) (*ExportHealthReportResult, error) {
	if in.UserID <= 0 {
		return nil, required("user_id", "user ID")
	}
	if !in.From.IsZero() && !in.To.IsZero() && in.From.After(in.To) {
		return nil, invalid("from", "start of range must not be after its end")
	}

	data := &report.Data{
		UserName:  in.UserName,
		DateRange: dateRange(in.From, in.To),
	}

	profile, err := uc.profiles.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if profile != nil && profile.UserID != in.UserID {
		uc.logger.Warn("stored profile belongs to another user, leaving it out of the report",
			zap.Int64("user_id", in.UserID),
			zap.Int64("profile_user_id", profile.UserID),
		)
		profile = nil
	}
	data.Profile = profile

	predictions, err := uc.health.GetPredictions(ctx, 0, MaxPredictionsPageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to load predictions: %w", err)
	}
	data.Predictions = predictionsBetween(predictions, in.From, in.To)
	if data.Stats, err = uc.health.GetStats(ctx); err != nil {
		return nil, fmt.Errorf("failed to load health stats: %w", err)
	}
	if data.Goals, err = uc.goals.GetUserGoals(ctx, in.UserID); err != nil {
		return nil, fmt.Errorf("failed to load goals: %w", err)
	}
	if data.Logs, err = uc.logs.GetUserLogs(ctx, in.UserID, model.LogFilter{From: in.From, To: in.To}); err != nil {
		return nil, fmt.Errorf("failed to load health logs: %w", err)
	}
	if data.MoodCheckIns, err = uc.moods.GetUserCheckIns(ctx, in.UserID, in.From, in.To); err != nil {
		return nil, fmt.Errorf("failed to load mood check-ins: %w", err)
	}

	pdf, err := uc.renderer.Generate(data)
	if err != nil {
		return nil, err
	}

	filename := fmt.Sprintf("health-report-%d-%s.pdf", in.UserID, uc.now().UTC().Format("20060102-150405"))
	location, err := uc.sink.Upload(ctx, filename, pdf)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("health report exported",
		zap.Int64("user_id", in.UserID),
		zap.String("location", location),
		zap.Int("size_bytes", len(pdf)),
	)
	return &ExportHealthReportResult{Location: location, Filename: filename, SizeBytes: len(pdf)}, nil
}

// predictionsBetween keeps the predictions created inside [from, to]; zero bounds are open
func predictionsBetween(predictions []model.HealthPrediction, from, to time.Time) []model.HealthPrediction {
	if from.IsZero() && to.IsZero() {
		return predictions
	}
	result := make([]model.HealthPrediction, 0, len(predictions))
	for _, p := range predictions {
		if !from.IsZero() && p.CreatedAt.Before(from) {
			continue
		}
		if !to.IsZero() && p.CreatedAt.After(to) {
			continue
		}
		result = append(result, p)
	}
	return result
}

func dateRange(from, to time.Time) string {
	switch {
	case from.IsZero() && to.IsZero():
		return "all time"
	case from.IsZero():
		return "until " + to.Format(time.DateOnly)
	case to.IsZero():
		return "since " + from.Format(time.DateOnly)
	}
	return from.Format(time.DateOnly) + " to " + to.Format(time.DateOnly)
}
