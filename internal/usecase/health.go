package usecase

import (
	"context"

	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/pkg/model"
	"go.uber.org/zap"
)

// Physiological bounds accepted by the prediction forms
const (
	MinAge, MaxAge                     = 1, 120
	MinHeightCm, MaxHeightCm           = 50.0, 250.0
	MinWeightKg, MaxWeightKg           = 10.0, 300.0
	MinExerciseHours, MaxExerciseHours = 0.0, 168.0
	MinSystolic, MaxSystolic           = 70, 250
	MinDiastolic, MaxDiastolic         = 40, 150
	MinCholesterol, MaxCholesterol     = 50.0, 500.0
	MinGlucose, MaxGlucose             = 50.0, 500.0
	MaxPredictionsPageSize             = 100
)

func validateBiometrics(age int, heightCm, weightKg, exerciseHours float64) error {
	return firstViolation(
		checkIntRange("age", "age", age, MinAge, MaxAge),
		checkRange("height_cm", "height", heightCm, MinHeightCm, MaxHeightCm),
		checkRange("weight_kg", "weight", weightKg, MinWeightKg, MaxWeightKg),
		checkRange("exercise_hours_per_week", "exercise hours per week", exerciseHours, MinExerciseHours, MaxExerciseHours),
	)
}

func validateVitals(req *model.PredictionRequest) error {
	var checks []*ValidationError
	if req.SystolicBP != nil {
		checks = append(checks, checkIntRange("systolic_bp", "systolic", *req.SystolicBP, MinSystolic, MaxSystolic))
	}
	if req.DiastolicBP != nil {
		checks = append(checks, checkIntRange("diastolic_bp", "diastolic", *req.DiastolicBP, MinDiastolic, MaxDiastolic))
	}
	if req.Cholesterol != nil {
		checks = append(checks, checkRange("cholesterol", "cholesterol", *req.Cholesterol, MinCholesterol, MaxCholesterol))
	}
	if req.Glucose != nil {
		checks = append(checks, checkRange("glucose", "glucose", *req.Glucose, MinGlucose, MaxGlucose))
	}
	return firstViolation(checks...)
}

// CreatePrediction submits the advanced prediction form
type CreatePrediction struct {
	repo   HealthRepository
	logger *zap.Logger
}

// NewCreatePrediction creates a new CreatePrediction use-case
func NewCreatePrediction(repo HealthRepository, logger *zap.Logger) *CreatePrediction {
	return &CreatePrediction{repo: repo, logger: logger}
}

// Execute validates biometrics and optional vitals, then forwards the request unchanged
func (uc *CreatePrediction) Execute(ctx context.Context, req *model.PredictionRequest) (*model.HealthPrediction, error) {
	if req == nil {
		return nil, required("prediction", "prediction form")
	}
	if err := validateBiometrics(req.Age, req.HeightCm, req.WeightKg, req.ExerciseHoursPerWeek); err != nil {
		return nil, err
	}
	if err := validateVitals(req); err != nil {
		return nil, err
	}

	p, err := uc.repo.CreatePrediction(ctx, req)
	return logPrediction(uc.logger, p, err)
}

// CreateSimplePrediction submits the reduced prediction form
type CreateSimplePrediction struct {
	repo   HealthRepository
	logger *zap.Logger
}

// NewCreateSimplePrediction creates a new CreateSimplePrediction use-case
func NewCreateSimplePrediction(repo HealthRepository, logger *zap.Logger) *CreateSimplePrediction {
	return &CreateSimplePrediction{repo: repo, logger: logger}
}

// Execute validates biometrics and forwards the request unchanged
func (uc *CreateSimplePrediction) Execute(ctx context.Context, req *model.SimplePredictionRequest) (*model.HealthPrediction, error) {
	if req == nil {
		return nil, required("prediction", "prediction form")
	}
	if err := validateBiometrics(req.Age, req.HeightCm, req.WeightKg, req.ExerciseHoursPerWeek); err != nil {
		return nil, err
	}

	p, err := uc.repo.CreateSimplePrediction(ctx, req)
	return logPrediction(uc.logger, p, err)
}

func logPrediction(logger *zap.Logger, p *model.HealthPrediction, err error) (*model.HealthPrediction, error) {
	if err != nil {
		logger.Warn("prediction request failed", zap.Error(err))
		return nil, err
	}
	if p != nil {
		logger.Info("prediction created",
			zap.Int64("prediction_id", p.ID),
			zap.String("risk_level", string(p.RiskLevel)),
		)
	}
	return p, nil
}

// GetPredictionsInput pages through the prediction history
type GetPredictionsInput struct {
	Skip  int
	Limit int
}

// GetPredictions lists prediction history
type GetPredictions struct {
	repo   HealthRepository
	logger *zap.Logger
}

// NewGetPredictions creates a new GetPredictions use-case
func NewGetPredictions(repo HealthRepository, logger *zap.Logger) *GetPredictions {
	return &GetPredictions{repo: repo, logger: logger}
}

// Execute validates paging and lists predictions
func (uc *GetPredictions) Execute(ctx context.Context, in GetPredictionsInput) ([]model.HealthPrediction, error) {
	if in.Skip < 0 {
		return nil, invalid("skip", "skip must not be negative")
	}
	if err := checkIntRange("limit", "limit", in.Limit, 1, MaxPredictionsPageSize); err != nil {
		return nil, err
	}

	predictions, err := uc.repo.GetPredictions(ctx, in.Skip, in.Limit)
	if err != nil {
		return nil, err
	}
	uc.logger.Debug("predictions loaded", zap.Int("skip", in.Skip), zap.Int("count", len(predictions)))
	return predictions, nil
}

// GetPrediction fetches one prediction
type GetPrediction struct {
	repo   HealthRepository
	logger *zap.Logger
}

// NewGetPrediction creates a new GetPrediction use-case
func NewGetPrediction(repo HealthRepository, logger *zap.Logger) *GetPrediction {
	return &GetPrediction{repo: repo, logger: logger}
}

// Execute validates the id and fetches the prediction
func (uc *GetPrediction) Execute(ctx context.Context, id int64) (*model.HealthPrediction, error) {
	if id <= 0 {
		return nil, invalid("id", "invalid prediction ID")
	}

	p, err := uc.repo.GetPrediction(ctx, id)
	if err != nil {
		uc.logger.Debug("failed to fetch prediction", zap.Int64("prediction_id", id), zap.Error(err))
		return nil, err
	}
	return p, nil
}

// GetHealthStats fetches aggregate statistics
type GetHealthStats struct {
	repo   HealthRepository
	logger *zap.Logger
}

// NewGetHealthStats creates a new GetHealthStats use-case
func NewGetHealthStats(repo HealthRepository, logger *zap.Logger) *GetHealthStats {
	return &GetHealthStats{repo: repo, logger: logger}
}

// Execute fetches the stats
func (uc *GetHealthStats) Execute(ctx context.Context) (*model.HealthStats, error) {
	stats, err := uc.repo.GetStats(ctx)
	if err != nil {
		return nil, err
	}
	if stats != nil {
		uc.logger.Debug("health stats loaded", zap.Int("total_predictions", stats.TotalPredictions))
	}
	return stats, nil
}
