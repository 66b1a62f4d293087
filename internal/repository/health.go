package repository

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/internal/apiclient"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/internal/schema"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/pkg/model"
	"go.uber.org/zap"
)

// HealthRepository talks to the /health prediction endpoints
type HealthRepository struct {
	client    *apiclient.Client
	validator *schema.Validator
	logger    *zap.Logger
}

// NewHealthRepository creates a new HealthRepository
func NewHealthRepository(client *apiclient.Client, validator *schema.Validator, logger *zap.Logger) *HealthRepository {
	return &HealthRepository{
		client:    client,
		validator: validator,
		logger:    logger,
	}
}

// CreatePrediction submits the advanced form
func (r *HealthRepository) CreatePrediction(ctx context.Context, req *model.PredictionRequest) (*model.HealthPrediction, error) {
	return r.predict(ctx, "/health/predict", req)
}

// CreateSimplePrediction submits the reduced form
func (r *HealthRepository) CreateSimplePrediction(ctx context.Context, req *model.SimplePredictionRequest) (*model.HealthPrediction, error) {
	return r.predict(ctx, "/health/predict-simple", req)
}

func (r *HealthRepository) predict(ctx context.Context, path string, req any) (*model.HealthPrediction, error) {
	body, err := r.client.Post(ctx, path, req)
	if err != nil {
		return nil, err
	}

	var prediction model.HealthPrediction
	if err := decodeResponse(r.validator, r.logger, path, schema.HealthPrediction, body, &prediction); err != nil {
		return nil, err
	}

	r.logger.Info("prediction created",
		zap.Int64("prediction_id", prediction.ID),
		zap.String("risk_level", string(prediction.RiskLevel)),
	)

	return &prediction, nil
}

// GetPredictions lists the user's predictions, newest first as ordered by the backend
func (r *HealthRepository) GetPredictions(ctx context.Context, skip, limit int) ([]model.HealthPrediction, error) {
	query := url.Values{}
	query.Set("skip", strconv.Itoa(skip))
	query.Set("limit", strconv.Itoa(limit))

	body, err := r.client.Get(ctx, "/health/predictions", query)
	if err != nil {
		return nil, err
	}

	var predictions []model.HealthPrediction
	if err := decodeResponse(r.validator, r.logger, "/health/predictions", schema.HealthPredictionList, body, &predictions); err != nil {
		return nil, err
	}
	return predictions, nil
}

// GetPrediction fetches a single prediction
func (r *HealthRepository) GetPrediction(ctx context.Context, id int64) (*model.HealthPrediction, error) {
	path := fmt.Sprintf("/health/predictions/%d", id)

	body, err := r.client.Get(ctx, path, nil)
	if err != nil {
		return nil, err
	}

	var prediction model.HealthPrediction
	if err := decodeResponse(r.validator, r.logger, path, schema.HealthPrediction, body, &prediction); err != nil {
		return nil, err
	}
	return &prediction, nil
}

// GetStats fetches the aggregate statistics of the user's predictions
func (r *HealthRepository) GetStats(ctx context.Context) (*model.HealthStats, error) {
	body, err := r.client.Get(ctx, "/health/stats", nil)
	if err != nil {
		return nil, err
	}

	var stats model.HealthStats
	if err := decodeResponse(r.validator, r.logger, "/health/stats", schema.HealthStats, body, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
