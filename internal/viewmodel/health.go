package viewmodel

import (
	"context"

	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/internal/usecase"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/pkg/model"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultPageSize is the number of predictions loaded by Refresh
const DefaultPageSize = 20

// HealthUseCases are the actions behind HealthViewModel
type HealthUseCases struct {
	CreatePrediction       *usecase.CreatePrediction
	CreateSimplePrediction *usecase.CreateSimplePrediction
	GetPredictions         *usecase.GetPredictions
	GetPrediction          *usecase.GetPrediction
	GetHealthStats         *usecase.GetHealthStats
}

// HealthViewModel holds the prediction history, the selected prediction and the stats
type HealthViewModel struct {
	Predictions *Store[[]model.HealthPrediction]
	Selected    *Store[*model.HealthPrediction]
	Stats       *Store[*model.HealthStats]
	uc          HealthUseCases
	logger      *zap.Logger
}

// NewHealthViewModel creates a new HealthViewModel
func NewHealthViewModel(uc HealthUseCases, logger *zap.Logger) *HealthViewModel {
	return &HealthViewModel{
		Predictions: NewStore[[]model.HealthPrediction](nil),
		Selected:    NewStore[*model.HealthPrediction](nil),
		Stats:       NewStore[*model.HealthStats](nil),
		uc:          uc,
		logger:      logger,
	}
}

// LoadPredictions replaces the history with one page from the backend
func (vm *HealthViewModel) LoadPredictions(ctx context.Context, in usecase.GetPredictionsInput) ([]model.HealthPrediction, error) {
	return load(vm.Predictions, func() ([]model.HealthPrediction, error) {
		return vm.uc.GetPredictions.Execute(ctx, in)
	})
}

// CreatePrediction submits the full form; the result is prepended to the history and selected
func (vm *HealthViewModel) CreatePrediction(ctx context.Context, req *model.PredictionRequest) (*model.HealthPrediction, error) {
	return vm.addPrediction(func() (*model.HealthPrediction, error) {
		return vm.uc.CreatePrediction.Execute(ctx, req)
	})
}

// CreateSimplePrediction submits the reduced form; the result is prepended to the history and selected
func (vm *HealthViewModel) CreateSimplePrediction(ctx context.Context, req *model.SimplePredictionRequest) (*model.HealthPrediction, error) {
	return vm.addPrediction(func() (*model.HealthPrediction, error) {
		return vm.uc.CreateSimplePrediction.Execute(ctx, req)
	})
}

func (vm *HealthViewModel) addPrediction(create func() (*model.HealthPrediction, error)) (*model.HealthPrediction, error) {
	p, err := mutate(vm.Predictions, create, func(cur []model.HealthPrediction, p *model.HealthPrediction) []model.HealthPrediction {
		return prepend(cur, *p)
	})
	if err == nil {
		t := vm.Selected.begin(true)
		vm.Selected.finish(t, nil, replaceWith(p))
	}
	return p, err
}

// SelectPrediction loads one prediction by id
func (vm *HealthViewModel) SelectPrediction(ctx context.Context, id int64) (*model.HealthPrediction, error) {
	return load(vm.Selected, func() (*model.HealthPrediction, error) {
		return vm.uc.GetPrediction.Execute(ctx, id)
	})
}

// LoadStats loads the aggregate statistics
func (vm *HealthViewModel) LoadStats(ctx context.Context) (*model.HealthStats, error) {
	return load(vm.Stats, func() (*model.HealthStats, error) {
		return vm.uc.GetHealthStats.Execute(ctx)
	})
}

// Refresh reloads the first page of predictions and the stats concurrently.
// Both loads run to completion; the first error is returned.
func (vm *HealthViewModel) Refresh(ctx context.Context) error {
	var g errgroup.Group

	g.Go(func() error {
		_, err := vm.LoadPredictions(ctx, usecase.GetPredictionsInput{Skip: 0, Limit: DefaultPageSize})
		return err
	})
	g.Go(func() error {
		_, err := vm.LoadStats(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		vm.logger.Warn("health refresh failed", zap.Error(err))
		return err
	}
	return nil
}
