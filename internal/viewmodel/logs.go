package viewmodel

import (
	"context"

	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/internal/usecase"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/pkg/model"
	"go.uber.org/zap"
)

// LogsUseCases are the actions behind LogsViewModel
type LogsUseCases struct {
	LogHealthData *usecase.LogHealthData
	GetUserLogs   *usecase.GetUserLogs
	DeleteLog     *usecase.DeleteLog
}

// LogsViewModel holds logged data points, most recent first
type LogsViewModel struct {
	*Store[[]model.HealthLog]
	uc     LogsUseCases
	logger *zap.Logger
}

// NewLogsViewModel creates a new LogsViewModel
func NewLogsViewModel(uc LogsUseCases, logger *zap.Logger) *LogsViewModel {
	return &LogsViewModel{
		Store:  NewStore[[]model.HealthLog](nil),
		uc:     uc,
		logger: logger,
	}
}

// Load replaces the list with the logs matching in
func (vm *LogsViewModel) Load(ctx context.Context, in usecase.GetUserLogsInput) ([]model.HealthLog, error) {
	return load(vm.Store, func() ([]model.HealthLog, error) {
		return vm.uc.GetUserLogs.Execute(ctx, in)
	})
}

// Log records a data point and puts it on top of the list
func (vm *LogsViewModel) Log(ctx context.Context, entry *model.HealthLog) (*model.HealthLog, error) {
	return mutate(vm.Store, func() (*model.HealthLog, error) {
		return vm.uc.LogHealthData.Execute(ctx, entry)
	}, func(cur []model.HealthLog, l *model.HealthLog) []model.HealthLog {
		return prepend(cur, *l)
	})
}

// Delete removes a data point
func (vm *LogsViewModel) Delete(ctx context.Context, logID string) error {
	_, err := mutate(vm.Store, func() (struct{}, error) {
		return struct{}{}, vm.uc.DeleteLog.Execute(ctx, logID)
	}, func(cur []model.HealthLog, _ struct{}) []model.HealthLog {
		return removeWhere(cur, func(l model.HealthLog) bool { return l.ID == logID })
	})
	return err
}
