package viewmodel

import (
	"context"

	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/internal/usecase"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/pkg/model"
	"go.uber.org/zap"
)

// MoodUseCases are the actions behind MoodViewModel
type MoodUseCases struct {
	Record     *usecase.RecordMoodCheckIn
	GetHistory *usecase.GetMoodHistory
}

// MoodViewModel holds past check-ins, most recent first
type MoodViewModel struct {
	*Store[[]model.MoodCheckIn]
	uc     MoodUseCases
	logger *zap.Logger
}

// NewMoodViewModel creates a new MoodViewModel
func NewMoodViewModel(uc MoodUseCases, logger *zap.Logger) *MoodViewModel {
	return &MoodViewModel{
		Store:  NewStore[[]model.MoodCheckIn](nil),
		uc:     uc,
		logger: logger,
	}
}

// Load replaces the history
func (vm *MoodViewModel) Load(ctx context.Context, in usecase.GetMoodHistoryInput) ([]model.MoodCheckIn, error) {
	return load(vm.Store, func() ([]model.MoodCheckIn, error) {
		return vm.uc.GetHistory.Execute(ctx, in)
	})
}

// Record stores a check-in and puts it on top of the history
func (vm *MoodViewModel) Record(ctx context.Context, checkIn *model.MoodCheckIn) (*model.MoodCheckIn, error) {
	return mutate(vm.Store, func() (*model.MoodCheckIn, error) {
		return vm.uc.Record.Execute(ctx, checkIn)
	}, func(cur []model.MoodCheckIn, c *model.MoodCheckIn) []model.MoodCheckIn {
		return prepend(cur, *c)
	})
}

// RecordFlow builds the check-in from a completed question flow and records it
func (vm *MoodViewModel) RecordFlow(ctx context.Context, flow *usecase.CheckInFlow, userID int64) (*model.MoodCheckIn, error) {
	checkIn, err := flow.CheckIn(userID)
	if err != nil {
		vm.fail(err)
		return nil, err
	}
	return vm.Record(ctx, checkIn)
}
