package usecase

import (
	"context"

	"go.uber.org/zap"
)

// LocalDataService exports and erases what the device stores
type LocalDataService interface {
	Export(ctx context.Context, userID int64) ([]byte, error)
	Erase(ctx context.Context, userID int64) error
}

// ExportLocalData produces the JSON bundle of the user's local data
type ExportLocalData struct {
	svc    LocalDataService
	logger *zap.Logger
}

// NewExportLocalData creates a new ExportLocalData use-case
func NewExportLocalData(svc LocalDataService, logger *zap.Logger) *ExportLocalData {
	return &ExportLocalData{svc: svc, logger: logger}
}

// Execute returns the bundle
func (uc *ExportLocalData) Execute(ctx context.Context, userID int64) ([]byte, error) {
	if userID <= 0 {
		return nil, required("user_id", "user ID")
	}
	bundle, err := uc.svc.Export(ctx, userID)
	if err != nil {
		uc.logger.Error("failed to export local data", zap.Int64("user_id", userID), zap.Error(err))
		return nil, err
	}
	return bundle, nil
}

// EraseLocalData wipes local health data and the session
type EraseLocalData struct {
	svc    LocalDataService
	logger *zap.Logger
}

// NewEraseLocalData creates a new EraseLocalData use-case
func NewEraseLocalData(svc LocalDataService, logger *zap.Logger) *EraseLocalData {
	return &EraseLocalData{svc: svc, logger: logger}
}

// Execute erases the local data; confirm must be true
func (uc *EraseLocalData) Execute(ctx context.Context, userID int64, confirm bool) error {
	if userID <= 0 {
		return required("user_id", "user ID")
	}
	if !confirm {
		uc.logger.Info("local data erase not confirmed", zap.Int64("user_id", userID))
		return invalid("confirm", "erasing local data must be confirmed")
	}
	if err := uc.svc.Erase(ctx, userID); err != nil {
		uc.logger.Error("failed to erase local data", zap.Int64("user_id", userID), zap.Error(err))
		return err
	}
	return nil
}
