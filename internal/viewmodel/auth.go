package viewmodel

import (
	"context"

	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/internal/usecase"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/pkg/model"
	"go.uber.org/zap"
)

// AuthUseCases are the actions behind AuthViewModel
type AuthUseCases struct {
	Login          *usecase.Login
	Register       *usecase.Register
	Logout         *usecase.Logout
	RestoreSession *usecase.RestoreSession
}

// AuthViewModel holds the signed-in user; Data is nil when signed out
type AuthViewModel struct {
	*Store[*model.User]
	uc     AuthUseCases
	logger *zap.Logger
}

// NewAuthViewModel creates a new AuthViewModel
func NewAuthViewModel(uc AuthUseCases, logger *zap.Logger) *AuthViewModel {
	return &AuthViewModel{
		Store:  NewStore[*model.User](nil),
		uc:     uc,
		logger: logger,
	}
}

// IsAuthenticated reports whether a user is signed in
func (vm *AuthViewModel) IsAuthenticated() bool {
	return vm.State().Data != nil
}

// Login signs in
func (vm *AuthViewModel) Login(ctx context.Context, username, password string) (*model.User, error) {
	return load(vm.Store, func() (*model.User, error) {
		session, err := vm.uc.Login.Execute(ctx, &model.LoginRequest{Username: username, Password: password})
		if err != nil {
			return nil, err
		}
		return session.User, nil
	})
}

// Register creates an account and signs in
func (vm *AuthViewModel) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	return load(vm.Store, func() (*model.User, error) {
		session, err := vm.uc.Register.Execute(ctx, req)
		if err != nil {
			return nil, err
		}
		return session.User, nil
	})
}

// Restore signs the stored session back in, if it is still valid
func (vm *AuthViewModel) Restore(ctx context.Context) (*model.User, error) {
	return load(vm.Store, func() (*model.User, error) {
		return vm.uc.RestoreSession.Execute(ctx)
	})
}

// Logout signs out. The local session is dropped even when the backend call fails.
func (vm *AuthViewModel) Logout(ctx context.Context) error {
	err := vm.uc.Logout.Execute(ctx)
	if err != nil {
		vm.logger.Warn("logout failed", zap.Error(err))
	}
	vm.reset(nil)
	return err
}
