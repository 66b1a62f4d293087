package viewmodel

import (
	"context"

	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/internal/usecase"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/pkg/model"
	"go.uber.org/zap"
)

// ProfileUseCases are the actions behind ProfileViewModel
type ProfileUseCases struct {
	GetProfile         *usecase.GetProfile
	SaveProfile        *usecase.SaveProfile
	UpdateProfile      *usecase.UpdateProfile
	CompleteOnboarding *usecase.CompleteOnboarding
}

// ProfileViewModel holds the user's profile; Data is nil before onboarding
type ProfileViewModel struct {
	*Store[*model.UserProfile]
	uc     ProfileUseCases
	logger *zap.Logger
}

// NewProfileViewModel creates a new ProfileViewModel
func NewProfileViewModel(uc ProfileUseCases, logger *zap.Logger) *ProfileViewModel {
	return &ProfileViewModel{
		Store:  NewStore[*model.UserProfile](nil),
		uc:     uc,
		logger: logger,
	}
}

// NeedsOnboarding reports whether a loaded state has no profile yet
func (vm *ProfileViewModel) NeedsOnboarding() bool {
	st := vm.State()
	return st.Loaded && st.Data == nil
}

// Load reads the stored profile
func (vm *ProfileViewModel) Load(ctx context.Context) (*model.UserProfile, error) {
	return load(vm.Store, func() (*model.UserProfile, error) {
		return vm.uc.GetProfile.Execute(ctx)
	})
}

// Save stores a new profile
func (vm *ProfileViewModel) Save(ctx context.Context, profile *model.UserProfile) (*model.UserProfile, error) {
	return load(vm.Store, func() (*model.UserProfile, error) {
		return vm.uc.SaveProfile.Execute(ctx, profile)
	})
}

// Update edits the stored profile
func (vm *ProfileViewModel) Update(ctx context.Context, profile *model.UserProfile) (*model.UserProfile, error) {
	return load(vm.Store, func() (*model.UserProfile, error) {
		return vm.uc.UpdateProfile.Execute(ctx, profile)
	})
}

// CompleteOnboarding stores the profile with its initial goals
func (vm *ProfileViewModel) CompleteOnboarding(ctx context.Context, in usecase.OnboardingInput) (*usecase.OnboardingResult, error) {
	var result *usecase.OnboardingResult
	_, err := load(vm.Store, func() (*model.UserProfile, error) {
		r, err := vm.uc.CompleteOnboarding.Execute(ctx, in)
		if err != nil {
			return nil, err
		}
		result = r
		return r.Profile, nil
	})
	return result, err
}
