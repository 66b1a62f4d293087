package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/pkg/model"
	"go.uber.org/zap"
)

func validateProfile(p *model.UserProfile) error {
	if p == nil {
		return required("profile", "profile")
	}
	if p.UserID <= 0 {
		return required("user_id", "user ID")
	}
	if err := checkIntRange("age", "age", p.Age, MinAge, MaxAge); err != nil {
		return err
	}
	if !p.Gender.Valid() {
		return invalid("gender", "invalid gender: %s", p.Gender)
	}
	if p.HeightUnit != model.UnitCentimeters && p.HeightUnit != model.UnitInches {
		return invalid("height_unit", "invalid height unit: must be cm or in")
	}
	if p.WeightUnit != model.UnitKilograms && p.WeightUnit != model.UnitPounds {
		return invalid("weight_unit", "invalid weight unit: must be kg or lb")
	}
	if err := checkRange("height", "height", p.HeightCm(), MinHeightCm, MaxHeightCm); err != nil {
		return err
	}
	if err := checkRange("weight", "weight", p.WeightKg(), MinWeightKg, MaxWeightKg); err != nil {
		return err
	}
	if !p.ActivityLevel.Valid() {
		return invalid("activity_level", "invalid activity level: %s", p.ActivityLevel)
	}
	if c := p.EmergencyContact; c != nil && (c.Name == "" || c.Phone == "") {
		return invalid("emergency_contact", "emergency contact needs a name and a phone number")
	}
	return nil
}

// SaveProfile stores the user's profile
type SaveProfile struct {
	repo   ProfileRepository
	logger *zap.Logger
}

// NewSaveProfile creates a new SaveProfile use-case
func NewSaveProfile(repo ProfileRepository, logger *zap.Logger) *SaveProfile {
	return &SaveProfile{repo: repo, logger: logger}
}

// Execute validates the profile (height and weight after metric conversion) and saves it
func (uc *SaveProfile) Execute(ctx context.Context, profile *model.UserProfile) (*model.UserProfile, error) {
	if err := validateProfile(profile); err != nil {
		return nil, err
	}
	if err := uc.repo.Save(ctx, profile); err != nil {
		return nil, err
	}
	uc.logger.Info("profile saved", zap.Int64("user_id", profile.UserID))
	return profile, nil
}

// UpdateProfile edits the existing profile
type UpdateProfile struct {
	repo   ProfileRepository
	logger *zap.Logger
}

// NewUpdateProfile creates a new UpdateProfile use-case
func NewUpdateProfile(repo ProfileRepository, logger *zap.Logger) *UpdateProfile {
	return &UpdateProfile{repo: repo, logger: logger}
}

// Execute validates and replaces the stored profile
func (uc *UpdateProfile) Execute(ctx context.Context, profile *model.UserProfile) (*model.UserProfile, error) {
	if err := validateProfile(profile); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, profile); err != nil {
		return nil, err
	}
	uc.logger.Info("profile updated", zap.Int64("user_id", profile.UserID))
	return profile, nil
}

// GetProfile reads the stored profile
type GetProfile struct {
	repo   ProfileRepository
	logger *zap.Logger
}

// NewGetProfile creates a new GetProfile use-case
func NewGetProfile(repo ProfileRepository, logger *zap.Logger) *GetProfile {
	return &GetProfile{repo: repo, logger: logger}
}

// Execute returns the profile, nil when onboarding has not happened yet
func (uc *GetProfile) Execute(ctx context.Context) (*model.UserProfile, error) {
	profile, err := uc.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		uc.logger.Debug("no profile stored, onboarding pending")
	}
	return profile, nil
}

// OnboardingInput is everything collected by the onboarding screens
type OnboardingInput struct {
	Profile *model.UserProfile
	Goals   []model.HealthGoal
}

// OnboardingResult is the stored profile and goals
type OnboardingResult struct {
	Profile *model.UserProfile
	Goals   []model.HealthGoal
}

// CompleteOnboarding stores the initial profile and goals
type CompleteOnboarding struct {
	saveProfile *SaveProfile
	createGoal  *CreateHealthGoal
	logger      *zap.Logger
}

// NewCompleteOnboarding creates a new CompleteOnboarding use-case
func NewCompleteOnboarding(profiles ProfileRepository, goals GoalRepository, logger *zap.Logger) *CompleteOnboarding {
	return &CompleteOnboarding{
		saveProfile: NewSaveProfile(profiles, logger),
		createGoal:  NewCreateHealthGoal(goals, logger),
		logger:      logger,
	}
}

// Execute validates the profile and every goal before writing anything
func (uc *CompleteOnboarding) Execute(ctx context.Context, in OnboardingInput) (*OnboardingResult, error) {
	if err := validateProfile(in.Profile); err != nil {
		return nil, err
	}

	goals := make([]model.HealthGoal, len(in.Goals))
	for i := range in.Goals {
		goals[i] = in.Goals[i]
		goals[i].UserID = in.Profile.UserID
		uc.createGoal.applyDefaults(&goals[i])

		if err := validateGoal(&goals[i]); err != nil {
			var vErr *ValidationError
			if errors.As(err, &vErr) {
				return nil, &ValidationError{Field: fmt.Sprintf("goals[%d].%s", i, vErr.Field), Message: vErr.Message}
			}
			return nil, err
		}
	}

	profile, err := uc.saveProfile.Execute(ctx, in.Profile)
	if err != nil {
		return nil, err
	}

	result := &OnboardingResult{Profile: profile}
	for i := range goals {
		created, err := uc.createGoal.Execute(ctx, &goals[i])
		if err != nil {
			return nil, fmt.Errorf("failed to create onboarding goal %q: %w", goals[i].Title, err)
		}
		result.Goals = append(result.Goals, *created)
	}

	uc.logger.Info("onboarding completed",
		zap.Int64("user_id", profile.UserID),
		zap.Int("goal_count", len(result.Goals)),
	)
	return result, nil
}
