package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/internal/mocks"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/pkg/model"
	"go.uber.org/zap"
)

func validProfile() *model.UserProfile {
	return &model.UserProfile{
		UserID:        1,
		Age:           34,
		Gender:        model.GenderMale,
		Height:        180,
		HeightUnit:    model.UnitCentimeters,
		Weight:        80,
		WeightUnit:    model.UnitKilograms,
		ActivityLevel: model.ActivityLightlyActive,
	}
}

func TestSaveProfile_Validation(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(*model.UserProfile)
		expectedField string
	}{
		{name: "missing user", mutate: func(p *model.UserProfile) { p.UserID = 0 }, expectedField: "user_id"},
		{name: "age too high", mutate: func(p *model.UserProfile) { p.Age = 130 }, expectedField: "age"},
		{name: "unknown gender", mutate: func(p *model.UserProfile) { p.Gender = "unknown" }, expectedField: "gender"},
		{name: "unknown height unit", mutate: func(p *model.UserProfile) { p.HeightUnit = "ft" }, expectedField: "height_unit"},
		{name: "unknown weight unit", mutate: func(p *model.UserProfile) { p.WeightUnit = "st" }, expectedField: "weight_unit"},
		{name: "height in inches too short", mutate: func(p *model.UserProfile) { p.Height = 19; p.HeightUnit = model.UnitInches }, expectedField: "height"},
		{name: "weight in pounds too heavy", mutate: func(p *model.UserProfile) { p.Weight = 700; p.WeightUnit = model.UnitPounds }, expectedField: "weight"},
		{name: "unknown activity", mutate: func(p *model.UserProfile) { p.ActivityLevel = "athlete" }, expectedField: "activity_level"},
		{name: "incomplete emergency contact", mutate: func(p *model.UserProfile) { p.EmergencyContact = &model.EmergencyContact{Name: "Bob"} }, expectedField: "emergency_contact"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockProfileRepository)
			p := validProfile()
			tt.mutate(p)

			_, err := NewSaveProfile(repo, zap.NewNop()).Execute(context.Background(), p)

			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tt.expectedField, vErr.Field)
			repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		})
	}
}

func TestSaveProfile_ImperialUnitsConvertedBeforeRangeCheck(t *testing.T) {
	repo := new(mocks.MockProfileRepository)
	repo.On("Save", mock.Anything, mock.Anything).Return(nil)

	p := validProfile()
	p.Height, p.HeightUnit = 70, model.UnitInches
	p.Weight, p.WeightUnit = 180, model.UnitPounds

	_, err := NewSaveProfile(repo, zap.NewNop()).Execute(context.Background(), p)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestUpdateProfile_Delegates(t *testing.T) {
	repo := new(mocks.MockProfileRepository)
	p := validProfile()
	repo.On("Update", mock.Anything, p).Return(nil)

	got, err := NewUpdateProfile(repo, zap.NewNop()).Execute(context.Background(), p)
	require.NoError(t, err)
	assert.Same(t, p, got)
}

func TestCompleteOnboarding(t *testing.T) {
	t.Run("stores profile and goals", func(t *testing.T) {
		profiles := new(mocks.MockProfileRepository)
		goals := new(mocks.MockGoalRepository)
		profiles.On("Save", mock.Anything, mock.Anything).Return(nil)
		goals.On("Create", mock.Anything, mock.Anything).Return(nil)

		uc := NewCompleteOnboarding(profiles, goals, zap.NewNop())
		result, err := uc.Execute(context.Background(), OnboardingInput{
			Profile: validProfile(),
			Goals: []model.HealthGoal{
				{Type: model.GoalTypeSteps, Title: "10k steps", TargetValue: 10000, Unit: "steps"},
				{Type: model.GoalTypeSleep, Title: "Sleep 8h", TargetValue: 8, Unit: "h"},
			},
		})
		require.NoError(t, err)
		require.Len(t, result.Goals, 2)
		for _, g := range result.Goals {
			assert.Equal(t, int64(1), g.UserID)
			assert.Equal(t, model.GoalStatusActive, g.Status)
		}
		goals.AssertNumberOfCalls(t, "Create", 2)
	})

	t.Run("invalid goal stops before any write", func(t *testing.T) {
		profiles := new(mocks.MockProfileRepository)
		goals := new(mocks.MockGoalRepository)

		uc := NewCompleteOnboarding(profiles, goals, zap.NewNop())
		_, err := uc.Execute(context.Background(), OnboardingInput{
			Profile: validProfile(),
			Goals: []model.HealthGoal{
				{Type: model.GoalTypeSteps, Title: "10k steps", TargetValue: 10000, Unit: "steps"},
				{Type: model.GoalTypeSleep, Title: "Sleep", TargetValue: 0, Unit: "h"},
			},
		})

		var vErr *ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Equal(t, "goals[1].target_value", vErr.Field)
		profiles.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		goals.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}
