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
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestExecute_NilRequestIsValidationError(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	tests := []struct {
		name          string
		run           func() error
		expectedField string
	}{
		{name: "login", expectedField: "credentials", run: func() error {
			_, err := NewLogin(new(mocks.MockAuthRepository), logger).Execute(ctx, nil)
			return err
		}},
		{name: "register", expectedField: "registration", run: func() error {
			_, err := NewRegister(new(mocks.MockAuthRepository), logger).Execute(ctx, nil)
			return err
		}},
		{name: "prediction", expectedField: "prediction", run: func() error {
			_, err := NewCreatePrediction(new(mocks.MockHealthRepository), logger).Execute(ctx, nil)
			return err
		}},
		{name: "simple prediction", expectedField: "prediction", run: func() error {
			_, err := NewCreateSimplePrediction(new(mocks.MockHealthRepository), logger).Execute(ctx, nil)
			return err
		}},
		{name: "chat", expectedField: "prompt", run: func() error {
			_, err := NewChatWithAI(new(mocks.MockAIService), logger).Execute(ctx, nil)
			return err
		}},
		{name: "goal", expectedField: "goal", run: func() error {
			_, err := NewCreateHealthGoal(new(mocks.MockGoalRepository), logger).Execute(ctx, nil)
			return err
		}},
		{name: "health log", expectedField: "log", run: func() error {
			_, err := NewLogHealthData(new(mocks.MockLogRepository), logger).Execute(ctx, nil)
			return err
		}},
		{name: "mood check-in", expectedField: "checkin", run: func() error {
			_, err := NewRecordMoodCheckIn(new(mocks.MockMoodRepository), logger).Execute(ctx, nil)
			return err
		}},
		{name: "profile", expectedField: "profile", run: func() error {
			_, err := NewSaveProfile(new(mocks.MockProfileRepository), logger).Execute(ctx, nil)
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error
			require.NotPanics(t, func() { err = tt.run() })

			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr), "expected a validation error, got %v", err)
			assert.Equal(t, tt.expectedField, vErr.Field)
		})
	}
}

func TestDeleteGoal_LogsOutcome(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	repo := new(mocks.MockGoalRepository)
	repo.On("Delete", mock.Anything, "g1").Return(nil)
	repo.On("Delete", mock.Anything, "g2").Return(errors.New("disk full"))
	uc := NewDeleteGoal(repo, zap.New(core))

	require.NoError(t, uc.Execute(context.Background(), "g1"))
	assert.Error(t, uc.Execute(context.Background(), "g2"))

	entries := logs.FilterMessage("goal deleted").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "g1", entries[0].ContextMap()["goal_id"])
}

func TestGetAIStatus_LogsUnavailableAssistant(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	ai := new(mocks.MockAIService)
	status := &model.AIStatus{Available: false, Provider: "azure-openai"}
	ai.On("Status", mock.Anything).Return(status, nil)

	got, err := NewGetAIStatus(ai, zap.New(core)).Execute(context.Background())

	require.NoError(t, err)
	assert.Same(t, status, got)
	assert.Equal(t, 1, logs.FilterMessage("assistant unavailable").Len())
}
