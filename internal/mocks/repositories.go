// Package mocks holds testify mocks of the use-case ports.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/internal/report"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/pkg/model"
)

// MockAuthRepository is a mock implementation of usecase.AuthRepository
type MockAuthRepository struct {
	mock.Mock
}

func (m *MockAuthRepository) Login(ctx context.Context, req *model.LoginRequest) (*model.AuthSession, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AuthSession), args.Error(1)
}

func (m *MockAuthRepository) Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthSession, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AuthSession), args.Error(1)
}

func (m *MockAuthRepository) Me(ctx context.Context) (*model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthRepository) Logout(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAuthRepository) Token(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockAuthRepository) ClearToken(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockHealthRepository is a mock implementation of usecase.HealthRepository
type MockHealthRepository struct {
	mock.Mock
}

func (m *MockHealthRepository) CreatePrediction(ctx context.Context, req *model.PredictionRequest) (*model.HealthPrediction, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.HealthPrediction), args.Error(1)
}

func (m *MockHealthRepository) CreateSimplePrediction(ctx context.Context, req *model.SimplePredictionRequest) (*model.HealthPrediction, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.HealthPrediction), args.Error(1)
}

func (m *MockHealthRepository) GetPredictions(ctx context.Context, skip, limit int) ([]model.HealthPrediction, error) {
	args := m.Called(ctx, skip, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.HealthPrediction), args.Error(1)
}

func (m *MockHealthRepository) GetPrediction(ctx context.Context, id int64) (*model.HealthPrediction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.HealthPrediction), args.Error(1)
}

func (m *MockHealthRepository) GetStats(ctx context.Context) (*model.HealthStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.HealthStats), args.Error(1)
}

// MockAIService is a mock implementation of usecase.AIService
type MockAIService struct {
	mock.Mock
}

func (m *MockAIService) Chat(ctx context.Context, req *model.ChatRequest) (*model.AIChatMessage, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AIChatMessage), args.Error(1)
}

func (m *MockAIService) Status(ctx context.Context) (*model.AIStatus, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AIStatus), args.Error(1)
}

// MockGoalRepository is a mock implementation of usecase.GoalRepository
type MockGoalRepository struct {
	mock.Mock
}

func (m *MockGoalRepository) Create(ctx context.Context, goal *model.HealthGoal) error {
	args := m.Called(ctx, goal)
	return args.Error(0)
}

func (m *MockGoalRepository) GetUserGoals(ctx context.Context, userID int64) ([]model.HealthGoal, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.HealthGoal), args.Error(1)
}

func (m *MockGoalRepository) UpdateProgress(ctx context.Context, id string, current float64) (*model.HealthGoal, error) {
	args := m.Called(ctx, id, current)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.HealthGoal), args.Error(1)
}

func (m *MockGoalRepository) UpdateStatus(ctx context.Context, id string, status model.GoalStatus) (*model.HealthGoal, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.HealthGoal), args.Error(1)
}

func (m *MockGoalRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockLogRepository is a mock implementation of usecase.LogRepository
type MockLogRepository struct {
	mock.Mock
}

func (m *MockLogRepository) Create(ctx context.Context, entry *model.HealthLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLogRepository) GetUserLogs(ctx context.Context, userID int64, filter model.LogFilter) ([]model.HealthLog, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.HealthLog), args.Error(1)
}

func (m *MockLogRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockProfileRepository is a mock implementation of usecase.ProfileRepository
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) Save(ctx context.Context, profile *model.UserProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) Get(ctx context.Context) (*model.UserProfile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserProfile), args.Error(1)
}

func (m *MockProfileRepository) Update(ctx context.Context, profile *model.UserProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

// MockMoodRepository is a mock implementation of usecase.MoodRepository
type MockMoodRepository struct {
	mock.Mock
}

func (m *MockMoodRepository) Create(ctx context.Context, checkIn *model.MoodCheckIn) error {
	args := m.Called(ctx, checkIn)
	return args.Error(0)
}

func (m *MockMoodRepository) GetUserCheckIns(ctx context.Context, userID int64, from, to time.Time) ([]model.MoodCheckIn, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.MoodCheckIn), args.Error(1)
}

// MockReportRenderer is a mock implementation of the report renderer
type MockReportRenderer struct {
	mock.Mock
}

func (m *MockReportRenderer) Generate(data *report.Data) ([]byte, error) {
	args := m.Called(data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockReportSink is a mock implementation of the report sink
type MockReportSink struct {
	mock.Mock
}

func (m *MockReportSink) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	args := m.Called(ctx, filename, data)
	return args.String(0), args.Error(1)
}

// MockLocalDataService is a mock implementation of the local data service
type MockLocalDataService struct {
	mock.Mock
}

func (m *MockLocalDataService) Export(ctx context.Context, userID int64) ([]byte, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockLocalDataService) Erase(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
