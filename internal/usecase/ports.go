package usecase

import (
	"context"
	"time"

	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/pkg/model"
)

// AuthRepository is the account port
type AuthRepository interface {
	Login(ctx context.Context, req *model.LoginRequest) (*model.AuthSession, error)
	Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthSession, error)
	Me(ctx context.Context) (*model.User, error)
	Logout(ctx context.Context) error
	Token(ctx context.Context) (string, error)
	ClearToken(ctx context.Context) error
}

// HealthRepository is the prediction port
type HealthRepository interface {
	CreatePrediction(ctx context.Context, req *model.PredictionRequest) (*model.HealthPrediction, error)
	CreateSimplePrediction(ctx context.Context, req *model.SimplePredictionRequest) (*model.HealthPrediction, error)
	GetPredictions(ctx context.Context, skip, limit int) ([]model.HealthPrediction, error)
	GetPrediction(ctx context.Context, id int64) (*model.HealthPrediction, error)
	GetStats(ctx context.Context) (*model.HealthStats, error)
}

// AIService is the chat port, served by the backend or by Azure OpenAI directly
type AIService interface {
	Chat(ctx context.Context, req *model.ChatRequest) (*model.AIChatMessage, error)
	Status(ctx context.Context) (*model.AIStatus, error)
}

// GoalRepository is the local goal port
type GoalRepository interface {
	Create(ctx context.Context, goal *model.HealthGoal) error
	GetUserGoals(ctx context.Context, userID int64) ([]model.HealthGoal, error)
	UpdateProgress(ctx context.Context, id string, current float64) (*model.HealthGoal, error)
	UpdateStatus(ctx context.Context, id string, status model.GoalStatus) (*model.HealthGoal, error)
	Delete(ctx context.Context, id string) error
}

// LogRepository is the local health log port
type LogRepository interface {
	Create(ctx context.Context, entry *model.HealthLog) error
	GetUserLogs(ctx context.Context, userID int64, filter model.LogFilter) ([]model.HealthLog, error)
	Delete(ctx context.Context, id string) error
}

// ProfileRepository is the local profile port
type ProfileRepository interface {
	Save(ctx context.Context, profile *model.UserProfile) error
	Get(ctx context.Context) (*model.UserProfile, error)
	Update(ctx context.Context, profile *model.UserProfile) error
}

// MoodRepository is the local mood check-in port
type MoodRepository interface {
	Create(ctx context.Context, checkIn *model.MoodCheckIn) error
	GetUserCheckIns(ctx context.Context, userID int64, from, to time.Time) ([]model.MoodCheckIn, error)
}
