package model

import (
	"time"

	"github.com/oapi-codegen/runtime/types"
)

// User represents an authenticated account
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthSession is the body returned by login and registration
type AuthSession struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        *User  `json:"user,omitempty"`
}

// LoginRequest carries login credentials
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest carries the fields needed to create an account
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// RiskLevel is the server-assigned risk bucket of a prediction
type RiskLevel string

const (
	RiskLevelLow    RiskLevel = "low"
	RiskLevelMedium RiskLevel = "medium"
	RiskLevelHigh   RiskLevel = "high"
)

// Valid reports whether the level is one of the known buckets
func (r RiskLevel) Valid() bool {
	switch r {
	case RiskLevelLow, RiskLevelMedium, RiskLevelHigh:
		return true
	}
	return false
}

// PredictionRequest is the advanced prediction form, optional vitals included
type PredictionRequest struct {
	Age                  int      `json:"age"`
	HeightCm             float64  `json:"height_cm"`
	WeightKg             float64  `json:"weight_kg"`
	SystolicBP           *int     `json:"systolic_bp,omitempty"`
	DiastolicBP          *int     `json:"diastolic_bp,omitempty"`
	Cholesterol          *float64 `json:"cholesterol,omitempty"`
	Glucose              *float64 `json:"glucose,omitempty"`
	Smoking              bool     `json:"smoking"`
	ExerciseHoursPerWeek float64  `json:"exercise_hours_per_week"`
}

// SimplePredictionRequest is the reduced prediction form without vitals
type SimplePredictionRequest struct {
	Age                  int     `json:"age"`
	HeightCm             float64 `json:"height_cm"`
	WeightKg             float64 `json:"weight_kg"`
	Smoking              bool    `json:"smoking"`
	ExerciseHoursPerWeek float64 `json:"exercise_hours_per_week"`
}

// HealthPrediction is one risk assessment computed by the backend
type HealthPrediction struct {
	ID                   int64     `json:"id"`
	UserID               int64     `json:"user_id"`
	Age                  int       `json:"age"`
	HeightCm             float64   `json:"height_cm"`
	WeightKg             float64   `json:"weight_kg"`
	BMI                  float64   `json:"bmi"`
	SystolicBP           *int      `json:"systolic_bp"`
	DiastolicBP          *int      `json:"diastolic_bp"`
	Cholesterol          *float64  `json:"cholesterol"`
	Glucose              *float64  `json:"glucose"`
	Smoking              bool      `json:"smoking"`
	ExerciseHoursPerWeek float64   `json:"exercise_hours_per_week"`
	RiskScore            float64   `json:"risk_score"`
	RiskLevel            RiskLevel `json:"risk_level"`
	Recommendations      []string  `json:"recommendations"`
	AIPowered            bool      `json:"ai_powered"`
	CreatedAt            time.Time `json:"created_at"`
}

// RiskDistribution counts predictions per risk level
type RiskDistribution struct {
	Low    int `json:"low"`
	Medium int `json:"medium"`
	High   int `json:"high"`
}

// HealthStats aggregates a user's predictions
type HealthStats struct {
	TotalPredictions  int              `json:"total_predictions"`
	RiskDistribution  RiskDistribution `json:"risk_distribution"`
	AverageRiskScore  float64          `json:"average_risk_score"`
	AIUsagePercentage float64          `json:"ai_usage_percentage"`
}

// ChatRequest is a prompt sent to the assistant
type ChatRequest struct {
	Prompt      string   `json:"prompt"`
	MaxTokens   *int     `json:"max_tokens,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
}

// TokenUsage reports token counts of a chat turn
type TokenUsage struct {
	PromptTokens     int64 `json:"prompt_tokens"`
	CompletionTokens int64 `json:"completion_tokens"`
	TotalTokens      int64 `json:"total_tokens"`
}

// AIChatMessage is one exchange with the assistant
type AIChatMessage struct {
	ID        string     `json:"id"`
	Prompt    string     `json:"prompt"`
	Response  string     `json:"response"`
	Model     string     `json:"model"`
	Usage     TokenUsage `json:"usage"`
	CreatedAt time.Time  `json:"created_at"`
}

// AIStatus describes assistant availability
type AIStatus struct {
	Available bool   `json:"available"`
	Model     string `json:"model"`
	Provider  string `json:"provider"`
}

// Gender is the self-reported gender of a profile
type Gender string

const (
	GenderMale           Gender = "male"
	GenderFemale         Gender = "female"
	GenderOther          Gender = "other"
	GenderPreferNotToSay Gender = "prefer_not_to_say"
)

// Valid reports whether the gender is a known value
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther, GenderPreferNotToSay:
		return true
	}
	return false
}

// ActivityLevel is the self-reported activity level of a profile
type ActivityLevel string

const (
	ActivitySedentary        ActivityLevel = "sedentary"
	ActivityLightlyActive    ActivityLevel = "lightly_active"
	ActivityModeratelyActive ActivityLevel = "moderately_active"
	ActivityVeryActive       ActivityLevel = "very_active"
	ActivityExtremelyActive  ActivityLevel = "extremely_active"
)

// Valid reports whether the activity level is a known value
func (a ActivityLevel) Valid() bool {
	switch a {
	case ActivitySedentary, ActivityLightlyActive, ActivityModeratelyActive, ActivityVeryActive, ActivityExtremelyActive:
		return true
	}
	return false
}

const (
	UnitCentimeters = "cm"
	UnitInches      = "in"
	UnitKilograms   = "kg"
	UnitPounds      = "lb"
)

// EmergencyContact is the person to call for a profile
type EmergencyContact struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Relationship string `json:"relationship"`
}

// UserProfile is the self-reported biometric baseline kept on the device
type UserProfile struct {
	UserID           int64             `json:"user_id"`
	Age              int               `json:"age"`
	Gender           Gender            `json:"gender"`
	Height           float64           `json:"height"`
	HeightUnit       string            `json:"height_unit"`
	Weight           float64           `json:"weight"`
	WeightUnit       string            `json:"weight_unit"`
	ActivityLevel    ActivityLevel     `json:"activity_level"`
	HealthConditions []string          `json:"health_conditions"`
	Medications      []string          `json:"medications"`
	Allergies        []string          `json:"allergies"`
	EmergencyContact *EmergencyContact `json:"emergency_contact,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// HeightCm returns the height converted to centimeters
func (p *UserProfile) HeightCm() float64 {
	if p.HeightUnit == UnitInches {
		return p.Height * 2.54
	}
	return p.Height
}

// WeightKg returns the weight converted to kilograms
func (p *UserProfile) WeightKg() float64 {
	if p.WeightUnit == UnitPounds {
		return p.Weight * 0.45359237
	}
	return p.Weight
}

// GoalType categorizes a health goal
type GoalType string

const (
	GoalTypeWeight        GoalType = "weight"
	GoalTypeSteps         GoalType = "steps"
	GoalTypeExercise      GoalType = "exercise"
	GoalTypeWaterIntake   GoalType = "water_intake"
	GoalTypeSleep         GoalType = "sleep"
	GoalTypeBloodPressure GoalType = "blood_pressure"
	GoalTypeHeartRate     GoalType = "heart_rate"
	GoalTypeCustom        GoalType = "custom"
)

// Valid reports whether the goal type is a known value
func (t GoalType) Valid() bool {
	switch t {
	case GoalTypeWeight, GoalTypeSteps, GoalTypeExercise, GoalTypeWaterIntake,
		GoalTypeSleep, GoalTypeBloodPressure, GoalTypeHeartRate, GoalTypeCustom:
		return true
	}
	return false
}

// GoalStatus is the lifecycle state of a goal
type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "active"
	GoalStatusCompleted GoalStatus = "completed"
	GoalStatusPaused    GoalStatus = "paused"
	GoalStatusCancelled GoalStatus = "cancelled"
)

// Valid reports whether the status is a known value
func (s GoalStatus) Valid() bool {
	switch s {
	case GoalStatusActive, GoalStatusCompleted, GoalStatusPaused, GoalStatusCancelled:
		return true
	}
	return false
}

// HealthGoal is a tracked target
type HealthGoal struct {
	ID           string     `json:"id"`
	UserID       int64      `json:"user_id"`
	Type         GoalType   `json:"type"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	TargetValue  float64    `json:"target_value"`
	CurrentValue float64    `json:"current_value"`
	Unit         string     `json:"unit"`
	Status       GoalStatus `json:"status"`
	StartDate    types.Date `json:"start_date"`
	TargetDate   types.Date `json:"target_date"`
}

// Progress returns current/target clamped to [0,1]
func (g *HealthGoal) Progress() float64 {
	if g.TargetValue <= 0 {
		return 0
	}
	p := g.CurrentValue / g.TargetValue
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// LogType categorizes a logged data point
type LogType string

const (
	LogTypeWeight        LogType = "weight"
	LogTypeBloodPressure LogType = "blood_pressure"
	LogTypeSteps         LogType = "steps"
	LogTypeHeartRate     LogType = "heart_rate"
	LogTypeSleep         LogType = "sleep"
	LogTypeWaterIntake   LogType = "water_intake"
	LogTypeExercise      LogType = "exercise"
	LogTypeMedication    LogType = "medication"
)

// Valid reports whether the log type is a known value
func (t LogType) Valid() bool {
	switch t {
	case LogTypeWeight, LogTypeBloodPressure, LogTypeSteps, LogTypeHeartRate,
		LogTypeSleep, LogTypeWaterIntake, LogTypeExercise, LogTypeMedication:
		return true
	}
	return false
}

// HealthLog is a single logged data point.
// For blood pressure Value holds the systolic and SecondaryValue the diastolic reading.
type HealthLog struct {
	ID             string    `json:"id"`
	UserID         int64     `json:"user_id"`
	Type           LogType   `json:"type"`
	Value          float64   `json:"value"`
	SecondaryValue *float64  `json:"secondary_value,omitempty"`
	Unit           string    `json:"unit"`
	Notes          string    `json:"notes,omitempty"`
	LoggedAt       time.Time `json:"logged_at"`
}

// LogFilter narrows a log query; zero values match everything
type LogFilter struct {
	Type LogType
	From time.Time
	To   time.Time
}

// Matches reports whether the log satisfies the filter
func (f LogFilter) Matches(l *HealthLog) bool {
	if f.Type != "" && l.Type != f.Type {
		return false
	}
	if !f.From.IsZero() && l.LoggedAt.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && l.LoggedAt.After(f.To) {
		return false
	}
	return true
}

// Mood is the headline answer of a mood check-in
type Mood string

const (
	MoodGreat Mood = "great"
	MoodGood  Mood = "good"
	MoodOkay  Mood = "okay"
	MoodLow   Mood = "low"
	MoodBad   Mood = "bad"
)

// Valid reports whether the mood is a known value
func (m Mood) Valid() bool {
	switch m {
	case MoodGreat, MoodGood, MoodOkay, MoodLow, MoodBad:
		return true
	}
	return false
}

// MoodCheckIn is a daily mood entry kept on the device
type MoodCheckIn struct {
	ID          string    `json:"id"`
	UserID      int64     `json:"user_id"`
	Mood        Mood      `json:"mood"`
	EnergyLevel int       `json:"energy_level"`
	StressLevel int       `json:"stress_level"`
	SleepHours  float64   `json:"sleep_hours"`
	Notes       string    `json:"notes,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	CheckedInAt time.Time `json:"checked_in_at"`
}
