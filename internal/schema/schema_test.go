package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/pkg/model"
)

func newValidator(t *testing.T) *Validator {
	t.Helper()
	v, err := NewValidator()
	require.NoError(t, err)
	return v
}

func TestNewValidator_DefinesAllSchemas(t *testing.T) {
	v := newValidator(t)

	for _, name := range []string{User, AuthSession, HealthPrediction, HealthPredictionList, HealthStats, AIChatMessage, AIStatus, MessageResponse} {
		assert.True(t, v.Has(name), name)
	}
	assert.False(t, v.Has("Medication"))
}

func TestDecode_HealthPrediction(t *testing.T) {
	v := newValidator(t)

	body := []byte(`{
		"id": 7, "user_id": 1, "age": 28, "height_cm": 175, "weight_kg": 70, "bmi": 22.9,
		"systolic_bp": null, "diastolic_bp": null, "cholesterol": null, "glucose": null,
		"smoking": false, "exercise_hours_per_week": 5, "risk_score": 0.12, "risk_level": "low",
		"recommendations": ["Keep it up"], "ai_powered": true, "created_at": "2024-05-01T10:00:00Z"
	}`)

	var p model.HealthPrediction
	require.NoError(t, v.Decode(HealthPrediction, body, &p))

	assert.Equal(t, int64(7), p.ID)
	assert.Equal(t, model.RiskLevelLow, p.RiskLevel)
	assert.Nil(t, p.SystolicBP)
	assert.Equal(t, []string{"Keep it up"}, p.Recommendations)
	assert.True(t, p.AIPowered)
}

func TestDecode_RejectsUnexpectedShapes(t *testing.T) {
	v := newValidator(t)

	tests := []struct {
		name   string
		schema string
		body   string
	}{
		{name: "risk level outside enum", schema: HealthPrediction, body: `{"id":1,"user_id":1,"age":30,"height_cm":170,"weight_kg":70,"bmi":24,"smoking":false,"exercise_hours_per_week":1,"risk_score":0.5,"risk_level":"extreme","created_at":"2024-01-01T00:00:00Z"}`},
		{name: "risk score above one", schema: HealthPrediction, body: `{"id":1,"user_id":1,"age":30,"height_cm":170,"weight_kg":70,"bmi":24,"smoking":false,"exercise_hours_per_week":1,"risk_score":1.5,"risk_level":"high","created_at":"2024-01-01T00:00:00Z"}`},
		{name: "session without token", schema: AuthSession, body: `{"token_type":"bearer"}`},
		{name: "user id as string", schema: User, body: `{"id":"1","username":"a","email":"a@b.c","is_active":true,"created_at":"2024-01-01T00:00:00Z"}`},
		{name: "list is an object", schema: HealthPredictionList, body: `{"items":[]}`},
		{name: "not json", schema: AIStatus, body: `<html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out any
			err := v.Decode(tt.schema, []byte(tt.body), &out)
			require.Error(t, err)

			var schemaErr *Error
			require.True(t, errors.As(err, &schemaErr))
			assert.Equal(t, tt.schema, schemaErr.Schema)
		})
	}
}

func TestDecode_AuthSessionWithoutUser(t *testing.T) {
	v := newValidator(t)

	var s model.AuthSession
	require.NoError(t, v.Decode(AuthSession, []byte(`{"access_token":"abc","token_type":"bearer","user":null}`), &s))
	assert.Equal(t, "abc", s.AccessToken)
	assert.Nil(t, s.User)
}

func TestValidate_UnknownSchema(t *testing.T) {
	v := newValidator(t)
	assert.Error(t, v.Validate("Nope", []byte(`{}`)))
}

func TestNewValidatorFromData_InvalidDocument(t *testing.T) {
	_, err := NewValidatorFromData([]byte("not: [valid"))
	assert.Error(t, err)
}
