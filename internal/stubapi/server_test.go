package stubapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/internal/apiclient"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/internal/repository"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/internal/schema"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/internal/session"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/pkg/model"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubEnv struct {
	server *Server
	url    string
	tokens *session.MemoryTokenStore
	auth   *repository.AuthRepository
	health *repository.HealthRepository
	ai     *repository.AIRepository
}

func newStubEnv(t *testing.T) *stubEnv {
	t.Helper()

	server := NewServer(Config{Secret: "test-secret"}, zap.NewNop())
	srv := httptest.NewServer(server.Router())
	t.Cleanup(srv.Close)

	return newClientEnv(t, server, srv.URL)
}

// newClientEnv builds a second client session against the same backend
func newClientEnv(t *testing.T, server *Server, url string) *stubEnv {
	t.Helper()

	validator, err := schema.NewValidator()
	require.NoError(t, err)

	tokens := session.NewMemoryTokenStore("")
	client := apiclient.New(url, 5*time.Second, tokens, zap.NewNop())

	return &stubEnv{
		server: server,
		url:    url,
		tokens: tokens,
		auth:   repository.NewAuthRepository(client, validator, zap.NewNop()),
		health: repository.NewHealthRepository(client, validator, zap.NewNop()),
		ai:     repository.NewAIRepository(client, validator, zap.NewNop()),
	}
}

func (e *stubEnv) register(t *testing.T, username string) *model.User {
	t.Helper()
	sess, err := e.auth.Register(context.Background(), &model.RegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "password123",
		FullName: strings.ToUpper(username),
	})
	require.NoError(t, err)
	require.NotNil(t, sess.User)
	return sess.User
}

func (e *stubEnv) token(t *testing.T) string {
	t.Helper()
	tok, err := e.tokens.Token(context.Background())
	require.NoError(t, err)
	return tok
}

func TestAuth_RegisterLoginMe(t *testing.T) {
	env := newStubEnv(t)
	ctx := context.Background()

	user := env.register(t, "alice")
	assert.Equal(t, int64(1), user.ID)
	assert.True(t, user.IsActive)

	exp, ok := session.TokenExpiry(env.token(t))
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(DefaultTokenTTL), exp, time.Minute)

	require.NoError(t, env.tokens.ClearToken(ctx))

	sess, err := env.auth.Login(ctx, &model.LoginRequest{Username: "alice", Password: "password123"})
	require.NoError(t, err)
	require.NotNil(t, sess.User)
	assert.Equal(t, "alice", sess.User.Username)
	assert.Equal(t, "bearer", sess.TokenType)
}

func TestAuth_Failures(t *testing.T) {
	env := newStubEnv(t)
	ctx := context.Background()
	env.register(t, "alice")

	tests := []struct {
		name    string
		call    func() error
		status  int
		message string
	}{
		{
			name: "duplicate username",
			call: func() error {
				_, err := env.auth.Register(ctx, &model.RegisterRequest{Username: "alice", Email: "other@example.com", Password: "password123"})
				return err
			},
			status:  http.StatusBadRequest,
			message: "Username already registered",
		},
		{
			name: "duplicate email",
			call: func() error {
				_, err := env.auth.Register(ctx, &model.RegisterRequest{Username: "alice2", Email: "ALICE@example.com", Password: "password123"})
				return err
			},
			status:  http.StatusBadRequest,
			message: "Email already registered",
		},
		{
			name: "short password",
			call: func() error {
				_, err := env.auth.Register(ctx, &model.RegisterRequest{Username: "bob", Email: "bob@example.com", Password: "short"})
				return err
			},
			status:  http.StatusUnprocessableEntity,
			message: "Password must be at least 8 characters",
		},
		{
			name: "wrong password",
			call: func() error {
				_, err := env.auth.Login(ctx, &model.LoginRequest{Username: "alice", Password: "wrong-password"})
				return err
			},
			status:  http.StatusUnauthorized,
			message: "Incorrect username or password",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			require.Error(t, err)

			var apiErr *apiclient.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.message, apiErr.Message)
		})
	}
}

func TestAuth_LogoutRevokesToken(t *testing.T) {
	env := newStubEnv(t)
	env.register(t, "alice")
	token := env.token(t)

	require.NoError(t, env.auth.Logout(context.Background()))
	assert.Empty(t, env.token(t))

	req, err := http.NewRequest(http.MethodGet, env.url+"/api/v1/auth/me", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuth_ExpiredTokenIsRejected(t *testing.T) {
	env := newStubEnv(t)
	env.register(t, "alice")

	env.server.now = func() time.Time { return time.Now().Add(2 * DefaultTokenTTL) }

	_, err := env.auth.Me(context.Background())
	require.Error(t, err)
	assert.True(t, apiclient.IsUnauthorized(err))
	assert.Empty(t, env.token(t), "401 clears the stored token")
}

func TestAuth_MissingTokenIs401(t *testing.T) {
	env := newStubEnv(t)

	_, err := env.health.GetStats(context.Background())
	require.Error(t, err)
	assert.True(t, apiclient.IsUnauthorized(err))
}

func TestHealth_PredictionsListAndStats(t *testing.T) {
	env := newStubEnv(t)
	ctx := context.Background()
	env.register(t, "alice")

	first, err := env.health.CreateSimplePrediction(ctx, &model.SimplePredictionRequest{
		Age: 28, HeightCm: 175, WeightKg: 70, ExerciseHoursPerWeek: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, model.RiskLevelLow, first.RiskLevel)
	assert.InDelta(t, 22.86, first.BMI, 0.01)

	systolic, diastolic := 160, 100
	chol := 260.0
	second, err := env.health.CreatePrediction(ctx, &model.PredictionRequest{
		Age: 65, HeightCm: 170, WeightKg: 100, Smoking: true, ExerciseHoursPerWeek: 0,
		SystolicBP: &systolic, DiastolicBP: &diastolic, Cholesterol: &chol,
	})
	require.NoError(t, err)
	assert.Equal(t, model.RiskLevelHigh, second.RiskLevel)
	require.NotNil(t, second.SystolicBP)
	assert.Equal(t, 160, *second.SystolicBP)

	list, err := env.health.GetPredictions(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID, "newest first")
	assert.Equal(t, first.ID, list[1].ID)

	page, err := env.health.GetPredictions(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, first.ID, page[0].ID)

	got, err := env.health.GetPrediction(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, second.RiskScore, got.RiskScore)

	stats, err := env.health.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalPredictions)
	assert.Equal(t, 1, stats.RiskDistribution.Low)
	assert.Equal(t, 1, stats.RiskDistribution.High)
	assert.InDelta(t, (first.RiskScore+second.RiskScore)/2, stats.AverageRiskScore, 0.001)
}

func TestHealth_PredictionsAreScopedToOwner(t *testing.T) {
	alice := newStubEnv(t)
	ctx := context.Background()
	alice.register(t, "alice")

	p, err := alice.health.CreateSimplePrediction(ctx, &model.SimplePredictionRequest{
		Age: 40, HeightCm: 180, WeightKg: 80, ExerciseHoursPerWeek: 3,
	})
	require.NoError(t, err)

	bob := newClientEnv(t, alice.server, alice.url)
	bob.register(t, "bob")

	_, err = bob.health.GetPrediction(ctx, p.ID)
	require.Error(t, err)
	assert.True(t, apiclient.IsNotFound(err))

	list, err := bob.health.GetPredictions(ctx, 0, 10)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestHealth_InvalidForm(t *testing.T) {
	env := newStubEnv(t)
	env.register(t, "alice")

	_, err := env.health.CreateSimplePrediction(context.Background(), &model.SimplePredictionRequest{
		Age: 0, HeightCm: 175, WeightKg: 70,
	})
	var apiErr *apiclient.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.Equal(t, "Age must be between 1 and 120", apiErr.Message)
}

func TestAI_ChatAndStatus(t *testing.T) {
	env := newStubEnv(t)
	ctx := context.Background()
	env.register(t, "alice")

	msg, err := env.ai.Chat(ctx, &model.ChatRequest{Prompt: "How much water should I drink?"})
	require.NoError(t, err)
	assert.Equal(t, "How much water should I drink?", msg.Prompt)
	assert.Contains(t, msg.Response, "How much water should I drink?")
	assert.Equal(t, stubModel, msg.Model)
	assert.Equal(t, msg.Usage.PromptTokens+msg.Usage.CompletionTokens, msg.Usage.TotalTokens)

	status, err := env.ai.Status(ctx)
	require.NoError(t, err)
	assert.True(t, status.Available)
}

func TestRouter_RecoversAndTagsRequests(t *testing.T) {
	server := NewServer(Config{Secret: "s"}, zap.NewNop())
	router := server.Router()
	router.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"message":"Internal server error"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestAssess(t *testing.T) {
	systolic := 150
	glucose := 130.0

	tests := []struct {
		name  string
		req   model.PredictionRequest
		level model.RiskLevel
		recs  int
	}{
		{
			name:  "healthy adult",
			req:   model.PredictionRequest{Age: 30, HeightCm: 175, WeightKg: 70, ExerciseHoursPerWeek: 4},
			level: model.RiskLevelLow,
			recs:  1,
		},
		{
			name:  "overweight smoker",
			req:   model.PredictionRequest{Age: 50, HeightCm: 175, WeightKg: 85, Smoking: true, ExerciseHoursPerWeek: 1},
			level: model.RiskLevelHigh,
			recs:  3,
		},
		{
			name:  "hypertensive",
			req:   model.PredictionRequest{Age: 40, HeightCm: 175, WeightKg: 70, ExerciseHoursPerWeek: 3, SystolicBP: &systolic, Glucose: &glucose},
			level: model.RiskLevelMedium,
			recs:  2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Assess(&tt.req)
			assert.Equal(t, tt.level, a.Level)
			assert.Len(t, a.Recommendations, tt.recs)
			assert.GreaterOrEqual(t, a.Score, 0.0)
			assert.LessOrEqual(t, a.Score, 1.0)
		})
	}
}
