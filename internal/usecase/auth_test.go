package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/internal/apiclient"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/internal/mocks"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/pkg/model"
	"go.uber.org/zap"
)

func TestLogin_ValidationErrors(t *testing.T) {
	tests := []struct {
		name          string
		req           *model.LoginRequest
		expectedField string
		expectedErr   string
	}{
		{name: "missing username", req: &model.LoginRequest{Password: "password123"}, expectedField: "username", expectedErr: "username is required"},
		{name: "blank username", req: &model.LoginRequest{Username: "   ", Password: "password123"}, expectedField: "username", expectedErr: "username is required"},
		{name: "missing password", req: &model.LoginRequest{Username: "alice"}, expectedField: "password", expectedErr: "password is required"},
		{name: "short password", req: &model.LoginRequest{Username: "alice", Password: "short"}, expectedField: "password", expectedErr: "password must be at least 8 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockAuthRepository)
			uc := NewLogin(repo, zap.NewNop())

			_, err := uc.Execute(context.Background(), tt.req)

			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tt.expectedField, vErr.Field)
			assert.Equal(t, tt.expectedErr, vErr.Message)
			repo.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
		})
	}
}

func TestLogin_ShortPasswordFailsEvenIfBackendWouldAccept(t *testing.T) {
	repo := new(mocks.MockAuthRepository)
	repo.On("Login", mock.Anything, mock.Anything).Return(&model.AuthSession{AccessToken: "tok"}, nil).Maybe()
	uc := NewLogin(repo, zap.NewNop())

	session, err := uc.Execute(context.Background(), &model.LoginRequest{Username: "alice", Password: "1234567"})

	assert.Nil(t, session)
	assert.True(t, IsValidationError(err))
	repo.AssertNumberOfCalls(t, "Login", 0)
}

func TestLogin_Success(t *testing.T) {
	req := &model.LoginRequest{Username: "alice", Password: "password123"}
	expected := &model.AuthSession{AccessToken: "tok", TokenType: "bearer", User: &model.User{ID: 1, Username: "alice"}}

	repo := new(mocks.MockAuthRepository)
	repo.On("Login", mock.Anything, req).Return(expected, nil)
	uc := NewLogin(repo, zap.NewNop())

	session, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Same(t, expected, session)
	repo.AssertExpectations(t)
}

func TestRegister_ValidationErrors(t *testing.T) {
	valid := func() *model.RegisterRequest {
		return &model.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "password123", FullName: "Alice Smith"}
	}

	tests := []struct {
		name          string
		mutate        func(*model.RegisterRequest)
		expectedField string
	}{
		{name: "missing username", mutate: func(r *model.RegisterRequest) { r.Username = "" }, expectedField: "username"},
		{name: "username too short", mutate: func(r *model.RegisterRequest) { r.Username = "al" }, expectedField: "username"},
		{name: "username too long", mutate: func(r *model.RegisterRequest) { r.Username = strings.Repeat("a", 51) }, expectedField: "username"},
		{name: "invalid email", mutate: func(r *model.RegisterRequest) { r.Email = "alice.example.com" }, expectedField: "email"},
		{name: "email with space", mutate: func(r *model.RegisterRequest) { r.Email = "al ice@example.com" }, expectedField: "email"},
		{name: "short password", mutate: func(r *model.RegisterRequest) { r.Password = "pass" }, expectedField: "password"},
		{name: "missing full name", mutate: func(r *model.RegisterRequest) { r.FullName = " " }, expectedField: "full_name"},
		{name: "first violation wins", mutate: func(r *model.RegisterRequest) { r.Email = "bad"; r.Password = "x" }, expectedField: "email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockAuthRepository)
			uc := NewRegister(repo, zap.NewNop())

			req := valid()
			tt.mutate(req)
			_, err := uc.Execute(context.Background(), req)

			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tt.expectedField, vErr.Field)
			repo.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
		})
	}
}

func TestRegister_PropagatesBackendError(t *testing.T) {
	req := &model.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "password123", FullName: "Alice"}
	backendErr := &apiclient.APIError{StatusCode: 400, Message: "Username already registered"}

	repo := new(mocks.MockAuthRepository)
	repo.On("Register", mock.Anything, req).Return(nil, backendErr)
	uc := NewRegister(repo, zap.NewNop())

	_, err := uc.Execute(context.Background(), req)
	assert.Equal(t, "Username already registered", err.Error())
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "alice",
		"exp": exp.Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestRestoreSession(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	user := &model.User{ID: 1, Username: "alice"}

	t.Run("no token", func(t *testing.T) {
		repo := new(mocks.MockAuthRepository)
		repo.On("Token", mock.Anything).Return("", nil)
		uc := NewRestoreSession(repo, zap.NewNop())

		got, err := uc.Execute(ctx)
		require.NoError(t, err)
		assert.Nil(t, got)
		repo.AssertNotCalled(t, "Me", mock.Anything)
	})

	t.Run("expired token is cleared without a request", func(t *testing.T) {
		repo := new(mocks.MockAuthRepository)
		repo.On("Token", mock.Anything).Return(signedToken(t, now.Add(-time.Minute)), nil)
		repo.On("ClearToken", mock.Anything).Return(nil)
		uc := NewRestoreSession(repo, zap.NewNop())
		uc.now = func() time.Time { return now }

		got, err := uc.Execute(ctx)
		require.NoError(t, err)
		assert.Nil(t, got)
		repo.AssertCalled(t, "ClearToken", mock.Anything)
		repo.AssertNotCalled(t, "Me", mock.Anything)
	})

	t.Run("valid token fetches the user", func(t *testing.T) {
		repo := new(mocks.MockAuthRepository)
		repo.On("Token", mock.Anything).Return(signedToken(t, now.Add(time.Hour)), nil)
		repo.On("Me", mock.Anything).Return(user, nil)
		uc := NewRestoreSession(repo, zap.NewNop())
		uc.now = func() time.Time { return now }

		got, err := uc.Execute(ctx)
		require.NoError(t, err)
		assert.Equal(t, user, got)
	})

	t.Run("rejected token yields no session", func(t *testing.T) {
		repo := new(mocks.MockAuthRepository)
		repo.On("Token", mock.Anything).Return("opaque-token", nil)
		repo.On("Me", mock.Anything).Return(nil, &apiclient.APIError{StatusCode: 401, Message: "Not authenticated"})
		uc := NewRestoreSession(repo, zap.NewNop())

		got, err := uc.Execute(ctx)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("network failure is returned", func(t *testing.T) {
		repo := new(mocks.MockAuthRepository)
		repo.On("Token", mock.Anything).Return("opaque-token", nil)
		repo.On("Me", mock.Anything).Return(nil, &apiclient.NetworkError{Err: errors.New("dial tcp: refused")})
		uc := NewRestoreSession(repo, zap.NewNop())

		_, err := uc.Execute(ctx)
		assert.EqualError(t, err, apiclient.NetworkErrorMessage)
	})
}
