package repository

import (
	"context"
	"fmt"

	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/internal/apiclient"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/internal/schema"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/pkg/model"
	"go.uber.org/zap"
)

// AuthRepository talks to the /auth endpoints and keeps the bearer token in sync
type AuthRepository struct {
	client    *apiclient.Client
	validator *schema.Validator
	logger    *zap.Logger
}

// NewAuthRepository creates a new AuthRepository
func NewAuthRepository(client *apiclient.Client, validator *schema.Validator, logger *zap.Logger) *AuthRepository {
	return &AuthRepository{
		client:    client,
		validator: validator,
		logger:    logger,
	}
}

// Register creates an account and signs in with the returned token
func (r *AuthRepository) Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthSession, error) {
	return r.authenticate(ctx, "/auth/register", req)
}

// Login exchanges credentials for a session
func (r *AuthRepository) Login(ctx context.Context, req *model.LoginRequest) (*model.AuthSession, error) {
	return r.authenticate(ctx, "/auth/login", req)
}

func (r *AuthRepository) authenticate(ctx context.Context, path string, req any) (*model.AuthSession, error) {
	body, err := r.client.Post(ctx, path, req)
	if err != nil {
		return nil, err
	}

	var session model.AuthSession
	if err := decodeResponse(r.validator, r.logger, path, schema.AuthSession, body, &session); err != nil {
		return nil, err
	}

	if err := r.client.Tokens().SetToken(ctx, session.AccessToken); err != nil {
		r.logger.Error("failed to persist auth token", zap.Error(err))
		return nil, fmt.Errorf("failed to persist auth token: %w", err)
	}

	if session.User == nil {
		user, err := r.Me(ctx)
		if err != nil {
			return nil, err
		}
		session.User = user
	}

	r.logger.Info("user authenticated",
		zap.Int64("user_id", session.User.ID),
		zap.String("path", path),
	)

	return &session, nil
}

// Me returns the account behind the stored token
func (r *AuthRepository) Me(ctx context.Context) (*model.User, error) {
	body, err := r.client.Get(ctx, "/auth/me", nil)
	if err != nil {
		return nil, err
	}

	var user model.User
	if err := decodeResponse(r.validator, r.logger, "/auth/me", schema.User, body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout notifies the backend and clears the local token.
// The token is cleared even when the backend call fails; that failure is only logged.
func (r *AuthRepository) Logout(ctx context.Context) error {
	if _, err := r.client.Post(ctx, "/auth/logout", nil); err != nil {
		r.logger.Warn("backend logout failed, clearing local session anyway", zap.Error(err))
	}

	if err := r.client.Tokens().ClearToken(ctx); err != nil {
		return fmt.Errorf("failed to clear auth token: %w", err)
	}
	return nil
}

// Token returns the stored bearer token, "" when signed out
func (r *AuthRepository) Token(ctx context.Context) (string, error) {
	return r.client.Tokens().Token(ctx)
}

// ClearToken drops the stored bearer token without contacting the backend
func (r *AuthRepository) ClearToken(ctx context.Context) error {
	return r.client.Tokens().ClearToken(ctx)
}
