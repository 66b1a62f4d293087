package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/internal/security"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/internal/storage"
	"go.uber.org/zap"
)

// TokenStore holds the bearer token of the signed-in user
type TokenStore interface {
	Token(ctx context.Context) (string, error)
	SetToken(ctx context.Context, token string) error
	ClearToken(ctx context.Context) error
}

// SecureTokenStore seals the token before writing it to a key-value slot
type SecureTokenStore struct {
	store  storage.KeyValueStore
	sealer *security.Sealer
	logger *zap.Logger
	mu     sync.Mutex
}

// NewSecureTokenStore creates a token store backed by the auth token slot
func NewSecureTokenStore(store storage.KeyValueStore, sealer *security.Sealer, logger *zap.Logger) *SecureTokenStore {
	return &SecureTokenStore{
		store:  store,
		sealer: sealer,
		logger: logger,
	}
}

// Token returns the stored token, or "" when none is stored.
// A token that cannot be unsealed is discarded and reported as absent.
func (s *SecureTokenStore) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sealed, err := s.store.Get(ctx, storage.KeyAuthToken)
	if errors.Is(err, storage.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read auth token: %w", err)
	}

	token, err := s.sealer.Open(sealed)
	if err != nil {
		s.logger.Warn("stored auth token could not be unsealed, discarding", zap.Error(err))
		if derr := s.store.Delete(ctx, storage.KeyAuthToken); derr != nil {
			s.logger.Error("failed to discard auth token", zap.Error(derr))
		}
		return "", nil
	}

	return token, nil
}

// SetToken seals and stores token
func (s *SecureTokenStore) SetToken(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sealed, err := s.sealer.Seal(token)
	if err != nil {
		return fmt.Errorf("failed to seal auth token: %w", err)
	}

	if err := s.store.Set(ctx, storage.KeyAuthToken, sealed); err != nil {
		return fmt.Errorf("failed to store auth token: %w", err)
	}
	return nil
}

// ClearToken deletes the stored token
func (s *SecureTokenStore) ClearToken(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Delete(ctx, storage.KeyAuthToken); err != nil {
		return fmt.Errorf("failed to delete auth token: %w", err)
	}
	return nil
}

// TokenExpiry reads the exp claim without verifying the signature; the backend
// remains the authority, the client only uses it to skip doomed requests.
// ok is false when the token is malformed or carries no exp claim.
func TokenExpiry(token string) (exp time.Time, ok bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}

	numeric, err := claims.GetExpirationTime()
	if err != nil || numeric == nil {
		return time.Time{}, false
	}
	return numeric.Time, true
}

// TokenExpired reports whether token carries an exp claim in the past
func TokenExpired(token string, now time.Time) bool {
	exp, ok := TokenExpiry(token)
	if !ok {
		return false
	}
	return !now.Before(exp)
}
