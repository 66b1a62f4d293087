package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/internal/apiclient"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/internal/session"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/pkg/model"
	"go.uber.org/zap"
)

// MinPasswordLength applies to login and registration
const MinPasswordLength = 8

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Login signs a user in
type Login struct {
	repo   AuthRepository
	logger *zap.Logger
}

// NewLogin creates a new Login use-case
func NewLogin(repo AuthRepository, logger *zap.Logger) *Login {
	return &Login{repo: repo, logger: logger}
}

// Execute validates credentials and signs in
func (uc *Login) Execute(ctx context.Context, req *model.LoginRequest) (*model.AuthSession, error) {
	if req == nil {
		return nil, required("credentials", "credentials")
	}
	if strings.TrimSpace(req.Username) == "" {
		return nil, required("username", "username")
	}
	if req.Password == "" {
		return nil, required("password", "password")
	}
	if len(req.Password) < MinPasswordLength {
		return nil, invalid("password", "password must be at least %d characters", MinPasswordLength)
	}

	sess, err := uc.repo.Login(ctx, req)
	if err != nil {
		uc.logger.Warn("login failed", zap.String("username", req.Username), zap.Error(err))
		return nil, err
	}
	if sess != nil && sess.User != nil {
		uc.logger.Info("user signed in", zap.Int64("user_id", sess.User.ID))
	}
	return sess, nil
}

// Register creates an account
type Register struct {
	repo   AuthRepository
	logger *zap.Logger
}

// NewRegister creates a new Register use-case
func NewRegister(repo AuthRepository, logger *zap.Logger) *Register {
	return &Register{repo: repo, logger: logger}
}

// Execute validates the registration form and creates the account
func (uc *Register) Execute(ctx context.Context, req *model.RegisterRequest) (*model.AuthSession, error) {
	if req == nil {
		return nil, required("registration", "registration form")
	}
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, required("username", "username")
	}
	if len(username) < 3 || len(username) > 50 {
		return nil, invalid("username", "username must be between 3 and 50 characters")
	}
	if !emailPattern.MatchString(req.Email) {
		return nil, invalid("email", "invalid email address")
	}
	if len(req.Password) < MinPasswordLength {
		return nil, invalid("password", "password must be at least %d characters", MinPasswordLength)
	}
	if strings.TrimSpace(req.FullName) == "" {
		return nil, required("full_name", "full name")
	}

	sess, err := uc.repo.Register(ctx, req)
	if err != nil {
		uc.logger.Warn("registration failed", zap.String("username", username), zap.Error(err))
		return nil, err
	}
	if sess != nil && sess.User != nil {
		uc.logger.Info("account registered", zap.Int64("user_id", sess.User.ID))
	}
	return sess, nil
}

// Logout ends the session
type Logout struct {
	repo   AuthRepository
	logger *zap.Logger
}

// NewLogout creates a new Logout use-case
func NewLogout(repo AuthRepository, logger *zap.Logger) *Logout {
	return &Logout{repo: repo, logger: logger}
}

// Execute signs out
func (uc *Logout) Execute(ctx context.Context) error {
	if err := uc.repo.Logout(ctx); err != nil {
		return err
	}
	uc.logger.Info("user signed out")
	return nil
}

// GetCurrentUser fetches the signed-in account
type GetCurrentUser struct {
	repo   AuthRepository
	logger *zap.Logger
}

// NewGetCurrentUser creates a new GetCurrentUser use-case
func NewGetCurrentUser(repo AuthRepository, logger *zap.Logger) *GetCurrentUser {
	return &GetCurrentUser{repo: repo, logger: logger}
}

// Execute returns the account behind the stored token
func (uc *GetCurrentUser) Execute(ctx context.Context) (*model.User, error) {
	user, err := uc.repo.Me(ctx)
	if err != nil {
		uc.logger.Debug("failed to fetch current user", zap.Error(err))
		return nil, err
	}
	return user, nil
}

// RestoreSession resumes a previous session from the stored token
type RestoreSession struct {
	repo   AuthRepository
	now    func() time.Time
	logger *zap.Logger
}

// NewRestoreSession creates a new RestoreSession use-case
func NewRestoreSession(repo AuthRepository, logger *zap.Logger) *RestoreSession {
	return &RestoreSession{repo: repo, now: time.Now, logger: logger}
}

// Execute returns the signed-in user, or nil when there is no usable session.
// An expired token is cleared locally without contacting the backend; a token
// the backend rejects has already been cleared by the transport.
func (uc *RestoreSession) Execute(ctx context.Context) (*model.User, error) {
	token, err := uc.repo.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if token == "" {
		return nil, nil
	}

	if session.TokenExpired(token, uc.now()) {
		uc.logger.Info("stored session expired, signing out")
		if err := uc.repo.ClearToken(ctx); err != nil {
			return nil, fmt.Errorf("failed to clear expired session: %w", err)
		}
		return nil, nil
	}

	user, err := uc.repo.Me(ctx)
	if apiclient.IsUnauthorized(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
