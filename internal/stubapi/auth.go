package stubapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/segmentio/ksuid"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/internal/middleware"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/pkg/model"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	userKey   = "stub_user"
	claimsKey = "stub_claims"

	minUsernameLength = 3
	minPasswordLength = 8
)

var errInvalidToken = errors.New("invalid token")

// issueToken signs an HS256 access token for the user
func (s *Server) issueToken(userID int64) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		ID:        ksuid.New().String(),
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// parseToken verifies the signature, expiry and revocation of a token
func (s *Server) parseToken(raw string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errInvalidToken
	}

	s.mu.RLock()
	_, revoked := s.revoked[claims.ID]
	s.mu.RUnlock()
	if revoked {
		return nil, errInvalidToken
	}
	return claims, nil
}

// requireAuth resolves the bearer token to an account or answers 401
func (s *Server) requireAuth(c *gin.Context) {
	header := c.GetHeader("Authorization")
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(raw) == "" {
		detail(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	claims, err := s.parseToken(strings.TrimSpace(raw))
	if err != nil {
		s.logger.Debug("rejected bearer token", zap.Error(err))
		detail(c, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		detail(c, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	s.mu.RLock()
	acc, ok := s.accounts[userID]
	s.mu.RUnlock()
	if !ok || !acc.user.IsActive {
		detail(c, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	user := acc.user
	c.Set(userKey, &user)
	c.Set(claimsKey, claims)
	c.Set(middleware.UserIDKey, claims.Subject)
	c.Next()
}

func currentUser(c *gin.Context) *model.User {
	return c.MustGet(userKey).(*model.User)
}

func (s *Server) register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		unprocessable(c, "body", "Invalid request body")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	switch {
	case len(req.Username) < minUsernameLength:
		unprocessable(c, "username", fmt.Sprintf("Username must be at least %d characters", minUsernameLength))
		return
	case !strings.Contains(req.Email, "@"):
		unprocessable(c, "email", "Invalid email address")
		return
	case len(req.Password) < minPasswordLength:
		unprocessable(c, "password", fmt.Sprintf("Password must be at least %d characters", minPasswordLength))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.Error(fmt.Errorf("failed to hash password: %w", err))
		detail(c, http.StatusInternalServerError, "Registration failed")
		return
	}

	s.mu.Lock()
	if _, taken := s.usernames[req.Username]; taken {
		s.mu.Unlock()
		detail(c, http.StatusBadRequest, "Username already registered")
		return
	}
	if _, taken := s.emails[req.Email]; taken {
		s.mu.Unlock()
		detail(c, http.StatusBadRequest, "Email already registered")
		return
	}

	s.nextUserID++
	acc := &account{
		user: model.User{
			ID:        s.nextUserID,
			Username:  req.Username,
			Email:     req.Email,
			FullName:  req.FullName,
			IsActive:  true,
			CreatedAt: s.now().UTC(),
		},
		passwordHash: hash,
	}
	s.accounts[acc.user.ID] = acc
	s.usernames[acc.user.Username] = acc.user.ID
	s.emails[acc.user.Email] = acc.user.ID
	s.mu.Unlock()

	token, err := s.issueToken(acc.user.ID)
	if err != nil {
		c.Error(err)
		detail(c, http.StatusInternalServerError, "Registration failed")
		return
	}

	s.logger.Info("user registered",
		zap.Int64("user_id", acc.user.ID),
		zap.String("username", acc.user.Username),
	)

	user := acc.user
	c.JSON(http.StatusCreated, model.AuthSession{
		AccessToken: token,
		TokenType:   "bearer",
		User:        &user,
	})
}

// login answers with the token only; clients fetch the user from /auth/me
func (s *Server) login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		unprocessable(c, "body", "Invalid request body")
		return
	}

	s.mu.RLock()
	var acc *account
	if id, ok := s.usernames[strings.TrimSpace(req.Username)]; ok {
		acc = s.accounts[id]
	}
	s.mu.RUnlock()

	if acc == nil || bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(req.Password)) != nil {
		s.logger.Warn("login rejected", zap.String("username", req.Username))
		detail(c, http.StatusUnauthorized, "Incorrect username or password")
		return
	}

	token, err := s.issueToken(acc.user.ID)
	if err != nil {
		c.Error(err)
		detail(c, http.StatusInternalServerError, "Login failed")
		return
	}

	c.JSON(http.StatusOK, model.AuthSession{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

func (s *Server) me(c *gin.Context) {
	c.JSON(http.StatusOK, currentUser(c))
}

// logout revokes the presented token until it would have expired anyway
func (s *Server) logout(c *gin.Context) {
	claims := c.MustGet(claimsKey).(*jwt.RegisteredClaims)

	s.mu.Lock()
	now := s.now()
	for id, exp := range s.revoked {
		if exp.Before(now) {
			delete(s.revoked, id)
		}
	}
	s.revoked[claims.ID] = claims.ExpiresAt.Time
	s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
}
