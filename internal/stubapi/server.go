// Package stubapi is an in-memory implementation of the backend REST API.
// It serves local development through cmd/stub-backend and end-to-end tests
// through httptest. Accounts and predictions live only as long as the Server.
package stubapi

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/internal/middleware"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/pkg/model"
	"go.uber.org/zap"
)

// DefaultTokenTTL is how long issued access tokens stay valid
const DefaultTokenTTL = 24 * time.Hour

// Assistant answers chat prompts; nil means the canned stub responder
type Assistant interface {
	Chat(ctx context.Context, req *model.ChatRequest) (*model.AIChatMessage, error)
	Status(ctx context.Context) (*model.AIStatus, error)
}

// Config configures a Server
type Config struct {
	Secret    string
	TokenTTL  time.Duration
	Assistant Assistant
}

type account struct {
	user         model.User
	passwordHash []byte
}

// Server holds the in-memory backend state
type Server struct {
	mu          sync.RWMutex
	accounts    map[int64]*account
	usernames   map[string]int64
	emails      map[string]int64
	predictions map[int64]*model.HealthPrediction
	byUser      map[int64][]int64
	revoked     map[string]time.Time
	nextUserID  int64
	nextPredID  int64

	secret    []byte
	tokenTTL  time.Duration
	assistant Assistant
	now       func() time.Time
	logger    *zap.Logger
}

// NewServer creates an empty backend
func NewServer(cfg Config, logger *zap.Logger) *Server {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	return &Server{
		accounts:    make(map[int64]*account),
		usernames:   make(map[string]int64),
		emails:      make(map[string]int64),
		predictions: make(map[int64]*model.HealthPrediction),
		byUser:      make(map[int64][]int64),
		revoked:     make(map[string]time.Time),
		secret:      []byte(cfg.Secret),
		tokenTTL:    ttl,
		assistant:   cfg.Assistant,
		now:         time.Now,
		logger:      logger,
	}
}

// Router builds the gin engine with every /api/v1 route registered
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(middleware.RecoveryMiddleware(s.logger))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.RequestLoggingMiddleware(s.logger))
	router.Use(middleware.ErrorLoggingMiddleware(s.logger))

	s.Register(router)
	return router
}

// Register adds the API routes to an existing router
func (s *Server) Register(router gin.IRouter) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.POST("/register", s.register)
	auth.POST("/login", s.login)
	auth.GET("/me", s.requireAuth, s.me)
	auth.POST("/logout", s.requireAuth, s.logout)

	health := v1.Group("/health", s.requireAuth)
	health.POST("/predict", s.predict)
	health.POST("/predict-simple", s.predictSimple)
	health.GET("/predictions", s.listPredictions)
	health.GET("/predictions/:id", s.getPrediction)
	health.GET("/stats", s.stats)

	ai := v1.Group("/ai", s.requireAuth)
	ai.POST("/chat", s.chat)
	ai.GET("/status", s.status)
}

// detail writes the {"detail": "..."} error body
func detail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"detail": msg})
}

// unprocessable writes the {"detail": [{"msg": "..."}]} validation error body
func unprocessable(c *gin.Context, field, msg string) {
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{
		"detail": []gin.H{{"loc": []string{"body", field}, "msg": msg, "type": "value_error"}},
	})
}
