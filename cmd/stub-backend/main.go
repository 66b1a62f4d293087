// Command stub-backend serves the in-memory Eva REST API for local development.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/internal/assistant"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/internal/config"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/internal/logging"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/internal/middleware"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/internal/stubapi"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.LoadStubBackend()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	logger, err := logging.New(logging.Options{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		File:        cfg.Logging.File,
		Development: cfg.Environment != "production",
	})
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	stubCfg := stubapi.Config{
		Secret:   cfg.JWTSecret,
		TokenTTL: cfg.TokenTTL,
	}
	if cfg.AI.Provider == config.ProviderAzureOpenAI {
		client, err := assistant.NewClient(
			cfg.Azure.OpenAI.Endpoint,
			cfg.Azure.OpenAI.APIKey,
			cfg.Azure.OpenAI.Deployment,
			logger,
		)
		if err != nil {
			logger.Fatal("failed to initialize Azure OpenAI client", zap.Error(err))
		}
		stubCfg.Assistant = client
	}
	server := stubapi.NewServer(stubCfg, logger)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// recovery must be first
	r.Use(middleware.RecoveryMiddleware(logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}))
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RequestLoggingMiddleware(logger))
	r.Use(middleware.ErrorLoggingMiddleware(logger))

	server.Register(r)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		logger.Info("starting stub backend",
			zap.String("port", cfg.Port),
			zap.String("ai_provider", cfg.AI.Provider),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down stub backend")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}

	logger.Info("stub backend exited")
}
