// Package app wires configuration into the client's object graph:
// stores, transport, repositories, use-cases and view-models.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/internal/apiclient"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/internal/assistant"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/internal/audit"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/internal/config"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/internal/export"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/internal/privacy"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/internal/report"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/internal/repository"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/internal/schema"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/internal/security"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/internal/session"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/internal/storage"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/internal/usecase"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/internal/viewmodel"
	"go.uber.org/zap"
)

// App is the assembled client
type App struct {
	Store  storage.KeyValueStore
	Tokens session.TokenStore
	Client *apiclient.Client
	Sink   usecase.ReportSink
	Audit  *audit.Logger

	Auth    *viewmodel.AuthViewModel
	Health  *viewmodel.HealthViewModel
	Chat    *viewmodel.ChatViewModel
	Goals   *viewmodel.GoalsViewModel
	Logs    *viewmodel.LogsViewModel
	Profile *viewmodel.ProfileViewModel
	Mood    *viewmodel.MoodViewModel

	ExportReport    *usecase.ExportHealthReport
	ExportLocalData *usecase.ExportLocalData
	EraseLocalData  *usecase.EraseLocalData

	closers []io.Closer
	logger  *zap.Logger
}

type options struct {
	store storage.KeyValueStore
	sink  usecase.ReportSink
	ai    usecase.AIService
}

// Option overrides a dependency that would otherwise be built from config
type Option func(*options)

// WithStore uses store instead of opening cfg.Storage
func WithStore(store storage.KeyValueStore) Option {
	return func(o *options) { o.store = store }
}

// WithSink sends exported reports to sink
func WithSink(sink usecase.ReportSink) Option {
	return func(o *options) { o.sink = sink }
}

// WithAIService routes chat to svc instead of the configured provider
func WithAIService(svc usecase.AIService) Option {
	return func(o *options) { o.ai = svc }
}

// New builds the client from configuration
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger, opts ...Option) (*App, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	a := &App{logger: logger}

	store := o.store
	if store == nil {
		s, closer, err := storage.Open(ctx, cfg.Storage, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open storage: %w", err)
		}
		store = s
		a.closers = append(a.closers, closer)
	}
	a.Store = store

	sealer, err := security.NewSealer(cfg.Security.DeviceSecret, nil)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create token sealer: %w", err)
	}
	a.Tokens = session.NewSecureTokenStore(store, sealer, logger)

	validator, err := schema.NewValidator()
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to load response schemas: %w", err)
	}

	a.Client = apiclient.New(cfg.API.BaseURL, cfg.API.Timeout, a.Tokens, logger)

	authRepo := repository.NewAuthRepository(a.Client, validator, logger)
	healthRepo := repository.NewHealthRepository(a.Client, validator, logger)
	goalRepo := repository.NewGoalRepository(store, logger)
	logRepo := repository.NewLogRepository(store, logger)
	profileRepo := repository.NewProfileRepository(store, logger)
	moodRepo := repository.NewMoodRepository(store, logger)

	aiService := o.ai
	if aiService == nil {
		aiService, err = newAIService(cfg, a.Client, validator, logger)
		if err != nil {
			a.Close()
			return nil, err
		}
	}

	sink := o.sink
	if sink == nil {
		sink, err = newSink(cfg, logger)
		if err != nil {
			a.Close()
			return nil, err
		}
	}
	a.Sink = sink

	a.Audit = audit.NewLogger(store, logger)
	localData := privacy.NewService(store, a.Tokens, a.Audit, logger)

	a.Auth = viewmodel.NewAuthViewModel(viewmodel.AuthUseCases{
		Login:          usecase.NewLogin(authRepo, logger),
		Register:       usecase.NewRegister(authRepo, logger),
		Logout:         usecase.NewLogout(authRepo, logger),
		RestoreSession: usecase.NewRestoreSession(authRepo, logger),
	}, logger)

	a.Health = viewmodel.NewHealthViewModel(viewmodel.HealthUseCases{
		CreatePrediction:       usecase.NewCreatePrediction(healthRepo, logger),
		CreateSimplePrediction: usecase.NewCreateSimplePrediction(healthRepo, logger),
		GetPredictions:         usecase.NewGetPredictions(healthRepo, logger),
		GetPrediction:          usecase.NewGetPrediction(healthRepo, logger),
		GetHealthStats:         usecase.NewGetHealthStats(healthRepo, logger),
	}, logger)

	a.Chat = viewmodel.NewChatViewModel(viewmodel.ChatUseCases{
		ChatWithAI:  usecase.NewChatWithAI(aiService, logger),
		GetAIStatus: usecase.NewGetAIStatus(aiService, logger),
	}, logger)

	a.Goals = viewmodel.NewGoalsViewModel(viewmodel.GoalsUseCases{
		Create:         usecase.NewCreateHealthGoal(goalRepo, logger),
		GetUserGoals:   usecase.NewGetUserGoals(goalRepo, logger),
		UpdateProgress: usecase.NewUpdateGoalProgress(goalRepo, logger),
		UpdateStatus:   usecase.NewUpdateGoalStatus(goalRepo, logger),
		Delete:         usecase.NewDeleteGoal(goalRepo, logger),
	}, logger)

	a.Logs = viewmodel.NewLogsViewModel(viewmodel.LogsUseCases{
		LogHealthData: usecase.NewLogHealthData(logRepo, logger),
		GetUserLogs:   usecase.NewGetUserLogs(logRepo, logger),
		DeleteLog:     usecase.NewDeleteLog(logRepo, logger),
	}, logger)

	a.Profile = viewmodel.NewProfileViewModel(viewmodel.ProfileUseCases{
		GetProfile:         usecase.NewGetProfile(profileRepo, logger),
		SaveProfile:        usecase.NewSaveProfile(profileRepo, logger),
		UpdateProfile:      usecase.NewUpdateProfile(profileRepo, logger),
		CompleteOnboarding: usecase.NewCompleteOnboarding(profileRepo, goalRepo, logger),
	}, logger)

	a.Mood = viewmodel.NewMoodViewModel(viewmodel.MoodUseCases{
		Record:     usecase.NewRecordMoodCheckIn(moodRepo, logger),
		GetHistory: usecase.NewGetMoodHistory(moodRepo, logger),
	}, logger)

	a.ExportReport = usecase.NewExportHealthReport(
		profileRepo, healthRepo, goalRepo, logRepo, moodRepo,
		report.NewGenerator(logger), sink, logger,
	)
	a.ExportLocalData = usecase.NewExportLocalData(localData, logger)
	a.EraseLocalData = usecase.NewEraseLocalData(localData, logger)

	logger.Info("client assembled",
		zap.String("api_base_url", cfg.API.BaseURL),
		zap.String("storage_driver", cfg.Storage.Driver),
		zap.String("ai_provider", cfg.AI.Provider),
	)

	return a, nil
}

func newAIService(cfg *config.Config, client *apiclient.Client, validator *schema.Validator, logger *zap.Logger) (usecase.AIService, error) {
	if cfg.AI.Provider != config.ProviderAzureOpenAI {
		return repository.NewAIRepository(client, validator, logger), nil
	}

	c, err := assistant.NewClient(cfg.Azure.OpenAI.Endpoint, cfg.Azure.OpenAI.APIKey, cfg.Azure.OpenAI.Deployment, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Azure OpenAI client: %w", err)
	}
	return c, nil
}

func newSink(cfg *config.Config, logger *zap.Logger) (usecase.ReportSink, error) {
	if cfg.BlobUploadsEnabled() {
		sink, err := export.NewBlobSink(cfg.Azure.Storage.AccountName, cfg.Azure.Storage.AccountKey, cfg.Azure.Storage.ReportContainer, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize blob sink: %w", err)
		}
		return sink, nil
	}

	sink, err := export.NewFileSink(cfg.Export.Dir, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize file sink: %w", err)
	}
	return sink, nil
}

// Close releases the stores opened by New
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
