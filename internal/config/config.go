package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

// AI providers
const (
	ProviderBackend     = "backend"
	ProviderAzureOpenAI = "azure-openai"
)

// Config holds all client configuration
type Config struct {
	Environment    string
	API            APIConfig
	Storage        StorageConfig
	Security       SecurityConfig
	AI             AIConfig
	Azure          AzureConfig
	Export         ExportConfig
	Logging        LoggingConfig
	ErrorReporting ErrorReportingConfig
}

// APIConfig holds the remote backend settings
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// StorageConfig selects the key-value backend for local slots
type StorageConfig struct {
	Driver      string
	SQLitePath  string
	RedisURL    string
	PostgresURL string
	KeyPrefix   string
}

// SecurityConfig holds the secret used to seal the auth token at rest
type SecurityConfig struct {
	DeviceSecret string
}

// AIConfig selects where chat prompts are sent
type AIConfig struct {
	Provider string
}

// AzureConfig holds Azure service configuration
type AzureConfig struct {
	OpenAI  OpenAIConfig
	Storage BlobConfig
}

// OpenAIConfig holds Azure OpenAI configuration
type OpenAIConfig struct {
	Endpoint   string
	APIKey     string
	Deployment string
}

// BlobConfig holds Azure Blob Storage configuration for report uploads
type BlobConfig struct {
	AccountName     string
	AccountKey      string
	ReportContainer string
}

// ExportConfig holds where generated reports are written
type ExportConfig struct {
	Dir string
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string // json or console
	File   string // optional rotating log file pattern
}

// ErrorReportingConfig holds the optional error reporting endpoint
type ErrorReportingConfig struct {
	Endpoint string
	Token    string
}

// Load reads configuration from an optional .env file, environment variables and defaults
func Load() (*Config, error) {
	// best effort: a missing .env is not an error
	_ = godotenv.Load()

	v := viper.New()

	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")

	v.SetDefault("api.baseurl", "http://localhost:8000")
	v.SetDefault("api.timeout", 30*time.Second)

	v.SetDefault("storage.driver", DriverSQLite)
	v.SetDefault("storage.sqlitepath", "eva-mobile.db")
	v.SetDefault("storage.keyprefix", "")

	v.SetDefault("ai.provider", ProviderBackend)

	v.SetDefault("azure.storage.reportcontainer", "health-reports")

	v.SetDefault("export.dir", "reports")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// bindEnvVars binds environment variables to config keys
func bindEnvVars(v *viper.Viper) {
	v.BindEnv("environment", "ENV", "ENVIRONMENT")

	// API
	v.BindEnv("api.baseurl", "EVA_API_BASE_URL")
	v.BindEnv("api.timeout", "EVA_API_TIMEOUT")

	// Storage
	v.BindEnv("storage.driver", "EVA_STORAGE_DRIVER")
	v.BindEnv("storage.sqlitepath", "EVA_SQLITE_PATH")
	v.BindEnv("storage.redisurl", "REDIS_URL")
	v.BindEnv("storage.postgresurl", "DATABASE_URL")
	v.BindEnv("storage.keyprefix", "EVA_STORAGE_KEY_PREFIX")

	// Security
	v.BindEnv("security.devicesecret", "EVA_DEVICE_SECRET")

	// AI
	v.BindEnv("ai.provider", "EVA_AI_PROVIDER")

	// Azure OpenAI
	v.BindEnv("azure.openai.endpoint", "AZURE_OPENAI_ENDPOINT")
	v.BindEnv("azure.openai.apikey", "AZURE_OPENAI_API_KEY")
	v.BindEnv("azure.openai.deployment", "AZURE_OPENAI_DEPLOYMENT")

	// Azure Storage
	v.BindEnv("azure.storage.accountname", "AZURE_STORAGE_ACCOUNT_NAME")
	v.BindEnv("azure.storage.accountkey", "AZURE_STORAGE_ACCOUNT_KEY")
	v.BindEnv("azure.storage.reportcontainer", "AZURE_STORAGE_REPORT_CONTAINER")

	// Export
	v.BindEnv("export.dir", "EVA_EXPORT_DIR")

	// Logging
	v.BindEnv("logging.level", "LOG_LEVEL")
	v.BindEnv("logging.format", "LOG_FORMAT")
	v.BindEnv("logging.file", "LOG_FILE")

	// Error reporting
	v.BindEnv("errorreporting.endpoint", "ERROR_REPORTING_ENDPOINT")
	v.BindEnv("errorreporting.token", "ERROR_REPORTING_TOKEN")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.baseurl is required")
	}

	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive")
	}

	if c.Security.DeviceSecret == "" {
		return fmt.Errorf("security.devicesecret is required")
	}

	switch c.Storage.Driver {
	case DriverMemory:
	case DriverSQLite:
		if c.Storage.SQLitePath == "" {
			return fmt.Errorf("storage.sqlitepath is required for the sqlite driver")
		}
	case DriverRedis:
		if c.Storage.RedisURL == "" {
			return fmt.Errorf("storage.redisurl is required for the redis driver")
		}
	case DriverPostgres:
		if c.Storage.PostgresURL == "" {
			return fmt.Errorf("storage.postgresurl is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown storage.driver: %q", c.Storage.Driver)
	}

	switch c.AI.Provider {
	case ProviderBackend:
	case ProviderAzureOpenAI:
		if c.Azure.OpenAI.Endpoint == "" || c.Azure.OpenAI.APIKey == "" || c.Azure.OpenAI.Deployment == "" {
			return fmt.Errorf("azure.openai endpoint, apikey and deployment are required for the azure-openai provider")
		}
	default:
		return fmt.Errorf("unknown ai.provider: %q", c.AI.Provider)
	}

	if c.ErrorReporting.Token != "" && c.ErrorReporting.Endpoint == "" {
		return fmt.Errorf("errorreporting.endpoint is required when a token is set")
	}

	return nil
}

// BlobUploadsEnabled reports whether report uploads to Azure Blob Storage are configured
func (c *Config) BlobUploadsEnabled() bool {
	return c.Azure.Storage.AccountName != "" && c.Azure.Storage.AccountKey != ""
}

// StubBackendConfig holds the settings of cmd/stub-backend
type StubBackendConfig struct {
	Environment string
	Port        string
	JWTSecret   string
	TokenTTL    time.Duration
	AI          AIConfig
	Azure       AzureConfig
	Logging     LoggingConfig
}

// LoadStubBackend reads the stub backend configuration the same way Load does
func LoadStubBackend() (*StubBackendConfig, error) {
	_ = godotenv.Load()

	v := viper.New()

	v.SetDefault("environment", "development")
	v.SetDefault("port", "8000")
	v.SetDefault("tokenttl", 24*time.Hour)
	v.SetDefault("ai.provider", ProviderBackend)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindEnvVars(v)
	v.BindEnv("port", "PORT", "STUB_PORT")
	v.BindEnv("jwtsecret", "JWT_SECRET", "STUB_JWT_SECRET")
	v.BindEnv("tokenttl", "STUB_TOKEN_TTL")

	var cfg StubBackendConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("invalid configuration: jwtsecret is required")
	}
	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("invalid configuration: tokenttl must be positive")
	}
	if cfg.AI.Provider == ProviderAzureOpenAI && (cfg.Azure.OpenAI.Endpoint == "" || cfg.Azure.OpenAI.APIKey == "" || cfg.Azure.OpenAI.Deployment == "") {
		return nil, fmt.Errorf("invalid configuration: azure.openai endpoint, apikey and deployment are required for the azure-openai provider")
	}

	return &cfg, nil
}
