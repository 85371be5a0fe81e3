package config

import (
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server ServerConfig
	LLM    LLMConfig
	Log    LogConfig
}

type ServerConfig struct {
	Port            string        `envconfig:"SERVER_PORT" default:"8000"`
	Host            string        `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"30s"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"90s"`
	RequestTimeout  time.Duration `envconfig:"SERVER_REQUEST_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`
	MaxBodyBytes    int64         `envconfig:"SERVER_MAX_BODY_BYTES" default:"20971520"`
	AllowedOrigins  []string      `envconfig:"SERVER_ALLOWED_ORIGINS" default:"*"`
	StaticDir       string        `envconfig:"SERVER_STATIC_DIR" default:"web/static"`
}

type LLMConfig struct {
	// Provider is one of openai, azure, gemini or compat
	Provider       string  `envconfig:"LLM_PROVIDER" default:"gemini"`
	APIKey         string  `envconfig:"LLM_API_KEY"`
	APIEndpoint    string  `envconfig:"LLM_ENDPOINT"`
	Model          string  `envconfig:"LLM_MODEL"`
	DeploymentName string  `envconfig:"LLM_AZURE_DEPLOYMENT" default:"gpt-4o"`
	APIVersion     string  `envconfig:"LLM_AZURE_API_VERSION" default:"2024-06-01"`
	Temperature    float64 `envconfig:"LLM_TEMPERATURE" default:"0"`
	MaxTokens      int64   `envconfig:"LLM_MAX_TOKENS" default:"2048"`
	MaxRetries     int     `envconfig:"LLM_MAX_RETRIES" default:"2"`
}

type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"text"`
}

// legacyAPIKeyEnv is honored when LLM_API_KEY is unset.
const legacyAPIKeyEnv = "GEMINI_API_KEY"

// LoadConfig reads an optional .env file and then the process environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return nil, err
	}
	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = os.Getenv(legacyAPIKeyEnv)
	}
	if cfg.LLM.APIKey == "" {
		slog.Warn("no LLM API key configured; analysis requests will fail", "env", "LLM_API_KEY")
	}
	slog.Info("configuration loaded successfully", "llm_provider", cfg.LLM.Provider)
	return &cfg, nil
}

// SlogLevel maps the configured level name onto slog, defaulting to info.
func (c LogConfig) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Level)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
