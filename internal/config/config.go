// Package config provides application configuration management.
// It loads configuration from environment variables with support for .env files.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all application configuration. It is established once at
// startup and treated as read-only for the remainder of the process lifetime.
type Config struct {
	Server   ServerConfig
	Telegram TelegramConfig
	NLU      NLUConfig
	Search   SearchConfig
	Pipeline PipelineConfig
	Logging  LoggingConfig
	App      AppConfig
}

// ServerConfig holds settings for the HTTP chat surface.
type ServerConfig struct {
	Enabled      bool          `env:"SERVER_ENABLED" envDefault:"true"`
	Port         int           `env:"SERVER_PORT" envDefault:"8080"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"30s"`
}

// TelegramConfig holds settings for the Telegram chat transport.
type TelegramConfig struct {
	Enabled bool `env:"TELEGRAM_ENABLED" envDefault:"true"`

	// BotToken is the credential for the chat transport.
	BotToken string `env:"CHAT_BOT_TOKEN"`

	// BaseURL overrides the Bot API endpoint (for tests).
	BaseURL string `env:"TELEGRAM_BASE_URL" envDefault:"https://api.telegram.org"`

	// PollTimeout is the long-poll window for getUpdates.
	PollTimeout time.Duration `env:"TELEGRAM_POLL_TIMEOUT" envDefault:"30s"`
}

// NLUConfig holds settings for the natural-language understanding service.
type NLUConfig struct {
	APIKey  string        `env:"NLU_API_KEY"`
	Model   string        `env:"NLU_MODEL" envDefault:"gemini-2.0-flash"`
	BaseURL string        `env:"NLU_BASE_URL" envDefault:"https://generativelanguage.googleapis.com"`
	Timeout time.Duration `env:"NLU_TIMEOUT" envDefault:"15s"`
}

// SearchConfig holds settings for the flight search provider.
type SearchConfig struct {
	APIKey   string        `env:"SEARCH_API_KEY"`
	BaseURL  string        `env:"SEARCH_BASE_URL" envDefault:"https://serpapi.com"`
	Timeout  time.Duration `env:"SEARCH_TIMEOUT" envDefault:"10s"`
	Currency string        `env:"SEARCH_CURRENCY" envDefault:"USD"`
}

// PipelineConfig holds pipeline-level settings.
type PipelineConfig struct {
	// MaxOptionsPerLeg caps how many options the formatter displays per leg.
	MaxOptionsPerLeg int `env:"MAX_OPTIONS_PER_LEG" envDefault:"3"`

	// RetryMaxAttempts bounds the retry applied to the NLU and search stages.
	RetryMaxAttempts int `env:"RETRY_MAX_ATTEMPTS" envDefault:"2"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Env string `env:"APP_ENV" envDefault:"development"`
}

// Load reads configuration from environment variables.
// It attempts to load a .env file first (optional - won't fail if missing).
func Load() (*Config, error) {
	// Ignore the error: a missing .env file simply means plain env vars.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics on error.
// Use this in main() where configuration is required to start.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

// validate checks configuration values for correctness.
func validate(cfg *Config) error {
	if cfg.Server.Enabled {
		if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
			return fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", cfg.Server.Port)
		}
		if cfg.Server.ReadTimeout <= 0 {
			return fmt.Errorf("SERVER_READ_TIMEOUT must be positive")
		}
		if cfg.Server.WriteTimeout <= 0 {
			return fmt.Errorf("SERVER_WRITE_TIMEOUT must be positive")
		}
	}

	if cfg.Telegram.Enabled {
		if cfg.Telegram.BotToken == "" {
			return fmt.Errorf("CHAT_BOT_TOKEN is required when the Telegram transport is enabled")
		}
		if cfg.Telegram.PollTimeout <= 0 {
			return fmt.Errorf("TELEGRAM_POLL_TIMEOUT must be positive")
		}
	}

	if !cfg.Server.Enabled && !cfg.Telegram.Enabled {
		return fmt.Errorf("at least one of SERVER_ENABLED or TELEGRAM_ENABLED must be true")
	}

	if cfg.NLU.APIKey == "" {
		return fmt.Errorf("NLU_API_KEY is required")
	}
	if cfg.NLU.Timeout <= 0 {
		return fmt.Errorf("NLU_TIMEOUT must be positive")
	}

	if cfg.Search.APIKey == "" {
		return fmt.Errorf("SEARCH_API_KEY is required")
	}
	if cfg.Search.Timeout <= 0 {
		return fmt.Errorf("SEARCH_TIMEOUT must be positive")
	}

	if cfg.Pipeline.MaxOptionsPerLeg < 1 {
		return fmt.Errorf("MAX_OPTIONS_PER_LEG must be at least 1, got %d", cfg.Pipeline.MaxOptionsPerLeg)
	}
	if cfg.Pipeline.RetryMaxAttempts < 1 {
		return fmt.Errorf("RETRY_MAX_ATTEMPTS must be at least 1, got %d", cfg.Pipeline.RetryMaxAttempts)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error; got %q", cfg.Logging.Level)
	}

	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console; got %q", cfg.Logging.Format)
	}

	validEnvs := map[string]bool{"development": true, "staging": true, "production": true}
	if !validEnvs[cfg.App.Env] {
		return fmt.Errorf("APP_ENV must be one of: development, staging, production; got %q", cfg.App.Env)
	}

	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
