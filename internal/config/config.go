// Package config defines configuration parsing and helpers.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all application configuration parsed from environment variables.
type Config struct {
	AppEnv   string `env:"APP_ENV" envDefault:"dev"`
	Port     int    `env:"PORT" envDefault:"8080"`
	RedisURL string `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`

	OpenRouterAPIKey      string        `env:"OPENROUTER_API_KEY"`
	OpenRouterBaseURL     string        `env:"OPENROUTER_BASE_URL" envDefault:"https://openrouter.ai/api/v1"`
	OpenRouterModel       string        `env:"OPENROUTER_MODEL" envDefault:"meta-llama/llama-3.3-70b-instruct:free"`
	OpenRouterReferer     string        `env:"OPENROUTER_REFERER"`
	OpenRouterTitle       string        `env:"OPENROUTER_TITLE" envDefault:"ATS Resume Scorer"`
	OpenRouterMinInterval time.Duration `env:"OPENROUTER_MIN_INTERVAL" envDefault:"5s"`

	// NLPBaseURL specifies the base URL for the NLP sidecar used for
	// tokenization and similarity. Empty disables the sidecar and the
	// engine falls back to lexical analysis.
	NLPBaseURL string        `env:"NLP_BASE_URL" envDefault:""`
	NLPTimeout time.Duration `env:"NLP_TIMEOUT" envDefault:"5s"`

	// FreeTierMonthlyLimit caps how many analyses an anonymous user may
	// run per calendar month. Zero disables the quota.
	FreeTierMonthlyLimit int `env:"FREE_TIER_MONTHLY_LIMIT" envDefault:"5"`

	MaxUploadMB           int64         `env:"MAX_UPLOAD_MB" envDefault:"10"`
	CORSAllowOrigins      string        `env:"CORS_ALLOW_ORIGINS" envDefault:"*"`
	RateLimitPerMin       int           `env:"RATE_LIMIT_PER_MIN" envDefault:"30"`
	ServerShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"30s"`
	HTTPReadTimeout       time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"15s"`
	HTTPWriteTimeout      time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`
	HTTPIdleTimeout       time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"60s"`

	// AI Backoff Configuration
	AIBackoffMaxElapsedTime  time.Duration `env:"AI_BACKOFF_MAX_ELAPSED_TIME" envDefault:"90s"`
	AIBackoffInitialInterval time.Duration `env:"AI_BACKOFF_INITIAL_INTERVAL" envDefault:"2s"`
	AIBackoffMaxInterval     time.Duration `env:"AI_BACKOFF_MAX_INTERVAL" envDefault:"20s"`
	AIBackoffMultiplier      float64       `env:"AI_BACKOFF_MULTIPLIER" envDefault:"1.5"`
}

// Load parses environment variables into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("op=config.Load: %w", err)
	}
	return cfg, nil
}

// IsDev reports whether the app is running in development mode.
func (c Config) IsDev() bool { return strings.ToLower(c.AppEnv) == "dev" }

// IsProd reports whether the app is running in production mode.
func (c Config) IsProd() bool { return strings.ToLower(c.AppEnv) == "prod" }

// IsTest reports whether the app is running in test mode.
func (c Config) IsTest() bool { return strings.ToLower(c.AppEnv) == "test" }

// AIEnabled reports whether an LLM extractor can be constructed.
func (c Config) AIEnabled() bool { return c.OpenRouterAPIKey != "" }

// GetAIBackoffConfig returns backoff configuration appropriate for the current environment.
// In test environments, uses much shorter timeouts for faster test execution.
func (c Config) GetAIBackoffConfig() (maxElapsedTime, initialInterval, maxInterval time.Duration, multiplier float64) {
	if c.IsTest() {
		return 5 * time.Second, 100 * time.Millisecond, 1 * time.Second, 2.0
	}
	return c.AIBackoffMaxElapsedTime, c.AIBackoffInitialInterval, c.AIBackoffMaxInterval, c.AIBackoffMultiplier
}
