package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
)

// DevSessionSecret signs session cookies when SESSION_SECRET is unset outside production.
const DevSessionSecret = "dev-session-secret-change-me"

// Config holds runtime configuration for the dashboard.
type Config struct {
	AppEnv          string        `envconfig:"APP_ENV" default:"development"`
	AppAddr         string        `envconfig:"APP_ADDR" default:":8080"`
	AppReadTimeout  time.Duration `envconfig:"APP_READ_TIMEOUT" default:"15s"`
	AppWriteTimeout time.Duration `envconfig:"APP_WRITE_TIMEOUT" default:"90s"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`

	AllowedOrigins string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:8080"`

	SessionSecret string        `envconfig:"SESSION_SECRET" default:"dev-session-secret-change-me"`
	SessionTTL    time.Duration `envconfig:"SESSION_TTL" default:"8h"`
	DefaultActor  string        `envconfig:"DEFAULT_ACTOR" default:"Current User"`

	OpenAIAPIKey       string        `envconfig:"OPENAI_API_KEY"`
	SummaryModel       string        `envconfig:"SUMMARY_MODEL" default:"gpt-4o"`
	SummaryBaseURL     string        `envconfig:"SUMMARY_BASE_URL"`
	SummaryTemperature float64       `envconfig:"SUMMARY_TEMPERATURE" default:"0.2"`
	SummaryStructured  bool          `envconfig:"SUMMARY_STRUCTURED" default:"false"`
	SummaryTimeout     time.Duration `envconfig:"SUMMARY_TIMEOUT" default:"60s"`
	// requests per minute per client IP on the summary endpoints
	SummaryRateLimit int `envconfig:"SUMMARY_RATE_LIMIT" default:"10"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings that cannot run.
func (c *Config) Validate() error {
	if c.IsProduction() && (c.SessionSecret == "" || c.SessionSecret == DevSessionSecret) {
		return errors.New("SESSION_SECRET must be set in production")
	}
	if c.SessionSecret == "" {
		return errors.New("session secret must be provided")
	}
	if c.SessionTTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}
	if c.SummaryTemperature < 0 || c.SummaryTemperature > 2 {
		return fmt.Errorf("SUMMARY_TEMPERATURE %v out of range [0,2]", c.SummaryTemperature)
	}
	if c.SummaryRateLimit <= 0 {
		return errors.New("SUMMARY_RATE_LIMIT must be positive")
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	return nil
}

// IsProduction returns true when the application runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}

// NewLogger returns a zerolog.Logger writing JSON when LOG_FORMAT=json and console output otherwise.
func NewLogger(cfg *Config) zerolog.Logger {
	return NewLoggerTo(cfg, os.Stdout)
}

// NewLoggerTo is NewLogger writing to out.
func NewLoggerTo(cfg *Config, out io.Writer) zerolog.Logger {
	w := out
	level := zerolog.InfoLevel
	if cfg != nil {
		if cfg.LogFormat != "json" {
			w = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: cfg.IsProduction()}
		}
		if lvl, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel)); err == nil && cfg.LogLevel != "" {
			level = lvl
		}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
