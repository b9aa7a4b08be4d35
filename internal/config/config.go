// Quizfunnel - Quiz Funnel Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quizfunnel

package config

import (
	"os"
	"time"

	"github.com/tomtom215/quizfunnel/internal/events"
	"github.com/tomtom215/quizfunnel/internal/logging"
	"github.com/tomtom215/quizfunnel/internal/outbox"
	"github.com/tomtom215/quizfunnel/internal/payment"
	"github.com/tomtom215/quizfunnel/internal/webhook"
)

// Config is the complete service configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Logging  LoggingConfig  `koanf:"logging"`
	Quiz     QuizConfig     `koanf:"quiz"`
	Webhook  WebhookConfig  `koanf:"webhook"`
	Events   events.Config  `koanf:"events"`
	Outbox   outbox.Config  `koanf:"outbox"`
	Token    TokenConfig    `koanf:"token"`
	Payment  PaymentConfig  `koanf:"payment"`
	Security SecurityConfig `koanf:"security"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // development, staging or production
}

// IsProduction reports whether production checks apply.
func (s ServerConfig) IsProduction() bool {
	return s.Environment == "production"
}

// LoggingConfig holds zerolog settings.
type LoggingConfig struct {
	// Level is one of trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is json (production) or console (development).
	Format string `koanf:"format"`

	Caller    bool `koanf:"caller"`
	Timestamp bool `koanf:"timestamp"`
}

// Logging converts to the logging package config.
func (l LoggingConfig) Logging() logging.Config {
	return logging.Config{
		Level:     l.Level,
		Format:    l.Format,
		Caller:    l.Caller,
		Timestamp: l.Timestamp,
		Output:    os.Stderr,
	}
}

// QuizConfig selects the scoring variants and quiz definitions.
type QuizConfig struct {
	// DefaultVariant is used when a request names none.
	DefaultVariant string `koanf:"default_variant"`

	// VariantFiles are YAML variant definitions loaded at startup, replacing
	// built-ins with the same id.
	VariantFiles []string `koanf:"variant_files"`

	// DefaultQuiz is served for submissions without a quiz id.
	DefaultQuiz string `koanf:"default_quiz"`

	// QuizFiles are YAML quiz definitions loaded at startup.
	QuizFiles []string `koanf:"quiz_files"`
}

// WebhookConfig configures the completed-quiz notification.
type WebhookConfig struct {
	Enabled   bool              `koanf:"enabled"`
	URL       string            `koanf:"url"`
	Timeout   time.Duration     `koanf:"timeout"`
	RateLimit float64           `koanf:"rate_limit"` // requests per second
	Burst     int               `koanf:"burst"`
	Headers   map[string]string `koanf:"headers"`

	// DedupeWindow is how long a repeated submission is recognised and not
	// delivered again. Zero disables deduplication.
	DedupeWindow time.Duration `koanf:"dedupe_window"`
}

// Notifier converts to the webhook package config.
func (w WebhookConfig) Notifier() webhook.Config {
	return webhook.Config{
		URL:       w.URL,
		Headers:   w.Headers,
		Enabled:   w.Enabled,
		Timeout:   w.Timeout,
		RateLimit: w.RateLimit,
		Burst:     w.Burst,
	}
}

// TokenConfig configures signed result links.
type TokenConfig struct {
	Enabled bool          `koanf:"enabled"`
	Secret  string        `koanf:"secret"`
	TTL     time.Duration `koanf:"ttl"`
}

// PaymentConfig holds checkout settings.
type PaymentConfig struct {
	AcademyFee float64            `koanf:"academy_fee"`
	Links      []payment.Override `koanf:"links"`
}

// SecurityConfig holds CORS and rate limit settings.
type SecurityConfig struct {
	CORSOrigins          []string      `koanf:"cors_origins"`
	RateLimitReqs        int           `koanf:"rate_limit_reqs"`
	RateLimitWindow      time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled    bool          `koanf:"rate_limit_disabled"`
	SubmissionRateLimit  int           `koanf:"submission_rate_limit"`
	SubmissionRateWindow time.Duration `koanf:"submission_rate_window"`
}

// defaultConfig returns the defaults applied before the file and env layers.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			Host:            "0.0.0.0",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     120 * time.Second,
			ShutdownTimeout: 15 * time.Second,
			Environment:     "development",
		},
		Logging: LoggingConfig{
			Level:     "info",
			Format:    "json",
			Timestamp: true,
		},
		Quiz: QuizConfig{
			DefaultVariant: "current",
			VariantFiles:   []string{},
			DefaultQuiz:    "spanish-quiz",
			QuizFiles:      []string{},
		},
		Webhook: WebhookConfig{
			Enabled:   false,
			Timeout:   webhook.DefaultTimeout,
			RateLimit: webhook.DefaultRateLimit,
			Burst:     webhook.DefaultBurst,

			DedupeWindow: 10 * time.Minute,
		},
		Events: events.DefaultConfig(),
		Outbox: outbox.DefaultConfig(),
		Token: TokenConfig{
			Enabled: false,
			TTL:     7 * 24 * time.Hour,
		},
		Payment: PaymentConfig{
			AcademyFee: 49,
		},
		Security: SecurityConfig{
			CORSOrigins:          []string{"*"},
			RateLimitReqs:        100,
			RateLimitWindow:      time.Minute,
			SubmissionRateLimit:  10,
			SubmissionRateWindow: time.Minute,
		},
	}
}
