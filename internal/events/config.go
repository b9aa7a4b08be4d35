// Quizfunnel - Quiz Funnel Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quizfunnel

// Package events decouples quiz submission from webhook delivery.
//
// A completed quiz is published on an in-process Watermill GoChannel and,
// when configured, mirrored to NATS for downstream consumers. A router
// handler delivers each message to the automation webhook and hands
// retryable failures to the outbox.
//
//	API handler -> Bus.PublishCompleted -> gochannel -> Router -> webhook.Notifier
//	                     |                                  |
//	                     +-> NATS (optional)                +-> outbox.Store (on failure)
package events

import (
	"errors"
	"time"
)

// TopicQuizCompleted carries completed-quiz payloads.
const TopicQuizCompleted = "quiz.completed"

// Message metadata keys.
const (
	MetaWebhookURL = "webhook_url"
	MetaQuizID     = "quiz_id"
	MetaVariant    = "variant"
	MetaTrack      = "track"
)

// Config configures the bus and router.
type Config struct {
	BufferSize int64 `koanf:"buffer_size"`

	NATSEnabled bool   `koanf:"nats_enabled"`
	NATSURL     string `koanf:"nats_url"`

	CloseTimeout         time.Duration `koanf:"close_timeout"`
	RetryMaxRetries      int           `koanf:"retry_max_retries"`
	RetryInitialInterval time.Duration `koanf:"retry_initial_interval"`
	RetryMaxInterval     time.Duration `koanf:"retry_max_interval"`
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{
		BufferSize:           256,
		NATSURL:              "nats://127.0.0.1:4222",
		CloseTimeout:         15 * time.Second,
		RetryMaxRetries:      3,
		RetryInitialInterval: 500 * time.Millisecond,
		RetryMaxInterval:     10 * time.Second,
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.BufferSize < 0 {
		return errors.New("events buffer_size must not be negative")
	}
	if c.NATSEnabled && c.NATSURL == "" {
		return errors.New("events nats_url is required when nats_enabled is set")
	}
	if c.RetryMaxRetries < 0 {
		return errors.New("events retry_max_retries must not be negative")
	}
	return nil
}
