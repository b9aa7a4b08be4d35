// Quizfunnel - Quiz Funnel Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quizfunnel

// Package outbox keeps webhook deliveries that failed on the first attempt
// in BadgerDB and retries them in the background until they succeed, fail
// permanently, exceed their attempt budget or expire.
package outbox

import (
	"errors"
	"time"
)

// Config configures the store and its retry service.
//
// Environment Variables (see internal/config):
//   - OUTBOX_ENABLED: keep failed deliveries for retry (default: true)
//   - OUTBOX_PATH: BadgerDB directory (default: ./data/outbox)
//   - OUTBOX_IN_MEMORY: keep entries in memory only (default: false)
//   - OUTBOX_RETRY_INTERVAL: time between retry passes (default: 30s)
//   - OUTBOX_MAX_ATTEMPTS: attempts before an entry is dropped (default: 10)
//   - OUTBOX_RETRY_BACKOFF: initial exponential backoff (default: 5s)
//   - OUTBOX_ENTRY_TTL: age after which an entry is dropped (default: 72h)
type Config struct {
	Enabled       bool          `koanf:"enabled"`
	Path          string        `koanf:"path"`
	InMemory      bool          `koanf:"in_memory"`
	SyncWrites    bool          `koanf:"sync_writes"`
	RetryInterval time.Duration `koanf:"retry_interval"`
	MaxAttempts   int           `koanf:"max_attempts"`
	RetryBackoff  time.Duration `koanf:"retry_backoff"`
	EntryTTL      time.Duration `koanf:"entry_ttl"`
	GCInterval    time.Duration `koanf:"gc_interval"`
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{
		Enabled:       true,
		Path:          "./data/outbox",
		SyncWrites:    true,
		RetryInterval: 30 * time.Second,
		MaxAttempts:   10,
		RetryBackoff:  5 * time.Second,
		EntryTTL:      72 * time.Hour,
		GCInterval:    time.Hour,
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Path == "" && !c.InMemory {
		return errors.New("outbox path is required unless in_memory is set")
	}
	if c.RetryInterval <= 0 {
		return errors.New("outbox retry_interval must be positive")
	}
	if c.MaxAttempts < 1 {
		return errors.New("outbox max_attempts must be at least 1")
	}
	if c.RetryBackoff < 0 {
		return errors.New("outbox retry_backoff must not be negative")
	}
	if c.EntryTTL <= 0 {
		return errors.New("outbox entry_ttl must be positive")
	}
	return nil
}
