// Quizfunnel - Quiz Funnel Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quizfunnel

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths are searched in order when CONFIG_PATH is unset.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/quizfunnel/config.yaml",
	"/etc/quizfunnel/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// DotEnvPath is read into the environment before the env layer.
var DotEnvPath = ".env"

// Load builds the configuration from defaults, file and environment, then
// validates it.
func Load() (*Config, error) {
	k := koanf.New(".")

	// .env may set CONFIG_PATH, so it is read before the file is located.
	if err := loadDotEnv(DotEnvPath); err != nil {
		return nil, err
	}

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// findConfigFile returns CONFIG_PATH when set, else the first default path
// that exists, else "".
func findConfigFile() string {
	if path := os.Getenv(ConfigPathEnvVar); path != "" {
		return path
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// loadDotEnv reads path into the process environment. A missing file is
// not an error.
func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// sliceConfigPaths are split on commas when set from the environment.
var sliceConfigPaths = []string{
	"quiz.variant_files",
	"quiz.quiz_files",
	"security.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps lowercased environment variable names to koanf paths.
var envMappings = map[string]string{
	// Server
	"http_port":             "server.port",
	"http_host":             "server.host",
	"http_read_timeout":     "server.read_timeout",
	"http_write_timeout":    "server.write_timeout",
	"http_idle_timeout":     "server.idle_timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"environment":           "server.environment",

	// Logging
	"log_level":     "logging.level",
	"log_format":    "logging.format",
	"log_caller":    "logging.caller",
	"log_timestamp": "logging.timestamp",

	// Quiz
	"quiz_default_variant": "quiz.default_variant",
	"quiz_variant_files":   "quiz.variant_files",
	"quiz_default_quiz":    "quiz.default_quiz",
	"quiz_files":           "quiz.quiz_files",

	// Webhook
	"webhook_enabled":       "webhook.enabled",
	"webhook_url":           "webhook.url",
	"webhook_timeout":       "webhook.timeout",
	"webhook_rate_limit":    "webhook.rate_limit",
	"webhook_burst":         "webhook.burst",
	"webhook_dedupe_window": "webhook.dedupe_window",

	// Events
	"events_buffer_size":   "events.buffer_size",
	"events_close_timeout": "events.close_timeout",
	"events_retry_max":     "events.retry_max_retries",
	"nats_enabled":         "events.nats_enabled",
	"nats_url":             "events.nats_url",

	// Outbox
	"outbox_enabled":        "outbox.enabled",
	"outbox_path":           "outbox.path",
	"outbox_in_memory":      "outbox.in_memory",
	"outbox_sync_writes":    "outbox.sync_writes",
	"outbox_retry_interval": "outbox.retry_interval",
	"outbox_max_attempts":   "outbox.max_attempts",
	"outbox_retry_backoff":  "outbox.retry_backoff",
	"outbox_entry_ttl":      "outbox.entry_ttl",
	"outbox_gc_interval":    "outbox.gc_interval",

	// Result tokens
	"token_enabled": "token.enabled",
	"token_secret":  "token.secret",
	"token_ttl":     "token.ttl",

	// Payment
	"academy_fee": "payment.academy_fee",

	// Security
	"cors_origins":           "security.cors_origins",
	"rate_limit_requests":    "security.rate_limit_reqs",
	"rate_limit_window":      "security.rate_limit_window",
	"disable_rate_limit":     "security.rate_limit_disabled",
	"submission_rate_limit":  "security.submission_rate_limit",
	"submission_rate_window": "security.submission_rate_window",
}

// envTransformFunc maps an environment variable name to a koanf path.
// Unmapped names return "" and are skipped.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
