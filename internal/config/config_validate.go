// Quizfunnel - Quiz Funnel Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quizfunnel

package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/tomtom215/quizfunnel/internal/token"
	"github.com/tomtom215/quizfunnel/internal/validation"
)

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateWebhook(); err != nil {
		return err
	}
	if err := c.Events.Validate(); err != nil {
		return err
	}
	if c.Events.NATSEnabled {
		if err := validateNATSURL(c.Events.NATSURL); err != nil {
			return fmt.Errorf("NATS_URL is invalid: %w", err)
		}
	}
	if c.Outbox.Enabled {
		if err := c.Outbox.Validate(); err != nil {
			return err
		}
	}
	if err := c.validateToken(); err != nil {
		return err
	}
	if err := c.validatePayment(); err != nil {
		return err
	}
	return c.validateSecurity()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	switch c.Server.Environment {
	case "development", "staging", "production":
	default:
		return fmt.Errorf("ENVIRONMENT must be development, staging or production, got %q", c.Server.Environment)
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server read and write timeouts must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be trace, debug, info, warn or error, got %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

// validateWebhook allows an enabled webhook without a default URL: quiz
// definitions can carry their own endpoint.
func (c *Config) validateWebhook() error {
	if c.Webhook.URL != "" {
		if err := validateEndpointURL(c.Webhook.URL); err != nil {
			return fmt.Errorf("WEBHOOK_URL is invalid: %w", err)
		}
	}
	if c.Webhook.RateLimit < 0 || c.Webhook.Burst < 0 {
		return fmt.Errorf("webhook rate limit and burst must not be negative")
	}
	if c.Webhook.DedupeWindow < 0 {
		return fmt.Errorf("WEBHOOK_DEDUPE_WINDOW must not be negative")
	}
	return nil
}

func (c *Config) validateToken() error {
	if !c.Token.Enabled {
		return nil
	}
	if len(c.Token.Secret) < token.MinSecretLength {
		return fmt.Errorf("TOKEN_SECRET must be at least %d characters when TOKEN_ENABLED=true", token.MinSecretLength)
	}
	if c.Token.TTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}
	return nil
}

func (c *Config) validatePayment() error {
	if c.Payment.AcademyFee < 0 {
		return fmt.Errorf("ACADEMY_FEE must not be negative")
	}
	for i := range c.Payment.Links {
		if verr := validation.ValidateStruct(&c.Payment.Links[i]); verr != nil {
			return fmt.Errorf("payment.links[%d]: %w", i, verr)
		}
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs <= 0 || c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS and RATE_LIMIT_WINDOW must be positive")
	}
	if c.Server.IsProduction() {
		for _, o := range c.Security.CORSOrigins {
			if o == "*" {
				return fmt.Errorf("CORS_ORIGINS must list explicit origins in production")
			}
		}
	}
	return nil
}

// validateEndpointURL accepts absolute http(s) URLs. Unlike service base
// URLs, webhook endpoints keep their path and query.
func validateEndpointURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("failed to parse URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got: %s", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("host is required")
	}
	return nil
}

// validateNATSURL accepts nats, tls, ws and wss URLs with a host.
func validateNATSURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("failed to parse URL: %w", err)
	}
	switch u.Scheme {
	case "nats", "tls", "ws", "wss":
	default:
		return fmt.Errorf("scheme must be nats, tls, ws, or wss, got: %s", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("host is required (e.g., localhost:4222)")
	}
	return nil
}
