// Quizfunnel - Quiz Funnel Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quizfunnel

// Package webhook posts completed-quiz payloads to an external automation
// endpoint. Delivery is best effort: callers log failures and hand them to
// the outbox, they never surface them to the participant.
package webhook

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/quizfunnel/internal/logging"
	"github.com/tomtom215/quizfunnel/internal/metrics"
)

const (
	// DefaultTimeout bounds one HTTP round trip.
	DefaultTimeout = 10 * time.Second

	// DefaultRateLimit is the sustained requests per second.
	DefaultRateLimit = 5.0

	// DefaultBurst is the rate limiter bucket size.
	DefaultBurst = 10

	breakerName = "webhook"
)

var (
	// ErrDisabled is returned when no endpoint is configured.
	ErrDisabled = errors.New("webhook delivery disabled")

	// ErrCircuitOpen is returned while the breaker rejects requests.
	ErrCircuitOpen = errors.New("webhook circuit open")
)

// StatusError reports a non-success HTTP status.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("webhook returned status %d", e.Code)
}

// Retryable reports whether err may succeed on a later attempt. Client
// errors other than 408 and 429 are permanent.
func Retryable(err error) bool {
	if err == nil || errors.Is(err, ErrDisabled) {
		return false
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code >= 500 || se.Code == http.StatusTooManyRequests || se.Code == http.StatusRequestTimeout
	}
	return true
}

// Config configures the notifier.
type Config struct {
	URL       string
	Headers   map[string]string
	Enabled   bool
	Timeout   time.Duration
	RateLimit float64
	Burst     int
}

// Notifier sends deliveries over HTTP behind a rate limiter and a circuit
// breaker. It is safe for concurrent use.
type Notifier struct {
	url     string
	headers map[string]string
	enabled bool

	client  *http.Client
	limiter *rate.Limiter
	cb      *gobreaker.CircuitBreaker[struct{}]
}

// NewNotifier creates a notifier. Zero durations and rates take defaults.
func NewNotifier(cfg Config) *Notifier {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = DefaultRateLimit
	}
	if cfg.Burst <= 0 {
		cfg.Burst = DefaultBurst
	}

	headers := make(map[string]string, len(cfg.Headers))
	for k, v := range cfg.Headers {
		headers[k] = v
	}

	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	return &Notifier{
		url:     cfg.URL,
		headers: headers,
		enabled: cfg.Enabled,
		client:  &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.Burst),
		cb:      newBreaker(),
	}
}

// newBreaker opens after 60% failures over at least 10 requests and probes
// again after 30 seconds.
func newBreaker() *gobreaker.CircuitBreaker[struct{}] {
	return gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= 0.6
		},
		IsSuccessful: func(err error) bool {
			// Permanent client errors say nothing about endpoint health.
			return err == nil || !Retryable(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).
				Msg("webhook circuit breaker state change")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
	})
}

func stateToFloat(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

// Enabled reports whether deliveries will be attempted.
func (n *Notifier) Enabled() bool {
	return n.enabled && n.url != ""
}

// CanDeliver reports whether a delivery to override (or the default
// endpoint when empty) would be attempted.
func (n *Notifier) CanDeliver(override string) bool {
	return n.enabled && (override != "" || n.url != "")
}

// Deliver posts d.Body to d.URL, or to the default endpoint when d.URL is
// empty.
func (n *Notifier) Deliver(ctx context.Context, d Delivery) error {
	target := d.URL
	if target == "" {
		target = n.url
	}
	if !n.enabled || target == "" {
		return ErrDisabled
	}

	if err := n.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("webhook rate limit wait: %w", err)
	}

	start := time.Now()
	_, err := n.cb.Execute(func() (struct{}, error) {
		return struct{}{}, n.post(ctx, target, d)
	})
	n.record(err, time.Since(start))

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %w", ErrCircuitOpen, err)
	}
	return err
}

func (n *Notifier) post(ctx context.Context, target string, d Delivery) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(d.Body))
	if err != nil {
		return fmt.Errorf("failed to create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", Source)
	if d.ID != "" {
		req.Header.Set("Idempotency-Key", d.ID)
	}
	for k, v := range n.headers {
		req.Header.Set(k, v)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return &StatusError{Code: resp.StatusCode}
	}
	return nil
}

func (n *Notifier) record(err error, elapsed time.Duration) {
	switch {
	case err == nil:
		metrics.RecordWebhookDelivery(metrics.OutcomeDelivered, elapsed)
		metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "success").Inc()
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.RecordWebhookDelivery(metrics.OutcomeRejected, elapsed)
		metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "rejected").Inc()
	default:
		metrics.RecordWebhookDelivery(metrics.OutcomeFailed, elapsed)
		metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "failure").Inc()
	}
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(breakerName).Set(float64(n.cb.Counts().ConsecutiveFailures))
}
