// Quizfunnel - Quiz Funnel Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quizfunnel

package outbox

import (
	"context"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/quizfunnel/internal/metrics"
	"github.com/tomtom215/quizfunnel/internal/webhook"
)

const (
	maxBackoff     = 5 * time.Minute
	attemptTimeout = 15 * time.Second
)

// Retry results, also used as metric labels.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
	ResultDropped = "dropped"
)

// Sender delivers one webhook body. *webhook.Notifier implements it.
type Sender interface {
	Deliver(ctx context.Context, d webhook.Delivery) error
}

// Stats summarizes one retry pass.
type Stats struct {
	Delivered int
	Failed    int
	Dropped   int
	Skipped   int
}

// Retrier re-sends pending entries. It implements suture.Service.
type Retrier struct {
	store  *Store
	sender Sender
	config Config
	logger zerolog.Logger
	now    func() time.Time
}

// NewRetrier creates a retrier over store.
func NewRetrier(store *Store, sender Sender, logger zerolog.Logger) *Retrier {
	return &Retrier{
		store:  store,
		sender: sender,
		config: store.Config(),
		logger: logger.With().Str("component", "outbox-retry").Logger(),
		now:    time.Now,
	}
}

// Serve runs retry passes until ctx is canceled.
func (r *Retrier) Serve(ctx context.Context) error {
	r.logger.Info().
		Dur("interval", r.config.RetryInterval).
		Int("max_attempts", r.config.MaxAttempts).
		Msg("outbox retry loop started")

	retry := time.NewTicker(r.config.RetryInterval)
	defer retry.Stop()

	gcInterval := r.config.GCInterval
	if gcInterval <= 0 {
		gcInterval = time.Hour
	}
	gc := time.NewTicker(gcInterval)
	defer gc.Stop()

	// Entries left over from a previous run go out right away.
	r.RetryPending(ctx)

	for {
		select {
		case <-ctx.Done():
			r.logger.Info().Msg("outbox retry loop stopped")
			return ctx.Err()
		case <-retry.C:
			r.RetryPending(ctx)
		case <-gc.C:
			if err := r.store.RunGC(); err != nil {
				r.logger.Warn().Err(err).Msg("outbox value log GC failed")
			}
		}
	}
}

// String names the service in supervisor logs.
func (r *Retrier) String() string {
	return "outbox-retrier"
}

// RetryPending makes one pass over the pending entries.
func (r *Retrier) RetryPending(ctx context.Context) Stats {
	var stats Stats

	entries, err := r.store.Pending(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("outbox retry: failed to list pending entries")
		return stats
	}
	if len(entries) == 0 {
		return stats
	}

	for _, entry := range entries {
		if ctx.Err() != nil {
			return stats
		}
		switch r.process(ctx, entry) {
		case ResultSuccess:
			stats.Delivered++
		case ResultFailure:
			stats.Failed++
		case ResultDropped:
			stats.Dropped++
		default:
			stats.Skipped++
		}
	}

	if stats.Delivered > 0 || stats.Failed > 0 || stats.Dropped > 0 {
		r.logger.Info().
			Int("delivered", stats.Delivered).
			Int("failed", stats.Failed).
			Int("dropped", stats.Dropped).
			Int("waiting", stats.Skipped).
			Msg("outbox retry pass complete")
	}
	return stats
}

func (r *Retrier) process(ctx context.Context, entry *Entry) string {
	now := r.now()

	if now.Sub(entry.CreatedAt) > r.config.EntryTTL {
		return r.drop(ctx, entry, "expired")
	}
	if entry.Attempts >= r.config.MaxAttempts {
		return r.drop(ctx, entry, "max attempts exceeded")
	}
	if !entry.LastAttemptAt.IsZero() && now.Sub(entry.LastAttemptAt) < Backoff(r.config.RetryBackoff, entry.Attempts) {
		return ""
	}

	sendCtx, cancel := context.WithTimeout(ctx, attemptTimeout)
	err := r.sender.Deliver(sendCtx, entry.Delivery)
	cancel()

	if err == nil {
		if err := r.store.MarkDelivered(ctx, entry.ID); err != nil {
			r.logger.Error().Err(err).Str("entry_id", entry.ID).Msg("outbox retry: failed to mark delivered")
		}
		metrics.RecordOutboxRetry(ResultSuccess)
		return ResultSuccess
	}

	if !webhook.Retryable(err) {
		r.logger.Warn().Err(err).Str("entry_id", entry.ID).Msg("outbox retry: permanent failure")
		return r.drop(ctx, entry, err.Error())
	}

	r.logger.Warn().
		Err(err).
		Str("entry_id", entry.ID).
		Int("attempt", entry.Attempts+1).
		Msg("outbox retry: delivery failed")
	if err := r.store.RecordFailure(ctx, entry.ID, err.Error()); err != nil {
		r.logger.Error().Err(err).Str("entry_id", entry.ID).Msg("outbox retry: failed to record attempt")
	}
	metrics.RecordOutboxRetry(ResultFailure)
	return ResultFailure
}

func (r *Retrier) drop(ctx context.Context, entry *Entry, reason string) string {
	r.logger.Warn().
		Str("entry_id", entry.ID).
		Int("attempts", entry.Attempts).
		Str("reason", reason).
		Str("last_error", entry.LastError).
		Msg("outbox retry: dropping entry")
	if err := r.store.Remove(ctx, entry.ID); err != nil {
		r.logger.Error().Err(err).Str("entry_id", entry.ID).Msg("outbox retry: failed to remove entry")
	}
	metrics.RecordOutboxRetry(ResultDropped)
	return ResultDropped
}

// Backoff returns base * 2^attempts, capped at five minutes.
func Backoff(base time.Duration, attempts int) time.Duration {
	if attempts > 50 {
		return maxBackoff
	}
	d := time.Duration(float64(base) * math.Pow(2, float64(attempts)))
	if d < 0 || d > maxBackoff {
		return maxBackoff
	}
	return d
}
