// Quizfunnel - Quiz Funnel Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quizfunnel

package api

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/quizfunnel/internal/content"
	"github.com/tomtom215/quizfunnel/internal/logging"
	"github.com/tomtom215/quizfunnel/internal/payment"
	"github.com/tomtom215/quizfunnel/internal/quiz"
	"github.com/tomtom215/quizfunnel/internal/recommend"
	"github.com/tomtom215/quizfunnel/internal/token"
	"github.com/tomtom215/quizfunnel/internal/webhook"
)

// Publisher hands completed quizzes to the delivery pipeline.
type Publisher interface {
	PublishCompleted(ctx context.Context, p *webhook.Payload, url string) error
}

// Deliverer reports whether a webhook endpoint is configured.
type Deliverer interface {
	CanDeliver(override string) bool
}

// Deduper recognises submissions seen recently. IsDuplicate records unseen
// keys; Remove forgets one so a failed submission can be retried.
type Deduper interface {
	IsDuplicate(key string) bool
	Remove(key string) bool
}

// PendingCounter reports deliveries waiting for retry.
type PendingCounter interface {
	Count(ctx context.Context) (int, error)
}

// Deps are the collaborators of the HTTP handlers. Registry, Catalog and
// Payments are required; the rest may be nil.
type Deps struct {
	Registry  *recommend.Registry
	Catalog   *quiz.Catalog
	Payments  *payment.Table
	Tokens    *token.Manager
	Publisher Publisher
	Deliverer Deliverer
	Outbox    PendingCounter
	Dedupe    Deduper

	AcademyFee float64
	Version    string
	Logger     zerolog.Logger
}

// Handler serves the quiz API.
type Handler struct {
	registry  *recommend.Registry
	catalog   *quiz.Catalog
	payments  *payment.Table
	tokens    *token.Manager
	publisher Publisher
	deliverer Deliverer
	outbox    PendingCounter
	dedupe    Deduper

	academyFee float64
	version    string
	startTime  time.Time
	logger     zerolog.Logger
}

// ErrMissingDependency is returned by NewHandler when a required
// collaborator is nil.
var ErrMissingDependency = errors.New("api: missing required dependency")

// NewHandler creates a handler.
func NewHandler(deps Deps) (*Handler, error) {
	if deps.Registry == nil || deps.Catalog == nil || deps.Payments == nil {
		return nil, ErrMissingDependency
	}
	fee := deps.AcademyFee
	if fee <= 0 {
		fee = content.DefaultAcademyFee
	}
	version := deps.Version
	if version == "" {
		version = "dev"
	}
	return &Handler{
		registry:   deps.Registry,
		catalog:    deps.Catalog,
		payments:   deps.Payments,
		tokens:     deps.Tokens,
		publisher:  deps.Publisher,
		deliverer:  deps.Deliverer,
		outbox:     deps.Outbox,
		dedupe:     deps.Dedupe,
		academyFee: fee,
		version:    version,
		startTime:  time.Now(),
		logger:     deps.Logger.With().Str("component", "api").Logger(),
	}, nil
}

// log returns the handler logger enriched with the request ids in ctx.
func (h *Handler) log(ctx context.Context) *zerolog.Logger {
	l := h.logger.With().Logger()
	if id := logging.RequestIDFromContext(ctx); id != "" {
		l = l.With().Str("request_id", id).Logger()
	}
	if id := logging.CorrelationIDFromContext(ctx); id != "" {
		l = l.With().Str("correlation_id", id).Logger()
	}
	return &l
}
