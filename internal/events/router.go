// Quizfunnel - Quiz Funnel Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quizfunnel

package events

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/quizfunnel/internal/webhook"
)

// Sender delivers one webhook body.
type Sender interface {
	Deliver(ctx context.Context, d webhook.Delivery) error
}

// Queue keeps failed deliveries for later retry. *outbox.Store implements it.
type Queue interface {
	Add(ctx context.Context, d webhook.Delivery, firstErr error) error
}

// DeliveryHandler sends each completed quiz to the webhook.
type DeliveryHandler struct {
	sender Sender
	queue  Queue
	logger zerolog.Logger
}

// NewDeliveryHandler creates the handler. queue may be nil, in which case
// failed deliveries are only logged.
func NewDeliveryHandler(sender Sender, queue Queue, logger zerolog.Logger) *DeliveryHandler {
	return &DeliveryHandler{sender: sender, queue: queue, logger: logger}
}

// Handle implements message.NoPublishHandlerFunc. It only returns an error
// when a failed delivery could not be queued, so Watermill retries it.
func (h *DeliveryHandler) Handle(msg *message.Message) error {
	d := webhook.Delivery{
		ID:   msg.UUID,
		URL:  msg.Metadata.Get(MetaWebhookURL),
		Body: json.RawMessage(msg.Payload),
	}
	log := h.logger.With().
		Str("message_id", d.ID).
		Str("quiz_id", msg.Metadata.Get(MetaQuizID)).
		Str("track", msg.Metadata.Get(MetaTrack)).
		Logger()

	err := h.sender.Deliver(msg.Context(), d)
	switch {
	case err == nil:
		log.Debug().Msg("quiz result delivered")
		return nil
	case errors.Is(err, webhook.ErrDisabled):
		return nil
	case !webhook.Retryable(err):
		log.Warn().Err(err).Msg("quiz result rejected by webhook, not retrying")
		return nil
	case h.queue == nil:
		log.Warn().Err(err).Msg("quiz result delivery failed, outbox disabled")
		return nil
	}

	if qerr := h.queue.Add(msg.Context(), d, err); qerr != nil {
		log.Error().Err(qerr).Msg("failed to queue quiz result for retry")
		return fmt.Errorf("queue delivery %s: %w", d.ID, qerr)
	}
	log.Warn().Err(err).Msg("quiz result delivery failed, queued for retry")
	return nil
}

// Router runs the delivery handler. It implements suture.Service.
type Router struct {
	router *message.Router
	bus    *Bus

	ready     chan struct{}
	readyOnce sync.Once
}

// NewRouter wires handler to the bus with panic recovery and retries.
func NewRouter(cfg Config, bus *Bus, handler *DeliveryHandler) (*Router, error) {
	r, err := message.NewRouter(message.RouterConfig{CloseTimeout: cfg.CloseTimeout}, bus.Logger())
	if err != nil {
		return nil, fmt.Errorf("create watermill router: %w", err)
	}

	r.AddMiddleware(middleware.Recoverer)
	retry := middleware.Retry{
		MaxRetries:      cfg.RetryMaxRetries,
		InitialInterval: cfg.RetryInitialInterval,
		MaxInterval:     cfg.RetryMaxInterval,
		Multiplier:      2.0,
		Logger:          bus.Logger(),
	}
	r.AddMiddleware(retry.Middleware)

	r.AddConsumerHandler("webhook-delivery", TopicQuizCompleted, bus.Subscriber(), handler.Handle)

	return &Router{router: r, bus: bus, ready: make(chan struct{})}, nil
}

// Running is closed once the router has subscribed and the bus accepts
// publishes.
func (r *Router) Running() <-chan struct{} {
	return r.ready
}

// Serve runs the router until ctx is canceled. A Watermill router cannot be
// restarted, so an unexpected stop terminates the service. The bus refuses
// publishes whenever the router is not subscribed.
func (r *Router) Serve(ctx context.Context) error {
	stop := make(chan struct{})
	watched := make(chan struct{})
	attached := false
	go func() {
		defer close(watched)
		select {
		case <-r.router.Running():
			r.bus.attach()
			attached = true
			r.readyOnce.Do(func() { close(r.ready) })
		case <-stop:
		}
	}()

	err := r.router.Run(ctx)
	close(stop)
	<-watched
	if attached {
		r.bus.detach()
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		return fmt.Errorf("event router: %w", err)
	}
	return suture.ErrDoNotRestart
}

// String names the service in supervisor logs.
func (r *Router) String() string {
	return "event-router"
}
