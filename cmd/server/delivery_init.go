// Quizfunnel - Quiz Funnel Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quizfunnel

package main

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/quizfunnel/internal/cache"
	"github.com/tomtom215/quizfunnel/internal/config"
	"github.com/tomtom215/quizfunnel/internal/events"
	"github.com/tomtom215/quizfunnel/internal/outbox"
	"github.com/tomtom215/quizfunnel/internal/supervisor"
	"github.com/tomtom215/quizfunnel/internal/supervisor/services"
	"github.com/tomtom215/quizfunnel/internal/webhook"
)

// deliveryComponents carry completed quizzes to the webhook.
//
//	api -> events.Bus -> events.Router -> webhook.Notifier
//	                                   \-> outbox.Store <- outbox.Retrier
type deliveryComponents struct {
	notifier *webhook.Notifier
	bus      *events.Bus
	router   *events.Router
	store    *outbox.Store // nil when the outbox is disabled
	retrier  *outbox.Retrier
	dedupe   *cache.LRU[struct{}] // nil when the dedupe window is zero
}

//nolint:gocritic // logger passed by value is acceptable for zerolog
func initDelivery(cfg *config.Config, logger zerolog.Logger) (*deliveryComponents, error) {
	d := &deliveryComponents{
		notifier: webhook.NewNotifier(cfg.Webhook.Notifier()),
	}
	if cfg.Webhook.DedupeWindow > 0 {
		d.dedupe = cache.NewLRU[struct{}](cache.DefaultCapacity, cfg.Webhook.DedupeWindow)
	}

	var queue events.Queue
	if cfg.Outbox.Enabled {
		store, err := outbox.Open(cfg.Outbox)
		if err != nil {
			return nil, fmt.Errorf("open outbox: %w", err)
		}
		d.store = store
		d.retrier = outbox.NewRetrier(store, d.notifier, logger)
		queue = store
	}

	bus, err := events.NewBus(cfg.Events, logger)
	if err != nil {
		d.closeOnError(logger)
		return nil, fmt.Errorf("create event bus: %w", err)
	}
	d.bus = bus

	handler := events.NewDeliveryHandler(d.notifier, queue, logger)
	if d.router, err = events.NewRouter(cfg.Events, bus, handler); err != nil {
		d.closeOnError(logger)
		return nil, fmt.Errorf("create event router: %w", err)
	}

	logger.Info().
		Bool("webhook_enabled", d.notifier.Enabled()).
		Bool("outbox_enabled", d.store != nil).
		Bool("nats_mirror", cfg.Events.NATSEnabled).
		Msg("delivery pipeline initialized")
	return d, nil
}

// addServices registers the background services on the messaging layer.
func (d *deliveryComponents) addServices(tree *supervisor.SupervisorTree) {
	tree.AddMessagingService(d.router)
	if d.retrier != nil {
		tree.AddMessagingService(d.retrier)
	}
	if d.dedupe != nil {
		tree.AddMessagingService(services.NewJanitorService("submission-dedupe", d.dedupe, d.dedupe.TTL()))
	}
}

//nolint:gocritic // logger passed by value is acceptable for zerolog
func (d *deliveryComponents) closeOnError(logger zerolog.Logger) {
	if err := d.Close(); err != nil {
		logger.Error().Err(err).Msg("Error closing delivery pipeline after failed init")
	}
}

// Close releases the bus and the outbox. Call after the tree has stopped.
func (d *deliveryComponents) Close() error {
	var errs []error
	if d.bus != nil {
		if err := d.bus.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close event bus: %w", err))
		}
	}
	if d.store != nil {
		if err := d.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close outbox: %w", err))
		}
	}
	return errors.Join(errs...)
}
