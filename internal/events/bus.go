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
	"time"

	"github.com/ThreeDotsLabs/watermill"
	wmNats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	natsgo "github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/tomtom215/quizfunnel/internal/logging"
	"github.com/tomtom215/quizfunnel/internal/metrics"
	"github.com/tomtom215/quizfunnel/internal/webhook"
)

var (
	// ErrBusClosed is returned by Publish after Close.
	ErrBusClosed = errors.New("event bus is closed")

	// ErrNoConsumer is returned while no router is consuming the bus. The
	// in-process channel keeps nothing, so such a publish would be lost.
	ErrNoConsumer = errors.New("no event consumer running")
)

// Bus publishes completed quizzes.
type Bus struct {
	local  *gochannel.GoChannel
	remote message.Publisher
	logger watermill.LoggerAdapter
	zl     zerolog.Logger

	mu        sync.RWMutex
	closed    bool
	consumers int
}

// NewBus creates the in-process channel and, when enabled, the NATS
// publisher. NATS connects lazily so a missing server does not block start.
func NewBus(cfg Config, logger zerolog.Logger) (*Bus, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid events config: %w", err)
	}
	wl := logging.NewWatermillAdapter(logger)

	b := &Bus{
		local: gochannel.NewGoChannel(gochannel.Config{
			OutputChannelBuffer: cfg.BufferSize,
		}, wl),
		logger: wl,
		zl:     logger,
	}

	if cfg.NATSEnabled {
		pub, err := newNATSPublisher(cfg.NATSURL, wl)
		if err != nil {
			_ = b.local.Close()
			return nil, err
		}
		b.remote = pub
	}
	return b, nil
}

func newNATSPublisher(url string, logger watermill.LoggerAdapter) (message.Publisher, error) {
	opts := []natsgo.Option{
		natsgo.Name("quizfunnel"),
		natsgo.RetryOnFailedConnect(true),
		natsgo.MaxReconnects(-1),
		natsgo.ReconnectWait(2 * time.Second),
		natsgo.DisconnectErrHandler(func(_ *natsgo.Conn, err error) {
			if err != nil {
				logger.Error("NATS disconnected", err, nil)
			}
		}),
		natsgo.ReconnectHandler(func(nc *natsgo.Conn) {
			logger.Info("NATS reconnected", watermill.LogFields{"url": nc.ConnectedUrl()})
		}),
	}

	pub, err := wmNats.NewPublisher(wmNats.PublisherConfig{
		URL:         url,
		NatsOptions: opts,
		Marshaler:   &wmNats.NATSMarshaler{},
		JetStream:   wmNats.JetStreamConfig{Disabled: true},
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("create NATS publisher: %w", err)
	}
	return pub, nil
}

// Subscriber returns the in-process subscriber for the router.
func (b *Bus) Subscriber() message.Subscriber {
	return b.local
}

// Logger returns the Watermill logger shared with the router.
func (b *Bus) Logger() watermill.LoggerAdapter {
	return b.logger
}

// PublishCompleted queues p for delivery to url (the default endpoint when
// empty). It fails with ErrNoConsumer unless a router is subscribed.
// Mirroring to NATS is best effort and never fails the call.
func (b *Bus) PublishCompleted(ctx context.Context, p *webhook.Payload, url string) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return ErrBusClosed
	}
	if b.consumers == 0 {
		metrics.RecordEventPublish(TopicQuizCompleted, ErrNoConsumer)
		return ErrNoConsumer
	}

	d, err := webhook.NewDelivery(p, url)
	if err != nil {
		return err
	}

	msg := message.NewMessage(d.ID, message.Payload(d.Body))
	msg.Metadata.Set(MetaWebhookURL, d.URL)
	msg.Metadata.Set(MetaQuizID, p.QuizID)
	msg.Metadata.Set(MetaVariant, p.Variant)
	msg.Metadata.Set(MetaTrack, p.Recommendation.Track.String())
	if id := logging.CorrelationIDFromContext(ctx); id != "" {
		msg.Metadata.Set("correlation_id", id)
	}

	err = b.local.Publish(TopicQuizCompleted, msg)
	metrics.RecordEventPublish(TopicQuizCompleted, err)
	if err != nil {
		return fmt.Errorf("publish %s: %w", TopicQuizCompleted, err)
	}

	if b.remote != nil {
		remoteMsg := message.NewMessage(d.ID, message.Payload(d.Body))
		remoteMsg.Metadata = msg.Metadata
		if err := b.remote.Publish(TopicQuizCompleted, remoteMsg); err != nil {
			b.zl.Warn().Err(err).Str("message_id", d.ID).Msg("NATS mirror publish failed")
		}
	}
	return nil
}

// Consuming reports whether a router is currently subscribed.
func (b *Bus) Consuming() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.consumers > 0
}

func (b *Bus) attach() {
	b.mu.Lock()
	b.consumers++
	b.mu.Unlock()
}

func (b *Bus) detach() {
	b.mu.Lock()
	if b.consumers > 0 {
		b.consumers--
	}
	b.mu.Unlock()
}

// Close closes the publishers and the in-process channel.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true

	var errs []error
	if b.remote != nil {
		if err := b.remote.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close NATS publisher: %w", err))
		}
	}
	if err := b.local.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close gochannel: %w", err))
	}
	return errors.Join(errs...)
}
