// Quizfunnel - Quiz Funnel Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quizfunnel

package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/tomtom215/quizfunnel/internal/api"
	"github.com/tomtom215/quizfunnel/internal/config"
	"github.com/tomtom215/quizfunnel/internal/logging"
	"github.com/tomtom215/quizfunnel/internal/metrics"
	"github.com/tomtom215/quizfunnel/internal/supervisor"
	"github.com/tomtom215/quizfunnel/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(cfg.Logging.Logging())
	logging.Info().Str("version", version).Str("environment", cfg.Server.Environment).Msg("Starting quizfunnel")

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("quizfunnel stopped with error")
	}
	logging.Info().Msg("Application stopped gracefully")
}

func run(cfg *config.Config) error {
	start := time.Now()
	metrics.SetAppInfo(version)

	qc, err := initQuiz(cfg, logging.WithComponent("quiz"))
	if err != nil {
		return err
	}

	dc, err := initDelivery(cfg, logging.WithComponent("delivery"))
	if err != nil {
		return err
	}
	defer func() {
		if err := dc.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing delivery pipeline")
		}
	}()

	server, err := newHTTPServer(cfg, qc, dc)
	if err != nil {
		return err
	}

	treeCfg := supervisor.DefaultTreeConfig()
	treeCfg.ShutdownTimeout = cfg.Server.ShutdownTimeout
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), treeCfg)
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}

	dc.addServices(tree)
	tree.AddMessagingService(services.NewUptimeService(start, 15*time.Second))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logging.Info().Msg("Starting supervisor tree...")
	errc := tree.ServeBackground(ctx)

	// Submissions published before the router subscribes would be lost.
	var treeErr error
	select {
	case <-dc.router.Running():
		tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
		logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")
		treeErr = <-errc
	case treeErr = <-errc:
	case <-ctx.Done():
		treeErr = <-errc
	}
	if treeErr != nil && !errors.Is(treeErr, context.Canceled) {
		return fmt.Errorf("supervisor tree: %w", treeErr)
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}
	return nil
}

func newHTTPServer(cfg *config.Config, qc *quizComponents, dc *deliveryComponents) (*http.Server, error) {
	deps := api.Deps{
		Registry:   qc.registry,
		Catalog:    qc.catalog,
		Payments:   qc.payments,
		Tokens:     qc.tokens,
		Publisher:  dc.bus,
		Deliverer:  dc.notifier,
		AcademyFee: cfg.Payment.AcademyFee,
		Version:    version,
		Logger:     logging.Logger(),
	}
	// A nil *outbox.Store must not become a non-nil interface.
	if dc.store != nil {
		deps.Outbox = dc.store
	}
	if dc.dedupe != nil {
		deps.Dedupe = dc.dedupe
	}

	handler, err := api.NewHandler(deps)
	if err != nil {
		return nil, fmt.Errorf("create API handler: %w", err)
	}

	mw := api.DefaultChiMiddlewareConfig()
	mw.CORSAllowedOrigins = cfg.Security.CORSOrigins
	mw.RateLimitRequests = cfg.Security.RateLimitReqs
	mw.RateLimitWindow = cfg.Security.RateLimitWindow
	mw.RateLimitDisabled = cfg.Security.RateLimitDisabled
	mw.SubmissionLimit = api.RateLimitConfig{
		Requests: cfg.Security.SubmissionRateLimit,
		Window:   cfg.Security.SubmissionRateWindow,
	}

	return &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:           api.NewRouter(handler, mw).Setup(),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}, nil
}
