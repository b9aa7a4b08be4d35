// Quizfunnel - Quiz Funnel Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quizfunnel

// Package main runs the quiz funnel HTTP service.
//
// Startup order:
//
//  1. Configuration (Koanf v2: defaults, config.yaml, .env and environment)
//  2. Logging (zerolog)
//  3. Scoring variants, quiz definitions, payment links, result tokens
//  4. Delivery pipeline: webhook notifier, event bus, outbox, event router
//  5. HTTP API
//  6. Supervisor tree (suture v4) until SIGINT or SIGTERM
//
// Minimal production setup:
//
//	export ENVIRONMENT=production
//	export CORS_ORIGINS=https://quiz.example.com
//	export WEBHOOK_ENABLED=true
//	export WEBHOOK_URL=https://hooks.example.com/catch/123
//	export OUTBOX_PATH=/data/outbox
//	export TOKEN_ENABLED=true
//	export TOKEN_SECRET=$(openssl rand -base64 48)
//	./quizfunnel
//
// On shutdown the HTTP server drains, the event router stops consuming, the
// outbox is closed and pending deliveries are retried on the next start.
package main
