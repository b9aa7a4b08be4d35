// Quizfunnel - Quiz Funnel Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quizfunnel

/*
Package api serves the quiz funnel over HTTP using the chi router.

Routes:

	GET  /api/v1/health                 service status
	GET  /api/v1/variants               registered scoring variants
	GET  /api/v1/variants/{id}          one variant with its weight tables
	GET  /api/v1/quizzes/{id}           quiz definition for the front end
	POST /api/v1/recommendations        score answers, nothing recorded
	POST /api/v1/submissions            score answers and notify the webhook
	GET  /api/v1/offers/{track}         content, pricing and payment link
	GET  /api/v1/results/{token}        recommendation from a result token
	GET  /metrics                       Prometheus exposition

Middleware applied to every route: request id with logging context, real IP,
access log, panic recovery, CORS and gzip. API routes add security headers,
Prometheus instrumentation and per-IP rate limits from go-chi/httprate.

Webhook delivery is fire-and-forget: a submission is published on the event
bus and the response never waits for, or reports on, the webhook itself.
*/
package api
