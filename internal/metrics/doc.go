// Quizfunnel - Quiz Funnel Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quizfunnel

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered on the default registry through promauto and
exposed at /metrics:

	curl http://localhost:8080/metrics

# Available Metrics

HTTP Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - api_active_requests: Requests in flight (gauge)
  - api_rate_limit_hits_total: Rate limit rejections (counter)
    Labels: endpoint

Recommendation Metrics:
  - quiz_recommendations_total: Recommendations produced (counter)
    Labels: variant, track
  - quiz_unrecognized_answers_total: Answers that scored nothing (counter)
    Labels: variant, kind (question, option)

Delivery Metrics:
  - webhook_deliveries_total: Webhook attempts (counter)
    Labels: outcome (delivered, failed, rejected)
  - webhook_delivery_duration_seconds: Webhook round trip (histogram)
  - quiz_events_published_total / quiz_events_failed_total (counter)
    Labels: topic
  - outbox_pending_entries: Deliveries waiting for retry (gauge)
  - outbox_retries_total: Retry attempts (counter)
    Labels: result (success, failure, dropped)

Circuit Breaker Metrics:
  - circuit_breaker_state: 0=closed, 1=half-open, 2=open (gauge)
    Labels: name
  - circuit_breaker_requests_total (counter)
    Labels: name, result (success, failure, rejected)
  - circuit_breaker_consecutive_failures (gauge)
  - circuit_breaker_state_transitions_total (counter)
    Labels: name, from_state, to_state

# Thread Safety

Every collector is safe for concurrent use.
*/
package metrics
