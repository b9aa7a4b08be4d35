// Quizfunnel - Quiz Funnel Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quizfunnel

// Package middleware provides HTTP middleware shared by the API router:
// request id propagation into the logging context and Prometheus request
// instrumentation. Both use the func(http.Handler) http.Handler shape chi
// expects.
package middleware
