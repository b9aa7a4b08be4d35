// Quizfunnel - Quiz Funnel Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quizfunnel

// Package services adapts blocking components to suture.Service.
//
// Components whose lifecycle is already context-driven (events.Router,
// outbox.Retrier) implement suture.Service themselves and are added to the
// tree directly.
package services
