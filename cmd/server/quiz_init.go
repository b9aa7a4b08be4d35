// Quizfunnel - Quiz Funnel Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quizfunnel

package main

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/quizfunnel/internal/config"
	"github.com/tomtom215/quizfunnel/internal/metrics"
	"github.com/tomtom215/quizfunnel/internal/payment"
	"github.com/tomtom215/quizfunnel/internal/quiz"
	"github.com/tomtom215/quizfunnel/internal/recommend"
	"github.com/tomtom215/quizfunnel/internal/token"
)

// quizComponents are the request-path dependencies of the API.
type quizComponents struct {
	registry *recommend.Registry
	catalog  *quiz.Catalog
	payments *payment.Table
	tokens   *token.Manager
}

//nolint:gocritic // logger passed by value is acceptable for zerolog
func initQuiz(cfg *config.Config, logger zerolog.Logger) (*quizComponents, error) {
	registry, err := recommend.NewRegistry(logger)
	if err != nil {
		return nil, fmt.Errorf("create variant registry: %w", err)
	}
	registry.SetUnrecognizedHandler(func(u recommend.UnrecognizedAnswer) {
		metrics.RecordUnrecognizedAnswer(u.Variant, u.Kind)
	})
	if err := registry.LoadFiles(cfg.Quiz.VariantFiles...); err != nil {
		return nil, err
	}
	if err := registry.SetDefault(cfg.Quiz.DefaultVariant); err != nil {
		return nil, fmt.Errorf("default variant: %w", err)
	}

	catalog := quiz.NewCatalog()
	if err := catalog.LoadFiles(cfg.Quiz.QuizFiles...); err != nil {
		return nil, err
	}
	if err := catalog.SetDefault(cfg.Quiz.DefaultQuiz); err != nil {
		return nil, fmt.Errorf("default quiz: %w", err)
	}
	if err := lintCatalog(catalog, registry, logger); err != nil {
		return nil, err
	}

	payments := payment.NewTable()
	if err := payments.Apply(cfg.Payment.Links); err != nil {
		return nil, err
	}

	qc := &quizComponents{registry: registry, catalog: catalog, payments: payments}
	if cfg.Token.Enabled {
		if qc.tokens, err = token.NewManager(cfg.Token.Secret, cfg.Token.TTL); err != nil {
			return nil, fmt.Errorf("result tokens: %w", err)
		}
	}

	logger.Info().
		Int("variants", len(registry.List())).
		Str("default_variant", registry.DefaultID()).
		Strs("quizzes", catalog.IDs()).
		Bool("result_tokens", qc.tokens != nil).
		Msg("quiz components initialized")
	return qc, nil
}

// lintCatalog fails when a quiz names a missing variant and logs questions
// the variant will not score.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func lintCatalog(catalog *quiz.Catalog, registry *recommend.Registry, logger zerolog.Logger) error {
	for _, id := range catalog.IDs() {
		def, err := catalog.Get(id)
		if err != nil {
			return err
		}
		e, err := registry.Get(def.Variant)
		if err != nil {
			return fmt.Errorf("quiz %q: %w", id, err)
		}
		for _, w := range def.Lint(e.Variant()) {
			logger.Warn().Str("quiz", id).Str("variant", e.ID()).Msg(w)
		}
	}
	return nil
}
