// Quizfunnel - Quiz Funnel Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quizfunnel

// Package recommend implements the quiz funnel recommendation engine.
//
// # Architecture
//
// The engine maps a completed set of quiz answers to a product track in two
// stages:
//
//   - Scorer: folds the answers into a group/private score pair using a
//     per-question, per-option weight table.
//   - Recommender: applies the kids override, the strong-signal threshold,
//     the bundle eligibility gate and an ordered tie-break cascade that ends
//     in a fixed default track.
//
// Both stages are pure functions of their input. The weight table, tie-break
// predicates, bundle rule and default track are not hard-coded: they come from
// a Variant, one per quiz revision, so a new quiz revision is a new Variant
// rather than a change to the engine.
//
// # Unrecognized Input
//
// Question and option identifiers are resolved against the variant's closed
// set. Anything outside that set resolves to UnrecognizedQuestion or
// UnrecognizedOption and contributes nothing. Tie-break lookups on missing or
// unrecognized answers fall through to the next rule. Mismatches are logged at
// debug level so content authors can spot renamed options.
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.CurrentVariant(), logger)
//	if err != nil {
//	    return err
//	}
//	state := engine.Recommend(answers, false)
//	reasons := engine.Reasons(answers, state.Track)
//
// # Thread Safety
//
// An Engine holds no mutable state after construction and is safe for
// concurrent use. Registry guards its variant map with a RWMutex.
package recommend
