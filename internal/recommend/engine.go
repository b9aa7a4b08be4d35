// Quizfunnel - Quiz Funnel Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quizfunnel

package recommend

import (
	"fmt"

	"github.com/rs/zerolog"
)

// UnrecognizedAnswer describes an answer the variant could not resolve.
type UnrecognizedAnswer struct {
	Variant    string
	Kind       string // UnrecognizedKindQuestion or UnrecognizedKindOption
	QuestionID string
	Value      string
}

// Kinds of unresolved answers.
const (
	UnrecognizedKindQuestion = "question"
	UnrecognizedKindOption   = "option"
)

// Engine scores answers and picks a track for one variant.
// It is safe for concurrent use once constructed.
type Engine struct {
	variant     *Variant
	logger      zerolog.Logger
	displayOnly map[QuestionID]struct{}

	// onUnrecognized is called for every unresolved answer. Set before use.
	onUnrecognized func(UnrecognizedAnswer)
}

// NewEngine validates the variant and builds an engine for it. The variant is
// copied, so later changes by the caller have no effect.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(v *Variant, logger zerolog.Logger) (*Engine, error) {
	if v == nil {
		v = CurrentVariant()
	}

	v = v.Clone()
	v.applyDefaults()
	if err := v.Validate(); err != nil {
		return nil, fmt.Errorf("variant %q: %w", v.ID, err)
	}

	displayOnly := make(map[QuestionID]struct{}, len(v.DisplayOnly))
	for _, q := range v.DisplayOnly {
		displayOnly[q] = struct{}{}
	}

	return &Engine{
		variant:     v,
		logger:      logger.With().Str("component", "recommend").Str("variant", v.ID).Logger(),
		displayOnly: displayOnly,
	}, nil
}

// SetUnrecognizedHandler registers a callback for unresolved answers.
// It must be called before the engine is shared between goroutines.
func (e *Engine) SetUnrecognizedHandler(fn func(UnrecognizedAnswer)) {
	e.onUnrecognized = fn
}

// Variant returns a copy of the engine's variant.
func (e *Engine) Variant() *Variant {
	return e.variant.Clone()
}

// ID returns the variant id.
func (e *Engine) ID() string {
	return e.variant.ID
}

// CalculateScores folds the answers into a score pair. The fold is
// commutative: order does not matter, and an empty set yields {0, 0}.
// Unknown questions, unknown options and answers without a question id
// contribute nothing.
func (e *Engine) CalculateScores(answers []Answer) ScorePair {
	var scores ScorePair

	for _, a := range dedupe(answers) {
		q := e.variant.Question(a.QuestionID)
		if q == UnrecognizedQuestion {
			e.unrecognized(UnrecognizedKindQuestion, a.QuestionID, a.Value.String())
			continue
		}
		if _, skip := e.displayOnly[q]; skip {
			continue
		}

		for _, raw := range a.Value.Values() {
			opt := e.variant.Option(q, raw)
			if opt == UnrecognizedOption {
				e.unrecognized(UnrecognizedKindOption, a.QuestionID, raw)
				continue
			}
			w := e.variant.Questions[q][opt]
			scores.Group += w.Group
			scores.Private += w.Private
		}
	}

	return scores
}

// DetermineRecommendation picks a track. Rules are evaluated in order and the
// first that applies wins:
//
//  1. kids override, for variants that support it
//  2. threshold: diff >= T gives group, diff <= -T gives private
//  3. bundle eligibility, near-tie zone only
//  4. tie-break cascade
//  5. the variant's default track
//
// It never fails. Missing answers fall through to the next rule.
func (e *Engine) DetermineRecommendation(groupScore, privateScore int, isKidsOverride bool, answers []Answer) Recommendation {
	rec := Recommendation{GroupScore: groupScore, PrivateScore: privateScore}

	if isKidsOverride && e.variant.SupportsKids {
		rec.Track = TrackKids
		return rec
	}

	diff := groupScore - privateScore
	switch {
	case diff >= e.variant.Threshold:
		rec.Track = TrackGroup
		return rec
	case diff <= -e.variant.Threshold:
		rec.Track = TrackPrivate
		return rec
	}

	index := indexAnswers(answers)

	if e.bundleEligible(index) {
		rec.Track = TrackBundled
		return rec
	}

	for _, tb := range e.variant.TieBreakers {
		if e.matches(index, tb.Question, tb.Options) {
			rec.Track = tb.Track
			return rec
		}
	}

	rec.Track = e.variant.DefaultTrack
	return rec
}

// Recommend scores the answers and determines the track in one call.
func (e *Engine) Recommend(answers []Answer, isKidsOverride bool) RecommendationState {
	scores := e.CalculateScores(answers)
	rec := e.DetermineRecommendation(scores.Group, scores.Private, isKidsOverride, answers)

	e.logger.Debug().
		Int("group_score", rec.GroupScore).
		Int("private_score", rec.PrivateScore).
		Str("track", rec.Track.String()).
		Bool("kids_override", isKidsOverride).
		Int("answers", len(answers)).
		Msg("recommendation computed")

	return RecommendationState{
		Recommendation: rec,
		IsKidsOverride: isKidsOverride && e.variant.SupportsKids,
	}
}

// Reasons returns the explanation lines for track, in rule order.
func (e *Engine) Reasons(answers []Answer, track Track) []string {
	index := indexAnswers(answers)
	reasons := make([]string, 0, 4)
	for _, r := range e.variant.Reasons {
		if r.Track != track {
			continue
		}
		if e.matches(index, r.Question, r.Options) {
			reasons = append(reasons, r.Text)
		}
	}
	return reasons
}

// bundleEligible applies the bundle rule to the indexed answers.
func (e *Engine) bundleEligible(index map[string]AnswerValue) bool {
	b := e.variant.Bundle
	if b == nil {
		return false
	}
	return e.matches(index, b.ExperienceQuestion, []OptionValue{b.MixOption}) &&
		e.matches(index, b.TimeQuestion, b.EligibleTimes)
}

// matches reports whether the answer to q selects any of opts.
func (e *Engine) matches(index map[string]AnswerValue, q QuestionID, opts []OptionValue) bool {
	val, ok := index[string(q)]
	if !ok {
		return false
	}
	for _, raw := range val.Values() {
		if e.variant.Option(q, raw) == UnrecognizedOption {
			continue
		}
		for _, o := range opts {
			if OptionValue(raw) == o {
				return true
			}
		}
	}
	return false
}

// unrecognized logs an unresolved answer and notifies the handler.
func (e *Engine) unrecognized(kind, questionID, value string) {
	if questionID == "" {
		return
	}
	e.logger.Debug().
		Str("kind", kind).
		Str("question_id", questionID).
		Str("value", value).
		Msg("answer not recognized by variant, ignoring")
	if e.onUnrecognized != nil {
		e.onUnrecognized(UnrecognizedAnswer{Variant: e.variant.ID, Kind: kind, QuestionID: questionID, Value: value})
	}
}

// dedupe keeps the last answer for each question id, preserving the position
// of its first occurrence.
func dedupe(answers []Answer) []Answer {
	if len(answers) < 2 {
		return answers
	}
	pos := make(map[string]int, len(answers))
	out := make([]Answer, 0, len(answers))
	for _, a := range answers {
		if i, seen := pos[a.QuestionID]; seen && a.QuestionID != "" {
			out[i] = a
			continue
		}
		pos[a.QuestionID] = len(out)
		out = append(out, a)
	}
	return out
}

// indexAnswers maps question id to value with last-write-wins.
func indexAnswers(answers []Answer) map[string]AnswerValue {
	index := make(map[string]AnswerValue, len(answers))
	for _, a := range answers {
		if a.QuestionID == "" {
			continue
		}
		index[a.QuestionID] = a.Value
	}
	return index
}
