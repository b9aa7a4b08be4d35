// Quizfunnel - Quiz Funnel Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quizfunnel

package quiz

import "github.com/tomtom215/quizfunnel/internal/recommend"

// DefaultEmoji decorates templates that do not set their own.
const DefaultEmoji = "🎉"

// DefaultTemplateID identifies the fallback template.
const DefaultTemplateID = "default"

// Condition matches when the answer to QuestionID contains Value.
type Condition struct {
	QuestionID string `json:"question_id" koanf:"question_id" validate:"required"`
	Value      string `json:"value" koanf:"value" validate:"required"`
}

// Template is a results-page headline chosen from the answers.
type Template struct {
	ID          string      `json:"id" koanf:"id" validate:"required,max=64"`
	Title       string      `json:"title" koanf:"title" validate:"required,max=200"`
	Description string      `json:"description,omitempty" koanf:"description" validate:"max=1000"`
	Emoji       string      `json:"emoji,omitempty" koanf:"emoji"`
	Conditions  []Condition `json:"conditions" koanf:"conditions" validate:"dive"`
}

// FallbackTemplate is returned when no template matches.
var FallbackTemplate = Template{
	ID:          DefaultTemplateID,
	Title:       "Your Personalized Spanish Plan",
	Description: "Based on your answers, here is the learning path we recommend for you.",
	Emoji:       DefaultEmoji,
}

// MatchTemplate returns the first template whose conditions all match the
// answers. A template without conditions always matches.
func MatchTemplate(templates []Template, answers []recommend.Answer) Template {
	index := make(map[string]recommend.AnswerValue, len(answers))
	for _, a := range answers {
		index[a.QuestionID] = a.Value
	}

	for _, t := range templates {
		if matchesAll(t.Conditions, index) {
			if t.Emoji == "" {
				t.Emoji = DefaultEmoji
			}
			return t
		}
	}
	return FallbackTemplate
}

func matchesAll(conds []Condition, index map[string]recommend.AnswerValue) bool {
	for _, c := range conds {
		v, ok := index[c.QuestionID]
		if !ok || !v.Has(c.Value) {
			return false
		}
	}
	return true
}
