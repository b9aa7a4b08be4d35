// Quizfunnel - Quiz Funnel Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quizfunnel

package quiz

import (
	"testing"

	"github.com/tomtom215/quizfunnel/internal/recommend"
)

func TestMatchTemplate(t *testing.T) {
	templates := []Template{
		{ID: "travel_beginner", Title: "T1", Emoji: "✈️", Conditions: []Condition{
			{QuestionID: "q1", Value: "travel"},
			{QuestionID: "q2", Value: "complete_beginner"},
		}},
		{ID: "travel", Title: "T2", Conditions: []Condition{{QuestionID: "q1", Value: "travel"}}},
		{ID: "goals", Title: "T3", Conditions: []Condition{{QuestionID: "q4", Value: "media"}}},
	}

	ans := func(pairs ...string) []recommend.Answer {
		var out []recommend.Answer
		for i := 0; i < len(pairs); i += 2 {
			out = append(out, recommend.Answer{QuestionID: pairs[i], Value: recommend.Single(pairs[i+1])})
		}
		return out
	}

	tests := []struct {
		name      string
		answers   []recommend.Answer
		wantID    string
		wantEmoji string
	}{
		{"all conditions", ans("q1", "travel", "q2", "complete_beginner"), "travel_beginner", "✈️"},
		{"first match wins", ans("q1", "travel", "q2", "rusty"), "travel", DefaultEmoji},
		{"multi-select contains", []recommend.Answer{{QuestionID: "q4", Value: recommend.Multi("books", "media")}}, "goals", DefaultEmoji},
		{"no match", ans("q1", "family"), DefaultTemplateID, DefaultEmoji},
		{"no answers", nil, DefaultTemplateID, DefaultEmoji},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchTemplate(templates, tt.answers)
			if got.ID != tt.wantID || got.Emoji != tt.wantEmoji {
				t.Errorf("MatchTemplate() = %s %q, want %s %q", got.ID, got.Emoji, tt.wantID, tt.wantEmoji)
			}
		})
	}

	if templates[1].Emoji != "" {
		t.Error("MatchTemplate mutated the template list")
	}
}

func TestSession_Template(t *testing.T) {
	s := NewSession(DefaultDefinition())
	if got := s.Template().ID; got != DefaultTemplateID {
		t.Errorf("Template() with no answers = %q", got)
	}
	_ = s.Answer(recommend.Answer{QuestionID: "q1", Value: recommend.Single("reason_work")})
	if got := s.Template().ID; got != "career_builder" {
		t.Errorf("Template() = %q, want career_builder", got)
	}
}
