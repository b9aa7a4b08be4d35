// Quizfunnel - Quiz Funnel Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quizfunnel

package quiz

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tomtom215/quizfunnel/internal/recommend"
)

func TestDefaultDefinition(t *testing.T) {
	d := DefaultDefinition()
	if err := d.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if len(d.Questions) != 9 {
		t.Errorf("len(Questions) = %d, want 9", len(d.Questions))
	}
	if problems := d.Lint(recommend.CurrentVariant()); len(problems) != 0 {
		t.Errorf("Lint(current) = %v, want none", problems)
	}
	if q, ok := d.Question("q3"); !ok || len(q.Options) != 3 || q.Options[2].ID != "a3" {
		t.Errorf("Question(q3) = %+v, %v", q, ok)
	}
}

func TestDefinition_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Definition)
	}{
		{"bad id", func(d *Definition) { d.ID = "Spanish Quiz" }},
		{"no questions", func(d *Definition) { d.Questions = nil }},
		{"duplicate question", func(d *Definition) { d.Questions[1].ID = d.Questions[0].ID }},
		{"duplicate option value", func(d *Definition) {
			d.Questions[0].Options[1].Value = d.Questions[0].Options[0].Value
		}},
		{"mcq without options", func(d *Definition) { d.Questions[0].Options = nil }},
		{"bad question type", func(d *Definition) { d.Questions[0].Type = "slider" }},
		{"template on unknown question", func(d *Definition) {
			d.ResultTemplates[0].Conditions[0].QuestionID = "q99"
		}},
		{"bad webhook url", func(d *Definition) { d.WebhookURL = "not a url" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := DefaultDefinition()
			tt.modify(d)
			if err := d.Validate(); !errors.Is(err, ErrInvalidDefinition) {
				t.Errorf("Validate() error = %v, want ErrInvalidDefinition", err)
			}
		})
	}
}

func TestDefinition_Lint(t *testing.T) {
	d := DefaultDefinition()
	d.Questions[0].Options[0].Value = "reason_renamed"
	d.Questions = append(d.Questions, Question{ID: "q10", Type: recommend.AnswerText, Title: "Anything else?"})

	problems := d.Lint(recommend.CurrentVariant())
	if len(problems) != 2 {
		t.Fatalf("Lint() = %v, want 2 problems", problems)
	}
	if !strings.Contains(problems[0], "reason_renamed") || !strings.Contains(problems[1], "q10") {
		t.Errorf("Lint() = %v", problems)
	}
}

const definitionYAML = `
id: mini-quiz
title: Mini quiz
variant: current
webhook_url: https://hooks.example.com/quiz
incentive:
  enabled: true
  title: Free class
questions:
  - id: q3
    type: mcq
    title: How do you prefer to learn?
    required: true
    options:
      - {id: a1, text: Alone, value: experience_private}
      - {id: a2, text: Together, value: experience_group}
result_templates:
  - id: solo
    title: Solo learner
    conditions:
      - {question_id: q3, value: experience_private}
`

func TestLoadDefinition(t *testing.T) {
	d, err := LoadDefinitionBytes([]byte(definitionYAML))
	if err != nil {
		t.Fatalf("LoadDefinitionBytes() error = %v", err)
	}
	if d.ID != "mini-quiz" || d.WebhookURL != "https://hooks.example.com/quiz" || !d.Incentive.Enabled {
		t.Errorf("unexpected header: %+v", d)
	}
	if len(d.Questions) != 1 || len(d.Questions[0].Options) != 2 || !d.Questions[0].Required {
		t.Fatalf("questions not loaded: %+v", d.Questions)
	}
	if len(d.ResultTemplates) != 1 || d.ResultTemplates[0].Conditions[0].Value != "experience_private" {
		t.Errorf("templates not loaded: %+v", d.ResultTemplates)
	}

	path := filepath.Join(t.TempDir(), "mini.yaml")
	if err := os.WriteFile(path, []byte(definitionYAML), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if _, err := LoadDefinitionFile(path); err != nil {
		t.Errorf("LoadDefinitionFile() error = %v", err)
	}
	if _, err := LoadDefinitionFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadDefinitionFile(missing) error = nil")
	}
	if _, err := LoadDefinitionBytes([]byte("id: x\ntitle: X\n")); !errors.Is(err, ErrInvalidDefinition) {
		t.Errorf("LoadDefinitionBytes(no questions) error = %v, want ErrInvalidDefinition", err)
	}
}
