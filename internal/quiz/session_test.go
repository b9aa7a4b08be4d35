// Quizfunnel - Quiz Funnel Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quizfunnel

package quiz

import (
	"errors"
	"testing"

	"github.com/tomtom215/quizfunnel/internal/recommend"
)

func threeQuestionDefinition() *Definition {
	return &Definition{
		ID:    "short",
		Title: "Short quiz",
		Questions: []Question{
			{ID: "a", Type: recommend.AnswerMCQ, Title: "A?", Required: true, Options: []Option{{ID: "1", Text: "x", Value: "x"}}},
			{ID: "b", Type: recommend.AnswerMCQ, Title: "B?", Required: true, Options: []Option{{ID: "1", Text: "y", Value: "y"}}},
			{ID: "c", Type: recommend.AnswerText, Title: "C?"},
		},
	}
}

func TestSession_Navigation(t *testing.T) {
	s := NewSession(threeQuestionDefinition())

	q, ok := s.Current()
	if !ok || q.ID != "a" {
		t.Fatalf("Current() = %q, %v; want a", q.ID, ok)
	}
	if s.CanGoBack() {
		t.Error("CanGoBack() on first question = true")
	}
	if s.Previous() {
		t.Error("Previous() on first question should not move")
	}
	if got := s.Progress(); got != 33 {
		t.Errorf("Progress() = %d, want 33", got)
	}

	if !s.Next() {
		t.Fatal("Next() from a = false")
	}
	if got := s.Progress(); got != 67 {
		t.Errorf("Progress() = %d, want 67", got)
	}
	if !s.Next() {
		t.Fatal("Next() from b = false")
	}
	if got := s.QuestionNumber(); got != 3 {
		t.Errorf("QuestionNumber() = %d, want 3", got)
	}
	if got := s.Progress(); got != 100 {
		t.Errorf("Progress() = %d, want 100", got)
	}

	if !s.Previous() {
		t.Fatal("Previous() from c = false")
	}
	if q, _ := s.Current(); q.ID != "b" {
		t.Errorf("Current() after Previous = %q, want b", q.ID)
	}

	s.Next()
	if s.Next() {
		t.Error("Next() past the last question = true")
	}
	if !s.Complete() {
		t.Error("Complete() = false after last question")
	}
	if got := s.Progress(); got != 0 {
		t.Errorf("Progress() after completion = %d, want 0", got)
	}
	if s.Next() {
		t.Error("Next() after completion = true")
	}

	if !s.Previous() {
		t.Fatal("Previous() after completion should reopen the last question")
	}
	if q, _ := s.Current(); q.ID != "c" {
		t.Errorf("Current() = %q, want c", q.ID)
	}
}

func TestSession_AnswerUpsert(t *testing.T) {
	s := NewSession(threeQuestionDefinition())

	mustAnswer := func(id, v string) {
		t.Helper()
		if err := s.Answer(recommend.Answer{QuestionID: id, Value: recommend.Single(v)}); err != nil {
			t.Fatalf("Answer(%s) error = %v", id, err)
		}
	}

	mustAnswer("b", "first")
	mustAnswer("a", "x")
	mustAnswer("b", "second")

	got := s.Answers()
	if len(got) != 2 {
		t.Fatalf("Answers() len = %d, want 2", len(got))
	}
	if got[0].QuestionID != "b" || got[0].Value.String() != "second" {
		t.Errorf("Answers()[0] = %+v, want b=second in original position", got[0])
	}
	if got[1].Type != recommend.AnswerMCQ {
		t.Errorf("Answer type not filled from question: %q", got[1].Type)
	}

	got[0].QuestionID = "mutated"
	if s.Answers()[0].QuestionID != "b" {
		t.Error("Answers() exposes internal slice")
	}

	err := s.Answer(recommend.Answer{QuestionID: "zzz", Value: recommend.Single("x")})
	if !errors.Is(err, ErrUnknownQuestion) {
		t.Errorf("Answer(zzz) error = %v, want ErrUnknownQuestion", err)
	}
}

func TestSession_AnswerSingleChoice(t *testing.T) {
	def := threeQuestionDefinition()
	def.Questions[1].Multiple = true
	s := NewSession(def)

	err := s.Answer(recommend.Answer{QuestionID: "a", Value: recommend.Multi("x", "z")})
	if !errors.Is(err, ErrSingleChoice) {
		t.Errorf("Answer(a, two values) error = %v, want ErrSingleChoice", err)
	}
	if len(s.Answers()) != 0 {
		t.Errorf("rejected answer was recorded: %+v", s.Answers())
	}

	if err := s.Answer(recommend.Answer{QuestionID: "a", Value: recommend.Multi("x")}); err != nil {
		t.Errorf("Answer(a, one value) error = %v", err)
	}
	if err := s.Answer(recommend.Answer{QuestionID: "b", Value: recommend.Multi("y", "w")}); err != nil {
		t.Errorf("Answer(b, multi-select) error = %v", err)
	}
}

func TestSession_CanProceed(t *testing.T) {
	s := NewSession(threeQuestionDefinition())

	if s.CanProceed() {
		t.Error("CanProceed() without an answer to a required question = true")
	}
	_ = s.Answer(recommend.Answer{QuestionID: "a", Value: recommend.Multi()})
	if s.CanProceed() {
		t.Error("CanProceed() with an empty selection = true")
	}
	_ = s.Answer(recommend.Answer{QuestionID: "a", Value: recommend.Multi("x")})
	if !s.CanProceed() {
		t.Error("CanProceed() with a selection = false")
	}
	if a, ok := s.CurrentAnswer(); !ok || !a.Value.Has("x") {
		t.Errorf("CurrentAnswer() = %+v, %v", a, ok)
	}

	s.Next()
	s.Next()
	if !s.CanProceed() {
		t.Error("CanProceed() on an optional question = false")
	}
}

func TestSession_Reset(t *testing.T) {
	s := NewSession(threeQuestionDefinition())
	_ = s.Answer(recommend.Answer{QuestionID: "a", Value: recommend.Single("x")})
	_ = s.SetParticipant("Ana", "ana@example.com")
	s.Next()

	s.Reset()
	if len(s.Answers()) != 0 || s.CanGoBack() || s.Participant() != (Participant{}) {
		t.Error("Reset() left state behind")
	}
	if q, _ := s.Current(); q.ID != "a" {
		t.Errorf("Current() after Reset = %q, want a", q.ID)
	}
}

func TestSession_SetParticipant(t *testing.T) {
	tests := []struct {
		name    string
		pName   string
		email   string
		wantErr bool
	}{
		{"valid", "Ana", "ana@example.com", false},
		{"missing name", "", "ana@example.com", true},
		{"bad email", "Ana", "ana-at-example", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession(threeQuestionDefinition())
			err := s.SetParticipant(tt.pName, tt.email)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SetParticipant() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && s.Participant().Email != tt.email {
				t.Errorf("Participant() = %+v", s.Participant())
			}
		})
	}
}

func TestSession_EmptyDefinition(t *testing.T) {
	s := NewSession(&Definition{ID: "empty", Title: "Empty"})
	if _, ok := s.Current(); ok {
		t.Error("Current() on empty quiz = true")
	}
	if s.Next() || s.Previous() || s.Complete() || s.Progress() != 0 {
		t.Error("empty quiz should not navigate")
	}
}
