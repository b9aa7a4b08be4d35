// Quizfunnel - Quiz Funnel Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quizfunnel

package validation

import (
	"strings"
	"testing"
)

type participant struct {
	Name  string `json:"name" validate:"required,max=100"`
	Email string `json:"email" validate:"required,email"`
}

type submission struct {
	QuizID      string      `json:"quiz_id" validate:"required,slug"`
	Variant     string      `json:"variant" validate:"omitempty,slug"`
	Term        string      `json:"term" validate:"omitempty,oneof=monthly quarterly 6_months"`
	Answers     []string    `json:"answers" validate:"max=3"`
	Score       int         `json:"score" validate:"gte=0"`
	Participant participant `json:"participant"`
	Internal    string      `json:"-" validate:"max=2"`
}

func validSubmission() submission {
	return submission{
		QuizID:      "spanish-quiz",
		Variant:     "current",
		Term:        "quarterly",
		Answers:     []string{"a"},
		Participant: participant{Name: "Ana", Email: "ana@example.com"},
	}
}

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()
	if v1 == nil || v1 != v2 {
		t.Error("GetValidator() should return one non-nil instance")
	}
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*submission)
		wantField string
		wantTag   string
	}{
		{"valid", func(*submission) {}, "", ""},
		{"missing quiz id", func(s *submission) { s.QuizID = "" }, "quiz_id", "required"},
		{"uppercase slug", func(s *submission) { s.Variant = "Current" }, "variant", "slug"},
		{"slug with slash", func(s *submission) { s.QuizID = "a/b" }, "quiz_id", "slug"},
		{"bad term", func(s *submission) { s.Term = "weekly" }, "term", "oneof"},
		{"too many answers", func(s *submission) { s.Answers = []string{"a", "b", "c", "d"} }, "answers", "max"},
		{"negative score", func(s *submission) { s.Score = -1 }, "score", "gte"},
		{"nested email", func(s *submission) { s.Participant.Email = "nope" }, "email", "email"},
		{"nested name", func(s *submission) { s.Participant.Name = "" }, "name", "required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSubmission()
			tt.modify(&s)

			verr := ValidateStruct(&s)
			if tt.wantField == "" {
				if verr != nil {
					t.Fatalf("ValidateStruct() error = %v", verr)
				}
				return
			}
			if verr == nil {
				t.Fatal("ValidateStruct() = nil, want error")
			}

			found := false
			for _, e := range verr.Errors() {
				if e.Field() == tt.wantField && e.Tag() == tt.wantTag {
					found = true
				}
			}
			if !found {
				t.Errorf("no error for %s/%s in %v", tt.wantField, tt.wantTag, verr.Errors())
			}
		})
	}
}

func TestToAPIError(t *testing.T) {
	t.Run("single error", func(t *testing.T) {
		s := validSubmission()
		s.QuizID = ""
		apiErr := ValidateStruct(&s).ToAPIError()

		if apiErr.Code != ErrorCode {
			t.Errorf("Code = %q, want %q", apiErr.Code, ErrorCode)
		}
		if apiErr.Message != "quiz_id is required" {
			t.Errorf("Message = %q", apiErr.Message)
		}
		if apiErr.Details["field"] != "quiz_id" {
			t.Errorf("Details[field] = %v", apiErr.Details["field"])
		}
	})

	t.Run("multiple errors", func(t *testing.T) {
		s := validSubmission()
		s.QuizID = ""
		s.Term = "weekly"
		apiErr := ValidateStruct(&s).ToAPIError()

		fields, ok := apiErr.Details["fields"].([]map[string]interface{})
		if !ok || len(fields) != 2 {
			t.Fatalf("Details[fields] = %v, want 2 entries", apiErr.Details["fields"])
		}
		if !strings.Contains(apiErr.Message, "term must be one of: monthly quarterly 6_months") {
			t.Errorf("Message = %q", apiErr.Message)
		}
	})

	t.Run("empty", func(t *testing.T) {
		apiErr := (&RequestValidationError{}).ToAPIError()
		if apiErr.Message != "Validation failed" {
			t.Errorf("Message = %q", apiErr.Message)
		}
	})
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*submission)
		want   string
	}{
		{"string max", func(s *submission) { s.Participant.Name = strings.Repeat("x", 101) }, "name must have at most 100 characters"},
		{"slice max", func(s *submission) { s.Answers = make([]string, 4) }, "answers must have at most 3 items"},
		{"slug", func(s *submission) { s.QuizID = "Bad Id" }, "quiz_id must contain only lowercase letters, digits, '-' and '_'"},
		{"ignored json field uses go name", func(s *submission) { s.Internal = "xyz" }, "Internal must have at most 2 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSubmission()
			tt.modify(&s)
			verr := ValidateStruct(&s)
			if verr == nil {
				t.Fatal("ValidateStruct() = nil, want error")
			}
			if got := verr.Errors()[0].Error(); got != tt.want {
				t.Errorf("message = %q, want %q", got, tt.want)
			}
		})
	}
}
