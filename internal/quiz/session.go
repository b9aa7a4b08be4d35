// Quizfunnel - Quiz Funnel Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quizfunnel

package quiz

import (
	"fmt"
	"math"

	"github.com/tomtom215/quizfunnel/internal/recommend"
	"github.com/tomtom215/quizfunnel/internal/validation"
)

// Participant is the contact captured after the last question.
type Participant struct {
	Name  string `json:"name" validate:"required,max=200"`
	Email string `json:"email" validate:"required,email,max=320"`
}

// Session is the state of one participant run. Answers are kept in first
// answered order; re-answering a question replaces its record in place.
//
// A Session is not safe for concurrent use.
type Session struct {
	def         *Definition
	answers     []recommend.Answer
	history     []string
	current     string
	participant Participant
}

// NewSession starts a run positioned on the first question.
func NewSession(def *Definition) *Session {
	s := &Session{def: def}
	s.Reset()
	return s
}

// Reset discards all answers and returns to the first question.
func (s *Session) Reset() {
	s.answers = nil
	s.history = nil
	s.current = ""
	s.participant = Participant{}
	if len(s.def.Questions) > 0 {
		s.current = s.def.Questions[0].ID
		s.history = []string{s.current}
	}
}

// Definition returns the quiz being run.
func (s *Session) Definition() *Definition {
	return s.def
}

// Answer records a for its question, replacing any earlier answer.
func (s *Session) Answer(a recommend.Answer) error {
	q, ok := s.def.Question(a.QuestionID)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownQuestion, a.QuestionID)
	}
	if a.Value.IsMulti() && len(a.Value.Values()) > 1 && !q.Multiple {
		return fmt.Errorf("%w: %q", ErrSingleChoice, a.QuestionID)
	}
	if a.Type == "" {
		a.Type = q.Type
	}

	for i := range s.answers {
		if s.answers[i].QuestionID == a.QuestionID {
			s.answers[i] = a
			return nil
		}
	}
	s.answers = append(s.answers, a)
	return nil
}

// Next moves to the following question. It returns false once the last
// question has been passed, after which Complete reports true.
func (s *Session) Next() bool {
	if s.current == "" {
		return false
	}
	i := s.def.indexOf(s.current)
	if i < 0 || i+1 >= len(s.def.Questions) {
		s.current = ""
		return false
	}
	s.current = s.def.Questions[i+1].ID
	s.history = append(s.history, s.current)
	return true
}

// Previous returns to the question before the current one. On the first
// question it does nothing. After completion it reopens the last question.
func (s *Session) Previous() bool {
	if s.current == "" && len(s.history) > 0 {
		s.current = s.history[len(s.history)-1]
		return true
	}
	if !s.CanGoBack() {
		return false
	}
	s.history = s.history[:len(s.history)-1]
	s.current = s.history[len(s.history)-1]
	return true
}

// CanGoBack reports whether Previous would move.
func (s *Session) CanGoBack() bool {
	return len(s.history) > 1
}

// Complete reports whether every question has been passed.
func (s *Session) Complete() bool {
	return s.current == "" && len(s.history) > 0
}

// Current returns the question being shown.
func (s *Session) Current() (Question, bool) {
	if s.current == "" {
		return Question{}, false
	}
	return s.def.Question(s.current)
}

// CurrentAnswer returns the recorded answer to the current question.
func (s *Session) CurrentAnswer() (recommend.Answer, bool) {
	for _, a := range s.answers {
		if a.QuestionID == s.current && s.current != "" {
			return a, true
		}
	}
	return recommend.Answer{}, false
}

// CanProceed reports whether the current question has a non-empty answer,
// or is optional.
func (s *Session) CanProceed() bool {
	q, ok := s.Current()
	if !ok {
		return false
	}
	a, ok := s.CurrentAnswer()
	if !ok {
		return !q.Required
	}
	for _, v := range a.Value.Values() {
		if v != "" {
			return true
		}
	}
	return !q.Required
}

// Progress is the current question's 1-based position as a rounded
// percentage of the quiz. It is 0 when no question is shown.
func (s *Session) Progress() int {
	if s.current == "" || len(s.def.Questions) == 0 {
		return 0
	}
	i := s.def.indexOf(s.current)
	if i < 0 {
		return 0
	}
	return int(math.Round(float64(i+1) / float64(len(s.def.Questions)) * 100))
}

// QuestionNumber is the 1-based position of the current question.
func (s *Session) QuestionNumber() int {
	if s.current == "" {
		return 1
	}
	return s.def.indexOf(s.current) + 1
}

// Answers returns a copy of the recorded answers in insertion order.
func (s *Session) Answers() []recommend.Answer {
	return append([]recommend.Answer(nil), s.answers...)
}

// SetParticipant validates and stores the participant's contact details.
func (s *Session) SetParticipant(name, email string) error {
	p := Participant{Name: name, Email: email}
	if verr := validation.ValidateStruct(&p); verr != nil {
		return verr
	}
	s.participant = p
	return nil
}

// Participant returns the captured contact details.
func (s *Session) Participant() Participant {
	return s.participant
}

// Template picks the results headline for the recorded answers.
func (s *Session) Template() Template {
	return MatchTemplate(s.def.ResultTemplates, s.answers)
}
