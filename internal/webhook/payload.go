// Quizfunnel - Quiz Funnel Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quizfunnel

package webhook

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/quizfunnel/internal/recommend"
)

// EventQuizCompleted is the event_type of every payload.
const EventQuizCompleted = "quiz_completed"

// Source identifies this service in payloads.
const Source = "quizfunnel"

// Participant is the contact captured at the end of the quiz.
type Participant struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Payload is the JSON body posted to the automation endpoint.
type Payload struct {
	ID             string                        `json:"id"`
	EventType      string                        `json:"event_type"`
	QuizID         string                        `json:"quiz_id"`
	Variant        string                        `json:"variant"`
	Participant    Participant                   `json:"participant"`
	Answers        []recommend.Answer            `json:"answers"`
	Recommendation recommend.RecommendationState `json:"recommendation"`
	Timestamp      time.Time                     `json:"timestamp"`
	Source         string                        `json:"source"`
}

// NewPayload fills the envelope fields of a completed-quiz payload.
func NewPayload(quizID, variant string, p Participant, answers []recommend.Answer, rec recommend.RecommendationState) *Payload {
	return &Payload{
		ID:             uuid.New().String(),
		EventType:      EventQuizCompleted,
		QuizID:         quizID,
		Variant:        variant,
		Participant:    p,
		Answers:        answers,
		Recommendation: rec,
		Timestamp:      time.Now().UTC(),
		Source:         Source,
	}
}

// Delivery is one payload bound for one URL. It is what gets queued and
// retried, so the body is kept pre-encoded.
type Delivery struct {
	ID   string          `json:"id"`
	URL  string          `json:"url"`
	Body json.RawMessage `json:"body"`
}

// NewDelivery encodes p for url.
func NewDelivery(p *Payload, url string) (Delivery, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return Delivery{}, fmt.Errorf("failed to marshal webhook payload: %w", err)
	}
	return Delivery{ID: p.ID, URL: url, Body: body}, nil
}
