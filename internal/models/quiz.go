// Quizfunnel - Quiz Funnel Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quizfunnel

package models

import (
	"time"

	"github.com/tomtom215/quizfunnel/internal/content"
	"github.com/tomtom215/quizfunnel/internal/quiz"
	"github.com/tomtom215/quizfunnel/internal/recommend"
)

// MaxAnswers bounds the answers accepted in one request.
const MaxAnswers = 50

// Delivery states reported for submissions.
const (
	DeliveryQueued    = "queued"
	DeliveryDisabled  = "disabled"
	DeliveryFailed    = "failed"
	DeliveryDuplicate = "duplicate"
)

// RecommendationRequest asks for a recommendation without recording anything.
type RecommendationRequest struct {
	Variant        string             `json:"variant" validate:"omitempty,slug"`
	Answers        []recommend.Answer `json:"answers" validate:"max=50,dive"`
	IsKidsOverride bool               `json:"is_kids_override"`
}

// Participant is the contact entered on the last quiz step.
type Participant struct {
	Name  string `json:"name" validate:"max=100"`
	Email string `json:"email" validate:"required,email,max=254"`
}

// SubmissionRequest is a completed quiz.
type SubmissionRequest struct {
	QuizID         string             `json:"quiz_id" validate:"omitempty,slug"`
	Variant        string             `json:"variant" validate:"omitempty,slug"`
	Answers        []recommend.Answer `json:"answers" validate:"min=1,max=50,dive"`
	IsKidsOverride bool               `json:"is_kids_override"`
	Participant    Participant        `json:"participant"`
}

// RecommendationResponse is the result page payload.
type RecommendationResponse struct {
	Variant          string                   `json:"variant"`
	RecommendedTrack recommend.Track          `json:"recommended_track"`
	GroupScore       int                      `json:"group_score"`
	PrivateScore     int                      `json:"private_score"`
	IsKidsOverride   bool                     `json:"is_kids_override"`
	Breakdown        recommend.ScoreBreakdown `json:"breakdown"`
	Reasons          []string                 `json:"reasons"`
	Content          *content.Record          `json:"content,omitempty"`
	Alternates       []content.Record         `json:"alternates"`
	Token            string                   `json:"token,omitempty"`
}

// SubmissionResponse adds the personalized result and delivery state.
type SubmissionResponse struct {
	RecommendationResponse
	QuizID      string          `json:"quiz_id"`
	Template    quiz.Template   `json:"template"`
	Incentive   *quiz.Incentive `json:"incentive,omitempty"`
	RedirectURL string          `json:"redirect_url,omitempty"`
	Delivery    string          `json:"delivery"`
}

// OfferResponse is the checkout view of one track.
type OfferResponse struct {
	Track                  recommend.Track   `json:"track"`
	Title                  string            `json:"title"`
	Subtitle               string            `json:"subtitle"`
	Features               []content.Feature `json:"features"`
	Benefits               []string          `json:"benefits"`
	Term                   content.Term      `json:"term"`
	Terms                  []content.Term    `json:"terms"`
	Pricing                content.Pricing   `json:"pricing"`
	IncludeAcademy         bool              `json:"include_academy"`
	AcademyFee             float64           `json:"academy_fee"`
	AdjustedPrice          float64           `json:"adjusted_price"`
	AdjustedPriceFormatted string            `json:"adjusted_price_formatted"`
	PaymentLink            string            `json:"payment_link"`
}

// ResultResponse is a recommendation recovered from a result token.
type ResultResponse struct {
	Variant          string                   `json:"variant"`
	RecommendedTrack recommend.Track          `json:"recommended_track"`
	GroupScore       int                      `json:"group_score"`
	PrivateScore     int                      `json:"private_score"`
	IsKidsOverride   bool                     `json:"is_kids_override"`
	Breakdown        recommend.ScoreBreakdown `json:"breakdown"`
	Content          *content.Record          `json:"content,omitempty"`
	ExpiresAt        time.Time                `json:"expires_at"`
}

// VariantSummary lists a variant without its weight tables.
type VariantSummary struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Description  string            `json:"description,omitempty"`
	Threshold    int               `json:"threshold"`
	DefaultTrack recommend.Track   `json:"default_track"`
	SupportsKids bool              `json:"supports_kids"`
	Tracks       []recommend.Track `json:"tracks"`
	Questions    []string          `json:"questions"`
	Default      bool              `json:"default"`
}

// NewVariantSummary summarizes v.
func NewVariantSummary(v *recommend.Variant, isDefault bool) VariantSummary {
	ids := v.QuestionIDs()
	questions := make([]string, len(ids))
	for i, id := range ids {
		questions[i] = string(id)
	}
	return VariantSummary{
		ID:           v.ID,
		Name:         v.Name,
		Description:  v.Description,
		Threshold:    v.Threshold,
		DefaultTrack: v.DefaultTrack,
		SupportsKids: v.SupportsKids,
		Tracks:       v.Tracks(),
		Questions:    questions,
		Default:      isDefault,
	}
}
