// Quizfunnel - Quiz Funnel Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quizfunnel

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/quizfunnel/internal/content"
	"github.com/tomtom215/quizfunnel/internal/metrics"
	"github.com/tomtom215/quizfunnel/internal/models"
	"github.com/tomtom215/quizfunnel/internal/quiz"
	"github.com/tomtom215/quizfunnel/internal/recommend"
	"github.com/tomtom215/quizfunnel/internal/webhook"
)

// Variants lists the registered scoring variants.
//
// @Summary List scoring variants
// @Tags Quiz
// @Produce json
// @Success 200 {object} models.APIResponse{data=[]models.VariantSummary}
// @Router /variants [get]
func (h *Handler) Variants(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	def := h.registry.DefaultID()

	list := h.registry.List()
	out := make([]models.VariantSummary, len(list))
	for i, v := range list {
		out[i] = models.NewVariantSummary(v, v.ID == def)
	}
	respondJSON(w, http.StatusOK, out, start)
}

// Variant returns one variant including its weight tables.
//
// @Summary Get a scoring variant
// @Tags Quiz
// @Produce json
// @Param id path string true "Variant id"
// @Success 200 {object} models.APIResponse{data=recommend.Variant}
// @Failure 404 {object} models.APIResponse
// @Router /variants/{id} [get]
func (h *Handler) Variant(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id := chi.URLParam(r, "id")

	e, err := h.registry.Get(id)
	if err != nil {
		respondError(w, r, http.StatusNotFound, CodeNotFound, "Unknown quiz variant", map[string]interface{}{"variant": id})
		return
	}
	respondJSON(w, http.StatusOK, e.Variant(), start)
}

// Quiz returns a quiz definition for the front end to render.
//
// @Summary Get a quiz definition
// @Tags Quiz
// @Produce json
// @Param id path string true "Quiz id, or 'default'"
// @Success 200 {object} models.APIResponse{data=quiz.Definition}
// @Failure 404 {object} models.APIResponse
// @Router /quizzes/{id} [get]
func (h *Handler) Quiz(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id := chi.URLParam(r, "id")
	if id == "default" {
		id = ""
	}

	def, err := h.catalog.Get(id)
	if err != nil {
		respondError(w, r, http.StatusNotFound, CodeNotFound, "Unknown quiz", map[string]interface{}{"quiz": id})
		return
	}

	// The webhook endpoint is server-side configuration.
	out := *def
	out.WebhookURL = ""
	respondJSON(w, http.StatusOK, &out, start)
}

// Recommend scores answers and returns the recommendation without recording
// a submission. The front end calls it to render the result page.
//
// @Summary Compute a recommendation
// @Tags Quiz
// @Accept json
// @Produce json
// @Param request body models.RecommendationRequest true "Answers"
// @Success 200 {object} models.APIResponse{data=models.RecommendationResponse}
// @Failure 400 {object} models.APIResponse
// @Router /recommendations [post]
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.RecommendationRequest
	if !decodeJSON(w, r, &req) || !validateRequest(w, r, &req) {
		return
	}

	e, err := h.registry.Get(req.Variant)
	if err != nil {
		respondUnknownVariant(w, r, req.Variant)
		return
	}

	resp := h.buildRecommendation(r, e, req.Answers, req.IsKidsOverride)
	respondJSON(w, http.StatusOK, resp, start)
}

// Submit records a completed quiz: it computes the recommendation, picks the
// result template and queues the webhook notification. Delivery happens in
// the background; the response never waits on it.
//
// @Summary Submit a completed quiz
// @Tags Quiz
// @Accept json
// @Produce json
// @Param request body models.SubmissionRequest true "Completed quiz"
// @Success 200 {object} models.APIResponse{data=models.SubmissionResponse}
// @Failure 400 {object} models.APIResponse
// @Failure 404 {object} models.APIResponse
// @Router /submissions [post]
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.SubmissionRequest
	if !decodeJSON(w, r, &req) || !validateRequest(w, r, &req) {
		return
	}

	def, err := h.catalog.Get(req.QuizID)
	if err != nil {
		respondError(w, r, http.StatusNotFound, CodeNotFound, "Unknown quiz", map[string]interface{}{"quiz": req.QuizID})
		return
	}

	variantID := req.Variant
	if variantID == "" {
		variantID = def.Variant
	}
	e, err := h.registry.Get(variantID)
	if err != nil {
		respondUnknownVariant(w, r, variantID)
		return
	}

	rec := h.buildRecommendation(r, e, req.Answers, req.IsKidsOverride)
	resp := &models.SubmissionResponse{
		RecommendationResponse: *rec,
		QuizID:                 def.ID,
		Template:               quiz.MatchTemplate(def.ResultTemplates, req.Answers),
		RedirectURL:            def.ExternalRedirectURL,
		Delivery:               models.DeliveryDisabled,
	}
	if def.Incentive.Enabled {
		incentive := def.Incentive
		resp.Incentive = &incentive
	}

	if h.publisher != nil && h.deliverer != nil && h.deliverer.CanDeliver(def.WebhookURL) {
		resp.Delivery = h.deliver(r, def, e, &req, rec)
	}

	h.log(r.Context()).Info().
		Str("quiz", def.ID).
		Str("variant", e.ID()).
		Str("track", string(rec.RecommendedTrack)).
		Str("delivery", resp.Delivery).
		Msg("quiz submitted")

	respondJSON(w, http.StatusOK, resp, start)
}

// deliver publishes the completed quiz unless it repeats a recent
// submission, and returns the delivery state.
func (h *Handler) deliver(r *http.Request, def *quiz.Definition, e *recommend.Engine, req *models.SubmissionRequest, rec *models.RecommendationResponse) string {
	key := submissionKey(r.Header.Get(IdempotencyKeyHeader), def.ID, e.ID(), req)
	if h.dedupe != nil && h.dedupe.IsDuplicate(key) {
		metrics.DuplicateSubmissions.WithLabelValues(def.ID).Inc()
		h.log(r.Context()).Info().Str("quiz", def.ID).Msg("duplicate submission, webhook not sent again")
		return models.DeliveryDuplicate
	}

	payload := webhook.NewPayload(def.ID, e.ID(),
		webhook.Participant{Name: req.Participant.Name, Email: req.Participant.Email},
		req.Answers,
		recommend.RecommendationState{
			Recommendation: recommend.Recommendation{
				Track:        rec.RecommendedTrack,
				GroupScore:   rec.GroupScore,
				PrivateScore: rec.PrivateScore,
			},
			IsKidsOverride: rec.IsKidsOverride,
		})

	if err := h.publisher.PublishCompleted(r.Context(), payload, def.WebhookURL); err != nil {
		// The participant still gets a result; delivery is best effort.
		h.log(r.Context()).Error().Err(err).Str("quiz", def.ID).Str("submission", payload.ID).
			Msg("failed to queue webhook delivery")
		if h.dedupe != nil {
			h.dedupe.Remove(key)
		}
		return models.DeliveryFailed
	}
	return models.DeliveryQueued
}

// Result recovers a recommendation from a result token so a shared results
// link renders without resubmitting answers.
//
// @Summary Resolve a result token
// @Tags Quiz
// @Produce json
// @Param token path string true "Result token"
// @Success 200 {object} models.APIResponse{data=models.ResultResponse}
// @Failure 401 {object} models.APIResponse
// @Router /results/{token} [get]
func (h *Handler) Result(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if h.tokens == nil {
		respondError(w, r, http.StatusNotFound, CodeTokensDisabled, "Result links are not enabled", nil)
		return
	}

	claims, err := h.tokens.Verify(chi.URLParam(r, "token"))
	if err != nil {
		respondError(w, r, http.StatusUnauthorized, CodeInvalidToken, "Result link is invalid or expired", nil)
		return
	}

	state := claims.State()
	resp := &models.ResultResponse{
		Variant:          claims.Variant,
		RecommendedTrack: state.Track,
		GroupScore:       state.GroupScore,
		PrivateScore:     state.PrivateScore,
		IsKidsOverride:   state.IsKidsOverride,
		Breakdown:        recommend.Breakdown(recommend.ScorePair{Group: state.GroupScore, Private: state.PrivateScore}),
	}
	if claims.ExpiresAt != nil {
		resp.ExpiresAt = claims.ExpiresAt.Time
	}
	if rec, ok := content.Lookup(state.Track); ok {
		resp.Content = &rec
	}
	respondJSON(w, http.StatusOK, resp, start)
}

// buildRecommendation runs the engine and assembles the result view.
func (h *Handler) buildRecommendation(r *http.Request, e *recommend.Engine, answers []recommend.Answer, kids bool) *models.RecommendationResponse {
	state := e.Recommend(answers, kids)
	metrics.RecordRecommendation(e.ID(), string(state.Track))

	resp := &models.RecommendationResponse{
		Variant:          e.ID(),
		RecommendedTrack: state.Track,
		GroupScore:       state.GroupScore,
		PrivateScore:     state.PrivateScore,
		IsKidsOverride:   state.IsKidsOverride,
		Breakdown:        recommend.Breakdown(recommend.ScorePair{Group: state.GroupScore, Private: state.PrivateScore}),
		Reasons:          e.Reasons(answers, state.Track),
		Alternates:       content.Alternates(state.Track, e.Variant().Tracks()),
	}
	if resp.Reasons == nil {
		resp.Reasons = []string{}
	}
	if rec, ok := content.Lookup(state.Track); ok {
		resp.Content = &rec
	}

	if h.tokens != nil {
		tok, err := h.tokens.Issue(e.ID(), state)
		if err != nil {
			h.log(r.Context()).Warn().Err(err).Msg("failed to issue result token")
		} else {
			resp.Token = tok
		}
	}
	return resp
}

func respondUnknownVariant(w http.ResponseWriter, r *http.Request, id string) {
	respondError(w, r, http.StatusBadRequest, CodeValidation, "Unknown quiz variant", map[string]interface{}{
		"field":   "variant",
		"variant": id,
	})
}
