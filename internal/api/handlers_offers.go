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
	"github.com/tomtom215/quizfunnel/internal/models"
	"github.com/tomtom215/quizfunnel/internal/recommend"
)

// Offer returns the checkout view of a track: its content, the pricing for
// the requested term, the price with the optional Academy add-on and the
// matching payment link. Terms a track is not sold on fall back to monthly;
// the response names the term actually used.
//
// @Summary Get the offer for a track
// @Tags Offers
// @Produce json
// @Param track path string true "group, private or bundled"
// @Param term query string false "monthly, quarterly or 6_months"
// @Param academy query bool false "Include the Academy add-on"
// @Success 200 {object} models.APIResponse{data=models.OfferResponse}
// @Failure 400 {object} models.APIResponse
// @Failure 404 {object} models.APIResponse
// @Router /offers/{track} [get]
func (h *Handler) Offer(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	track, err := recommend.ParseTrack(chi.URLParam(r, "track"))
	if err != nil {
		respondError(w, r, http.StatusNotFound, CodeNotFound, "Unknown track", nil)
		return
	}

	rec, ok := content.Lookup(track)
	if !ok || !rec.HasPricing() {
		respondError(w, r, http.StatusNotFound, CodeNotPurchasable, "This track is not sold online", map[string]interface{}{
			"track": track,
		})
		return
	}

	term := content.DefaultTerm
	if raw := r.URL.Query().Get("term"); raw != "" {
		if term, err = content.ParseTerm(raw); err != nil {
			respondError(w, r, http.StatusBadRequest, CodeValidation, "term must be one of: monthly, quarterly, 6_months", map[string]interface{}{
				"field": "term",
			})
			return
		}
	}

	academy, ok := parseBoolParam(r.URL.Query().Get("academy"), false)
	if !ok {
		respondError(w, r, http.StatusBadRequest, CodeValidation, "academy must be a boolean", map[string]interface{}{
			"field": "academy",
		})
		return
	}

	pricing, used, ok := content.PricingFor(track, term)
	if !ok {
		respondError(w, r, http.StatusNotFound, CodeNotPurchasable, "This track is not sold online", nil)
		return
	}

	link, err := h.payments.Link(track, academy, used)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, CodeInternal, "Payment link unavailable", nil)
		return
	}

	adjusted := content.AdjustedSalePrice(pricing, academy, h.academyFee)
	respondJSON(w, http.StatusOK, &models.OfferResponse{
		Track:                  track,
		Title:                  rec.Title,
		Subtitle:               rec.Subtitle,
		Features:               rec.Features,
		Benefits:               rec.Benefits,
		Term:                   used,
		Terms:                  h.payments.Terms(track),
		Pricing:                pricing,
		IncludeAcademy:         academy,
		AcademyFee:             h.academyFee,
		AdjustedPrice:          adjusted,
		AdjustedPriceFormatted: content.FormatUSD(adjusted),
		PaymentLink:            link,
	}, start)
}
