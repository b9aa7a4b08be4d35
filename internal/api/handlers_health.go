// Quizfunnel - Quiz Funnel Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quizfunnel

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/quizfunnel/internal/models"
)

// Health reports service status. A failing outbox read degrades the status
// but still answers 200 so the quiz keeps serving.
//
// @Summary Health check
// @Tags Core
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.HealthResponse}
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	resp := models.HealthResponse{
		Status:         "healthy",
		Version:        h.version,
		Uptime:         time.Since(h.startTime).Seconds(),
		Variants:       len(h.registry.List()),
		DefaultVariant: h.registry.DefaultID(),
		WebhookEnabled: h.deliverer != nil && h.deliverer.CanDeliver(""),
	}

	if h.outbox != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		n, err := h.outbox.Count(ctx)
		cancel()
		if err != nil {
			h.log(r.Context()).Warn().Err(err).Msg("outbox count failed")
			resp.Status = "degraded"
		}
		resp.OutboxPending = n
	}

	respondJSON(w, http.StatusOK, resp, start)
}
