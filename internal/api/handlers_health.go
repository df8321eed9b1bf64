// Reelpick - Genre-Filtered Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/reelpick/internal/logging"
	"github.com/tomtom215/reelpick/internal/models"
)

// readinessTimeout bounds the store ping of the readiness probe.
const readinessTimeout = 2 * time.Second

// Health handles GET /health. It reports the process is up and does not
// touch the store.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, cacheNoStore, models.HealthResponse{
		Status:  "ok",
		Version: h.cfg.API.ServiceVersion,
	})
}

// HealthReady handles GET /health/ready.
// Returns 503 while the catalog store cannot be reached.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if h.store != nil {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		if err := h.store.Ping(ctx); err != nil {
			logging.Ctx(r.Context()).Warn().Err(err).Msg("Readiness check failed")
			respondJSON(w, http.StatusServiceUnavailable, cacheNoStore, models.HealthResponse{
				Status:  "unavailable",
				Version: h.cfg.API.ServiceVersion,
			})
			return
		}
	}

	respondJSON(w, http.StatusOK, cacheNoStore, models.HealthResponse{
		Status:  "ready",
		Version: h.cfg.API.ServiceVersion,
	})
}
