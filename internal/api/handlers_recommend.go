// Reelpick - Genre-Filtered Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

package api

import (
	"net/http"

	"github.com/tomtom215/reelpick/internal/models"
)

// Genres handles GET /genres.
// Returns every genre name, sorted ascending and deduplicated.
func (h *Handler) Genres(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	names, err := h.svc.Genres(ctx)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSONWithETag(w, r, cacheRevalidate, models.GenresResponse{Genres: names})
}

// Recommendations handles GET /recommendations.
//
// Query parameters:
//   - genre: required, exact genre name
//   - n: optional count, clamped into [1, max_n]
//   - year_min, year_max: optional inclusive release year bounds
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	req, verr := parseRecommendationsRequest(r)
	if verr != nil {
		respondError(w, r, http.StatusBadRequest, verr.ToAPIError())
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	resp, err := h.svc.Recommend(ctx, req.Query())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, cacheNoStore, resp)
}
