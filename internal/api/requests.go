// Reelpick - Genre-Filtered Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

package api

import (
	"net/http"

	"github.com/tomtom215/reelpick/internal/models"
	"github.com/tomtom215/reelpick/internal/recommend"
	"github.com/tomtom215/reelpick/internal/validation"
)

// RecommendationsRequest holds the query parameters of GET /recommendations.
// Genre matching is exact, so surrounding whitespace is kept.
type RecommendationsRequest struct {
	Genre   string `query:"genre" validate:"required,max=200"`
	N       *int   `query:"n"`
	YearMin *int   `query:"year_min"`
	YearMax *int   `query:"year_max"`
}

// parseRecommendationsRequest reads and validates the query string. Integer
// parse failures are reported before struct validation runs. An n outside
// the int range saturates and is clamped by the service.
func parseRecommendationsRequest(r *http.Request) (*RecommendationsRequest, *validation.RequestValidationError) {
	q := r.URL.Query()
	req := &RecommendationsRequest{Genre: q.Get("genre")}

	var verr *validation.RequestValidationError
	if req.N, verr = parseOptionalCount(q, "n"); verr != nil {
		return nil, verr
	}
	if req.YearMin, verr = parseOptionalInt(q, "year_min"); verr != nil {
		return nil, verr
	}
	if req.YearMax, verr = parseOptionalInt(q, "year_max"); verr != nil {
		return nil, verr
	}

	if verr := validation.ValidateStruct(req); verr != nil {
		return nil, verr
	}
	return req, nil
}

// Query converts the request into a service query.
func (req *RecommendationsRequest) Query() recommend.Query {
	return recommend.Query{
		Genre: req.Genre,
		N:     req.N,
		Years: models.YearRange{Min: req.YearMin, Max: req.YearMax},
	}
}
