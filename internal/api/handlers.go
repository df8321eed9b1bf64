// Reelpick - Genre-Filtered Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

package api

import (
	"context"

	"github.com/tomtom215/reelpick/internal/config"
	"github.com/tomtom215/reelpick/internal/models"
	"github.com/tomtom215/reelpick/internal/recommend"
)

// Recommender is the service surface the handlers need.
// *recommend.Service implements it.
type Recommender interface {
	Genres(ctx context.Context) ([]string, error)
	Recommend(ctx context.Context, q recommend.Query) (*models.RecommendationsResponse, error)
}

// Pinger reports whether the catalog store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler contains dependencies for API handlers
//
// Handler methods are split across files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_recommend.go: genre listing and recommendations
//   - handlers_health.go: liveness and readiness
//   - handlers_helpers.go: parameter parsing and request timeouts
type Handler struct {
	svc   Recommender
	store Pinger
	cfg   *config.Config
}

// NewHandler creates a new API handler. store may be nil, in which case the
// readiness probe reports ready without pinging.
//
// Example:
//
//	handler := api.NewHandler(svc, store, cfg)
//	srv := &http.Server{Handler: api.NewRouter(handler, cfg)}
func NewHandler(svc Recommender, store Pinger, cfg *config.Config) *Handler {
	return &Handler{
		svc:   svc,
		store: store,
		cfg:   cfg,
	}
}
