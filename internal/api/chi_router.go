// Reelpick - Genre-Filtered Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/reelpick/internal/config"
	"github.com/tomtom215/reelpick/internal/middleware"
	"github.com/tomtom215/reelpick/internal/models"
)

// NewRouter configures all HTTP routes on a chi router.
func NewRouter(h *Handler, cfg *config.Config) http.Handler {
	mw := NewChiMiddleware(ChiMiddlewareConfigFrom(cfg))
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(mw.CORS()) // must be global to answer OPTIONS preflight
	r.Use(middleware.Compression)

	r.NotFound(notFound)
	r.MethodNotAllowed(methodNotAllowed)

	r.Handle("/metrics", promhttp.Handler())

	routes := func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.PrometheusMetrics)
			r.Get("/health", h.Health)
			r.Get("/health/ready", h.HealthReady)
		})

		r.Group(func(r chi.Router) {
			r.Use(mw.RateLimit())
			r.Use(middleware.PrometheusMetrics)
			r.Get("/genres", h.Genres)
			r.Get("/recommendations", h.Recommendations)
		})
	}

	if base := cfg.API.BasePath; base != "" {
		r.Route(base, func(r chi.Router) {
			r.NotFound(notFound)
			r.MethodNotAllowed(methodNotAllowed)
			routes(r)
		})
	} else {
		r.Group(routes)
	}

	return r
}

func notFound(w http.ResponseWriter, r *http.Request) {
	respondError(w, r, http.StatusNotFound, &models.APIError{
		Code:    ErrCodeNotFound,
		Message: "Not Found",
	})
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respondError(w, r, http.StatusMethodNotAllowed, &models.APIError{
		Code:    ErrCodeMethodNotAllowed,
		Message: "Method Not Allowed",
	})
}
