// Reelpick - Genre-Filtered Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

/*
Package middleware provides HTTP middleware used by the API router.

Key Components:

  - RequestID: honors or generates X-Request-ID and seeds the logging context
  - PrometheusMetrics: request count, latency and in-flight instrumentation
  - Compression: gzip for clients sending Accept-Encoding: gzip

All middleware has the chi signature func(http.Handler) http.Handler:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Group(func(r chi.Router) {
	    r.Use(middleware.PrometheusMetrics)
	    r.Get("/genres", h.Genres)
	})

PrometheusMetrics labels requests with the matched chi route pattern, so it
must run inside the router rather than wrapping it.

Compression starts the gzip stream on the first body write. Responses
without a body (204, 304) are sent uncompressed.

See Also:

  - internal/api: router and handlers
  - internal/metrics: collector definitions
*/
package middleware
