// Reelpick - Genre-Filtered Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

/*
Package api serves the recommendation HTTP interface on a chi router.

Routes, all mounted under api.base_path:

	GET /genres                  sorted genre names
	GET /recommendations         random sample of one genre
	GET /health                  liveness with service version
	GET /health/ready            pings the catalog store

/metrics is served at the root for Prometheus scraping.

Middleware Stack:

Global middleware runs for every route: request ID, real IP, panic
recovery, CORS and gzip compression. The API group adds per-IP rate limiting
and Prometheus instrumentation keyed by route pattern.

Errors:

Every non-2xx body has the same shape:

	{"detail": "Unknown genre: Western",
	 "error": {"code": "UNKNOWN_GENRE", "message": "Unknown genre: Western", "request_id": "..."}}

Domain errors from the recommend package map to status codes in errors.go.
Query parameters are parsed and validated before the service is called, so
a malformed request never touches the store.

Caching:

/genres carries a weak ETag computed with xxhash over the encoded body and
answers If-None-Match with 304. Recommendations are random per request and
are sent with Cache-Control: no-store.
*/
package api
