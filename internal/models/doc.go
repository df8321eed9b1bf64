// Reelpick - Genre-Filtered Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

/*
Package models defines the data shared between the store, the service and
the HTTP layer.

Catalog types (catalog.go):
  - Movie, Genre: rows as read from the store; nullable columns are pointers
  - YearRange: optional inclusive bounds on release year
  - SeedEntry: one item of a JSON catalog, validated before seeding

Response types (api_responses.go):
  - GenresResponse, RecommendationsResponse, MovieRecord, HealthResponse
  - ErrorResponse with APIError: the error envelope of every failed request

Nullable fields encode as JSON null in responses rather than being omitted,
so clients always see the same keys.
*/
package models
