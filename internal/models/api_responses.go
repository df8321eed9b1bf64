// Reelpick - Genre-Filtered Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

package models

// GenresResponse is the body of GET /genres.
type GenresResponse struct {
	Genres []string `json:"genres"`
}

// MovieRecord is one recommended movie as returned to clients.
// Optional fields serialize as null rather than being omitted.
type MovieRecord struct {
	ID        int64    `json:"id"`
	Title     string   `json:"title"`
	Year      *int     `json:"year"`
	Genres    []string `json:"genres"`
	Overview  *string  `json:"overview"`
	PosterURL *string  `json:"poster_url"`
}

// RecommendationsResponse is the body of GET /recommendations.
//
// Requested is the count after clamping, Returned the number actually drawn.
//
//	{
//	  "genre": "Action",
//	  "requested": 5,
//	  "returned": 1,
//	  "movies": [{"id": 1, "title": "Inception", "year": 2010,
//	              "genres": ["Action", "Sci-Fi"], "overview": null, "poster_url": null}]
//	}
type RecommendationsResponse struct {
	Genre     string        `json:"genre"`
	Requested int           `json:"requested"`
	Returned  int           `json:"returned"`
	Movies    []MovieRecord `json:"movies"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// APIError is the machine-readable part of an error body.
type APIError struct {
	Code      string      `json:"code"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

// ErrorResponse is the body of every non-2xx response. Detail repeats the
// message at the top level for clients that only read a flat string.
type ErrorResponse struct {
	Detail string   `json:"detail"`
	Error  APIError `json:"error"`
}
