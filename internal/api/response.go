// Reelpick - Genre-Filtered Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/goccy/go-json"

	"github.com/tomtom215/reelpick/internal/logging"
	"github.com/tomtom215/reelpick/internal/models"
)

const (
	contentTypeJSON = "application/json; charset=utf-8"

	cacheNoStore = "no-store"

	// cacheRevalidate lets clients keep the genre list but check the ETag
	// on every use.
	cacheRevalidate = "no-cache"
)

// respondJSON encodes v and writes it with the given status.
func respondJSON(w http.ResponseWriter, status int, cacheControl string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	writeBody(w, status, cacheControl, data)
}

// respondJSONWithETag writes v with a weak ETag and answers a matching
// If-None-Match with 304 Not Modified.
func respondJSONWithETag(w http.ResponseWriter, r *http.Request, cacheControl string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	etag := generateETag(data)
	w.Header().Set("ETag", etag)

	if etagMatches(r.Header.Get("If-None-Match"), etag) {
		w.Header().Set("Cache-Control", cacheControl)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	writeBody(w, http.StatusOK, cacheControl, data)
}

func writeBody(w http.ResponseWriter, status int, cacheControl string, data []byte) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.Header().Set("Cache-Control", cacheControl)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// generateETag returns a weak validator over the encoded body.
func generateETag(data []byte) string {
	return `W/"` + strconv.FormatUint(xxhash.Sum64(data), 16) + `"`
}

// etagMatches applies the weak comparison of RFC 9110 section 13.1.2.
func etagMatches(header, etag string) bool {
	if header == "" {
		return false
	}
	want := strings.TrimPrefix(etag, "W/")
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == want {
			return true
		}
	}
	return false
}

// respondError writes the standard error envelope. The request ID is taken
// from the context so clients can quote it in reports.
func respondError(w http.ResponseWriter, r *http.Request, status int, apiErr *models.APIError) {
	body := models.ErrorResponse{
		Detail: apiErr.Message,
		Error:  *apiErr,
	}
	body.Error.RequestID = logging.RequestIDFromContext(r.Context())
	respondJSON(w, status, cacheNoStore, body)
}

// respondServiceError classifies err, logs anything that is not the
// client's fault, and writes the error envelope.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status, apiErr := classifyError(err)
	if status >= http.StatusInternalServerError {
		logging.Ctx(r.Context()).Error().
			Err(err).
			Str("code", apiErr.Code).
			Str("path", sanitizeLogValue(r.URL.Path)).
			Msg("Request failed")
	}
	respondError(w, r, status, apiErr)
}
