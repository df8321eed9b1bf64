// Reelpick - Genre-Filtered Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/reelpick/internal/models"
	"github.com/tomtom215/reelpick/internal/recommend"
	"github.com/tomtom215/reelpick/internal/validation"
)

// Error codes for API responses
const (
	ErrCodeValidation       = validation.CodeValidationError
	ErrCodeUnknownGenre     = "UNKNOWN_GENRE"
	ErrCodeStoreUnavailable = "STORE_UNAVAILABLE"
	ErrCodeInternalError    = "INTERNAL_ERROR"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	ErrCodeTooManyRequests  = "TOO_MANY_REQUESTS"
)

// classifyError maps a service error to a status code and client-safe body.
// Store failure details are logged, never returned.
func classifyError(err error) (int, *models.APIError) {
	var notFound *recommend.CategoryNotFoundError
	switch {
	case errors.As(err, &notFound):
		return http.StatusBadRequest, &models.APIError{
			Code:    ErrCodeUnknownGenre,
			Message: notFound.Error(),
		}
	case errors.Is(err, recommend.ErrStoreUnavailable),
		errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, &models.APIError{
			Code:    ErrCodeStoreUnavailable,
			Message: "Movie catalog is temporarily unavailable",
		}
	default:
		return http.StatusInternalServerError, &models.APIError{
			Code:    ErrCodeInternalError,
			Message: "Internal server error",
		}
	}
}
