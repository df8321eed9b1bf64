// Reelpick - Genre-Filtered Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/tomtom215/reelpick/internal/validation"
)

// sanitizeLogValue removes control characters from strings to prevent log injection attacks.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			result.WriteString(fmt.Sprintf("\\x%02x", r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// parseOptionalInt reads an optional integer query parameter. An absent or
// empty value yields nil.
func parseOptionalInt(q url.Values, key string) (*int, *validation.RequestValidationError) {
	return parseInt(q, key, false)
}

// parseOptionalCount is parseOptionalInt for values that are clamped later:
// a well-formed integer beyond the int range saturates instead of failing.
func parseOptionalCount(q url.Values, key string) (*int, *validation.RequestValidationError) {
	return parseInt(q, key, true)
}

func parseInt(q url.Values, key string, saturate bool) (*int, *validation.RequestValidationError) {
	raw := q.Get(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		// Atoi returns math.MaxInt or math.MinInt alongside ErrRange.
		if saturate && errors.Is(err, strconv.ErrRange) {
			return &v, nil
		}
		return nil, validation.NewFieldError(key, "int", raw, key+" must be an integer")
	}
	return &v, nil
}

// requestContext applies the configured per-request timeout.
func (h *Handler) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	if h.cfg.API.RequestTimeout > 0 {
		return context.WithTimeout(r.Context(), h.cfg.API.RequestTimeout)
	}
	return context.WithCancel(r.Context())
}
