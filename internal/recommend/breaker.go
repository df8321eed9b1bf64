// Reelpick - Genre-Filtered Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

package recommend

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/reelpick/internal/logging"
	"github.com/tomtom215/reelpick/internal/metrics"
	"github.com/tomtom215/reelpick/internal/models"
)

// BreakerSettings tunes the catalog circuit breaker.
type BreakerSettings struct {
	Name         string
	MaxRequests  uint32
	Interval     time.Duration
	Timeout      time.Duration
	MinRequests  uint32
	FailureRatio float64
}

// DefaultBreakerSettings opens after a 60% failure rate over at least 10
// requests and probes again after two minutes.
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		Name:         "catalog-store",
		MaxRequests:  3,
		Interval:     time.Minute,
		Timeout:      2 * time.Minute,
		MinRequests:  10,
		FailureRatio: 0.6,
	}
}

// BreakerCatalog guards every store call of a Catalog with a circuit breaker.
type BreakerCatalog struct {
	inner Catalog
	cb    *gobreaker.CircuitBreaker[any]
	name  string
}

// NewBreakerCatalog wraps inner.
func NewBreakerCatalog(inner Catalog, st BreakerSettings) *BreakerCatalog {
	logger := logging.Component("breaker")
	name := st.Name

	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        name,
		MaxRequests: st.MaxRequests,
		Interval:    st.Interval,
		Timeout:     st.Timeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < st.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			if ratio >= st.FailureRatio {
				logger.Warn().Uint32("failures", counts.TotalFailures).Float64("failure_rate", ratio*100).Msg("Opening circuit")
				return true
			}
			return false
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("Circuit state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},

		// A missing genre or an abandoned request says nothing about store health.
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, ErrCategoryNotFound) ||
				errors.Is(err, context.Canceled)
		},
	})

	return &BreakerCatalog{inner: inner, cb: cb, name: name}
}

// State reports the breaker state.
func (b *BreakerCatalog) State() gobreaker.State {
	return b.cb.State()
}

// Acquire implements Catalog.
func (b *BreakerCatalog) Acquire(ctx context.Context) (Session, error) {
	sess, err := guarded(b, "acquire", func() (Session, error) {
		return b.inner.Acquire(ctx)
	})
	if err != nil {
		return nil, err
	}
	return &breakerSession{inner: sess, b: b}, nil
}

type breakerSession struct {
	inner Session
	b     *BreakerCatalog
}

func (s *breakerSession) GenreNames(ctx context.Context) ([]string, error) {
	return guarded(s.b, "genre_names", func() ([]string, error) {
		return s.inner.GenreNames(ctx)
	})
}

func (s *breakerSession) GenreByName(ctx context.Context, name string) (*models.Genre, error) {
	return guarded(s.b, "genre_by_name", func() (*models.Genre, error) {
		return s.inner.GenreByName(ctx, name)
	})
}

func (s *breakerSession) MoviesByGenre(ctx context.Context, genreID int64, years models.YearRange) ([]models.Movie, error) {
	return guarded(s.b, "movies_by_genre", func() ([]models.Movie, error) {
		return s.inner.MoviesByGenre(ctx, genreID, years)
	})
}

func (s *breakerSession) GenreNamesByMovie(ctx context.Context, movieIDs []int64) (map[int64][]string, error) {
	return guarded(s.b, "genres_for_movies", func() (map[int64][]string, error) {
		return s.inner.GenreNamesByMovie(ctx, movieIDs)
	})
}

func (s *breakerSession) Close() error {
	return s.inner.Close()
}

// guarded runs fn through the breaker. Rejections and store failures both
// come back as ErrStoreUnavailable.
func guarded[T any](b *BreakerCatalog, op string, fn func() (T, error)) (T, error) {
	var zero T
	result, err := b.cb.Execute(func() (any, error) {
		v, err := fn()
		return v, err
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
			return zero, &StoreError{Op: op, Err: err}
		}
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
		return zero, storeErr(op, err)
	}
	metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()

	typed, ok := result.(T)
	if !ok && result != nil {
		return zero, &StoreError{Op: op, Err: errors.New("unexpected result type")}
	}
	return typed, nil
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
