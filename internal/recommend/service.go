// Reelpick - Genre-Filtered Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

package recommend

import (
	"context"
	"errors"
	"slices"
	"sort"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tomtom215/reelpick/internal/cache"
	"github.com/tomtom215/reelpick/internal/config"
	"github.com/tomtom215/reelpick/internal/logging"
	"github.com/tomtom215/reelpick/internal/metrics"
	"github.com/tomtom215/reelpick/internal/models"
)

// TracerName identifies spans created by this package.
const TracerName = "github.com/tomtom215/reelpick/internal/recommend"

const genreCacheKey = "genres"

// Query describes one recommendation request.
type Query struct {
	Genre string
	// N is the requested count. Nil means the configured default.
	N     *int
	Years models.YearRange
}

// Service serves genre listings and recommendations. It is safe for
// concurrent use.
type Service struct {
	catalog Catalog
	cfg     *config.APIConfig
	sampler *Sampler
	genres  *cache.Cache[[]string]
	logger  zerolog.Logger
	tracer  trace.Tracer
}

// Option customizes a Service.
type Option func(*Service)

// WithSampler replaces the sampler built from APIConfig.RandomSeed.
func WithSampler(s *Sampler) Option {
	return func(svc *Service) { svc.sampler = s }
}

// WithGenreCache replaces the genre list cache. Nil disables caching.
func WithGenreCache(c *cache.Cache[[]string]) Option {
	return func(svc *Service) { svc.genres = c }
}

// WithLogger sets the service logger.
func WithLogger(l zerolog.Logger) Option {
	return func(svc *Service) { svc.logger = l }
}

// WithTracerProvider sets the provider spans are created from.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(svc *Service) { svc.tracer = tp.Tracer(TracerName) }
}

// NewService creates a Service reading from catalog.
func NewService(catalog Catalog, cfg *config.APIConfig, opts ...Option) *Service {
	svc := &Service{
		catalog: catalog,
		cfg:     cfg,
		logger:  logging.Component("recommend"),
		tracer:  otel.GetTracerProvider().Tracer(TracerName),
	}
	if cfg.GenreCacheTTL > 0 {
		svc.genres = cache.New[[]string](cfg.GenreCacheTTL)
	}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.sampler == nil {
		svc.sampler = NewSeededSampler(cfg.RandomSeed)
	}
	return svc
}

// Close releases the genre cache.
func (s *Service) Close() {
	if s.genres != nil {
		s.genres.Close()
	}
}

// ClampN resolves a requested count into [1, MaxN].
func (s *Service) ClampN(n *int) int {
	if n == nil {
		return Clamp(s.cfg.DefaultN, s.cfg.MaxN)
	}
	return Clamp(*n, s.cfg.MaxN)
}

// Genres returns every genre name sorted ascending with duplicates removed.
func (s *Service) Genres(ctx context.Context) (names []string, err error) {
	ctx, span := s.tracer.Start(ctx, "recommend.genres")
	defer func() { endSpan(span, err) }()

	if s.genres != nil {
		if cached, ok := s.genres.Get(genreCacheKey); ok {
			metrics.RecordGenreCache(true)
			span.SetAttributes(attribute.Bool("cache.hit", true))
			return slices.Clone(cached), nil
		}
		metrics.RecordGenreCache(false)
	}

	sess, err := s.catalog.Acquire(ctx)
	if err != nil {
		return nil, storeErr("acquire", err)
	}
	defer s.closeSession(ctx, sess)

	raw, err := sess.GenreNames(ctx)
	if err != nil {
		return nil, storeErr("genre_names", err)
	}

	names = normalizeNames(raw)
	if s.genres != nil {
		s.genres.Set(genreCacheKey, names)
	}
	span.SetAttributes(attribute.Int("genres.count", len(names)))
	return slices.Clone(names), nil
}

// InvalidateGenres drops the cached genre list.
func (s *Service) InvalidateGenres() {
	if s.genres != nil {
		s.genres.Clear()
	}
}

// Recommend draws up to the clamped count of distinct movies from the
// genre's year-filtered pool.
func (s *Service) Recommend(ctx context.Context, q Query) (resp *models.RecommendationsResponse, err error) {
	ctx, span := s.tracer.Start(ctx, "recommend.recommend", trace.WithAttributes(
		attribute.String("genre", q.Genre),
	))
	defer func() { endSpan(span, err) }()

	log := logging.Ctx(ctx).With().Str("component", "recommend").Str("genre", q.Genre).Logger()

	sess, err := s.catalog.Acquire(ctx)
	if err != nil {
		return nil, s.fail(storeErr("acquire", err))
	}
	defer s.closeSession(ctx, sess)

	genre, err := sess.GenreByName(ctx, q.Genre)
	if err != nil {
		return nil, s.fail(storeErr("genre_by_name", err))
	}
	if genre == nil {
		return nil, s.fail(&CategoryNotFoundError{Name: q.Genre})
	}

	requested := s.ClampN(q.N)

	pool, err := sess.MoviesByGenre(ctx, genre.ID, q.Years)
	if err != nil {
		return nil, s.fail(storeErr("movies_by_genre", err))
	}

	picked := Sample(s.sampler, pool, requested)

	var linked map[int64][]string
	if len(picked) > 0 {
		ids := make([]int64, len(picked))
		for i, m := range picked {
			ids[i] = m.ID
		}
		linked, err = sess.GenreNamesByMovie(ctx, ids)
		if err != nil {
			return nil, s.fail(storeErr("genres_for_movies", err))
		}
	}

	records := make([]models.MovieRecord, 0, len(picked))
	for _, m := range picked {
		records = append(records, toRecord(m, linked[m.ID]))
	}

	metrics.RecordRecommendation(len(pool), len(records))
	span.SetAttributes(
		attribute.Int("requested", requested),
		attribute.Int("pool.size", len(pool)),
		attribute.Int("returned", len(records)),
	)
	log.Debug().
		Int("requested", requested).
		Int("pool_size", len(pool)).
		Int("returned", len(records)).
		Msg("Recommendation served")

	return &models.RecommendationsResponse{
		Genre:     q.Genre,
		Requested: requested,
		Returned:  len(records),
		Movies:    records,
	}, nil
}

func (s *Service) fail(err error) error {
	switch {
	case errors.Is(err, ErrCategoryNotFound):
		metrics.RecordRecommendationFailure("unknown_genre")
	case errors.Is(err, ErrStoreUnavailable):
		metrics.RecordRecommendationFailure("store_error")
	default:
		metrics.RecordRecommendationFailure("error")
	}
	return err
}

func (s *Service) closeSession(ctx context.Context, sess Session) {
	if err := sess.Close(); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("component", "recommend").Msg("Failed to release catalog session")
	}
}

func toRecord(m models.Movie, genres []string) models.MovieRecord {
	names := make([]string, len(genres))
	copy(names, genres)
	sort.Strings(names)
	return models.MovieRecord{
		ID:        m.ID,
		Title:     m.Title,
		Year:      m.Year,
		Genres:    names,
		Overview:  m.Overview,
		PosterURL: m.PosterURL,
	}
}

// normalizeNames sorts byte-wise so every backend agrees on order
// regardless of its collation.
func normalizeNames(raw []string) []string {
	names := make([]string, len(raw))
	copy(names, raw)
	sort.Strings(names)
	return slices.Compact(names)
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
