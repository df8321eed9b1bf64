// Reelpick - Genre-Filtered Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/reelpick/internal/database/query"
	"github.com/tomtom215/reelpick/internal/logging"
	"github.com/tomtom215/reelpick/internal/metrics"
	"github.com/tomtom215/reelpick/internal/models"
)

// observe records query metrics and flags lost connections.
func observe(op string, start time.Time, err error) {
	metrics.RecordDBQuery(op, Backend, time.Since(start), err)
	if isConnectionError(err) {
		logging.Error().Err(err).Str("operation", op).Msg("DuckDB connection lost")
	}
}

// GenreNames returns every genre name ordered by name.
func (s *Session) GenreNames(ctx context.Context) (names []string, err error) {
	defer func(start time.Time) { observe("genre_names", start, err) }(time.Now())

	rows, err := s.conn.QueryContext(ctx, `SELECT name FROM genre ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query genres: %w", err)
	}
	defer closeWithLog(rows, "genre rows")

	names = []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan genre: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// GenreByName returns the genre with exactly this name, or nil if none exists.
func (s *Session) GenreByName(ctx context.Context, name string) (genre *models.Genre, err error) {
	defer func(start time.Time) { observe("genre_by_name", start, err) }(time.Now())

	var g models.Genre
	err = s.conn.QueryRowContext(ctx, `SELECT id, name FROM genre WHERE name = ?`, name).Scan(&g.ID, &g.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up genre: %w", err)
	}
	return &g, nil
}

// MoviesByGenre returns every movie linked to genreID whose year satisfies years.
func (s *Session) MoviesByGenre(ctx context.Context, genreID int64, years models.YearRange) (movies []models.Movie, err error) {
	defer func(start time.Time) { observe("movies_by_genre", start, err) }(time.Now())

	where, args := query.NewWhereBuilder().
		AddClause("mg.genre_id = ?", genreID).
		AddYearRange("m.year", years.Min, years.Max).
		BuildWithPrefix()

	rows, err := s.conn.QueryContext(ctx, `
		SELECT m.id, m.title, m.year, m.overview, m.poster_url
		FROM movie m
		JOIN movie_genre mg ON mg.movie_id = m.id
		`+where+`
		ORDER BY m.id`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query movies: %w", err)
	}
	defer closeWithLog(rows, "movie rows")

	movies = []models.Movie{}
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		movies = append(movies, m)
	}
	return movies, rows.Err()
}

// GenreNamesByMovie returns the linked genre names of each movie.
func (s *Session) GenreNamesByMovie(ctx context.Context, movieIDs []int64) (byMovie map[int64][]string, err error) {
	byMovie = make(map[int64][]string, len(movieIDs))
	if len(movieIDs) == 0 {
		return byMovie, nil
	}
	defer func(start time.Time) { observe("genres_for_movies", start, err) }(time.Now())

	where, args := query.NewWhereBuilder().AddIDs("mg.movie_id", movieIDs).BuildWithPrefix()

	rows, err := s.conn.QueryContext(ctx, `
		SELECT mg.movie_id, g.name
		FROM movie_genre mg
		JOIN genre g ON g.id = mg.genre_id
		`+where+`
		ORDER BY mg.movie_id, g.name`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query movie genres: %w", err)
	}
	defer closeWithLog(rows, "movie genre rows")

	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("failed to scan movie genre: %w", err)
		}
		byMovie[id] = append(byMovie[id], name)
	}
	return byMovie, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMovie(row rowScanner) (models.Movie, error) {
	var (
		m         models.Movie
		year      sql.NullInt64
		overview  sql.NullString
		posterURL sql.NullString
	)
	if err := row.Scan(&m.ID, &m.Title, &year, &overview, &posterURL); err != nil {
		return models.Movie{}, fmt.Errorf("failed to scan movie: %w", err)
	}
	if year.Valid {
		y := int(year.Int64)
		m.Year = &y
	}
	if overview.Valid {
		m.Overview = &overview.String
	}
	if posterURL.Valid {
		m.PosterURL = &posterURL.String
	}
	return m, nil
}

// nullableInt and nullableString unwrap optional values for parameter binding.
func nullableInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullableString(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}
