// Reelpick - Genre-Filtered Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

package relational

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/tomtom215/reelpick/internal/database/query"
	"github.com/tomtom215/reelpick/internal/models"
	"github.com/tomtom215/reelpick/internal/recommend"
)

// Acquire pins one pooled connection for the caller's request.
func (s *Store) Acquire(ctx context.Context) (recommend.Session, error) {
	if s.isClosed() {
		return nil, ErrClosed
	}

	conn, err := s.sqlDB.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire connection: %w", err)
	}

	db := s.db.Session(&gorm.Session{NewDB: true, Context: ctx})
	db.Statement.ConnPool = conn

	return &Session{store: s, db: db, conn: conn}, nil
}

// Session runs catalog reads on a single connection.
type Session struct {
	store *Store
	db    *gorm.DB
	conn  *sql.Conn

	closeOnce sync.Once
	closeErr  error
}

// Close returns the connection to the pool.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.conn.Close()
	})
	return s.closeErr
}

// GenreNames returns every genre name ordered by name.
func (s *Session) GenreNames(ctx context.Context) (names []string, err error) {
	defer func(start time.Time) { s.store.observe("genre_names", start, err) }(time.Now())

	names = []string{}
	if err := s.db.WithContext(ctx).Model(&genreRow{}).Order("name").Pluck("name", &names).Error; err != nil {
		return nil, fmt.Errorf("failed to query genres: %w", err)
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

// GenreByName returns the genre with exactly this name, or nil if none exists.
func (s *Session) GenreByName(ctx context.Context, name string) (genre *models.Genre, err error) {
	defer func(start time.Time) { s.store.observe("genre_by_name", start, err) }(time.Now())

	var rows []genreRow
	if err := s.db.WithContext(ctx).Where("name = ?", name).Limit(1).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to look up genre: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &models.Genre{ID: rows[0].ID, Name: rows[0].Name}, nil
}

// MoviesByGenre returns every movie linked to genreID whose year satisfies years.
func (s *Session) MoviesByGenre(ctx context.Context, genreID int64, years models.YearRange) (movies []models.Movie, err error) {
	defer func(start time.Time) { s.store.observe("movies_by_genre", start, err) }(time.Now())

	where, args := query.NewWhereBuilder().
		AddClause("mg.genre_id = ?", genreID).
		AddYearRange("m.year", years.Min, years.Max).
		Build()

	var rows []movieRow
	err = s.db.WithContext(ctx).
		Table("movie AS m").
		Select("m.id, m.title, m.year, m.overview, m.poster_url").
		Joins("JOIN movie_genre mg ON mg.movie_id = m.id").
		Where(where, args...).
		Order("m.id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query movies: %w", err)
	}

	movies = make([]models.Movie, 0, len(rows))
	for _, r := range rows {
		movies = append(movies, r.toModel())
	}
	return movies, nil
}

// GenreNamesByMovie returns the linked genre names of each movie.
func (s *Session) GenreNamesByMovie(ctx context.Context, movieIDs []int64) (byMovie map[int64][]string, err error) {
	byMovie = make(map[int64][]string, len(movieIDs))
	if len(movieIDs) == 0 {
		return byMovie, nil
	}
	defer func(start time.Time) { s.store.observe("genres_for_movies", start, err) }(time.Now())

	where, args := query.NewWhereBuilder().AddIDs("mg.movie_id", movieIDs).Build()

	var rows []movieGenreName
	err = s.db.WithContext(ctx).
		Table("movie_genre AS mg").
		Select("mg.movie_id, g.name").
		Joins("JOIN genre g ON g.id = mg.genre_id").
		Where(where, args...).
		Order("mg.movie_id, g.name").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query movie genres: %w", err)
	}

	for _, r := range rows {
		byMovie[r.MovieID] = append(byMovie[r.MovieID], r.Name)
	}
	return byMovie, nil
}
