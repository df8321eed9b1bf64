// Reelpick - Genre-Filtered Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

package seed

import (
	"context"
	"time"

	"github.com/tomtom215/reelpick/internal/models"
)

// Tx is the write surface a store exposes inside one seeding transaction.
type Tx interface {
	// GenreID returns the ID of the genre with this exact name, creating
	// it when absent.
	GenreID(ctx context.Context, name string) (id int64, created bool, err error)

	// FindMovie looks up a movie by title and year. A nil year matches
	// only movies without a year.
	FindMovie(ctx context.Context, title string, year *int) (id int64, found bool, err error)

	// InsertMovie stores m and returns its new ID.
	InsertMovie(ctx context.Context, m models.Movie) (int64, error)

	// LinkGenre links a movie to a genre unless the link exists.
	LinkGenre(ctx context.Context, movieID, genreID int64) (created bool, err error)
}

// Target runs fn inside a single transaction, committing only when fn
// returns nil.
type Target interface {
	SeedTx(ctx context.Context, fn func(tx Tx) error) error
}

// Stats holds the outcome of a seeding run.
type Stats struct {
	Entries       int       `json:"entries"`
	MoviesAdded   int       `json:"movies_added"`
	MoviesReused  int       `json:"movies_reused"`
	GenresCreated int       `json:"genres_created"`
	LinksCreated  int       `json:"links_created"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
}

// Duration returns how long the run took.
func (s *Stats) Duration() time.Duration {
	if s.EndTime.IsZero() {
		return time.Since(s.StartTime)
	}
	return s.EndTime.Sub(s.StartTime)
}

// Changed reports whether the run wrote anything.
func (s *Stats) Changed() bool {
	return s.MoviesAdded > 0 || s.GenresCreated > 0 || s.LinksCreated > 0
}
