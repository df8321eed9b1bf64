// Reelpick - Genre-Filtered Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

package recommend

import (
	"context"

	"github.com/tomtom215/reelpick/internal/models"
)

// Catalog hands out request-scoped read sessions.
// Implemented by the DuckDB and relational store packages.
type Catalog interface {
	Acquire(ctx context.Context) (Session, error)
}

// Session is a read handle held for the duration of one request.
// Callers must Close it on every path.
type Session interface {
	// GenreNames returns every genre name.
	GenreNames(ctx context.Context) ([]string, error)

	// GenreByName returns the genre with exactly this name, or nil when
	// none exists.
	GenreByName(ctx context.Context, name string) (*models.Genre, error)

	// MoviesByGenre returns every movie linked to the genre whose year
	// satisfies the range, ordered by ID so a fixed seed repeats its picks.
	MoviesByGenre(ctx context.Context, genreID int64, years models.YearRange) ([]models.Movie, error)

	// GenreNamesByMovie returns the genre names linked to each movie ID.
	// Movies without links may be absent from the map.
	GenreNamesByMovie(ctx context.Context, movieIDs []int64) (map[int64][]string, error)

	Close() error
}
