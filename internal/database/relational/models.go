// Reelpick - Genre-Filtered Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

package relational

import "github.com/tomtom215/reelpick/internal/models"

type movieRow struct {
	ID        int64   `gorm:"primaryKey"`
	Title     string  `gorm:"not null;index"`
	Year      *int    `gorm:"index"`
	Overview  *string
	PosterURL *string `gorm:"column:poster_url"`
}

func (movieRow) TableName() string { return "movie" }

func (r movieRow) toModel() models.Movie {
	return models.Movie{
		ID:        r.ID,
		Title:     r.Title,
		Year:      r.Year,
		Overview:  r.Overview,
		PosterURL: r.PosterURL,
	}
}

type genreRow struct {
	ID   int64  `gorm:"primaryKey"`
	Name string `gorm:"not null;uniqueIndex"`
}

func (genreRow) TableName() string { return "genre" }

type movieGenreRow struct {
	MovieID int64    `gorm:"primaryKey;autoIncrement:false"`
	GenreID int64    `gorm:"primaryKey;autoIncrement:false;index"`
	Movie   movieRow `gorm:"foreignKey:MovieID;constraint:OnDelete:CASCADE"`
	Genre   genreRow `gorm:"foreignKey:GenreID;constraint:OnDelete:CASCADE"`
}

func (movieGenreRow) TableName() string { return "movie_genre" }

// movieGenreName is the scan target for genre lookups by movie.
type movieGenreName struct {
	MovieID int64
	Name    string
}
