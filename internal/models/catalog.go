// Reelpick - Genre-Filtered Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

package models

// Movie is a catalog item as stored. Optional columns are nil when NULL.
type Movie struct {
	ID        int64
	Title     string
	Year      *int
	Overview  *string
	PosterURL *string
}

// Genre is a named category. Names are unique and case-sensitive.
type Genre struct {
	ID   int64
	Name string
}

// YearRange holds optional inclusive bounds on Movie.Year.
// A movie without a year never satisfies a bound it is compared against.
type YearRange struct {
	Min *int
	Max *int
}

// Bounded reports whether at least one bound is set.
func (r YearRange) Bounded() bool {
	return r.Min != nil || r.Max != nil
}

// Contains applies the range to a possibly missing year with SQL NULL
// semantics: a nil year passes only when the range is unbounded.
func (r YearRange) Contains(year *int) bool {
	if year == nil {
		return !r.Bounded()
	}
	if r.Min != nil && *year < *r.Min {
		return false
	}
	if r.Max != nil && *year > *r.Max {
		return false
	}
	return true
}

// SeedEntry is one element of a seed catalog file.
type SeedEntry struct {
	Title     string   `json:"title" validate:"required,notblank,max=500"`
	Year      *int     `json:"year,omitempty"`
	Overview  *string  `json:"overview,omitempty"`
	PosterURL *string  `json:"poster_url,omitempty" validate:"omitempty,max=2048"`
	Genres    []string `json:"genres,omitempty" validate:"dive,required,notblank,max=100"`
}

// Movie converts the entry into an unsaved Movie.
func (e *SeedEntry) Movie() Movie {
	return Movie{
		Title:     e.Title,
		Year:      e.Year,
		Overview:  e.Overview,
		PosterURL: e.PosterURL,
	}
}
