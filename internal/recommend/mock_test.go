// Reelpick - Genre-Filtered Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

package recommend

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/tomtom215/reelpick/internal/models"
)

// memCatalog is an in-memory Catalog for tests.
type memCatalog struct {
	mu     sync.Mutex
	movies []models.Movie
	genres []models.Genre
	links  map[int64][]int64 // movie ID -> genre IDs

	acquireErr error
	queryErr   error

	acquired atomic.Int32
	closed   atomic.Int32
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

// newSampleCatalog returns the eight-movie sample catalog.
func newSampleCatalog() *memCatalog {
	c := &memCatalog{links: make(map[int64][]int64)}
	add := func(title string, year int, genres ...string) {
		id := int64(len(c.movies) + 1)
		c.movies = append(c.movies, models.Movie{ID: id, Title: title, Year: intPtr(year), Overview: strPtr(title + " overview")})
		for _, g := range genres {
			c.links[id] = append(c.links[id], c.genreID(g))
		}
	}
	add("The Shawshank Redemption", 1994, "Drama")
	add("The Godfather", 1972, "Crime", "Drama")
	add("The Dark Knight", 2008, "Action", "Crime", "Drama")
	add("Pulp Fiction", 1994, "Crime", "Drama")
	add("Forrest Gump", 1994, "Drama", "Romance")
	add("Inception", 2010, "Thriller", "Sci-Fi", "Action")
	add("The Matrix", 1999, "Action", "Sci-Fi")
	add("Goodfellas", 1990, "Crime", "Drama")
	return c
}

func (c *memCatalog) genreID(name string) int64 {
	for _, g := range c.genres {
		if g.Name == name {
			return g.ID
		}
	}
	g := models.Genre{ID: int64(len(c.genres) + 1), Name: name}
	c.genres = append(c.genres, g)
	return g.ID
}

func (c *memCatalog) addMovie(m models.Movie, genres ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	m.ID = int64(len(c.movies) + 1)
	c.movies = append(c.movies, m)
	for _, g := range genres {
		c.links[m.ID] = append(c.links[m.ID], c.genreID(g))
	}
}

func (c *memCatalog) Acquire(context.Context) (Session, error) {
	if c.acquireErr != nil {
		return nil, c.acquireErr
	}
	c.acquired.Add(1)
	return &memSession{c: c}, nil
}

type memSession struct {
	c *memCatalog
}

func (s *memSession) GenreNames(context.Context) ([]string, error) {
	if s.c.queryErr != nil {
		return nil, s.c.queryErr
	}
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	names := make([]string, 0, len(s.c.genres))
	for _, g := range s.c.genres {
		names = append(names, g.Name)
	}
	return names, nil
}

func (s *memSession) GenreByName(_ context.Context, name string) (*models.Genre, error) {
	if s.c.queryErr != nil {
		return nil, s.c.queryErr
	}
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	for _, g := range s.c.genres {
		if g.Name == name {
			g := g
			return &g, nil
		}
	}
	return nil, nil
}

func (s *memSession) MoviesByGenre(_ context.Context, genreID int64, years models.YearRange) ([]models.Movie, error) {
	if s.c.queryErr != nil {
		return nil, s.c.queryErr
	}
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	var out []models.Movie
	for _, m := range s.c.movies {
		if !years.Contains(m.Year) {
			continue
		}
		for _, gid := range s.c.links[m.ID] {
			if gid == genreID {
				out = append(out, m)
				break
			}
		}
	}
	return out, nil
}

func (s *memSession) GenreNamesByMovie(_ context.Context, ids []int64) (map[int64][]string, error) {
	if s.c.queryErr != nil {
		return nil, s.c.queryErr
	}
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	out := make(map[int64][]string, len(ids))
	for _, id := range ids {
		for _, gid := range s.c.links[id] {
			out[id] = append(out[id], s.c.genres[gid-1].Name)
		}
	}
	return out, nil
}

func (s *memSession) Close() error {
	s.c.closed.Add(1)
	return nil
}
