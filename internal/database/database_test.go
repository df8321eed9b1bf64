// Reelpick - Genre-Filtered Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

package database

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomtom215/reelpick/internal/config"
	"github.com/tomtom215/reelpick/internal/models"
	"github.com/tomtom215/reelpick/internal/recommend"
	"github.com/tomtom215/reelpick/internal/seed"
)

// testDBSemaphore limits concurrent DuckDB instances in tests.
var testDBSemaphore = make(chan struct{}, 2)

func intPtr(v int) *int { return &v }

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	testDBSemaphore <- struct{}{}
	t.Cleanup(func() { <-testDBSemaphore })

	db, err := New(&config.DatabaseConfig{
		Driver:    config.DriverDuckDB,
		Path:      ":memory:",
		MaxMemory: "256MB",
		Threads:   1,
	})
	require.NoError(t, err, "failed to create test database")
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func seedSample(t *testing.T, db *DB) {
	t.Helper()
	_, err := seed.NewSeeder(db).Run(context.Background(), seed.Sample())
	require.NoError(t, err)
}

func acquire(t *testing.T, db *DB) recommend.Session {
	t.Helper()
	sess, err := db.Acquire(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = sess.Close() })
	return sess
}

func TestNewAppliesMigrations(t *testing.T) {
	db := setupTestDB(t)

	version, err := db.SchemaVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, len(db.getMigrations()), version)

	// Running again is a no-op.
	require.NoError(t, db.runVersionedMigrations())
	again, err := db.SchemaVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, version, again)
}

func TestNewCreatesDataDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "data", "movies.duckdb")

	db, err := New(&config.DatabaseConfig{Path: path, Threads: 1})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, err = os.Stat(path)
	assert.NoError(t, err, "database file should exist")

	// Reopening an existing file keeps the schema.
	db, err = New(&config.DatabaseConfig{Path: path, Threads: 1})
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, db.Ping(context.Background()))
}

func TestCloseIsIdempotent(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, db.Close())
	require.NoError(t, db.Close())
	assert.Error(t, db.Ping(context.Background()))

	_, err := db.Acquire(context.Background())
	assert.Error(t, err)
}

func TestGenreNames(t *testing.T) {
	db := setupTestDB(t)

	sess, err := db.Acquire(context.Background())
	require.NoError(t, err)
	names, err := sess.GenreNames(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, names)
	assert.Empty(t, names)
	require.NoError(t, sess.Close())

	seedSample(t, db)

	names, err = acquire(t, db).GenreNames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Action", "Crime", "Drama", "Romance", "Sci-Fi", "Thriller"}, names)
}

func TestSeedWhileSessionHeld(t *testing.T) {
	db := setupTestDB(t)
	held := acquire(t, db)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := seed.NewSeeder(db).Run(ctx, seed.Sample())
	require.NoError(t, err, "seeding must not wait on a connection held by an open session")

	names, err := held.GenreNames(context.Background())
	require.NoError(t, err)
	assert.Len(t, names, 6)
}

func TestMaxOpenConnsFloor(t *testing.T) {
	assert.GreaterOrEqual(t, maxOpenConns(), minOpenConns)
	assert.GreaterOrEqual(t, maxOpenConns(), runtime.NumCPU())
}

func TestGenreByNameIsCaseSensitive(t *testing.T) {
	db := setupTestDB(t)
	seedSample(t, db)
	sess := acquire(t, db)

	g, err := sess.GenreByName(context.Background(), "Drama")
	require.NoError(t, err)
	require.NotNil(t, g)
	assert.Equal(t, "Drama", g.Name)
	assert.Positive(t, g.ID)

	for _, name := range []string{"drama", "DRAMA", "Western", ""} {
		g, err := sess.GenreByName(context.Background(), name)
		require.NoError(t, err)
		assert.Nil(t, g, "GenreByName(%q)", name)
	}
}

func TestMoviesByGenre(t *testing.T) {
	db := setupTestDB(t)
	seedSample(t, db)
	_, err := seed.NewSeeder(db).Run(context.Background(), []models.SeedEntry{
		{Title: "Undated Drama", Genres: []string{"Drama"}},
	})
	require.NoError(t, err)

	sess := acquire(t, db)
	drama, err := sess.GenreByName(context.Background(), "Drama")
	require.NoError(t, err)

	tests := []struct {
		name  string
		years models.YearRange
		want  int
	}{
		{"unbounded includes null year", models.YearRange{}, 7},
		{"min bound", models.YearRange{Min: intPtr(1994)}, 4},
		{"max bound", models.YearRange{Max: intPtr(1990)}, 2},
		{"exact year", models.YearRange{Min: intPtr(1994), Max: intPtr(1994)}, 3},
		{"inverted", models.YearRange{Min: intPtr(2010), Max: intPtr(1990)}, 0},
		{"no match", models.YearRange{Min: intPtr(2020)}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			movies, err := sess.MoviesByGenre(context.Background(), drama.ID, tt.years)
			require.NoError(t, err)
			assert.NotNil(t, movies)
			assert.Len(t, movies, tt.want)
			for _, m := range movies {
				if tt.years.Bounded() {
					require.NotNil(t, m.Year, "%s has no year", m.Title)
				}
				assert.True(t, tt.years.Contains(m.Year), "%s (%v) outside range", m.Title, m.Year)
			}
		})
	}
}

func TestMoviesByGenreNullableColumns(t *testing.T) {
	db := setupTestDB(t)
	poster := "https://example.com/alien.jpg"
	_, err := seed.NewSeeder(db).Run(context.Background(), []models.SeedEntry{
		{Title: "Alien", Year: intPtr(1979), PosterURL: &poster, Genres: []string{"Horror"}},
		{Title: "Nosferatu", Genres: []string{"Horror"}},
	})
	require.NoError(t, err)

	sess := acquire(t, db)
	horror, err := sess.GenreByName(context.Background(), "Horror")
	require.NoError(t, err)

	movies, err := sess.MoviesByGenre(context.Background(), horror.ID, models.YearRange{})
	require.NoError(t, err)
	require.Len(t, movies, 2)

	byTitle := map[string]models.Movie{}
	for _, m := range movies {
		byTitle[m.Title] = m
	}
	assert.Equal(t, 1979, *byTitle["Alien"].Year)
	assert.Equal(t, poster, *byTitle["Alien"].PosterURL)
	assert.Nil(t, byTitle["Alien"].Overview)
	assert.Nil(t, byTitle["Nosferatu"].Year)
	assert.Nil(t, byTitle["Nosferatu"].PosterURL)
}

func TestGenreNamesByMovie(t *testing.T) {
	db := setupTestDB(t)
	seedSample(t, db)
	sess := acquire(t, db)

	scifi, err := sess.GenreByName(context.Background(), "Sci-Fi")
	require.NoError(t, err)
	movies, err := sess.MoviesByGenre(context.Background(), scifi.ID, models.YearRange{})
	require.NoError(t, err)
	require.Len(t, movies, 2)

	ids := []int64{movies[0].ID, movies[1].ID}
	byMovie, err := sess.GenreNamesByMovie(context.Background(), ids)
	require.NoError(t, err)

	for _, m := range movies {
		switch m.Title {
		case "Inception":
			assert.Equal(t, []string{"Action", "Sci-Fi", "Thriller"}, byMovie[m.ID])
		case "The Matrix":
			assert.Equal(t, []string{"Action", "Sci-Fi"}, byMovie[m.ID])
		default:
			t.Errorf("unexpected movie %q", m.Title)
		}
	}

	empty, err := sess.GenreNamesByMovie(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestSessionCloseTwice(t *testing.T) {
	db := setupTestDB(t)

	sess, err := db.Acquire(context.Background())
	require.NoError(t, err)

	first := sess.Close()
	assert.NoError(t, first)
	assert.Equal(t, first, sess.Close())
}

func TestSeedIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	seeder := seed.NewSeeder(db)

	first, err := seeder.Run(context.Background(), seed.Sample())
	require.NoError(t, err)
	assert.Equal(t, 8, first.MoviesAdded)
	assert.Equal(t, 6, first.GenresCreated)
	assert.Equal(t, 17, first.LinksCreated)

	second, err := seeder.Run(context.Background(), seed.Sample())
	require.NoError(t, err)
	assert.False(t, second.Changed())
	assert.Equal(t, 8, second.MoviesReused)

	counts, err := db.Counts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Counts{Movies: 8, Genres: 6, Links: 17}, counts)
}

func TestSeedNullYearIdentity(t *testing.T) {
	db := setupTestDB(t)

	stats, err := seed.NewSeeder(db).Run(context.Background(), []models.SeedEntry{
		{Title: "Solaris"},
		{Title: "Solaris", Year: intPtr(1972)},
		{Title: "Solaris"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, stats.MoviesAdded)
	assert.Equal(t, 1, stats.MoviesReused)
}

func TestSeedRollsBack(t *testing.T) {
	db := setupTestDB(t)

	err := db.SeedTx(context.Background(), func(tx seed.Tx) error {
		if _, _, err := tx.GenreID(context.Background(), "Western"); err != nil {
			return err
		}
		return errors.New("abort")
	})
	require.Error(t, err)

	counts, err := db.Counts(context.Background())
	require.NoError(t, err)
	assert.Zero(t, counts.Genres)
}

func TestRecommendEndToEnd(t *testing.T) {
	db := setupTestDB(t)
	_, err := seed.NewSeeder(db).Run(context.Background(), []models.SeedEntry{
		{Title: "Inception", Year: intPtr(2010), Genres: []string{"Action", "Sci-Fi"}},
	})
	require.NoError(t, err)

	svc := recommend.NewService(db, &config.APIConfig{DefaultN: 10, MaxN: 20, RandomSeed: 1})
	resp, err := svc.Recommend(context.Background(), recommend.Query{Genre: "Action", N: intPtr(5)})
	require.NoError(t, err)

	assert.Equal(t, 5, resp.Requested)
	assert.Equal(t, 1, resp.Returned)
	require.Len(t, resp.Movies, 1)
	assert.Equal(t, []string{"Action", "Sci-Fi"}, resp.Movies[0].Genres)
}

func TestIsConnectionError(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("syntax error at or near SELECT"), false},
		{errors.New("dial tcp: connection refused"), true},
		{fmt.Errorf("query: %w", errors.New("sql: database is closed")), true},
		{errors.New("write: broken pipe"), true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isConnectionError(tt.err), "isConnectionError(%v)", tt.err)
	}
}
