// Reelpick - Genre-Filtered Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

package relational

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/tomtom215/reelpick/internal/config"
	"github.com/tomtom215/reelpick/internal/models"
	"github.com/tomtom215/reelpick/internal/recommend"
	"github.com/tomtom215/reelpick/internal/seed"
)

func intPtr(v int) *int { return &v }

func openSQLite(t *testing.T, opts ...Option) *Store {
	t.Helper()
	store, err := Open(&config.DatabaseConfig{
		Driver: config.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "movies.db"),
	}, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func seedSample(t *testing.T, store *Store) {
	t.Helper()
	_, err := seed.NewSeeder(store).Run(context.Background(), seed.Sample())
	require.NoError(t, err)
}

func acquire(t *testing.T, store *Store) recommend.Session {
	t.Helper()
	sess, err := store.Acquire(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = sess.Close() })
	return sess
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(&config.DatabaseConfig{Driver: config.DriverDuckDB, DSN: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported relational driver")
}

func TestIsMemoryDSN(t *testing.T) {
	tests := []struct {
		dsn  string
		want bool
	}{
		{":memory:", true},
		{"file:movies?mode=memory", true},
		{"file:movies?mode=memory&cache=shared", false},
		{"/var/lib/reelpick/movies.db", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isMemoryDSN(tt.dsn), tt.dsn)
	}
}

func TestInMemorySQLite(t *testing.T) {
	store, err := Open(&config.DatabaseConfig{Driver: config.DriverSQLite, DSN: ":memory:"})
	require.NoError(t, err)
	defer store.Close()

	seedSample(t, store)

	counts, err := store.Counts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Counts{Movies: 8, Genres: 6, Links: 17}, counts)
}

func TestCloseIsIdempotent(t *testing.T) {
	store := openSQLite(t)

	require.NoError(t, store.Close())
	require.NoError(t, store.Close())

	assert.ErrorIs(t, store.Ping(context.Background()), ErrClosed)
	_, err := store.Acquire(context.Background())
	assert.ErrorIs(t, err, ErrClosed)
	err = store.SeedTx(context.Background(), func(seed.Tx) error { return nil })
	assert.ErrorIs(t, err, ErrClosed)
}

func TestGenreNames(t *testing.T) {
	store := openSQLite(t)

	names, err := acquire(t, store).GenreNames(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, names)
	assert.Empty(t, names)

	seedSample(t, store)

	names, err = acquire(t, store).GenreNames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Action", "Crime", "Drama", "Romance", "Sci-Fi", "Thriller"}, names)
}

func TestGenreByNameIsCaseSensitive(t *testing.T) {
	store := openSQLite(t)
	seedSample(t, store)
	sess := acquire(t, store)

	g, err := sess.GenreByName(context.Background(), "Crime")
	require.NoError(t, err)
	require.NotNil(t, g)
	assert.Equal(t, "Crime", g.Name)

	for _, name := range []string{"crime", "CRIME", "Crime ", "Horror"} {
		g, err := sess.GenreByName(context.Background(), name)
		require.NoError(t, err)
		assert.Nil(t, g, "GenreByName(%q)", name)
	}
}

func TestMoviesByGenre(t *testing.T) {
	store := openSQLite(t)
	seedSample(t, store)
	_, err := seed.NewSeeder(store).Run(context.Background(), []models.SeedEntry{
		{Title: "Undated Drama", Genres: []string{"Drama"}},
	})
	require.NoError(t, err)

	sess := acquire(t, store)
	drama, err := sess.GenreByName(context.Background(), "Drama")
	require.NoError(t, err)
	require.NotNil(t, drama)

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
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			movies, err := sess.MoviesByGenre(context.Background(), drama.ID, tt.years)
			require.NoError(t, err)
			assert.NotNil(t, movies)
			assert.Len(t, movies, tt.want)
			for _, m := range movies {
				assert.True(t, tt.years.Contains(m.Year), "%s outside range", m.Title)
			}
		})
	}
}

func TestGenreNamesByMovie(t *testing.T) {
	store := openSQLite(t)
	seedSample(t, store)
	sess := acquire(t, store)

	crime, err := sess.GenreByName(context.Background(), "Crime")
	require.NoError(t, err)
	movies, err := sess.MoviesByGenre(context.Background(), crime.ID, models.YearRange{})
	require.NoError(t, err)
	require.Len(t, movies, 4)

	ids := make([]int64, 0, len(movies))
	for _, m := range movies {
		ids = append(ids, m.ID)
	}
	byMovie, err := sess.GenreNamesByMovie(context.Background(), ids)
	require.NoError(t, err)

	for _, m := range movies {
		assert.Contains(t, byMovie[m.ID], "Crime", m.Title)
		assert.IsNonDecreasing(t, byMovie[m.ID])
	}

	empty, err := sess.GenreNamesByMovie(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestSeedIsIdempotent(t *testing.T) {
	store := openSQLite(t)
	seeder := seed.NewSeeder(store)

	first, err := seeder.Run(context.Background(), seed.Sample())
	require.NoError(t, err)
	assert.Equal(t, 8, first.MoviesAdded)
	assert.Equal(t, 6, first.GenresCreated)
	assert.Equal(t, 17, first.LinksCreated)

	second, err := seeder.Run(context.Background(), seed.Sample())
	require.NoError(t, err)
	assert.False(t, second.Changed())

	counts, err := store.Counts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Counts{Movies: 8, Genres: 6, Links: 17}, counts)
}

func TestSeedNullYearIdentity(t *testing.T) {
	store := openSQLite(t)

	stats, err := seed.NewSeeder(store).Run(context.Background(), []models.SeedEntry{
		{Title: "Solaris"},
		{Title: "Solaris", Year: intPtr(1972)},
		{Title: "Solaris", Year: intPtr(1972)},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, stats.MoviesAdded)
	assert.Equal(t, 1, stats.MoviesReused)
}

func TestSeedRollsBack(t *testing.T) {
	store := openSQLite(t)

	err := store.SeedTx(context.Background(), func(tx seed.Tx) error {
		if _, _, err := tx.GenreID(context.Background(), "Western"); err != nil {
			return err
		}
		return errors.New("abort")
	})
	require.Error(t, err)

	counts, err := store.Counts(context.Background())
	require.NoError(t, err)
	assert.Zero(t, counts.Genres)
}

func TestSessionCloseTwice(t *testing.T) {
	store := openSQLite(t)

	sess, err := store.Acquire(context.Background())
	require.NoError(t, err)
	require.NoError(t, sess.Close())
	assert.NoError(t, sess.Close())
}

func TestTracingCallbacks(t *testing.T) {
	store := openSQLite(t, WithTracerProvider(tracenoop.NewTracerProvider()))
	seedSample(t, store)

	names, err := acquire(t, store).GenreNames(context.Background())
	require.NoError(t, err)
	assert.Len(t, names, 6)
}

func TestRecommendEndToEnd(t *testing.T) {
	store := openSQLite(t)
	seedSample(t, store)

	svc := recommend.NewService(store, &config.APIConfig{DefaultN: 10, MaxN: 20, RandomSeed: 7})
	defer svc.Close()

	resp, err := svc.Recommend(context.Background(), recommend.Query{Genre: "Crime", N: intPtr(10)})
	require.NoError(t, err)
	assert.Equal(t, 10, resp.Requested)
	assert.Equal(t, 4, resp.Returned)

	_, err = svc.Recommend(context.Background(), recommend.Query{Genre: "crime"})
	assert.ErrorIs(t, err, recommend.ErrCategoryNotFound)
}
