// Reelpick - Genre-Filtered Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

//go:build integration

package relational

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomtom215/reelpick/internal/config"
	"github.com/tomtom215/reelpick/internal/models"
	"github.com/tomtom215/reelpick/internal/seed"
	"github.com/tomtom215/reelpick/internal/testinfra"
)

func TestPostgresStore(t *testing.T) {
	testinfra.SkipIfNoDocker(t)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	pg, err := testinfra.NewPostgresContainer(ctx, testinfra.WithContainerLogger(testinfra.NewContainerLogger(t)))
	require.NoError(t, err)
	testinfra.TerminateOnCleanup(t, pg.Container)

	store, err := Open(&config.DatabaseConfig{Driver: config.DriverPostgres, DSN: pg.DSN})
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Ping(ctx))

	seeder := seed.NewSeeder(store)
	_, err = seeder.Run(ctx, seed.Sample())
	require.NoError(t, err)
	second, err := seeder.Run(ctx, seed.Sample())
	require.NoError(t, err)
	assert.False(t, second.Changed())

	sess, err := store.Acquire(ctx)
	require.NoError(t, err)
	defer sess.Close()

	names, err := sess.GenreNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Action", "Crime", "Drama", "Romance", "Sci-Fi", "Thriller"}, names)

	drama, err := sess.GenreByName(ctx, "Drama")
	require.NoError(t, err)
	require.NotNil(t, drama)

	movies, err := sess.MoviesByGenre(ctx, drama.ID, models.YearRange{Min: intPtr(1994), Max: intPtr(1994)})
	require.NoError(t, err)
	assert.Len(t, movies, 3)
}
