// Reelpick - Genre-Filtered Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomtom215/reelpick/internal/models"
)

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestSeedCommand(t *testing.T) {
	cfg := writeConfig(t)

	out, err := execute(t, "seed", "--sample", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "movies added: 8")
	assert.Contains(t, out, "genres created: 6")
	assert.Contains(t, out, "links created: 17")

	out, err = execute(t, "seed", "--sample", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "movies added: 0")
	assert.Contains(t, out, "movies reused: 8")
}

func TestSeedCommandErrors(t *testing.T) {
	cfg := writeConfig(t)

	_, err := execute(t, "seed", "--config", cfg)
	assert.Equal(t, ExitUsage, ExitCode(err))

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`[{"year": 1999}]`), 0o600))
	_, err = execute(t, "seed", "--file", bad, "--config", cfg)
	assert.Equal(t, ExitUsage, ExitCode(err))
	assert.ErrorContains(t, err, "entry 0")
}

func TestGenresCommand(t *testing.T) {
	cfg := writeConfig(t)

	out, err := execute(t, "genres", "--config", cfg)
	require.NoError(t, err)
	assert.Empty(t, out)

	_, err = execute(t, "seed", "--sample", "--config", cfg)
	require.NoError(t, err)

	out, err = execute(t, "genres", "--config", cfg)
	require.NoError(t, err)
	newGoldie(t).Assert(t, "genres", []byte(out))
}

func TestRecommendCommand(t *testing.T) {
	cfg := writeConfig(t)
	_, err := execute(t, "seed", "--sample", "--config", cfg)
	require.NoError(t, err)

	t.Run("crime", func(t *testing.T) {
		out, err := execute(t, "recommend", "--genre", "Crime", "--n", "3", "--seed", "7", "--config", cfg)
		require.NoError(t, err)

		var resp models.RecommendationsResponse
		require.NoError(t, json.Unmarshal([]byte(out), &resp))
		assert.Equal(t, "Crime", resp.Genre)
		assert.Equal(t, 3, resp.Requested)
		assert.Equal(t, 3, resp.Returned)
		for _, m := range resp.Movies {
			assert.Contains(t, m.Genres, "Crime")
		}

		again, err := execute(t, "recommend", "--genre", "Crime", "--n", "3", "--seed", "7", "--config", cfg)
		require.NoError(t, err)
		assert.Equal(t, out, again, "same seed gives the same selection")
	})

	t.Run("year range", func(t *testing.T) {
		out, err := execute(t, "recommend", "--genre", "Drama", "--n", "20", "--year-min", "1994", "--year-max", "1994", "--config", cfg)
		require.NoError(t, err)

		var resp models.RecommendationsResponse
		require.NoError(t, json.Unmarshal([]byte(out), &resp))
		assert.Equal(t, 3, resp.Returned)
		for _, m := range resp.Movies {
			require.NotNil(t, m.Year)
			assert.Equal(t, 1994, *m.Year)
		}
	})

	t.Run("unknown genre", func(t *testing.T) {
		_, err := execute(t, "recommend", "--genre", "Western", "--config", cfg)
		assert.Equal(t, ExitUsage, ExitCode(err))
		assert.EqualError(t, err, "Unknown genre: Western")
	})

	t.Run("zero seed", func(t *testing.T) {
		_, err := execute(t, "recommend", "--genre", "Crime", "--seed", "0", "--config", cfg)
		assert.Equal(t, ExitUsage, ExitCode(err))
		assert.EqualError(t, err, "--seed must be non-zero")
	})

	t.Run("missing genre flag", func(t *testing.T) {
		_, err := execute(t, "recommend", "--config", cfg)
		assert.Error(t, err)
	})
}
