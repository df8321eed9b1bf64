// Reelpick - Genre-Filtered Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

package seed

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelpick/internal/logging"
	"github.com/tomtom215/reelpick/internal/metrics"
	"github.com/tomtom215/reelpick/internal/models"
)

// ErrAlreadyRunning is returned when Run is called during another run.
var ErrAlreadyRunning = errors.New("seeding already in progress")

// Seeder writes catalog entries into a Target.
type Seeder struct {
	target Target

	mu      sync.Mutex
	running bool
}

// NewSeeder creates a Seeder for target.
func NewSeeder(target Target) *Seeder {
	return &Seeder{target: target}
}

// Run seeds entries in one transaction. On error nothing is committed and
// the returned Stats describe the aborted attempt.
func (s *Seeder) Run(ctx context.Context, entries []models.SeedEntry) (*Stats, error) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil, ErrAlreadyRunning
	}
	s.running = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	if logging.CorrelationIDFromContext(ctx) == "" {
		ctx = logging.ContextWithNewCorrelationID(ctx)
	}
	log := logging.Ctx(ctx).With().Str("component", "seed").Logger()

	stats := &Stats{Entries: len(entries), StartTime: time.Now()}
	log.Info().Int("entries", len(entries)).Msg("Starting catalog seed")

	err := s.target.SeedTx(ctx, func(tx Tx) error {
		// Counters restart if the store retries the transaction.
		*stats = Stats{Entries: len(entries), StartTime: stats.StartTime}
		for i := range entries {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := seedEntry(ctx, tx, &entries[i], stats, log); err != nil {
				return &EntryError{Index: i, Err: err}
			}
		}
		return nil
	})
	stats.EndTime = time.Now()

	if err != nil {
		log.Error().Err(err).Dur("duration", stats.Duration()).Msg("Catalog seed rolled back")
		return stats, fmt.Errorf("seed catalog: %w", err)
	}

	metrics.RecordSeed("movie_added", stats.MoviesAdded)
	metrics.RecordSeed("movie_reused", stats.MoviesReused)
	metrics.RecordSeed("genre_created", stats.GenresCreated)
	metrics.RecordSeed("link_created", stats.LinksCreated)

	log.Info().
		Int("movies_added", stats.MoviesAdded).
		Int("movies_reused", stats.MoviesReused).
		Int("genres_created", stats.GenresCreated).
		Int("links_created", stats.LinksCreated).
		Dur("duration", stats.Duration()).
		Msg("Catalog seed completed")

	return stats, nil
}

func seedEntry(ctx context.Context, tx Tx, e *models.SeedEntry, stats *Stats, log zerolog.Logger) error {
	movieID, found, err := tx.FindMovie(ctx, e.Title, e.Year)
	if err != nil {
		return fmt.Errorf("find movie %q: %w", e.Title, err)
	}
	if found {
		stats.MoviesReused++
	} else {
		movieID, err = tx.InsertMovie(ctx, e.Movie())
		if err != nil {
			return fmt.Errorf("insert movie %q: %w", e.Title, err)
		}
		stats.MoviesAdded++
	}

	for _, name := range e.Genres {
		genreID, created, err := tx.GenreID(ctx, name)
		if err != nil {
			return fmt.Errorf("genre %q: %w", name, err)
		}
		if created {
			stats.GenresCreated++
		}

		linked, err := tx.LinkGenre(ctx, movieID, genreID)
		if err != nil {
			return fmt.Errorf("link %q to %q: %w", e.Title, name, err)
		}
		if linked {
			stats.LinksCreated++
		}
	}

	log.Debug().Str("title", e.Title).Int64("movie_id", movieID).Bool("reused", found).Msg("Seeded movie")
	return nil
}
