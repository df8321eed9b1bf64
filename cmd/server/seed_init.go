// Reelpick - Genre-Filtered Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

package main

import (
	"context"
	"fmt"

	"github.com/tomtom215/reelpick/internal/config"
	"github.com/tomtom215/reelpick/internal/logging"
	"github.com/tomtom215/reelpick/internal/seed"
)

// seedOnStartup loads SEED_SAMPLE_DATA and SEED_FILE into target. It is a
// no-op when neither is set.
func seedOnStartup(ctx context.Context, cfg *config.Config, target seed.Target) error {
	entries, err := seed.Collect(cfg.Database.SeedFile, cfg.Database.SeedSampleData)
	if err != nil {
		return fmt.Errorf("load seed catalog: %w", err)
	}
	if len(entries) == 0 {
		logging.Debug().Msg("No seed catalog configured")
		return nil
	}

	stats, err := seed.NewSeeder(target).Run(ctx, entries)
	if err != nil {
		return err
	}
	if !stats.Changed() {
		logging.Info().Int("entries", stats.Entries).Msg("Catalog already up to date")
	}
	return nil
}
