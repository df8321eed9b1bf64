// Reelpick - Genre-Filtered Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tomtom215/reelpick/internal/config"
	"github.com/tomtom215/reelpick/internal/seed"
	"github.com/tomtom215/reelpick/internal/storage"
)

type seedOptions struct {
	file   string
	sample bool
}

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &seedOptions{}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load movies into the catalog",
		Long: `Load the built-in sample catalog and/or a JSON catalog file.

Seeding runs in a single transaction and is idempotent: movies are matched
by title and year, genres by exact name, and only missing rows are added.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.file == "" && !opts.sample {
				return NewExitError(ExitUsage, "nothing to seed: pass --file or --sample")
			}

			entries, err := seed.Collect(opts.file, opts.sample)
			if err != nil {
				return WrapExitError(ExitUsage, "load catalog", err)
			}

			return rootOpts.withStore(cmd.Context(), func(_ *config.Config, st storage.Store) error {
				stats, err := seed.NewSeeder(st).Run(cmd.Context(), entries)
				if err != nil {
					var entryErr *seed.EntryError
					if errors.As(err, &entryErr) {
						return WrapExitError(ExitUsage, "invalid catalog entry", err)
					}
					return WrapExitError(ExitFailure, "seed catalog", err)
				}

				_, err = fmt.Fprintf(cmd.OutOrStdout(),
					"entries: %d, movies added: %d, movies reused: %d, genres created: %d, links created: %d\n",
					stats.Entries, stats.MoviesAdded, stats.MoviesReused, stats.GenresCreated, stats.LinksCreated)
				return err
			})
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "JSON catalog file")
	cmd.Flags().BoolVar(&opts.sample, "sample", false, "load the built-in sample catalog")

	return cmd
}
