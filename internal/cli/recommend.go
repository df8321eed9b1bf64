// Reelpick - Genre-Filtered Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

package cli

import (
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/reelpick/internal/config"
	"github.com/tomtom215/reelpick/internal/models"
	"github.com/tomtom215/reelpick/internal/recommend"
	"github.com/tomtom215/reelpick/internal/storage"
)

type recommendOptions struct {
	genre   string
	n       int
	yearMin int
	yearMax int
	seed    int64
}

// NewRecommendCommand creates the recommend command.
func NewRecommendCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &recommendOptions{}

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Print random recommendations for a genre as JSON",
		Long: `Print random recommendations for a genre as JSON, in the same shape
as GET /recommendations.

--n is clamped to [1, max_n]. Movies without a year are excluded whenever
--year-min or --year-max is given. A non-zero --seed makes the selection
repeatable.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q := recommend.Query{Genre: opts.genre}
			flags := cmd.Flags()
			// The sampler reads a zero seed as "seed from the clock".
			if flags.Changed("seed") && opts.seed == 0 {
				return NewExitError(ExitUsage, "--seed must be non-zero")
			}
			if flags.Changed("n") {
				q.N = &opts.n
			}
			if flags.Changed("year-min") {
				q.Years.Min = &opts.yearMin
			}
			if flags.Changed("year-max") {
				q.Years.Max = &opts.yearMax
			}

			return rootOpts.withStore(cmd.Context(), func(cfg *config.Config, st storage.Store) error {
				api := cfg.API
				api.GenreCacheTTL = 0
				if flags.Changed("seed") {
					api.RandomSeed = opts.seed
				}

				svc := recommend.NewService(st, &api)
				defer svc.Close()

				resp, err := svc.Recommend(cmd.Context(), q)
				if err != nil {
					return recommendError(q.Genre, err)
				}
				return writeJSON(cmd, resp)
			})
		},
	}

	cmd.Flags().StringVarP(&opts.genre, "genre", "g", "", "exact genre name (required)")
	cmd.Flags().IntVar(&opts.n, "n", 0, "number of movies (default: api.default_n)")
	cmd.Flags().IntVar(&opts.yearMin, "year-min", 0, "earliest release year, inclusive")
	cmd.Flags().IntVar(&opts.yearMax, "year-max", 0, "latest release year, inclusive")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "non-zero random seed (default: api.random_seed, 0 there means time-based)")
	_ = cmd.MarkFlagRequired("genre")

	return cmd
}

func recommendError(genre string, err error) error {
	if errors.Is(err, recommend.ErrCategoryNotFound) {
		return NewExitError(ExitUsage, fmt.Sprintf("Unknown genre: %s", genre))
	}
	return WrapExitError(ExitFailure, "recommend", err)
}

func writeJSON(cmd *cobra.Command, resp *models.RecommendationsResponse) error {
	out, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return err
}
