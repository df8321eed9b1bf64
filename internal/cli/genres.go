// Reelpick - Genre-Filtered Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tomtom215/reelpick/internal/config"
	"github.com/tomtom215/reelpick/internal/recommend"
	"github.com/tomtom215/reelpick/internal/storage"
)

// NewGenresCommand creates the genres command.
func NewGenresCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "genres",
		Short: "List genre names, one per line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withStore(cmd.Context(), func(cfg *config.Config, st storage.Store) error {
				api := cfg.API
				api.GenreCacheTTL = 0

				svc := recommend.NewService(st, &api)
				defer svc.Close()

				names, err := svc.Genres(cmd.Context())
				if err != nil {
					return WrapExitError(ExitFailure, "list genres", err)
				}
				for _, name := range names {
					if _, err := fmt.Fprintln(cmd.OutOrStdout(), name); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}
