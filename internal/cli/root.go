// Reelpick - Genre-Filtered Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

// Package cli implements reelctl, the operator command line for the
// movie catalog.
//
//	reelctl seed --sample
//	reelctl seed --file catalog.json
//	reelctl genres
//	reelctl recommend --genre Drama --n 3 --year-min 1990
//
// Commands read the same configuration as the server (config file plus
// environment) and talk to the store directly.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tomtom215/reelpick/internal/config"
	"github.com/tomtom215/reelpick/internal/logging"
	"github.com/tomtom215/reelpick/internal/storage"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	Verbose    bool
}

// NewRootCommand creates the reelctl root command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "reelctl",
		Short:         "Manage and query the Reelpick movie catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := "warn"
			if opts.Verbose {
				level = "debug"
			}
			// Logs go to stderr so command output stays parseable.
			logging.Init(logging.Config{
				Level:  level,
				Format: "console",
				Output: cmd.ErrOrStderr(),
			})
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "config file (default: CONFIG_PATH or ./config.yaml)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose logging on stderr")

	cmd.AddCommand(NewSeedCommand(opts))
	cmd.AddCommand(NewGenresCommand(opts))
	cmd.AddCommand(NewRecommendCommand(opts))

	return cmd
}

func (o *RootOptions) loadConfig() (*config.Config, error) {
	if o.ConfigPath != "" {
		return config.LoadFromPath(o.ConfigPath)
	}
	return config.Load()
}

// withStore loads configuration, opens the store, and closes it after fn.
func (o *RootOptions) withStore(ctx context.Context, fn func(cfg *config.Config, st storage.Store) error) error {
	cfg, err := o.loadConfig()
	if err != nil {
		return WrapExitError(ExitUsage, "invalid configuration", err)
	}

	st, _, err := storage.Open(&cfg.Database, storage.Options{Verbose: o.Verbose})
	if err != nil {
		return WrapExitError(ExitFailure, fmt.Sprintf("open %s store", cfg.Database.Driver), err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logging.Warn().Err(cerr).Msg("Error closing catalog store")
		}
	}()

	return fn(cfg, st)
}
