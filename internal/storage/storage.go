// Reelpick - Genre-Filtered Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

// Package storage opens the catalog store selected by database.driver.
package storage

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/trace"
	gormlogger "gorm.io/gorm/logger"

	"github.com/tomtom215/reelpick/internal/config"
	"github.com/tomtom215/reelpick/internal/database"
	"github.com/tomtom215/reelpick/internal/database/relational"
	"github.com/tomtom215/reelpick/internal/recommend"
	"github.com/tomtom215/reelpick/internal/seed"
)

// Store is what the server and CLI need from a catalog backend.
type Store interface {
	recommend.Catalog
	seed.Target
	Ping(ctx context.Context) error
	Close() error
}

// Options tune Open. The zero value is usable.
type Options struct {
	// TracerProvider enables statement spans on the gorm backends.
	TracerProvider trace.TracerProvider

	// Verbose logs every gorm statement at debug level.
	Verbose bool
}

// Open returns the configured store and its backend label.
func Open(cfg *config.DatabaseConfig, opts Options) (Store, string, error) {
	switch {
	case cfg.Driver == config.DriverDuckDB || cfg.Driver == "":
		db, err := database.New(cfg)
		if err != nil {
			return nil, "", err
		}
		return db, database.Backend, nil

	case cfg.UsesGorm():
		var ropts []relational.Option
		if opts.TracerProvider != nil {
			ropts = append(ropts, relational.WithTracerProvider(opts.TracerProvider))
		}
		if opts.Verbose {
			ropts = append(ropts, relational.WithLogLevel(gormlogger.Info))
		}
		st, err := relational.Open(cfg, ropts...)
		if err != nil {
			return nil, "", err
		}
		return st, st.Backend(), nil

	default:
		return nil, "", fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}
