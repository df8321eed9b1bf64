// Reelpick - Genre-Filtered Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

package relational

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/trace"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/tomtom215/reelpick/internal/config"
	"github.com/tomtom215/reelpick/internal/logging"
	"github.com/tomtom215/reelpick/internal/metrics"
)

// TracerName identifies spans created by this package.
const TracerName = "github.com/tomtom215/reelpick/internal/database/relational"

// ErrClosed is returned by operations on a closed Store.
var ErrClosed = errors.New("relational store is closed")

// Store is a gorm-backed catalog.
type Store struct {
	db      *gorm.DB
	sqlDB   *sql.DB
	backend string

	mu     sync.Mutex
	closed bool
}

// Option configures Open.
type Option func(*options)

type options struct {
	tracerProvider trace.TracerProvider
	logLevel       gormlogger.LogLevel
	slowThreshold  time.Duration
}

// WithTracerProvider adds a span around every gorm statement.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) {
		o.tracerProvider = tp
	}
}

// WithLogLevel sets the gorm log level. Info logs every statement at debug.
func WithLogLevel(level gormlogger.LogLevel) Option {
	return func(o *options) {
		o.logLevel = level
	}
}

// WithSlowThreshold sets the duration above which statements log as slow.
// Zero disables slow statement logging.
func WithSlowThreshold(d time.Duration) Option {
	return func(o *options) {
		o.slowThreshold = d
	}
}

// Open connects to the configured SQLite or PostgreSQL database and
// migrates the catalog schema.
func Open(cfg *config.DatabaseConfig, opts ...Option) (*Store, error) {
	o := options{
		logLevel:      gormlogger.Warn,
		slowThreshold: DefaultSlowThreshold,
	}
	for _, opt := range opts {
		opt(&o)
	}

	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 newGormLogger(o.logLevel, o.slowThreshold),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	configurePool(sqlDB, cfg)

	if o.tracerProvider != nil {
		if err := registerTracing(db, o.tracerProvider.Tracer(TracerName), cfg.Driver); err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("failed to register tracing callbacks: %w", err)
		}
	}

	if err := db.AutoMigrate(&movieRow{}, &genreRow{}, &movieGenreRow{}); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	logging.Info().
		Str("driver", cfg.Driver).
		Msg("Relational catalog store ready")

	return &Store{db: db, sqlDB: sqlDB, backend: cfg.Driver}, nil
}

func dialectorFor(cfg *config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		return sqlite.Open(cfg.DSN), nil
	case config.DriverPostgres:
		return postgres.Open(cfg.DSN), nil
	default:
		return nil, fmt.Errorf("unsupported relational driver %q", cfg.Driver)
	}
}

func configurePool(sqlDB *sql.DB, cfg *config.DatabaseConfig) {
	if cfg.Driver == config.DriverSQLite && isMemoryDSN(cfg.DSN) {
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetConnMaxLifetime(0)
		return
	}
	sqlDB.SetMaxOpenConns(16)
	sqlDB.SetMaxIdleConns(4)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)
}

// isMemoryDSN reports whether an SQLite DSN names a private in-memory
// database. Shared-cache memory URIs can use a normal pool.
func isMemoryDSN(dsn string) bool {
	if strings.Contains(dsn, "cache=shared") {
		return false
	}
	return dsn == ":memory:" || strings.Contains(dsn, "mode=memory")
}

// Backend returns the driver name used in metric labels.
func (s *Store) Backend() string {
	return s.backend
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if s.isClosed() {
		return ErrClosed
	}
	return s.sqlDB.PingContext(ctx)
}

// Close releases the pool. Safe to call more than once.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.sqlDB.Close()
}

func (s *Store) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Counts holds catalog row totals.
type Counts struct {
	Movies int64 `json:"movies"`
	Genres int64 `json:"genres"`
	Links  int64 `json:"links"`
}

// Counts returns the number of movies, genres and links.
func (s *Store) Counts(ctx context.Context) (Counts, error) {
	var c Counts
	db := s.db.WithContext(ctx)
	if err := db.Model(&movieRow{}).Count(&c.Movies).Error; err != nil {
		return c, fmt.Errorf("failed to count movies: %w", err)
	}
	if err := db.Model(&genreRow{}).Count(&c.Genres).Error; err != nil {
		return c, fmt.Errorf("failed to count genres: %w", err)
	}
	if err := db.Model(&movieGenreRow{}).Count(&c.Links).Error; err != nil {
		return c, fmt.Errorf("failed to count links: %w", err)
	}
	return c, nil
}

func (s *Store) observe(op string, start time.Time, err error) {
	metrics.RecordDBQuery(op, s.backend, time.Since(start), err)
}
