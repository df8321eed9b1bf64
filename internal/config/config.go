// Reelpick - Genre-Filtered Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration loaded from defaults, an optional
// config file and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in defaults for every setting
//  2. Config File: Optional YAML config file
//  3. Environment Variables: Override any setting
//
// Config is immutable after Load() and safe for concurrent read access.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	API      APIConfig      `koanf:"api"`
	Database DatabaseConfig `koanf:"database"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"` // "development", "staging", "production"
}

// Addr returns the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// APIConfig holds the request-facing recommendation settings.
type APIConfig struct {
	// BasePath prefixes every API route. Empty mounts routes at the root.
	BasePath string `koanf:"base_path"`

	// DefaultN is used when a request omits n.
	DefaultN int `koanf:"default_n"`

	// MaxN is the inclusive upper bound n is clamped to.
	MaxN int `koanf:"max_n"`

	// ServiceVersion is reported by the health endpoint.
	ServiceVersion string `koanf:"service_version"`

	RequestTimeout time.Duration `koanf:"request_timeout"`

	// GenreCacheTTL controls how long the sorted genre list is served from
	// memory. Zero disables the cache.
	GenreCacheTTL time.Duration `koanf:"genre_cache_ttl"`

	// RandomSeed fixes the sampling entropy source. Zero seeds from the clock.
	RandomSeed int64 `koanf:"random_seed"`
}

// Supported storage drivers.
const (
	DriverDuckDB   = "duckdb"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// DatabaseConfig selects and tunes the catalog store.
type DatabaseConfig struct {
	Driver    string `koanf:"driver"`
	Path      string `koanf:"path"`       // DuckDB file, ":memory:" for an in-process store
	DSN       string `koanf:"dsn"`        // sqlite file/URI or postgres connection string
	MaxMemory string `koanf:"max_memory"` // DuckDB only
	Threads   int    `koanf:"threads"`    // DuckDB only, 0 = use NumCPU

	SeedFile       string `koanf:"seed_file"`        // JSON catalog loaded at startup
	SeedSampleData bool   `koanf:"seed_sample_data"` // load the embedded sample catalog at startup
}

// UsesGorm reports whether the configured driver is served by the gorm store.
func (d DatabaseConfig) UsesGorm() bool {
	return d.Driver == DriverSQLite || d.Driver == DriverPostgres
}

// SecurityConfig holds cross-origin and rate limit settings
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logging configuration.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller file:line (default: false)
type LoggingConfig struct {
	// Level is the minimum log level.
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// Load reads configuration from all sources in order of precedence:
//  1. Built-in defaults
//  2. Config file (if found)
//  3. Environment variables
//
// See LoadWithKoanf() for the underlying implementation.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
