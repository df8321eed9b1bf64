// Reelpick - Genre-Filtered Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

/*
Package config provides centralized configuration management for Reelpick.

Configuration is built once at process start and handed to every component
by pointer. Nothing in the service reads settings from package-level state.

# Configuration Sources

Values are layered with Koanf v2, later layers overriding earlier ones:
  - Built-in defaults (defaultConfig)
  - An optional YAML file (CONFIG_PATH, ./config.yaml, /etc/reelpick/config.yaml)
  - Environment variables, through an explicit name mapping

# Environment Variables

HTTP Server (ServerConfig):
  - HTTP_HOST: Bind address (default: 0.0.0.0)
  - HTTP_PORT: Listen port (default: 8000)
  - HTTP_TIMEOUT: Read/write timeout (default: 30s)
  - ENVIRONMENT: development, staging or production (default: development)

API (APIConfig):
  - API_BASE_PATH: Prefix for all API routes, e.g. /api (default: empty)
  - DEFAULT_N: Recommendations returned when n is omitted (default: 10)
  - MAX_N: Upper clamp for n (default: 20)
  - SERVICE_VERSION: Version reported by /health (default: 0.1.0)
  - API_REQUEST_TIMEOUT: Per-request handler deadline (default: 10s)
  - GENRE_CACHE_TTL: Lifetime of the cached genre list, 0 disables (default: 5m)
  - RANDOM_SEED: Fixed sampling seed, 0 seeds from the clock (default: 0)

Database (DatabaseConfig):
  - DATABASE_DRIVER: duckdb, sqlite or postgres (default: duckdb)
  - DUCKDB_PATH: DuckDB file path (default: ./data/movies.duckdb)
  - DATABASE_URL: DSN for the sqlite and postgres drivers
  - DUCKDB_MAX_MEMORY: DuckDB memory limit (default: 512MB)
  - DUCKDB_THREADS: DuckDB worker threads, 0 uses NumCPU (default: 0)
  - SEED_FILE: JSON catalog to load at startup (default: none)
  - SEED_SAMPLE_DATA: Load the embedded sample catalog at startup (default: false)

Security (SecurityConfig):
  - CORS_ORIGINS: Comma-separated allowed origins (default: *)
  - RATE_LIMIT_REQUESTS: Requests per window per IP (default: 100)
  - RATE_LIMIT_WINDOW: Rate limit window (default: 1m)
  - DISABLE_RATE_LIMIT: Turn rate limiting off (default: false)

Logging (LoggingConfig):
  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: json or console (default: json)
  - LOG_CALLER: Include caller file:line (default: false)

# Usage

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}
	svc := recommend.NewService(catalog, &cfg.API)

# Thread Safety

Config is never mutated after Load returns and may be read from any goroutine.
*/
package config
