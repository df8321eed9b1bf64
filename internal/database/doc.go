// Reelpick - Genre-Filtered Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

// Package database stores the movie catalog in DuckDB.
//
// # Overview
//
// DB owns a database/sql pool opened through the duckdb-go driver. It
// satisfies recommend.Catalog by handing out a Session per request, each
// bound to one pooled connection, and seed.Target by running catalog
// loads inside a single transaction.
//
// # Files
//
//   - database.go: open, initialize, close
//   - database_connection.go: pool tuning, sessions, connection error detection
//   - database_schema.go: movie, genre and movie_genre tables
//   - migrations.go: versioned index migrations tracked in schema_migrations
//   - catalog.go: read queries behind recommend.Session
//   - seed_target.go: idempotent writes behind seed.Tx
//   - database_utils.go: profiling, timeouts, checkpoint, row counts
//
// # Query Building
//
// Filters are assembled with query.WhereBuilder so every value is bound as
// a parameter. Year bounds compare with >= and <=, so movies with a NULL
// year drop out whenever a bound is present.
//
// # Metrics
//
// Every catalog query reports duration and failures through
// metrics.RecordDBQuery with backend label "duckdb".
package database
