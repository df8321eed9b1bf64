// Reelpick - Genre-Filtered Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

// Package relational stores the movie catalog in SQLite or PostgreSQL
// through gorm.
//
// Store implements the same recommend.Catalog and seed.Target contracts as
// the DuckDB store, so the driver setting alone decides which backend
// serves requests. The schema is created with gorm AutoMigrate from the
// row types in models.go.
//
// Each Session pins one pooled connection for the lifetime of a request.
// An in-memory SQLite DSN is limited to a single connection, since every
// SQLite connection to ":memory:" opens a separate database.
//
// Query filters are built with query.WhereBuilder, the same builder the
// DuckDB store uses, and gorm rewrites the placeholders per dialect.
package relational
