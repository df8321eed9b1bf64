// Reelpick - Genre-Filtered Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

/*
database_schema.go - Catalog Schema

Tables:
  - movie: one row per film; year, overview and poster_url may be NULL
  - genre: one row per genre, names unique and case-sensitive
  - movie_genre: many-to-many link, each (movie_id, genre_id) pair at most once

Identifiers come from sequences so inserts can use RETURNING id.
Indexes are applied as versioned migrations in migrations.go.
*/

//nolint:staticcheck // File documentation, not package doc
package database

import (
	"context"
	"fmt"
	"time"
)

// schemaContext returns a context with timeout for schema operations
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// createTables creates the catalog tables
func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range db.getTableCreationQueries() {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute schema query: %s: %w", query, err)
		}
	}
	return nil
}

func (db *DB) getTableCreationQueries() []string {
	return []string{
		`CREATE SEQUENCE IF NOT EXISTS movie_id_seq START 1;`,
		`CREATE SEQUENCE IF NOT EXISTS genre_id_seq START 1;`,

		`CREATE TABLE IF NOT EXISTS movie (
			id BIGINT PRIMARY KEY DEFAULT nextval('movie_id_seq'),
			title TEXT NOT NULL,
			year INTEGER,
			overview TEXT,
			poster_url TEXT
		);`,

		`CREATE TABLE IF NOT EXISTS genre (
			id BIGINT PRIMARY KEY DEFAULT nextval('genre_id_seq'),
			name TEXT NOT NULL UNIQUE
		);`,

		`CREATE TABLE IF NOT EXISTS movie_genre (
			movie_id BIGINT NOT NULL REFERENCES movie(id),
			genre_id BIGINT NOT NULL REFERENCES genre(id),
			PRIMARY KEY (movie_id, genre_id)
		);`,
	}
}
