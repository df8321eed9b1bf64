// Reelpick - Genre-Filtered Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/reelpick/internal/logging"
	"github.com/tomtom215/reelpick/internal/models"
	"github.com/tomtom215/reelpick/internal/seed"
)

// SeedTx runs fn in one DuckDB transaction.
func (db *DB) SeedTx(ctx context.Context, fn func(tx seed.Tx) error) (err error) {
	defer func(start time.Time) { observe("seed", start, err) }(time.Now())

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(&seedTx{tx: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			logging.Warn().Err(rbErr).Msg("Failed to roll back seed transaction")
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed transaction: %w", err)
	}
	return nil
}

type seedTx struct {
	tx *sql.Tx
}

func (s *seedTx) GenreID(ctx context.Context, name string) (int64, bool, error) {
	var id int64
	err := s.tx.QueryRowContext(ctx, `SELECT id FROM genre WHERE name = ?`, name).Scan(&id)
	if err == nil {
		return id, false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, false, err
	}

	if err := s.tx.QueryRowContext(ctx, `INSERT INTO genre (name) VALUES (?) RETURNING id`, name).Scan(&id); err != nil {
		return 0, false, err
	}
	return id, true, nil
}

func (s *seedTx) FindMovie(ctx context.Context, title string, year *int) (int64, bool, error) {
	var id int64
	err := s.tx.QueryRowContext(ctx,
		`SELECT id FROM movie WHERE title = ? AND year IS NOT DISTINCT FROM ? ORDER BY id LIMIT 1`,
		title, nullableInt(year),
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}

func (s *seedTx) InsertMovie(ctx context.Context, m models.Movie) (int64, error) {
	var id int64
	err := s.tx.QueryRowContext(ctx,
		`INSERT INTO movie (title, year, overview, poster_url) VALUES (?, ?, ?, ?) RETURNING id`,
		m.Title, nullableInt(m.Year), nullableString(m.Overview), nullableString(m.PosterURL),
	).Scan(&id)
	return id, err
}

func (s *seedTx) LinkGenre(ctx context.Context, movieID, genreID int64) (bool, error) {
	var exists bool
	err := s.tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM movie_genre WHERE movie_id = ? AND genre_id = ?)`,
		movieID, genreID,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	if _, err := s.tx.ExecContext(ctx,
		`INSERT INTO movie_genre (movie_id, genre_id) VALUES (?, ?)`,
		movieID, genreID,
	); err != nil {
		return false, err
	}
	return true, nil
}
