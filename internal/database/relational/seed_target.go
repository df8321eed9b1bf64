// Reelpick - Genre-Filtered Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

package relational

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tomtom215/reelpick/internal/models"
	"github.com/tomtom215/reelpick/internal/seed"
)

// SeedTx runs fn in one gorm transaction.
func (s *Store) SeedTx(ctx context.Context, fn func(tx seed.Tx) error) (err error) {
	if s.isClosed() {
		return ErrClosed
	}
	defer func(start time.Time) { s.observe("seed", start, err) }(time.Now())

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&seedTx{db: tx})
	})
}

type seedTx struct {
	db *gorm.DB
}

func (s *seedTx) GenreID(ctx context.Context, name string) (int64, bool, error) {
	var rows []genreRow
	if err := s.db.WithContext(ctx).Where("name = ?", name).Limit(1).Find(&rows).Error; err != nil {
		return 0, false, err
	}
	if len(rows) > 0 {
		return rows[0].ID, false, nil
	}

	g := genreRow{Name: name}
	if err := s.db.WithContext(ctx).Create(&g).Error; err != nil {
		return 0, false, err
	}
	return g.ID, true, nil
}

func (s *seedTx) FindMovie(ctx context.Context, title string, year *int) (int64, bool, error) {
	q := s.db.WithContext(ctx).Where("title = ?", title)
	if year == nil {
		q = q.Where("year IS NULL")
	} else {
		q = q.Where("year = ?", *year)
	}

	var rows []movieRow
	if err := q.Order("id").Limit(1).Find(&rows).Error; err != nil {
		return 0, false, err
	}
	if len(rows) == 0 {
		return 0, false, nil
	}
	return rows[0].ID, true, nil
}

func (s *seedTx) InsertMovie(ctx context.Context, m models.Movie) (int64, error) {
	row := movieRow{
		Title:     m.Title,
		Year:      m.Year,
		Overview:  m.Overview,
		PosterURL: m.PosterURL,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return 0, err
	}
	return row.ID, nil
}

func (s *seedTx) LinkGenre(ctx context.Context, movieID, genreID int64) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&movieGenreRow{}).
		Where("movie_id = ? AND genre_id = ?", movieID, genreID).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}

	link := movieGenreRow{MovieID: movieID, GenreID: genreID}
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(&link).Error; err != nil {
		return false, err
	}
	return true, nil
}
