// Reelpick - Genre-Filtered Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

package relational

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/tomtom215/reelpick/internal/logging"
)

// DefaultSlowThreshold marks statements logged as slow.
const DefaultSlowThreshold = 200 * time.Millisecond

// zerologGorm routes gorm's logger through zerolog, picking up request and
// correlation IDs from the statement context.
type zerologGorm struct {
	level gormlogger.LogLevel
	slow  time.Duration
}

func newGormLogger(level gormlogger.LogLevel, slow time.Duration) gormlogger.Interface {
	return &zerologGorm{level: level, slow: slow}
}

func (l *zerologGorm) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	c := *l
	c.level = level
	return &c
}

func (l *zerologGorm) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.level >= gormlogger.Info {
		logging.Ctx(ctx).Info().Str("component", "gorm").Msg(fmt.Sprintf(msg, data...))
	}
}

func (l *zerologGorm) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.level >= gormlogger.Warn {
		logging.Ctx(ctx).Warn().Str("component", "gorm").Msg(fmt.Sprintf(msg, data...))
	}
}

func (l *zerologGorm) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.level >= gormlogger.Error {
		logging.Ctx(ctx).Error().Str("component", "gorm").Msg(fmt.Sprintf(msg, data...))
	}
}

func (l *zerologGorm) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	switch {
	case err != nil && l.level >= gormlogger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		logging.Ctx(ctx).Error().Err(err).
			Str("component", "gorm").
			Str("sql", sql).
			Int64("rows", rows).
			Dur("elapsed", elapsed).
			Msg("Statement failed")
	case l.slow > 0 && elapsed > l.slow && l.level >= gormlogger.Warn:
		sql, rows := fc()
		logging.Ctx(ctx).Warn().
			Str("component", "gorm").
			Str("sql", sql).
			Int64("rows", rows).
			Dur("elapsed", elapsed).
			Dur("threshold", l.slow).
			Msg("Slow statement")
	case l.level >= gormlogger.Info:
		sql, rows := fc()
		logging.Ctx(ctx).Debug().
			Str("component", "gorm").
			Str("sql", sql).
			Int64("rows", rows).
			Dur("elapsed", elapsed).
			Msg("Statement")
	}
}
