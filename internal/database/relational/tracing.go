// Reelpick - Genre-Filtered Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

package relational

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

const gormSpanKey = "reelpick:gorm:span"

// registerTracing wraps query, create, row and raw statements in spans.
func registerTracing(db *gorm.DB, tracer trace.Tracer, system string) error {
	cb := db.Callback()

	if err := cb.Query().Before("gorm:query").Register("reelpick:before_query", startSpan(tracer, system, "db.query")); err != nil {
		return err
	}
	if err := cb.Query().After("gorm:query").Register("reelpick:after_query", endSpan("SELECT")); err != nil {
		return err
	}
	if err := cb.Create().Before("gorm:create").Register("reelpick:before_create", startSpan(tracer, system, "db.create")); err != nil {
		return err
	}
	if err := cb.Create().After("gorm:create").Register("reelpick:after_create", endSpan("INSERT")); err != nil {
		return err
	}
	if err := cb.Row().Before("gorm:row").Register("reelpick:before_row", startSpan(tracer, system, "db.row")); err != nil {
		return err
	}
	if err := cb.Row().After("gorm:row").Register("reelpick:after_row", endSpan("ROW")); err != nil {
		return err
	}
	if err := cb.Raw().Before("gorm:raw").Register("reelpick:before_raw", startSpan(tracer, system, "db.raw")); err != nil {
		return err
	}
	return cb.Raw().After("gorm:raw").Register("reelpick:after_raw", endSpan("RAW"))
}

func startSpan(tracer trace.Tracer, system, name string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		ctx := db.Statement.Context
		if ctx == nil {
			ctx = context.Background()
		}
		ctx, span := tracer.Start(ctx, name, trace.WithAttributes(
			attribute.String("db.system", system),
		))
		db.Statement.Context = ctx
		db.InstanceSet(gormSpanKey, span)
	}
}

func endSpan(operation string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		v, ok := db.InstanceGet(gormSpanKey)
		if !ok {
			return
		}
		span, ok := v.(trace.Span)
		if !ok {
			return
		}
		defer span.End()

		span.SetAttributes(
			attribute.String("db.operation", operation),
			attribute.Int64("db.rows_affected", db.RowsAffected),
		)
		if db.Statement.Table != "" {
			span.SetAttributes(attribute.String("db.sql.table", db.Statement.Table))
		}
		if db.Error != nil {
			span.RecordError(db.Error)
			span.SetStatus(codes.Error, db.Error.Error())
		}
	}
}
