// Reelpick - Genre-Filtered Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

package query

import (
	"fmt"
	"strings"
)

// WhereBuilder constructs SQL WHERE clauses with parameterized arguments.
//
// Example usage:
//
//	wb := query.NewWhereBuilder()
//	wb.AddClause("mg.genre_id = ?", genreID)
//	wb.AddYearRange("m.year", yearMin, yearMax)
//	whereClause, args := wb.Build()
//	// mg.genre_id = ? AND m.year >= ? AND m.year <= ?
type WhereBuilder struct {
	clauses []string
	args    []interface{}
}

// NewWhereBuilder creates a new WhereBuilder instance.
func NewWhereBuilder() *WhereBuilder {
	return &WhereBuilder{
		clauses: []string{},
		args:    []interface{}{},
	}
}

// AddClause adds a raw WHERE clause with its arguments.
func (wb *WhereBuilder) AddClause(clause string, args ...interface{}) *WhereBuilder {
	wb.clauses = append(wb.clauses, clause)
	wb.args = append(wb.args, args...)
	return wb
}

// AddYearRange adds inclusive lower and/or upper bounds on column.
// Nil bounds are skipped. Rows whose column is NULL fail any bound that is
// present, following SQL comparison semantics.
func (wb *WhereBuilder) AddYearRange(column string, yearMin, yearMax *int) *WhereBuilder {
	if yearMin != nil {
		wb.clauses = append(wb.clauses, column+" >= ?")
		wb.args = append(wb.args, *yearMin)
	}
	if yearMax != nil {
		wb.clauses = append(wb.clauses, column+" <= ?")
		wb.args = append(wb.args, *yearMax)
	}
	return wb
}

// AddIDs adds "column IN (?, ?, ...)". An empty slice adds a clause that
// matches nothing.
func (wb *WhereBuilder) AddIDs(column string, ids []int64) *WhereBuilder {
	if len(ids) == 0 {
		wb.clauses = append(wb.clauses, "1=0")
		return wb
	}
	placeholders := make([]string, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		wb.args = append(wb.args, id)
	}
	wb.clauses = append(wb.clauses, fmt.Sprintf("%s IN (%s)", column, strings.Join(placeholders, ", ")))
	return wb
}

// Build constructs the final WHERE clause and returns it with arguments.
// Clauses are joined with "AND". Returns ("1=1", []) if no clauses were added.
func (wb *WhereBuilder) Build() (string, []interface{}) {
	if len(wb.clauses) == 0 {
		return "1=1", []interface{}{}
	}
	return strings.Join(wb.clauses, " AND "), wb.args
}

// BuildWithPrefix returns the WHERE clause with "WHERE " prefix.
func (wb *WhereBuilder) BuildWithPrefix() (string, []interface{}) {
	whereClause, args := wb.Build()
	return "WHERE " + whereClause, args
}
