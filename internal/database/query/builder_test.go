// Reelpick - Genre-Filtered Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

package query

import (
	"testing"
)

func intPtr(v int) *int { return &v }

func TestWhereBuilder_Empty(t *testing.T) {
	wb := NewWhereBuilder()

	whereClause, args := wb.Build()
	if whereClause != "1=1" {
		t.Errorf("Expected '1=1' for empty builder, got %q", whereClause)
	}
	if len(args) != 0 {
		t.Errorf("Expected 0 args, got %d", len(args))
	}
}

func TestWhereBuilder_AddYearRange(t *testing.T) {
	tests := []struct {
		name      string
		min, max  *int
		wantWhere string
		wantArgs  []interface{}
	}{
		{"both bounds", intPtr(2000), intPtr(2015), "m.year >= ? AND m.year <= ?", []interface{}{2000, 2015}},
		{"min only", intPtr(1990), nil, "m.year >= ?", []interface{}{1990}},
		{"max only", nil, intPtr(1999), "m.year <= ?", []interface{}{1999}},
		{"unbounded", nil, nil, "1=1", []interface{}{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			whereClause, args := NewWhereBuilder().AddYearRange("m.year", tt.min, tt.max).Build()
			if whereClause != tt.wantWhere {
				t.Errorf("Build() = %q, want %q", whereClause, tt.wantWhere)
			}
			if len(args) != len(tt.wantArgs) {
				t.Fatalf("args = %v, want %v", args, tt.wantArgs)
			}
			for i := range args {
				if args[i] != tt.wantArgs[i] {
					t.Errorf("args[%d] = %v, want %v", i, args[i], tt.wantArgs[i])
				}
			}
		})
	}
}

func TestWhereBuilder_AddIDs(t *testing.T) {
	whereClause, args := NewWhereBuilder().AddIDs("mg.movie_id", []int64{3, 7, 9}).Build()

	if whereClause != "mg.movie_id IN (?, ?, ?)" {
		t.Errorf("Build() = %q", whereClause)
	}
	if len(args) != 3 || args[1] != int64(7) {
		t.Errorf("args = %v", args)
	}
}

func TestWhereBuilder_AddIDsEmptyMatchesNothing(t *testing.T) {
	whereClause, args := NewWhereBuilder().AddIDs("mg.movie_id", nil).Build()

	if whereClause != "1=0" {
		t.Errorf("Build() = %q, want 1=0", whereClause)
	}
	if len(args) != 0 {
		t.Errorf("args = %v, want none", args)
	}
}

func TestWhereBuilder_Chaining(t *testing.T) {
	wb := NewWhereBuilder().
		AddClause("mg.genre_id = ?", int64(4)).
		AddYearRange("m.year", intPtr(2000), nil)

	whereClause, args := wb.BuildWithPrefix()
	if whereClause != "WHERE mg.genre_id = ? AND m.year >= ?" {
		t.Errorf("BuildWithPrefix() = %q", whereClause)
	}
	if len(args) != 2 {
		t.Errorf("args = %v, want 2", args)
	}
}
