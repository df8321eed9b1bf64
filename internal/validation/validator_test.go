// Reelpick - Genre-Filtered Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

package validation

import (
	"strings"
	"sync"
	"testing"

	"github.com/tomtom215/reelpick/internal/models"
)

type testQuery struct {
	Genre string `query:"genre" validate:"required,notblank,max=10"`
	Limit int    `query:"n" validate:"gte=0,lte=100"`
}

func TestGetValidatorSingleton(t *testing.T) {
	var wg sync.WaitGroup
	results := make(chan interface{}, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- GetValidator()
		}()
	}
	wg.Wait()
	close(results)

	first := GetValidator()
	for v := range results {
		if v != first {
			t.Fatal("GetValidator() returned different instances")
		}
	}
}

func TestValidateStructValid(t *testing.T) {
	if err := ValidateStruct(&testQuery{Genre: "Drama", Limit: 5}); err != nil {
		t.Errorf("ValidateStruct() = %v, want nil", err)
	}
}

func TestValidateStructMessages(t *testing.T) {
	tests := []struct {
		name      string
		input     testQuery
		wantField string
		wantTag   string
		wantMsg   string
	}{
		{"missing genre", testQuery{}, "genre", "required", "genre is required"},
		{"blank genre", testQuery{Genre: "   "}, "genre", "notblank", "genre must not be blank"},
		{"long genre", testQuery{Genre: "Documentary"}, "genre", "max", "genre must be at most 10 characters"},
		{"limit too large", testQuery{Genre: "Drama", Limit: 101}, "n", "lte", "n must be less than or equal to 100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.input)
			if err == nil {
				t.Fatal("ValidateStruct() = nil, want error")
			}
			errs := err.Errors()
			if len(errs) != 1 {
				t.Fatalf("expected 1 error, got %d: %v", len(errs), err)
			}
			if errs[0].Field() != tt.wantField {
				t.Errorf("Field() = %q, want %q", errs[0].Field(), tt.wantField)
			}
			if errs[0].Tag() != tt.wantTag {
				t.Errorf("Tag() = %q, want %q", errs[0].Tag(), tt.wantTag)
			}
			if errs[0].Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", errs[0].Error(), tt.wantMsg)
			}
		})
	}
}

func TestToAPIErrorSingle(t *testing.T) {
	apiErr := ValidateStruct(&testQuery{}).ToAPIError()

	if apiErr.Code != CodeValidationError {
		t.Errorf("Code = %q, want %q", apiErr.Code, CodeValidationError)
	}
	details, ok := apiErr.Details.(map[string]interface{})
	if !ok || details["field"] != "genre" {
		t.Errorf("Details = %v, want field=genre", apiErr.Details)
	}
}

func TestToAPIErrorMultiple(t *testing.T) {
	apiErr := ValidateStruct(&testQuery{Limit: -1}).ToAPIError()

	if !strings.Contains(apiErr.Message, "genre is required") || !strings.Contains(apiErr.Message, "n must be") {
		t.Errorf("Message = %q, want both field messages", apiErr.Message)
	}
	details, ok := apiErr.Details.(map[string]interface{})
	if !ok {
		t.Fatalf("Details type = %T", apiErr.Details)
	}
	if fields, ok := details["fields"].([]map[string]interface{}); !ok || len(fields) != 2 {
		t.Errorf("fields = %v, want 2 entries", details["fields"])
	}
}

func TestNewFieldError(t *testing.T) {
	err := NewFieldError("year_min", "int", "abc", "year_min must be an integer")

	if err.Error() != "year_min must be an integer" {
		t.Errorf("Error() = %q", err.Error())
	}
	if apiErr := err.ToAPIError(); apiErr.Code != CodeValidationError {
		t.Errorf("Code = %q, want %q", apiErr.Code, CodeValidationError)
	}
}

func TestValidateSeedEntry(t *testing.T) {
	valid := models.SeedEntry{Title: "Inception", Genres: []string{"Action", "Sci-Fi"}}
	if err := ValidateStruct(&valid); err != nil {
		t.Errorf("valid entry rejected: %v", err)
	}

	noTitle := models.SeedEntry{Genres: []string{"Action"}}
	if err := ValidateStruct(&noTitle); err == nil || err.Errors()[0].Field() != "title" {
		t.Errorf("expected title error, got %v", err)
	}

	emptyGenre := models.SeedEntry{Title: "Heat", Genres: []string{"Crime", ""}}
	err := ValidateStruct(&emptyGenre)
	if err == nil {
		t.Fatal("expected error for empty genre name")
	}
	if field := err.Errors()[0].Field(); field != "genres[1]" {
		t.Errorf("Field() = %q, want genres[1]", field)
	}
}
