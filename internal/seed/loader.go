// Reelpick - Genre-Filtered Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

// Package seed loads movie catalogs into a store.
//
// A catalog is a JSON array of entries:
//
//	[{"title": "Inception", "year": 2010, "genres": ["Action", "Sci-Fi"],
//	  "overview": "...", "poster_url": "https://..."}]
//
// Only title is required. Seeding is idempotent: running the same catalog
// twice leaves the store unchanged the second time.
package seed

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"

	"github.com/tomtom215/reelpick/internal/models"
	"github.com/tomtom215/reelpick/internal/validation"
)

//go:embed sample_movies.json
var sampleCatalog []byte

// EntryError reports an invalid catalog entry.
type EntryError struct {
	Index int
	Err   error
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("entry %d: %v", e.Index, e.Err)
}

func (e *EntryError) Unwrap() error { return e.Err }

// Load decodes and validates a JSON catalog.
func Load(r io.Reader) ([]models.SeedEntry, error) {
	var entries []models.SeedEntry
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	for i := range entries {
		if err := validation.ValidateStruct(&entries[i]); err != nil {
			return nil, &EntryError{Index: i, Err: err}
		}
	}
	return entries, nil
}

// LoadFile reads a JSON catalog from path.
func LoadFile(path string) ([]models.SeedEntry, error) {
	f, err := os.Open(path) //nolint:gosec // operator-supplied path
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer func() { _ = f.Close() }()

	entries, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}

// Sample returns the built-in eight-title catalog.
func Sample() []models.SeedEntry {
	entries, err := Load(bytes.NewReader(sampleCatalog))
	if err != nil {
		panic(fmt.Sprintf("embedded sample catalog is invalid: %v", err))
	}
	return entries
}

// Collect gathers the configured sources in order: the sample catalog when
// sample is set, then the file at path when it is non-empty. It returns nil
// when neither is configured.
func Collect(path string, sample bool) ([]models.SeedEntry, error) {
	var entries []models.SeedEntry
	if sample {
		entries = append(entries, Sample()...)
	}
	if path != "" {
		fromFile, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		entries = append(entries, fromFile...)
	}
	return entries, nil
}
