// Reelpick - Genre-Filtered Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

package recommend

import (
	"errors"
	"fmt"
)

var (
	// ErrCategoryNotFound is returned when no genre has the requested name.
	ErrCategoryNotFound = errors.New("genre not found")

	// ErrStoreUnavailable is returned when the catalog store cannot serve a read.
	ErrStoreUnavailable = errors.New("catalog store unavailable")
)

// CategoryNotFoundError names the genre that failed to resolve.
type CategoryNotFoundError struct {
	Name string
}

func (e *CategoryNotFoundError) Error() string {
	return fmt.Sprintf("Unknown genre: %s", e.Name)
}

func (e *CategoryNotFoundError) Is(target error) bool {
	return target == ErrCategoryNotFound
}

// StoreError records which store operation failed.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

func (e *StoreError) Is(target error) bool {
	return target == ErrStoreUnavailable
}

// storeErr wraps err unless it already carries store context.
func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *StoreError
	if errors.As(err, &se) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}
