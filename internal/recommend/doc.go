// Reelpick - Genre-Filtered Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

// Package recommend picks random movies from a genre.
//
// # Flow
//
// A recommendation request names a genre, an optional count and an optional
// inclusive release-year range. The Service:
//
//  1. acquires a Session from the Catalog for the lifetime of the request
//  2. resolves the genre by exact, case-sensitive name
//  3. clamps the count into [1, MaxN], defaulting to DefaultN
//  4. loads every movie linked to the genre whose year falls in the range
//  5. draws min(count, pool size) distinct movies uniformly at random
//  6. loads the full genre list of each drawn movie
//
// Movies with no release year never match a bounded range.
//
// # Randomness
//
// The Sampler wraps a math/rand source behind a mutex so a single instance
// can serve concurrent requests. Seeding it with a fixed value makes draws
// reproducible, which the tests and the reelctl --seed flag rely on.
//
// # Failure Handling
//
// Store failures surface as ErrStoreUnavailable. NewBreakerCatalog wraps a
// Catalog in a circuit breaker so a failing store is rejected quickly while
// it recovers. An unknown genre surfaces as ErrCategoryNotFound and never
// counts against the breaker.
package recommend
