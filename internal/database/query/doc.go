// Reelpick - Genre-Filtered Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

// Package query builds parameterized SQL WHERE clauses for the catalog
// store. Values are always bound through placeholders, never spliced into
// the SQL text.
package query
