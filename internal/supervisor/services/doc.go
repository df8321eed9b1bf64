// Reelpick - Genre-Filtered Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

// Package services adapts the server's long-running components to
// suture.Service.
//
//   - HTTPServerService: ListenAndServe with graceful Shutdown on cancel
//   - StoreProbeService: periodic store ping feeding the store_up gauge
//
// Every Serve returns ctx.Err() when its context is canceled so the
// supervisor can tell a requested stop from a crash.
package services
