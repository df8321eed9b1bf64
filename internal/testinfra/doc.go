// Reelpick - Genre-Filtered Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

// Package testinfra provides container-backed infrastructure for
// integration tests.
//
// Everything here is built only with the integration tag:
//
//	go test -tags integration ./...
//
// # PostgreSQL Container
//
// PostgresContainer starts a disposable PostgreSQL server for exercising
// the relational catalog store against a real database:
//
//	func TestPostgresCatalog(t *testing.T) {
//	    testinfra.SkipIfNoDocker(t)
//	    ctx := context.Background()
//	    pg, err := testinfra.NewPostgresContainer(ctx)
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//	    testinfra.TerminateOnCleanup(t, pg.Container)
//
//	    store, err := relational.Open(&config.DatabaseConfig{
//	        Driver: config.DriverPostgres,
//	        DSN:    pg.DSN,
//	    })
//	    ...
//	}
//
// Tests skip when no Docker daemon is reachable.
package testinfra
