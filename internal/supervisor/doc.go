// Reelpick - Genre-Filtered Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

/*
Package supervisor runs the server's long-lived services under suture v4.

The tree has two layers:

	reelpick
	├── data-layer
	│   └── StoreProbeService
	└── api-layer
	    └── HTTPServerService

Crashed services restart with suture's backoff, and a failure in one layer
does not restart the other. Supervisor events are logged through sutureslog
onto the slog adapter from internal/logging, so they share the zerolog
output with the rest of the server.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddDataService(services.NewStoreProbeService(store, services.StoreProbeConfig{}))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return tree.Serve(ctx)

Service implementations live in the services subpackage.
*/
package supervisor
