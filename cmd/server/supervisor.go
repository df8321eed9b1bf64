// Reelpick - Genre-Filtered Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

package main

import (
	"context"
	"errors"

	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/reelpick/internal/logging"
	"github.com/tomtom215/reelpick/internal/supervisor"
)

// supervise runs the tree until ctx is canceled. A cancellation is a clean
// stop; services that overrun the shutdown timeout are logged.
func supervise(ctx context.Context, tree *supervisor.SupervisorTree) error {
	err := tree.Serve(ctx)

	if report, rerr := tree.UnstoppedServiceReport(); rerr == nil && len(report) > 0 {
		for _, svc := range report {
			logging.Warn().Str("service", svc.Name).Msg("Service did not stop within timeout")
		}
	}

	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, suture.ErrTerminateSupervisorTree) {
		return nil
	}
	return err
}
