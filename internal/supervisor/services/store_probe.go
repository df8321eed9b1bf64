// Reelpick - Genre-Filtered Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

package services

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelpick/internal/logging"
	"github.com/tomtom215/reelpick/internal/metrics"
)

// Pinger is satisfied by both catalog stores.
type Pinger interface {
	Ping(ctx context.Context) error
}

// StoreProbeConfig configures StoreProbeService.
type StoreProbeConfig struct {
	// Interval between pings. Default: 30s
	Interval time.Duration

	// Timeout for a single ping. Default: 5s
	Timeout time.Duration
}

func (c StoreProbeConfig) withDefaults() StoreProbeConfig {
	if c.Interval <= 0 {
		c.Interval = 30 * time.Second
	}
	if c.Timeout <= 0 {
		c.Timeout = 5 * time.Second
	}
	return c
}

// StoreProbeService pings the catalog store on an interval and publishes
// the outcome as the catalog_store_up gauge. It logs only on transitions.
type StoreProbeService struct {
	store  Pinger
	config StoreProbeConfig
	logger zerolog.Logger
	name   string

	// 0 unknown, 1 up, 2 down
	state atomic.Int32
	// probes counts completed pings.
	probes atomic.Int64
}

// NewStoreProbeService creates a probe for store.
func NewStoreProbeService(store Pinger, config StoreProbeConfig) *StoreProbeService {
	return &StoreProbeService{
		store:  store,
		config: config.withDefaults(),
		logger: logging.Component("store-probe"),
		name:   "store-probe",
	}
}

// Serve implements suture.Service. The first ping runs immediately.
func (s *StoreProbeService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	s.probe(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.probe(ctx)
		}
	}
}

func (s *StoreProbeService) probe(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	err := s.store.Ping(pingCtx)
	cancel()

	// A ping cut short by shutdown says nothing about the store.
	if err != nil && ctx.Err() != nil {
		return
	}

	up := err == nil
	metrics.SetStoreUp(up)
	s.probes.Add(1)

	next := int32(2)
	if up {
		next = 1
	}
	prev := s.state.Swap(next)
	switch {
	case prev == next:
	case up && prev == 2:
		s.logger.Info().Msg("Catalog store reachable again")
	case up:
		s.logger.Debug().Msg("Catalog store reachable")
	default:
		s.logger.Warn().Err(err).Msg("Catalog store ping failed")
	}
}

// Up reports the result of the last completed ping.
func (s *StoreProbeService) Up() bool {
	return s.state.Load() == 1
}

// Probes returns how many pings have completed.
func (s *StoreProbeService) Probes() int64 {
	return s.probes.Load()
}

// String names the service in supervisor events.
func (s *StoreProbeService) String() string {
	return s.name
}
