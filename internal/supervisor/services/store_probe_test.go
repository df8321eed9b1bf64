// Reelpick - Genre-Filtered Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/reelpick/internal/metrics"
)

var _ suture.Service = (*StoreProbeService)(nil)

// scriptedPinger returns results in order, repeating the last one.
type scriptedPinger struct {
	mu      sync.Mutex
	results []error
	calls   int
}

func (p *scriptedPinger) Ping(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	i := p.calls
	if i >= len(p.results) {
		i = len(p.results) - 1
	}
	p.calls++
	return p.results[i]
}

func TestStoreProbeConfigDefaults(t *testing.T) {
	cfg := StoreProbeConfig{}.withDefaults()
	if cfg.Interval != 30*time.Second {
		t.Errorf("Interval = %v, want 30s", cfg.Interval)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", cfg.Timeout)
	}

	cfg = StoreProbeConfig{Interval: time.Second, Timeout: time.Millisecond}.withDefaults()
	if cfg.Interval != time.Second || cfg.Timeout != time.Millisecond {
		t.Errorf("explicit values overwritten: %+v", cfg)
	}
}

func TestStoreProbeTracksTransitions(t *testing.T) {
	down := errors.New("connection refused")
	pinger := &scriptedPinger{results: []error{nil, down, nil}}
	svc := NewStoreProbeService(pinger, StoreProbeConfig{})
	ctx := context.Background()

	svc.probe(ctx)
	if !svc.Up() || testutil.ToFloat64(metrics.StoreUp) != 1 {
		t.Fatal("first probe should report up")
	}

	svc.probe(ctx)
	if svc.Up() || testutil.ToFloat64(metrics.StoreUp) != 0 {
		t.Fatal("second probe should report down")
	}

	svc.probe(ctx)
	if !svc.Up() || testutil.ToFloat64(metrics.StoreUp) != 1 {
		t.Fatal("third probe should report up again")
	}
	if got := svc.Probes(); got != 3 {
		t.Errorf("Probes() = %d, want 3", got)
	}
}

func TestStoreProbeIgnoresCanceledPing(t *testing.T) {
	pinger := &scriptedPinger{results: []error{context.Canceled}}
	svc := NewStoreProbeService(pinger, StoreProbeConfig{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc.probe(ctx)

	if got := svc.Probes(); got != 0 {
		t.Errorf("Probes() = %d, want 0 for a ping cut short by shutdown", got)
	}
}

func TestStoreProbeServe(t *testing.T) {
	pinger := &scriptedPinger{results: []error{nil}}
	svc := NewStoreProbeService(pinger, StoreProbeConfig{Interval: 10 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	deadline := time.After(time.Second)
	for svc.Probes() < 3 {
		select {
		case <-deadline:
			t.Fatalf("Probes() = %d after 1s, want >= 3", svc.Probes())
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Serve did not return after cancel")
	}
	if svc.String() != "store-probe" {
		t.Errorf("String() = %q", svc.String())
	}
}
