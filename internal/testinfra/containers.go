// Reelpick - Genre-Filtered Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

//go:build integration

package testinfra

import (
	"context"
	"os/exec"
	"sync"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
)

var (
	dockerOnce sync.Once
	dockerUp   bool
)

// SkipIfNoDocker skips t when no Docker daemon answers.
func SkipIfNoDocker(t *testing.T) {
	t.Helper()
	if !IsDockerAvailable() {
		t.Skip("docker daemon not reachable, skipping container test")
	}
}

// IsDockerAvailable runs `docker info` once per test binary and caches the result.
func IsDockerAvailable() bool {
	dockerOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		dockerUp = exec.CommandContext(ctx, "docker", "info").Run() == nil
	})
	return dockerUp
}

// ContainerLogger sends testcontainers output to the test log.
type ContainerLogger struct {
	t testing.TB
}

// NewContainerLogger returns a ContainerLogger bound to t.
func NewContainerLogger(t testing.TB) *ContainerLogger {
	return &ContainerLogger{t: t}
}

// Printf satisfies testcontainers' Logging interface.
func (l *ContainerLogger) Printf(format string, v ...any) {
	l.t.Logf(format, v...)
}

// TerminateOnCleanup stops c when t finishes. Termination failures are logged,
// not fatal.
func TerminateOnCleanup(t testing.TB, c testcontainers.Container) {
	t.Helper()
	if c == nil {
		return
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := c.Terminate(ctx); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})
}
