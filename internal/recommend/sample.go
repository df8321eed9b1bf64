// Reelpick - Genre-Filtered Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

package recommend

import (
	"math/rand"
	"sync"
	"time"
)

// Clamp bounds n into [1, maxN]. maxN below 1 is treated as 1.
func Clamp(n, maxN int) int {
	if maxN < 1 {
		maxN = 1
	}
	if n < 1 {
		return 1
	}
	if n > maxN {
		return maxN
	}
	return n
}

// Sampler draws uniform random subsets. It is safe for concurrent use.
type Sampler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSampler creates a Sampler over src.
func NewSampler(src rand.Source) *Sampler {
	return &Sampler{rng: rand.New(src)} //nolint:gosec // selection, not security
}

// NewSeededSampler creates a Sampler seeded with seed, or with the current
// time when seed is zero.
func NewSeededSampler(seed int64) *Sampler {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return NewSampler(rand.NewSource(seed))
}

// Sample returns min(k, len(pool)) distinct elements of pool in random
// order. Every subset of that size is equally likely. pool is not modified.
func Sample[T any](s *Sampler, pool []T, k int) []T {
	if k > len(pool) {
		k = len(pool)
	}
	if k <= 0 {
		return []T{}
	}

	out := make([]T, len(pool))
	copy(out, pool)

	s.mu.Lock()
	defer s.mu.Unlock()

	// Partial Fisher-Yates: positions [0, i) hold the draw so far.
	for i := 0; i < k; i++ {
		j := i + s.rng.Intn(len(out)-i)
		out[i], out[j] = out[j], out[i]
	}
	return out[:k:k]
}
