// Package ratelimit provides per-provider client-side rate limiting.
package ratelimit

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter enforces minimum spacing between calls to one external
// provider. One instance per rate-sensitive provider, injected into the
// client that performs the calls. Safe for concurrent use.
type Limiter struct {
	name    string
	limiter *rate.Limiter
}

// New creates a limiter allowing requestsPerSecond calls. Burst is kept
// at 1 so consecutive calls are spaced at least 1/rate apart. A
// non-positive rate disables limiting.
func New(name string, requestsPerSecond float64) *Limiter {
	if requestsPerSecond <= 0 {
		return &Limiter{name: name}
	}
	return &Limiter{
		name:    name,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
	}
}

// Wait blocks until the next call is allowed or the context is cancelled.
func (l *Limiter) Wait(ctx context.Context) error {
	if l.limiter == nil {
		return nil
	}
	return l.limiter.Wait(ctx)
}

// Name returns the provider name this limiter guards.
func (l *Limiter) Name() string {
	return l.name
}
