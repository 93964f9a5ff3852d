// Package ratelimit paces outbound lookups against the market-data provider,
// which throttles clients that query too quickly.
package ratelimit

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Limiter spaces events at a fixed minimum interval.
type Limiter struct {
	lim *rate.Limiter
}

// New creates a limiter allowing one event per interval, with no burst
// beyond the first event.
func New(interval time.Duration) *Limiter {
	return &Limiter{lim: rate.NewLimiter(rate.Every(interval), 1)}
}

// Unlimited creates a limiter that never blocks. Used by tests to avoid
// pacing delays against mock servers.
func Unlimited() *Limiter {
	return &Limiter{lim: rate.NewLimiter(rate.Inf, 1)}
}

// Wait blocks until the next event is permitted or the context is canceled.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.lim.Wait(ctx)
}
