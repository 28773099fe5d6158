// Package ratelimit admits calls to an external service no more often than a
// fixed interval. A single Limiter is shared by every caller of that service.
package ratelimit

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// DefaultInterval matches the MusicBrainz policy of one request per second.
const DefaultInterval = time.Second

// Limiter is an admission gate: the slot is taken when Wait returns, not when
// the guarded call completes. Safe for concurrent use.
type Limiter struct {
	lim      *rate.Limiter
	interval time.Duration
}

// New creates a limiter admitting one call per interval.
// A non-positive interval disables limiting.
func New(interval time.Duration) *Limiter {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &Limiter{
		lim:      rate.NewLimiter(limit, 1),
		interval: interval,
	}
}

// Wait blocks until the caller is admitted. A call arriving less than one
// interval after the previous admission waits for the remaining delta.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.lim.Wait(ctx)
}

// Interval returns the configured minimum spacing between admissions.
func (l *Limiter) Interval() time.Duration {
	return l.interval
}
