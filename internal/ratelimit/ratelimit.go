package ratelimit

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter throttles how many documents are evaluated per second.
type Limiter struct {
	limiter *rate.Limiter
}

// New returns a limiter allowing perSecond documents each second, one at a
// time. Zero or a negative rate disables throttling.
func New(perSecond float64) *Limiter {
	if perSecond <= 0 {
		return &Limiter{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	return &Limiter{limiter: rate.NewLimiter(rate.Limit(perSecond), 1)}
}

// Wait blocks until the next document may be processed or ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

// Allow reports whether a document may be processed right now without
// waiting.
func (l *Limiter) Allow() bool {
	return l.limiter.Allow()
}

// Unlimited reports whether throttling is disabled.
func (l *Limiter) Unlimited() bool {
	return l.limiter.Limit() == rate.Inf
}

// Limit returns the configured documents per second, 0 when unlimited.
func (l *Limiter) Limit() float64 {
	if l.Unlimited() {
		return 0
	}
	return float64(l.limiter.Limit())
}
