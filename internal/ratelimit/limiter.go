package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// MinInterval is the smallest spacing the upstream API tolerates between
// consecutive requests of one fetch cycle.
const MinInterval = 1000 * time.Millisecond

// Pacer spaces out consecutive requests of one fetch cycle.
// The first Wait returns immediately. Each later Wait returns no earlier
// than interval after the previous Wait, and no earlier than interval after
// the previous Done.
type Pacer struct {
	interval time.Duration

	mu      sync.Mutex
	limiter *rate.Limiter
}

// NewPacer creates a pacer that admits one request per interval.
// Intervals shorter than MinInterval are raised to MinInterval.
func NewPacer(interval time.Duration) *Pacer {
	if interval < MinInterval {
		interval = MinInterval
	}

	return &Pacer{
		interval: interval,
		limiter:  rate.NewLimiter(rate.Every(interval), 1),
	}
}

// Interval returns the enforced spacing.
func (p *Pacer) Interval() time.Duration {
	return p.interval
}

// Wait blocks until the next request may start.
// It returns an error if the context is canceled before that.
func (p *Pacer) Wait(ctx context.Context) error {
	p.mu.Lock()
	limiter := p.limiter
	p.mu.Unlock()

	return limiter.Wait(ctx)
}

// Done marks the current request as finished and restarts the interval
// from now, so a slow response still leaves a full interval before the
// next request.
func (p *Pacer) Done() {
	limiter := rate.NewLimiter(rate.Every(p.interval), 1)
	// Take the only token; the next one is available one interval from now.
	limiter.Allow()

	p.mu.Lock()
	p.limiter = limiter
	p.mu.Unlock()
}
