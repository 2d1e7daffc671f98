// internal/ratelimit/pacer.go
package ratelimit

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Pacer enforces the polite per-request delay of a collector driver: a
// token-bucket floor plus a random jitter drawn from [min, max]. News origins
// rate-limit aggressively, so the delay is the dominant cost of a run and is
// deliberately not configurable below min.
type Pacer struct {
	limiter *rate.Limiter
	min     time.Duration
	max     time.Duration
	rng     *rand.Rand
	mu      sync.Mutex
	count   uint64
}

// NewPacer creates a pacer with jitter bounds [min, max]. A non-positive max
// collapses the jitter to exactly min.
func NewPacer(min, max time.Duration) *Pacer {
	if min < 0 {
		min = 0
	}
	if max < min {
		max = min
	}

	// One request per min interval as the hard floor; jitter stretches it.
	limit := rate.Inf
	if min > 0 {
		limit = rate.Every(min)
	}

	return &Pacer{
		limiter: rate.NewLimiter(limit, 1),
		min:     min,
		max:     max,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Wait blocks for the polite delay and advances the request counter.
func (p *Pacer) Wait(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	if err := p.limiter.Wait(ctx); err != nil {
		return err
	}

	jitter := p.jitter()
	if jitter > 0 {
		select {
		case <-time.After(jitter):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	p.mu.Lock()
	p.count++
	p.mu.Unlock()
	return nil
}

// Count returns how many paced requests have been released so far.
func (p *Pacer) Count() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.count
}

func (p *Pacer) jitter() time.Duration {
	if p.max <= p.min {
		return 0
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return time.Duration(p.rng.Int63n(int64(p.max - p.min)))
}
