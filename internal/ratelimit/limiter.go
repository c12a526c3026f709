// Package ratelimit implements fixed-window request throttling keyed by
// client IP. The window count resets at regular boundaries, which allows
// up to a 2x burst across a boundary; that is an accepted property of
// the algorithm, not a defect.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Decision is the outcome of a limiter check. ResetAt tells a rejected
// caller when the current window ends.
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// Store decides whether a request identified by key may proceed under a
// policy. The in-process Limiter and the Redis-backed limiter both
// satisfy it; only the latter coordinates across instances.
type Store interface {
	Allow(ctx context.Context, key string, policy Policy) (Decision, error)
}

const (
	sweepInterval    = time.Minute
	sweepMaxDeletes  = 50
	sweepSizeTrigger = 1000
)

type window struct {
	count   int
	resetAt time.Time
}

// Limiter is an in-process fixed-window counter table. Counters are
// process-scoped and reset on restart; instances behind a load balancer
// each count independently.
type Limiter struct {
	mu      sync.Mutex
	windows map[string]window

	quit     chan struct{}
	stopOnce sync.Once
}

func NewLimiter() *Limiter {
	l := &Limiter{
		windows: make(map[string]window),
		quit:    make(chan struct{}),
	}
	go l.sweepLoop()
	return l
}

// Allow counts the request against key's current window. The first call
// in a window (or the first after the window lapsed) starts a fresh one
// with count=1; once the count reaches policy.MaxRequests further calls
// are rejected without incrementing.
func (l *Limiter) Allow(_ context.Context, key string, policy Policy) (Decision, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if len(l.windows) > sweepSizeTrigger {
		l.sweepLocked(now)
	}

	w, ok := l.windows[key]
	if !ok || !now.Before(w.resetAt) {
		w = window{count: 1, resetAt: now.Add(policy.Window)}
		l.windows[key] = w
		return Decision{Allowed: true, Limit: policy.MaxRequests, Remaining: policy.MaxRequests - 1, ResetAt: w.resetAt}, nil
	}
	if w.count < policy.MaxRequests {
		w.count++
		l.windows[key] = w
		return Decision{Allowed: true, Limit: policy.MaxRequests, Remaining: policy.MaxRequests - w.count, ResetAt: w.resetAt}, nil
	}
	return Decision{Allowed: false, Limit: policy.MaxRequests, Remaining: 0, ResetAt: w.resetAt}, nil
}

// Stop halts the background sweeper.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() { close(l.quit) })
}

func (l *Limiter) sweepLoop() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.mu.Lock()
			l.sweepLocked(time.Now())
			l.mu.Unlock()
		case <-l.quit:
			return
		}
	}
}

// sweepLocked deletes lapsed windows, at most sweepMaxDeletes per pass
// so no single call pays an unbounded cleanup cost.
func (l *Limiter) sweepLocked(now time.Time) {
	deleted := 0
	for k, w := range l.windows {
		if deleted >= sweepMaxDeletes {
			return
		}
		if !now.Before(w.resetAt) {
			delete(l.windows, k)
			deleted++
		}
	}
}
