package webutil

import (
	"context"
	"sync"
	"time"
)

const window = time.Minute

// MinuteLimiter allows at most perMinute acquisitions in any rolling
// 60-second window. One instance per named external resource, shared by
// every concurrent caller of that resource.
type MinuteLimiter struct {
	mu        sync.Mutex
	perMinute int
	stamps    []time.Time
}

func NewMinuteLimiter(perMinute int) *MinuteLimiter {
	if perMinute < 1 {
		perMinute = 1
	}
	return &MinuteLimiter{perMinute: perMinute}
}

// Acquire blocks until a slot is free or ctx is done. Callers race only for
// ordering, never past the budget: the slot is recorded under the same lock
// as the window check.
func (l *MinuteLimiter) Acquire(ctx context.Context) error {
	for {
		l.mu.Lock()
		now := time.Now()
		i := 0
		for i < len(l.stamps) && now.Sub(l.stamps[i]) > window {
			i++
		}
		l.stamps = l.stamps[i:]

		if len(l.stamps) < l.perMinute {
			l.stamps = append(l.stamps, now)
			l.mu.Unlock()
			return nil
		}
		// Wait for the oldest stamp to age out, plus a small guard.
		wait := window - now.Sub(l.stamps[0]) + 10*time.Millisecond
		l.mu.Unlock()

		t := time.NewTimer(wait)
		select {
		case <-t.C:
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		}
	}
}
