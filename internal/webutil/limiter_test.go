package webutil

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMinuteLimiterWithinBudget(t *testing.T) {
	l := NewMinuteLimiter(3)
	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := l.Acquire(context.Background()); err != nil {
			t.Fatalf("acquire %d: %v", i, err)
		}
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("acquisitions within budget should not block, took %v", elapsed)
	}
}

func TestMinuteLimiterBlocksPastBudget(t *testing.T) {
	l := NewMinuteLimiter(1)
	if err := l.Acquire(context.Background()); err != nil {
		t.Fatalf("first acquire: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := l.Acquire(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("second acquire should block until ctx expires, got %v", err)
	}
}

func TestMinuteLimiterMinimumBudget(t *testing.T) {
	l := NewMinuteLimiter(0)
	if err := l.Acquire(context.Background()); err != nil {
		t.Fatalf("a zero budget should clamp to one slot: %v", err)
	}
}
