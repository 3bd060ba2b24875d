package webutil

import (
	"context"
	"math/rand"
	"time"
)

// Retry runs fn up to attempts times, sleeping exponentially longer between
// tries with +/-20% jitter. The last error is returned when every attempt
// fails. Used for paid API calls; page fetches inside a crawl are not
// retried, a failed page is just skipped.
func Retry(ctx context.Context, attempts int, initial time.Duration, fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}
	var err error
	sleep := initial
	for i := 0; i < attempts; i++ {
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		if err = fn(); err == nil {
			return nil
		}
		if i == attempts-1 {
			break
		}
		jittered := jitter(sleep, 0.2)
		t := time.NewTimer(jittered)
		select {
		case <-t.C:
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		}
		sleep *= 2
	}
	return err
}

func jitter(d time.Duration, frac float64) time.Duration {
	if d <= 0 {
		return 0
	}
	delta := (rand.Float64()*2 - 1) * frac * float64(d)
	return time.Duration(float64(d) + delta)
}
