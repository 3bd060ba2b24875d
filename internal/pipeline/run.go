package pipeline

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/Mighty2Skiddie/Startups-email-scrapper/internal/domain"
	"github.com/Mighty2Skiddie/Startups-email-scrapper/internal/tableio"
)

// collector is the only mutable state shared across company workers besides
// the rate limiters. Appends and checkpoint snapshots take the same lock so
// a flush never observes a half-written record.
type collector struct {
	mu      sync.Mutex
	results []domain.Result
}

func (c *collector) add(r domain.Result) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results = append(c.results, r)
	return len(c.results)
}

func (c *collector) snapshot() []domain.Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.Result, len(c.results))
	copy(out, c.results)
	return out
}

type RunOptions struct {
	Concurrency    int
	SaveEvery      int
	CheckpointPath string
}

// Run processes companies with a bounded worker pool and returns whatever
// completed, in completion order. A company that panics or is cancelled is
// logged and dropped; the batch never fails because of one company. Every
// SaveEvery completions the current results are flushed as a checkpoint.
func Run(ctx context.Context, companies []domain.Company, deps *Deps, opts RunOptions) []domain.Result {
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}

	col := &collector{}

	var g errgroup.Group
	g.SetLimit(opts.Concurrency)

	for _, co := range companies {
		co := co
		g.Go(func() error {
			clog := deps.Log.With("company", co.Name)
			if ctx.Err() != nil {
				clog.Warn("company skipped, run cancelled")
				return nil
			}
			defer func() {
				if r := recover(); r != nil {
					clog.Error("company failed", "panic", r)
				}
			}()

			clog.Debug("company start")
			res := deps.ProcessCompany(ctx, co)
			n := col.add(res)
			clog.Info("company done",
				"domain", res.Domain,
				"emails", len(res.FoundEmails),
				"confidence", string(res.Confidence),
			)

			if opts.SaveEvery > 0 && n%opts.SaveEvery == 0 && opts.CheckpointPath != "" {
				if err := tableio.WriteCheckpoint(col.snapshot(), opts.CheckpointPath); err != nil {
					deps.Log.Warn("checkpoint write failed", "err", err)
				} else {
					deps.Log.Info("checkpoint written", "completed", n)
				}
			}
			return nil
		})
	}

	_ = g.Wait()
	return col.snapshot()
}
