package executor

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"oss.nandlabs.io/ecs"
	"oss.nandlabs.io/ecs/l3"
	"oss.nandlabs.io/ecs/lifecycle"
	"oss.nandlabs.io/ecs/pool"
	"oss.nandlabs.io/ecs/scheduler"
	"oss.nandlabs.io/ecs/uuid"
)

var logger = l3.Get()

// Pooled is the reference Executor: it runs a workload's batches one after
// another, and within a batch dispatches the Main system (if any) and every
// Parallel system concurrently over a bounded worker pool — a batch is
// scheduled as an all-or-nothing unit, with no ordering between its Main
// slot and its parallel list. It embeds
// lifecycle.SimpleComponent for Start/Stop/State bookkeeping, so it can be
// registered alongside any other component in a process that already uses
// the teacher's lifecycle manager.
type Pooled struct {
	lifecycle.SimpleComponent

	capacity int
	workers  pool.Pool[*worker]
}

// NewPooled builds a Pooled executor that runs up to capacity systems of a
// batch concurrently. A capacity below 1 is raised to 1.
func NewPooled(capacity int) (*Pooled, error) {
	if capacity < 1 {
		capacity = 1
	}
	workers, err := newWorkerPool(capacity)
	if err != nil {
		return nil, err
	}

	p := &Pooled{capacity: capacity, workers: workers}
	p.CompId = "executor.pooled"
	p.StartFunc = workers.Start
	p.StopFunc = workers.Close
	return p, nil
}

// Run implements Executor.
func (p *Pooled) Run(ctx context.Context, label ecs.Label, batches *scheduler.Batches, lookup func(int) ecs.System) error {
	runID := mustUUID()

	if batches.ShouldSkip() {
		logger.DebugF("run %s: workload %v skipped", runID, label)
		return nil
	}

	sem := semaphore.NewWeighted(int64(p.capacity))

	for batchIdx, batch := range batches.Parallel {
		g, gctx := errgroup.WithContext(ctx)

		if batch.Main != nil {
			sys := lookup(*batch.Main)
			logger.DebugF("run %s: workload %v batch %d main system %s", runID, label, batchIdx, sys.Name)
			g.Go(func() error {
				if err := sem.Acquire(gctx, 1); err != nil {
					return err
				}
				defer sem.Release(1)
				return p.runOne(gctx, sys)
			})
		}

		for _, idx := range batch.Parallel {
			sys := lookup(idx)
			g.Go(func() error {
				if err := sem.Acquire(gctx, 1); err != nil {
					return err
				}
				defer sem.Release(1)
				return p.runOne(gctx, sys)
			})
		}

		if err := g.Wait(); err != nil {
			logger.ErrorF("run %s: workload %v batch %d failed: %v", runID, label, batchIdx, err)
			return &ecs.RunError{Label: label, Cause: err}
		}
	}

	return nil
}

func (p *Pooled) runOne(ctx context.Context, sys ecs.System) error {
	w, err := p.workers.Checkout()
	if err != nil {
		return fmt.Errorf("checkout worker for system %s: %w", sys.Name, err)
	}
	defer p.workers.Checkin(w)

	if sys.Run == nil {
		return nil
	}
	return sys.Run(ctx)
}

func mustUUID() string {
	id, err := uuid.V1()
	if err != nil {
		return "unknown"
	}
	return id.String()
}
