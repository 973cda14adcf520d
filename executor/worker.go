package executor

import "oss.nandlabs.io/ecs/pool"

// worker is the unit of concurrency capacity Pooled hands out for each
// parallel system in a batch: just an identity for logging, since the
// actual work runs on the goroutine that checked it out.
type worker struct {
	id int
}

func newWorkerPool(capacity int) (pool.Pool[*worker], error) {
	next := 0
	return pool.NewPool[*worker](
		func() (*worker, error) {
			next++
			return &worker{id: next}, nil
		},
		func(*worker) error { return nil },
		0, capacity, 30,
	)
}
