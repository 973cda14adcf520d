// Package executor runs a scheduler.Batches: it walks each batch in order,
// starting the batch's Main system (if any) and its Parallel systems
// concurrently, each on its own goroutine, and joining before moving to the
// next batch — the "blocks at batch boundaries" rule from spec.md §5. No
// goroutine or OS thread is reserved for Main systems.
//
// Pooled is the reference Executor (registry.NewWorld takes the executor to
// use as an argument), built on
// golang.org/x/sync/errgroup and golang.org/x/sync/semaphore over a worker
// pool.Pool, with lifecycle.Component-style Start/Stop and per-run
// correlation ids logged through l3. Executor is an interface so a caller
// can substitute a different execution strategy entirely.
package executor
