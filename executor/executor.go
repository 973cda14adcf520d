package executor

import (
	"context"

	"oss.nandlabs.io/ecs"
	"oss.nandlabs.io/ecs/scheduler"
)

// Executor runs a packed workload's batches to completion, or until ctx is
// done or a system returns an error. label identifies the workload for
// diagnostics and error wrapping; lookup resolves a batch's dense system
// index back to the ecs.System to run.
type Executor interface {
	Run(ctx context.Context, label ecs.Label, batches *scheduler.Batches, lookup func(index int) ecs.System) error
}

// Lookup adapts a slice of systems, indexed the same way Batches.Sequential
// indexes them, to the lookup signature Run expects.
func Lookup(systems []ecs.System) func(int) ecs.System {
	return func(i int) ecs.System { return systems[i] }
}
