package registry

import (
	"context"

	"oss.nandlabs.io/ecs"
	"oss.nandlabs.io/ecs/executor"
	"oss.nandlabs.io/ecs/workload"
)

// World is the public entry point: it owns a WorkloadRegistry and an
// Executor, and exposes adding and running workloads by label.
type World struct {
	*WorkloadRegistry
	exec executor.Executor
}

// NewWorld builds a World backed by a fresh WorkloadRegistry and exec.
func NewWorld(exec executor.Executor) *World {
	return &World{WorkloadRegistry: NewWorkloadRegistry(), exec: exec}
}

// AddToWorld builds b against w (as b's SystemTable) and registers the
// result under b's label. It fails if the label is already registered or
// if b references an unknown nested workload.
//
// Hosted on World rather than workload.Builder to avoid an import cycle:
// see the note on workload.Builder.Build.
func (w *World) AddToWorld(b *workload.Builder) (*ecs.WorkloadInfo, error) {
	label := b.Label()
	if w.HasWorkload(label) {
		return nil, ecs.NewAddError(label, ecs.ErrWorkloadAlreadyExists)
	}

	batches, info, err := b.Build(w.WorkloadRegistry)
	if err != nil {
		return nil, err
	}

	w.register(label, batches, info)
	return info, nil
}

// RunWorkload runs the workload registered under label to completion.
func (w *World) RunWorkload(ctx context.Context, label ecs.Label) error {
	batches, ok := w.batchesFor(label)
	if !ok {
		return ecs.NewAddError(label, ecs.ErrUnknownWorkload)
	}
	return w.exec.Run(ctx, label, batches, w.At)
}

// RunDefault runs the workload that became the default: the first one ever
// registered via AddToWorld, matching the rule that a registry's first
// registered workload is its default. It fails if nothing has been
// registered yet.
func (w *World) RunDefault(ctx context.Context) error {
	label, ok := w.FirstLabel()
	if !ok {
		return ecs.NewAddError(nil, ecs.ErrUnknownWorkload)
	}
	return w.RunWorkload(ctx, label)
}
