package registry

import (
	"context"
	"reflect"
	"testing"

	"oss.nandlabs.io/ecs"
	"oss.nandlabs.io/ecs/scheduler"
	"oss.nandlabs.io/ecs/testing/assert"
	"oss.nandlabs.io/ecs/workload"
)

// recordingExecutor is a minimal executor.Executor that just records which
// label it was last asked to run, so tests can check RunDefault resolved
// to the right workload without exercising a real batch run.
type recordingExecutor struct {
	lastLabel ecs.Label
}

func (e *recordingExecutor) Run(_ context.Context, label ecs.Label, _ *scheduler.Batches, _ func(int) ecs.System) error {
	e.lastLabel = label
	return nil
}

type position struct{}
type velocity struct{}
type moveSystem struct{}
type renderSystem struct{}

func noop(context.Context) error { return nil }

func borrowPosition(m ecs.Mutability) ecs.BorrowGenerator {
	return func(reflect.Type) []ecs.BorrowDescriptor {
		return []ecs.BorrowDescriptor{ecs.Global[position](m, true)}
	}
}

func TestWorld_AddToWorldRejectsDuplicateLabel(t *testing.T) {
	w := NewWorld(nil)
	b := workload.New("movement").WithSystem(ecs.NewSystem[moveSystem]("move", noop, borrowPosition(ecs.Exclusive)))

	_, err := w.AddToWorld(b)
	assert.NoError(t, err)

	b2 := workload.New("movement")
	_, err = w.AddToWorld(b2)
	assert.Error(t, err)
}

func TestWorld_AddToWorldRejectsUnknownNestedWorkload(t *testing.T) {
	w := NewWorld(nil)
	b := workload.New("outer").WithWorkload("never-registered")

	_, err := w.AddToWorld(b)
	assert.Error(t, err)
}

func TestWorld_AddToWorldInternsSystemsAcrossWorkloads(t *testing.T) {
	w := NewWorld(nil)
	move := ecs.NewSystem[moveSystem]("move", noop, borrowPosition(ecs.Exclusive))

	_, err := w.AddToWorld(workload.New("a").WithSystem(move))
	assert.NoError(t, err)
	_, err = w.AddToWorld(workload.New("b").WithSystem(move))
	assert.NoError(t, err)

	assert.Equal(t, 1, len(w.systems))
}

func TestWorld_RunWorkloadFailsForUnknownLabel(t *testing.T) {
	w := NewWorld(nil)
	err := w.RunWorkload(context.Background(), "nope")
	assert.Error(t, err)
}

func TestWorld_RunDefaultFailsWhenNothingRegistered(t *testing.T) {
	w := NewWorld(nil)
	err := w.RunDefault(context.Background())
	assert.Error(t, err)
}

func TestWorld_RunDefaultRunsFirstRegisteredWorkloadRegardlessOfLabel(t *testing.T) {
	exec := &recordingExecutor{}
	w := NewWorld(exec)

	move := ecs.NewSystem[moveSystem]("move", noop, borrowPosition(ecs.Exclusive))
	render := ecs.NewSystem[renderSystem]("render", noop, borrowPosition(ecs.Shared))

	_, err := w.AddToWorld(workload.New("frame-one").WithSystem(move))
	assert.NoError(t, err)
	_, err = w.AddToWorld(workload.New("frame-two").WithSystem(render))
	assert.NoError(t, err)

	err = w.RunDefault(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, ecs.Label("frame-one"), exec.lastLabel)
}

func TestWorld_TypeUsageReportsEverySystemPerWorkload(t *testing.T) {
	w := NewWorld(nil)
	move := ecs.NewSystem[moveSystem]("move", noop, borrowPosition(ecs.Exclusive))
	render := ecs.NewSystem[renderSystem]("render", noop, borrowPosition(ecs.Shared))

	_, err := w.AddToWorld(workload.New("frame").WithSystem(move).WithSystem(render))
	assert.NoError(t, err)

	usage := w.TypeUsage()
	assert.Equal(t, 2, len(usage["frame"]))
}
