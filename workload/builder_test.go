package workload

import (
	"context"
	"reflect"
	"testing"

	"oss.nandlabs.io/ecs"
	"oss.nandlabs.io/ecs/testing/assert"
)

type position struct{}
type velocity struct{}

type moveSystem struct{}
type renderSystem struct{}

func noop(context.Context) error { return nil }

// fakeTable is a minimal SystemTable for tests that don't need a full
// registry: it interns by Type in first-seen order and stores each
// registered workload's own sequential index list under its label.
type fakeTable struct {
	byType    map[any]int
	systems   []ecs.System
	workloads map[ecs.Label][]int
}

func newFakeTable() *fakeTable {
	return &fakeTable{byType: map[any]int{}, workloads: map[ecs.Label][]int{}}
}

func (f *fakeTable) Intern(sys ecs.System) (int, ecs.System) {
	if idx, ok := f.byType[sys.Type]; ok {
		return idx, f.systems[idx]
	}
	idx := len(f.systems)
	f.systems = append(f.systems, sys)
	f.byType[sys.Type] = idx
	return idx, sys
}

func (f *fakeTable) Sequential(label ecs.Label) ([]int, bool) {
	indices, ok := f.workloads[label]
	return indices, ok
}

func (f *fakeTable) At(index int) ecs.System {
	return f.systems[index]
}

func (f *fakeTable) register(label ecs.Label, indices []int) {
	f.workloads[label] = indices
}

func TestBuilder_SingleSystem(t *testing.T) {
	table := newFakeTable()
	b := New("movement").WithSystem(ecs.NewSystem[moveSystem]("move", noop, func(_ reflect.Type) []ecs.BorrowDescriptor {
		return []ecs.BorrowDescriptor{ecs.Global[position](ecs.Exclusive, true)}
	}))

	batches, info, err := b.Build(table)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(batches.Sequential))
	assert.Equal(t, "movement", info.Label)
}

func TestBuilder_UnknownWorkloadRefFails(t *testing.T) {
	table := newFakeTable()
	b := New("root").WithWorkload("nested-not-registered")

	_, _, err := b.Build(table)
	assert.Error(t, err)
}

func TestBuilder_WorkloadRefExpandsToSequentialIndices(t *testing.T) {
	table := newFakeTable()
	move := ecs.NewSystem[moveSystem]("move", noop, nil)
	idx, _ := table.Intern(move)
	table.register("inner", []int{idx, idx})

	b := New("outer").WithWorkload("inner")
	batches, _, err := b.Build(table)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(batches.Sequential))
	assert.Equal(t, idx, batches.Sequential[0])
	assert.Equal(t, idx, batches.Sequential[1])
}

func TestBuilder_AppendMovesWorkUnitsAndClearsSource(t *testing.T) {
	a := New("a").WithSystem(ecs.NewSystem[moveSystem]("move", noop, nil))
	other := New("b").WithSystem(ecs.NewSystem[renderSystem]("render", noop, nil))

	a.Append(other)
	assert.Equal(t, 2, len(a.workUnits))
	assert.Equal(t, 0, len(other.workUnits))
}

func TestBuilder_SkipIfStorageEmptyDefaultsToTrueWithoutInspector(t *testing.T) {
	b := New("gc").SkipIfStorageEmpty(ecs.StorageIdOf[position]())
	assert.Equal(t, 1, len(b.skipIfs))
	assert.True(t, b.skipIfs[0]())
}

type fakeInspector struct{ empty bool }

func (f fakeInspector) IsEmpty(ecs.StorageId) bool { return f.empty }

func TestBuilder_SkipIfStorageEmptyUsesInspector(t *testing.T) {
	b := New("gc").WithStorageInspector(fakeInspector{empty: false}).SkipIfStorageEmpty(ecs.StorageIdOf[position]())
	assert.False(t, b.skipIfs[0]())
}

func TestBuilder_SkipIfMissingUniqueDelegatesToStorageEmpty(t *testing.T) {
	b := New("gc").WithStorageInspector(fakeInspector{empty: true}).SkipIfMissingUnique(ecs.StorageIdOf[velocity]())
	assert.True(t, b.skipIfs[0]())
}

func TestBuilder_CheckUniquesPresentFailsWhenUniqueMissing(t *testing.T) {
	b := New("gc").WithStorageInspector(fakeInspector{empty: true}).SkipIfMissingUnique(ecs.StorageIdOf[velocity]())
	err := b.CheckUniquesPresent()
	assert.Error(t, err)
}

func TestBuilder_CheckUniquesPresentPassesWhenUniquePresent(t *testing.T) {
	b := New("gc").WithStorageInspector(fakeInspector{empty: false}).SkipIfMissingUnique(ecs.StorageIdOf[velocity]())
	assert.NoError(t, b.CheckUniquesPresent())
}

func TestBuilder_CheckUniquesPresentPassesWithNoDeclaredUniques(t *testing.T) {
	b := New("gc").WithSystem(ecs.NewSystem[moveSystem]("move", noop, nil))
	assert.NoError(t, b.CheckUniquesPresent())
}

func TestFlatten_EmptyWorkload(t *testing.T) {
	table := newFakeTable()
	flattened := Flatten(nil, table)
	assert.Equal(t, 0, len(flattened))
}

func TestFlatten_DuplicateWorkloadRefPreservesEachOccurrence(t *testing.T) {
	table := newFakeTable()
	move := ecs.NewSystem[moveSystem]("move", noop, nil)
	idx, _ := table.Intern(move)
	table.register("inner", []int{idx, idx})

	flattened := Flatten([]WorkUnit{WorkloadRef("inner")}, table)
	assert.Equal(t, 2, len(flattened))
	assert.Equal(t, idx, flattened[0].Index)
	assert.Equal(t, idx, flattened[1].Index)
}
