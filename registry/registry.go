package registry

import (
	"fmt"
	"reflect"
	"sync"

	"oss.nandlabs.io/ecs"
	"oss.nandlabs.io/ecs/collections"
	"oss.nandlabs.io/ecs/managers"
	"oss.nandlabs.io/ecs/scheduler"
)

// WorkloadRegistry interns systems by type and stores each registered
// workload's packed Batches under its label. It implements
// workload.SystemTable; registry depends on workload, not the reverse, so
// this lives on the registry side of that boundary.
//
// The system pool (dense int index, for Intern/At) is a plain
// RWMutex-protected slice: Intern needs an index assigned at registration
// time, which an ItemManager's string-keyed, zero-value-on-miss Get
// doesn't give us. The per-label workload and diagnostic stores, which are
// plain "register once, look up by label" maps, use
// managers.ItemManager[T] directly instead of reimplementing that pattern.
type WorkloadRegistry struct {
	mu sync.RWMutex

	systems     []ecs.System
	systemIndex map[reflect.Type]int

	knownLabels collections.Set[ecs.Label]
	workloads   managers.ItemManager[*scheduler.Batches]
	infos       managers.ItemManager[*ecs.WorkloadInfo]
	order       []ecs.Label
	hasFirst    bool
	first       ecs.Label
}

// NewWorkloadRegistry builds an empty registry.
func NewWorkloadRegistry() *WorkloadRegistry {
	return &WorkloadRegistry{
		systemIndex: make(map[reflect.Type]int),
		knownLabels: collections.NewSyncSet[ecs.Label](),
		workloads:   managers.NewItemManager[*scheduler.Batches](),
		infos:       managers.NewItemManager[*ecs.WorkloadInfo](),
	}
}

// labelKey turns an ecs.Label into the string key ItemManager requires.
// Labels are typically strings already; fmt.Sprint covers any other
// comparable type a caller picks without forcing one on them.
func labelKey(label ecs.Label) string {
	if s, ok := label.(string); ok {
		return s
	}
	return fmt.Sprint(label)
}

// Intern implements workload.SystemTable.
func (r *WorkloadRegistry) Intern(sys ecs.System) (int, ecs.System) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if idx, ok := r.systemIndex[sys.Type]; ok {
		return idx, r.systems[idx]
	}
	idx := len(r.systems)
	r.systems = append(r.systems, sys)
	r.systemIndex[sys.Type] = idx
	return idx, sys
}

// Sequential implements workload.SystemTable.
func (r *WorkloadRegistry) Sequential(label ecs.Label) ([]int, bool) {
	if !r.HasWorkload(label) {
		return nil, false
	}
	batches := r.workloads.Get(labelKey(label))
	if batches == nil {
		return nil, false
	}
	indices := make([]int, len(batches.Sequential))
	copy(indices, batches.Sequential)
	return indices, true
}

// At implements workload.SystemTable.
func (r *WorkloadRegistry) At(index int) ecs.System {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.systems[index]
}

// HasWorkload reports whether label has already been registered.
func (r *WorkloadRegistry) HasWorkload(label ecs.Label) bool {
	return r.knownLabels.Contains(label)
}

// register stores batches and info under label, recording it as known.
// Callers must have already checked HasWorkload.
func (r *WorkloadRegistry) register(label ecs.Label, batches *scheduler.Batches, info *ecs.WorkloadInfo) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := labelKey(label)
	r.workloads.Register(key, batches)
	r.infos.Register(key, info)
	if !r.hasFirst {
		r.hasFirst = true
		r.first = label
	}
	r.order = append(r.order, label)
	_ = r.knownLabels.Add(label)
}

// FirstLabel returns the label of the first workload ever registered, and
// whether any workload has been registered at all. It becomes the default
// workload, matching the rule that the first registered workload of a
// registry is the one run by default.
func (r *WorkloadRegistry) FirstLabel() (ecs.Label, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.first, r.hasFirst
}

// batchesFor returns the packed Batches registered under label.
func (r *WorkloadRegistry) batchesFor(label ecs.Label) (*scheduler.Batches, bool) {
	if !r.HasWorkload(label) {
		return nil, false
	}
	return r.workloads.Get(labelKey(label)), true
}

// Info returns the diagnostic WorkloadInfo recorded when label was built.
func (r *WorkloadRegistry) Info(label ecs.Label) (*ecs.WorkloadInfo, bool) {
	if !r.HasWorkload(label) {
		return nil, false
	}
	return r.infos.Get(labelKey(label)), true
}

// TypeUsage reports, for every registered workload, the SystemInfo of
// every system it schedules — the diagnostic surface spec.md §6 calls
// WorkloadsTypeUsage in the source this scheduler design is based on.
func (r *WorkloadRegistry) TypeUsage() map[ecs.Label][]ecs.SystemInfo {
	r.mu.RLock()
	order := append([]ecs.Label(nil), r.order...)
	r.mu.RUnlock()

	usage := make(map[ecs.Label][]ecs.SystemInfo, len(order))
	for _, label := range order {
		info := r.infos.Get(labelKey(label))
		if info == nil {
			continue
		}
		var all []ecs.SystemInfo
		for _, batch := range info.BatchInfo {
			if batch.Main != nil {
				all = append(all, *batch.Main)
			}
			all = append(all, batch.Parallel...)
		}
		usage[label] = all
	}
	return usage
}
