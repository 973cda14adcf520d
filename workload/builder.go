package workload

import (
	"oss.nandlabs.io/ecs"
	"oss.nandlabs.io/ecs/scheduler"
)

// Builder accumulates the systems and nested workload references that make
// up a workload, plus the conditions under which a run should be skipped
// entirely, and packs them into a scheduler.Batches on Build.
type Builder struct {
	label     ecs.Label
	workUnits []WorkUnit
	skipIfs   []SkipPredicate
	inspector StorageInspector
	uniques   []ecs.StorageId
}

// System is the system record a Builder schedules: an alias for ecs.System,
// named for the workload package's own public API so callers write
// workload.System instead of reaching into ecs directly.
type System = ecs.System

// TrySystem is the same record as System. It exists as a distinct name for
// WithTrySystem's parameter, matching shipyard's distinction between a
// system and a "try" system whose Run can return an error that aborts just
// that run; the packing algorithm treats both identically.
type TrySystem = ecs.System

// New starts a Builder for a workload identified by label.
func New(label ecs.Label) *Builder {
	return &Builder{label: label}
}

// WithSystem appends sys to the workload.
func (b *Builder) WithSystem(sys System) *Builder {
	b.workUnits = append(b.workUnits, unit(sys))
	return b
}

// WithTrySystem appends sys to the workload. It exists as a separate entry
// point for systems whose Run can return an error that should abort just
// this run rather than the whole batch plan; the packing itself treats it
// identically to WithSystem.
func (b *Builder) WithTrySystem(sys TrySystem) *Builder {
	return b.WithSystem(sys)
}

// WithWorkload appends a reference to another workload, by label. The
// referenced workload must already be registered in the SystemTable by the
// time this Builder is built or added to a world.
func (b *Builder) WithWorkload(label ecs.Label) *Builder {
	b.workUnits = append(b.workUnits, WorkloadRef(label))
	return b
}

// Append moves other's work units and skip predicates onto b, leaving
// other empty. Mirrors shipyard's Workload::append: merging two builders
// lets the packer see every system at once, which can find parallelism
// across what would otherwise be two separately-scheduled workloads.
func (b *Builder) Append(other *Builder) *Builder {
	b.workUnits = append(b.workUnits, other.workUnits...)
	b.skipIfs = append(b.skipIfs, other.skipIfs...)
	b.uniques = append(b.uniques, other.uniques...)
	other.workUnits = nil
	other.skipIfs = nil
	other.uniques = nil
	return b
}

// WithStorageInspector configures the StorageInspector that
// SkipIfStorageEmpty and SkipIfMissingUnique consult. Without one, both
// treat every storage as empty.
func (b *Builder) WithStorageInspector(si StorageInspector) *Builder {
	b.inspector = si
	return b
}

// SkipIf adds a predicate that skips the whole run when it returns true.
func (b *Builder) SkipIf(pred SkipPredicate) *Builder {
	b.skipIfs = append(b.skipIfs, pred)
	return b
}

// SkipIfStorageEmpty skips the run when id's storage holds no components
// (or isn't present at all, which counts as empty).
func (b *Builder) SkipIfStorageEmpty(id ecs.StorageId) *Builder {
	return b.SkipIf(func() bool {
		if b.inspector == nil {
			return true
		}
		return b.inspector.IsEmpty(id)
	})
}

// SkipIfMissingUnique skips the run when id's unique (singleton) storage
// has not been added to the world yet. A unique storage that is absent is
// indistinguishable from one that is empty, so this delegates to
// SkipIfStorageEmpty exactly as shipyard's own skip_if_missing_unique does.
// id is also remembered for CheckUniquesPresent.
func (b *Builder) SkipIfMissingUnique(id ecs.StorageId) *Builder {
	b.uniques = append(b.uniques, id)
	return b.SkipIfStorageEmpty(id)
}

// CheckUniquesPresent reports the first unique storage named via
// SkipIfMissingUnique that the configured StorageInspector does not
// consider present, as a *ecs.UniquePresenceError. Unlike
// SkipIfMissingUnique, which silently skips a run at execution time, this
// lets a caller validate a workload up front — e.g. right after AddToWorld
// — and fail loudly instead. Mirrors
// WorkloadBuilder::are_all_uniques_present_in_world, narrowed to the
// uniques this Builder actually declared rather than scanning every
// borrow, since this scheduler's BorrowDescriptor doesn't itself
// distinguish a unique (singleton) storage from an ordinary global one.
func (b *Builder) CheckUniquesPresent() error {
	for _, id := range b.uniques {
		present := b.inspector != nil && !b.inspector.IsEmpty(id)
		if !present {
			return &ecs.UniquePresenceError{Missing: ecs.BorrowDescriptor{Name: id.String(), StorageId: id}}
		}
	}
	return nil
}

// Build resolves nested workload references against table, packs the
// resulting systems into batches, and returns the packed plan along with
// its diagnostic WorkloadInfo.
//
// Build takes the SystemTable explicitly rather than a Builder holding one
// of its own: registry.World is both the table callers register systems
// and workloads into and the thing that ultimately wants to own Builders,
// so Builder itself stays free of any dependency on registry, avoiding an
// import cycle between the two packages. registry.World.AddToWorld is the
// method that actually registers a built workload.
func (b *Builder) Build(table SystemTable) (*scheduler.Batches, *ecs.WorkloadInfo, error) {
	for _, u := range b.workUnits {
		if u.IsWorkloadRef() {
			if _, ok := table.Sequential(u.workload); !ok {
				return nil, nil, ecs.NewAddError(b.label, ecs.ErrUnknownWorkload)
			}
		}
	}

	flattened := Flatten(b.workUnits, table)
	candidates := make([]scheduler.Candidate, len(flattened))
	for i, f := range flattened {
		candidates[i] = scheduler.Candidate{Index: f.Index, System: f.System, Borrow: f.Borrow}
	}

	batches, batchInfo := scheduler.Plan(candidates)
	for _, pred := range b.skipIfs {
		batches.SkipIf = append(batches.SkipIf, scheduler.SkipPredicate(pred))
	}

	info := &ecs.WorkloadInfo{Label: b.label, BatchInfo: batchInfo}
	return batches, info, nil
}

// Label returns the label this Builder was created with.
func (b *Builder) Label() ecs.Label {
	return b.label
}
