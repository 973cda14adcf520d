package workload

import "oss.nandlabs.io/ecs"

type unitKind int

const (
	unitSystem unitKind = iota
	unitWorkloadRef
)

// WorkUnit is one entry of a Builder's work list: either a single system or
// a reference to another, already-registered workload by label.
type WorkUnit struct {
	kind     unitKind
	system   ecs.System
	workload ecs.Label
}

// unit wraps sys as a leaf WorkUnit.
func unit(sys ecs.System) WorkUnit {
	return WorkUnit{kind: unitSystem, system: sys}
}

// WorkloadRef wraps a reference to another workload, identified by label,
// as a WorkUnit. The referenced workload must be registered in the
// SystemTable by the time the enclosing workload is flattened.
func WorkloadRef(label ecs.Label) WorkUnit {
	return WorkUnit{kind: unitWorkloadRef, workload: label}
}

// IsSystem reports whether this unit is a leaf system.
func (u WorkUnit) IsSystem() bool {
	return u.kind == unitSystem
}

// IsWorkloadRef reports whether this unit references another workload.
func (u WorkUnit) IsWorkloadRef() bool {
	return u.kind == unitWorkloadRef
}
