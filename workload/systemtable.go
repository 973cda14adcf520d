package workload

import "oss.nandlabs.io/ecs"

// SystemTable is the process-wide system registry Flatten consults. It
// dedups systems by their Type (the same system appearing in two workloads
// is interned once and shared), and resolves WorkloadRef units by returning
// the dense indices a previously registered workload runs, in order.
//
// registry.WorkloadRegistry implements SystemTable; workload depends only
// on this interface, never on the registry package, so the two packages
// don't form an import cycle.
type SystemTable interface {
	// Intern registers sys if its Type has not been seen before, and
	// returns the dense index assigned to it either way, plus the System
	// record actually stored at that index (the first one registered for
	// that Type, not necessarily sys itself).
	Intern(sys ecs.System) (index int, rec ecs.System)
	// Sequential returns the dense indices the workload registered under
	// label runs, in registration order, and whether label is known at all.
	Sequential(label ecs.Label) (indices []int, ok bool)
	// At returns the System record stored at a dense index. Index must
	// have come from Intern or Sequential on the same table.
	At(index int) ecs.System
}
