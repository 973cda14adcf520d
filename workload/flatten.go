package workload

import "oss.nandlabs.io/ecs"

// Flattened is one system ready for the batch planner: its dense index
// (shared identity across every workload that uses it), the System record,
// and the borrow constraints evaluated for it.
type Flattened struct {
	Index  int
	System ecs.System
	Borrow []ecs.BorrowDescriptor
}

// Flatten expands work units into a dense, ordered list of systems,
// resolving nested workload references against table. The same system
// appearing twice (directly, or via two different nested workloads) yields
// two entries sharing the same Index — duplicates are preserved, not
// deduplicated, because the scheduler still needs to run each occurrence.
//
// Ported from shipyard's flatten_work_unit: a system is registered with the
// table once per distinct Type (the table's own Intern call handles that),
// but the flattened list itself is a straight concatenation.
func Flatten(units []WorkUnit, table SystemTable) []Flattened {
	out := make([]Flattened, 0, len(units))
	for _, u := range units {
		flattenInto(u, table, &out)
	}
	return out
}

func flattenInto(u WorkUnit, table SystemTable, out *[]Flattened) {
	switch u.kind {
	case unitSystem:
		idx, rec := table.Intern(u.system)
		*out = append(*out, Flattened{Index: idx, System: rec, Borrow: rec.Borrows()})
	case unitWorkloadRef:
		indices, ok := table.Sequential(u.workload)
		if !ok {
			return
		}
		for _, idx := range indices {
			sys := table.At(idx)
			*out = append(*out, Flattened{Index: idx, System: sys, Borrow: sys.Borrows()})
		}
	}
}
