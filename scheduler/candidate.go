package scheduler

import "oss.nandlabs.io/ecs"

// Candidate is one system ready to be packed into a batch: its dense index
// (as assigned by a workload.SystemTable), the System record, and the
// borrows it declared. It mirrors workload.Flattened without importing the
// workload package, keeping scheduler a leaf dependency of ecs alone.
type Candidate struct {
	Index  int
	System ecs.System
	Borrow []ecs.BorrowDescriptor
}
