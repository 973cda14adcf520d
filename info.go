package ecs

// Label names a workload in the registry. Any comparable value works;
// strings are the common case, but callers may use an enum type instead.
type Label = any

// ConflictKind distinguishes the ways a system could fail to join a batch.
type ConflictKind int

const (
	// ConflictBorrow means the system's own borrow constraints collide with
	// another system already scheduled in the candidate batch.
	ConflictBorrow ConflictKind = iota
	// ConflictOtherNotSendSync means a prior system in the candidate batch
	// has a borrow that is not thread-safe, which forecloses any sharing of
	// that batch regardless of what this system itself borrows.
	ConflictOtherNotSendSync
)

// Conflict pinpoints the type and system that kept a system out of the
// previous batch.
type Conflict struct {
	Kind ConflictKind
	// TypeInfo is this system's borrow that triggered the conflict. Present
	// for ConflictBorrow.
	TypeInfo *BorrowDescriptor
	// OtherSystem is the system already in the batch that this system
	// conflicts with.
	OtherSystem SystemId
	// OtherTypeInfo is the conflicting system's borrow.
	OtherTypeInfo BorrowDescriptor
}

// SystemInfo is the scheduler's diagnostic record for one system placed (or
// attempted to be placed) into a workload.
type SystemInfo struct {
	Name     string
	Type     SystemId
	Borrow   []BorrowDescriptor
	Conflict *Conflict
}

// BatchInfo describes one batch: an optional main-thread system that must
// run alone (because it borrows AllStorages or a non-thread-safe storage),
// plus any systems that can run alongside each other in parallel.
type BatchInfo struct {
	Main     *SystemInfo
	Parallel []SystemInfo
}

// WorkloadInfo is the full diagnostic surface returned by building or
// registering a workload: every batch it was split into, and why.
type WorkloadInfo struct {
	Label     Label
	BatchInfo []BatchInfo
}
