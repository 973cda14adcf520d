package scheduler

import "oss.nandlabs.io/ecs"

// classify looks for the first borrow, in declaration order, that forces
// this system to run alone: a borrow of ecs.AllStorages, or a borrow that
// isn't thread-safe. At most one of the two return values is non-nil —
// the scan stops at whichever condition is met first.
func classify(borrow []ecs.BorrowDescriptor) (allStorages, notThreadSafe *ecs.BorrowDescriptor) {
	for i := range borrow {
		b := &borrow[i]
		if b.StorageId.IsAllStorages() {
			return b, nil
		}
		if !b.ThreadSafe {
			return nil, b
		}
	}
	return nil, nil
}

// detectConflict reports whether mine (one of the candidate system's own
// borrows) conflicts with other (one borrow of a system already placed in
// the batch being considered), and if so builds the ecs.Conflict
// describing it. otherSystem identifies the system other belongs to.
func detectConflict(mine, other ecs.BorrowDescriptor, otherSystem ecs.SystemId) *ecs.Conflict {
	if !mine.ThreadSafe && !other.ThreadSafe {
		return &ecs.Conflict{
			Kind:          ecs.ConflictOtherNotSendSync,
			OtherSystem:   otherSystem,
			OtherTypeInfo: other,
		}
	}

	switch mine.Mutability {
	case ecs.Exclusive:
		if mine.StorageId == other.StorageId || mine.StorageId.IsAllStorages() || other.StorageId.IsAllStorages() {
			m := mine
			return &ecs.Conflict{Kind: ecs.ConflictBorrow, TypeInfo: &m, OtherSystem: otherSystem, OtherTypeInfo: other}
		}
	case ecs.Shared:
		if (mine.StorageId == other.StorageId && other.Mutability == ecs.Exclusive) ||
			mine.StorageId.IsAllStorages() || other.StorageId.IsAllStorages() {
			m := mine
			return &ecs.Conflict{Kind: ecs.ConflictBorrow, TypeInfo: &m, OtherSystem: otherSystem, OtherTypeInfo: other}
		}
	}
	return nil
}

// lastParallelWithBorrow returns the last (most recently added) system in
// parallel that actually declared a borrow, searching from the end. A
// system with no borrows at all can't conflict with anything, so it's
// skipped.
func lastParallelWithBorrow(parallel []ecs.SystemInfo) *ecs.SystemInfo {
	for i := len(parallel) - 1; i >= 0; i-- {
		if len(parallel[i].Borrow) > 0 {
			return &parallel[i]
		}
	}
	return nil
}

func systemInfo(c Candidate, conflict *ecs.Conflict) ecs.SystemInfo {
	return ecs.SystemInfo{
		Name:     c.System.Name,
		Type:     ecs.SystemId{Name: c.System.Name, Type: c.System.Type},
		Borrow:   c.Borrow,
		Conflict: conflict,
	}
}

func systemIdOf(info ecs.SystemInfo) ecs.SystemId {
	return info.Type
}
