package ecs

import "reflect"

// Mutability describes whether a system observes or modifies a storage.
type Mutability int

const (
	// Shared means the system only reads the storage.
	Shared Mutability = iota
	// Exclusive means the system reads and/or writes the storage.
	Exclusive
)

func (m Mutability) String() string {
	if m == Exclusive {
		return "exclusive"
	}
	return "shared"
}

// BorrowDescriptor names one storage a system depends on, how it is
// accessed, and whether concurrent access to it from multiple goroutines is
// safe. It is the unit the batch planner uses to detect conflicts between
// systems.
type BorrowDescriptor struct {
	// Name is a human-readable label for diagnostics (type name, optionally
	// qualified with the owning system for local storages).
	Name string
	// Mutability is Shared for read-only access, Exclusive otherwise.
	Mutability Mutability
	// StorageId identifies which storage is being borrowed.
	StorageId StorageId
	// ThreadSafe is false for component types that are not safe to access
	// from a goroutine other than the one that owns the scheduler; such
	// borrows force their system out of any parallel batch.
	ThreadSafe bool
}

// Equal compares two descriptors the way the planner does: by the storage
// they name and how they access it, ignoring the diagnostic Name field.
func (b BorrowDescriptor) Equal(o BorrowDescriptor) bool {
	return b.StorageId == o.StorageId && b.Mutability == o.Mutability
}

// Global builds a BorrowDescriptor for a global (shared) storage of
// component type T.
func Global[T any](m Mutability, threadSafe bool) BorrowDescriptor {
	t := typeOf[T]()
	return BorrowDescriptor{
		Name:       t.String(),
		Mutability: m,
		StorageId:  StorageIdOf[T](),
		ThreadSafe: threadSafe,
	}
}

// LocalBorrow builds a BorrowDescriptor for a storage of component type T
// privately owned by system type S.
func LocalBorrow[T any, S any](m Mutability, threadSafe bool) BorrowDescriptor {
	t := typeOf[T]()
	return BorrowDescriptor{
		Name:       t.String() + "@local",
		Mutability: m,
		StorageId:  LocalStorageIdOf[T, S](),
		ThreadSafe: threadSafe,
	}
}

// AllStoragesBorrow builds a BorrowDescriptor against the reserved
// AllStorages StorageId.
func AllStoragesBorrow(m Mutability) BorrowDescriptor {
	return BorrowDescriptor{
		Name:       "AllStorages",
		Mutability: m,
		StorageId:  AllStorages,
		ThreadSafe: true,
	}
}

// BorrowGenerator produces the borrow descriptors for a system. It receives
// the system's own type so it can mint LocalStorageIdOf[T, S] entries for
// storages the system privately owns.
type BorrowGenerator func(owner reflect.Type) []BorrowDescriptor
