package ecs

import "reflect"

type storageKind uint8

const (
	globalStorageKind storageKind = iota
	localStorageKind
)

// StorageId identifies a storage a system borrows from. Two kinds exist:
// global storages (one per component type, shared by every system) and
// local storages (one per component type, private to a single system type).
// StorageId is a plain value type; equality is struct equality.
type StorageId struct {
	kind   storageKind
	typ    reflect.Type
	system reflect.Type
}

// IsLocal reports whether this StorageId names a system-local storage.
func (id StorageId) IsLocal() bool {
	return id.kind == localStorageKind
}

// Type returns the component type the storage holds.
func (id StorageId) Type() reflect.Type {
	return id.typ
}

// System returns the owning system's type for a local StorageId, and nil
// for a global one.
func (id StorageId) System() reflect.Type {
	return id.system
}

func (id StorageId) String() string {
	if id.typ == allStoragesType {
		return "AllStorages"
	}
	if id.kind == localStorageKind {
		return id.typ.String() + "@" + id.system.String()
	}
	return id.typ.String()
}

// StorageIdOf returns the global StorageId for component type T.
func StorageIdOf[T any]() StorageId {
	return StorageId{kind: globalStorageKind, typ: typeOf[T]()}
}

// LocalStorageIdOf returns the StorageId for component type T as privately
// owned by system type S. Two local storages of the same component type T
// but different owning systems S are distinct StorageIds.
func LocalStorageIdOf[T any, S any]() StorageId {
	return StorageId{kind: localStorageKind, typ: typeOf[T](), system: typeOf[S]()}
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// allStoragesMarker is the sentinel component type backing the reserved
// AllStorages StorageId: a borrow against it conflicts with every other
// borrow, including another AllStorages borrow, since it represents the
// entire world rather than a single component store.
type allStoragesMarker struct{}

var allStoragesType = typeOf[allStoragesMarker]()

// AllStorages is the reserved StorageId representing the entire set of
// storages at once (e.g. for systems that add or remove storages).
var AllStorages = StorageId{kind: globalStorageKind, typ: allStoragesType}

// IsAllStorages reports whether id is the reserved AllStorages StorageId.
func (id StorageId) IsAllStorages() bool {
	return id.kind == globalStorageKind && id.typ == allStoragesType
}
