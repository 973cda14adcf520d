package ecs

import (
	"testing"

	"oss.nandlabs.io/ecs/testing/assert"
)

func TestBorrowDescriptor_EqualIgnoresName(t *testing.T) {
	a := BorrowDescriptor{Name: "a", Mutability: Shared, StorageId: StorageIdOf[position]()}
	b := BorrowDescriptor{Name: "b", Mutability: Shared, StorageId: StorageIdOf[position]()}
	assert.True(t, a.Equal(b))
}

func TestBorrowDescriptor_NotEqualOnMutability(t *testing.T) {
	a := Global[position](Shared, true)
	b := Global[position](Exclusive, true)
	assert.False(t, a.Equal(b))
}

func TestAllStoragesBorrow_UsesAllStoragesId(t *testing.T) {
	a := AllStoragesBorrow(Shared)
	assert.True(t, a.StorageId.IsAllStorages())
}

func TestNewSystem_IdentityFromTypeParam(t *testing.T) {
	sysA := NewSystem[moveSystem]("move", nil, nil)
	sysA2 := NewSystem[moveSystem]("move-again", nil, nil)
	sysB := NewSystem[renderSystem]("render", nil, nil)

	assert.Equal(t, sysA.Type, sysA2.Type)
	assert.NotEqual(t, sysA.Type, sysB.Type)
}

func TestSystem_BorrowsNilGenerator(t *testing.T) {
	sys := NewSystem[moveSystem]("move", nil, nil)
	assert.Nil(t, sys.Borrows())
}
