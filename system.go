package ecs

import (
	"context"
	"reflect"
)

// System is one unit of work a workload can schedule. Its Type is the
// identity the scheduler uses to deduplicate the same system appearing in
// more than one workload; two Systems sharing a Type are treated as the
// same system.
type System struct {
	// Name is used in diagnostics (SystemInfo, SystemId) and logging.
	Name string
	// Type identifies the system. Construct a System with NewSystem[S] to
	// have this minted automatically from the type parameter S.
	Type reflect.Type
	// Generator computes this system's borrow descriptors on demand.
	Generator BorrowGenerator
	// Run executes the system. It must return promptly when ctx is done.
	Run func(ctx context.Context) error
}

// NewSystem constructs a System whose identity is the type S (typically a
// caller-defined marker type unique to that system, mirroring how each
// system function has a distinct type in the source this scheduler design
// is based on).
func NewSystem[S any](name string, run func(ctx context.Context) error, gen BorrowGenerator) System {
	return System{
		Name:      name,
		Type:      typeOf[S](),
		Generator: gen,
		Run:       run,
	}
}

// Borrows evaluates the system's BorrowGenerator, or returns nil if it has
// none (a system with no declared borrows never conflicts with anything).
func (s System) Borrows() []BorrowDescriptor {
	if s.Generator == nil {
		return nil
	}
	return s.Generator(s.Type)
}

// SystemId identifies a system in diagnostics. Equality is by Type alone,
// matching the scheduler's own notion of system identity.
type SystemId struct {
	Name string
	Type reflect.Type
}

// Equal compares two SystemIds by their underlying system Type.
func (s SystemId) Equal(o SystemId) bool {
	return s.Type == o.Type
}

func (s SystemId) String() string {
	return s.Name
}
