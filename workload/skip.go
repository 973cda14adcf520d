package workload

import "oss.nandlabs.io/ecs"

// SkipPredicate decides whether a run of the workload should be skipped
// entirely. Predicates must be side-effect-free; they may be evaluated in
// any order and short-circuit on the first true result.
type SkipPredicate func() bool

// StorageInspector is implemented by the host application's storage layer
// (out of scope for this module) so SkipIfStorageEmpty and
// SkipIfMissingUnique can answer "is this storage empty". If a Builder has
// no inspector configured, both treat every storage as empty — matching the
// rule that an absent storage counts as empty.
type StorageInspector interface {
	IsEmpty(id ecs.StorageId) bool
}
