// Package ecs provides the core of an entity-component-system workload
// scheduler: it partitions a declarative list of systems into ordered
// batches, maximizing the parallelism available without violating any
// system's declared storage borrows.
//
// The package itself only describes the data model shared by the rest of
// the module — StorageId, BorrowDescriptor, System, and the diagnostic and
// error types the scheduler produces. Building workloads, packing batches,
// registering them and running them live in the workload, scheduler,
// registry and executor subpackages respectively.
//
//	import "oss.nandlabs.io/ecs/workload"  // WorkloadBuilder, Flattener
//	import "oss.nandlabs.io/ecs/scheduler" // Batches, Planner
//	import "oss.nandlabs.io/ecs/registry"  // WorkloadRegistry, World
//	import "oss.nandlabs.io/ecs/executor"  // Executor, Pooled
package ecs
