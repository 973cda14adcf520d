// Package workload builds declarative lists of systems into a form the
// scheduler package can pack into batches: a Builder collects systems and
// nested-workload references, and Flatten expands that list, against a
// SystemTable, into a dense, ordered slice of systems with their borrow
// constraints attached.
package workload
