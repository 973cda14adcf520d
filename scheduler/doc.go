// Package scheduler packs an ordered list of systems into batches: groups
// of systems that can run concurrently without violating any of their
// declared storage borrows. Systems run in the order they were declared
// whenever a conflict forces sequential execution, and as much in parallel
// as the borrow graph allows otherwise.
package scheduler
