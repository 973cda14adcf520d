// Package registry holds every system and workload known to a process and
// runs them. WorkloadRegistry interns systems by type and resolves nested
// workload references (implementing workload.SystemTable); World wraps a
// WorkloadRegistry with the public add/run surface and an Executor.
package registry
