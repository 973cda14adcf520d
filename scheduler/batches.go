package scheduler

// SkipPredicate decides whether a run of the scheduled workload should be
// skipped entirely. Defined again here (rather than imported from
// workload) so scheduler never depends on workload; Builder converts its
// own workload.SkipPredicate values when it calls Plan.
type SkipPredicate func() bool

// ParallelSlot is one batch: at most one Main system, which the Planner
// could not prove safe to run alongside anything else, plus any number of
// Parallel systems that are mutually conflict-free.
type ParallelSlot struct {
	Main     *int
	Parallel []int
}

// Batches is the packed, executable form of a workload: a sequence of
// batches to run one after another, each internally parallel, plus the
// flat sequential order (used for diagnostics and for workloads that opt
// out of parallelism), and the skip predicates gating the whole run.
type Batches struct {
	Parallel   []ParallelSlot
	Sequential []int
	SkipIf     []SkipPredicate
}

// ShouldSkip evaluates every skip predicate and reports whether any of
// them returned true. Predicates are evaluated in order; evaluation stops
// at the first true result.
func (b *Batches) ShouldSkip() bool {
	for _, p := range b.SkipIf {
		if p() {
			return true
		}
	}
	return false
}
