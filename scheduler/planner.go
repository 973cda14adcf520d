package scheduler

import "oss.nandlabs.io/ecs"

// Plan packs candidates, in order, into batches. It returns the packed
// Batches (ready for an executor) and the parallel WorkloadInfo.BatchInfo
// diagnostic describing why each system landed where it did.
//
// Ported from shipyard's create_workload: a single system is packed
// trivially; two or more systems are packed by scanning backward through
// the batches built so far, bubbling a system as early as it can safely
// go before a conflict forces it to stop.
func Plan(candidates []Candidate) (*Batches, []ecs.BatchInfo) {
	batches := &Batches{}
	var diag []ecs.BatchInfo

	if len(candidates) == 0 {
		return batches, diag
	}

	if len(candidates) == 1 {
		c := candidates[0]
		batches.Sequential = append(batches.Sequential, c.Index)
		allStorages, notThreadSafe := classify(c.Borrow)
		info := systemInfo(c, nil)
		if allStorages != nil || notThreadSafe != nil {
			idx := c.Index
			batches.Parallel = append(batches.Parallel, ParallelSlot{Main: &idx})
			diag = append(diag, ecs.BatchInfo{Main: &info})
		} else {
			batches.Parallel = append(batches.Parallel, ParallelSlot{Parallel: []int{c.Index}})
			diag = append(diag, ecs.BatchInfo{Parallel: []ecs.SystemInfo{info}})
		}
		return batches, diag
	}

candidateLoop:
	for _, c := range candidates {
		batches.Sequential = append(batches.Sequential, c.Index)
		valid := len(batches.Parallel)

		allStorages, notThreadSafe := classify(c.Borrow)

		if allStorages != nil {
			placed := false
			for i := len(diag) - 1; i >= 0; i-- {
				bi := diag[i]
				lastBorrowed := lastParallelWithBorrow(bi.Parallel)
				if bi.Main == nil && lastBorrowed == nil {
					valid = i
					continue
				}
				var other *ecs.SystemInfo
				if bi.Main != nil {
					other = bi.Main
				} else {
					other = lastBorrowed
				}
				info := systemInfo(c, &ecs.Conflict{
					Kind:          ecs.ConflictBorrow,
					TypeInfo:      allStorages,
					OtherSystem:   systemIdOf(*other),
					OtherTypeInfo: other.Borrow[len(other.Borrow)-1],
				})
				place(batches, &diag, valid, c.Index, info, true)
				placed = true
				break
			}
			if !placed {
				place(batches, &diag, valid, c.Index, systemInfo(c, nil), true)
			}
			continue candidateLoop
		}

		var conflict *ecs.Conflict
	batchScan:
		for i := len(diag) - 1; i >= 0; i-- {
			bi := diag[i]

			if notThreadSafe != nil && bi.Main != nil {
				info := systemInfo(c, &ecs.Conflict{
					Kind:          ecs.ConflictBorrow,
					TypeInfo:      notThreadSafe,
					OtherSystem:   systemIdOf(*bi.Main),
					OtherTypeInfo: bi.Main.Borrow[len(bi.Main.Borrow)-1],
				})
				place(batches, &diag, valid, c.Index, info, true)
				continue candidateLoop
			}

			others := make([]ecs.SystemInfo, 0, 1+len(bi.Parallel))
			if bi.Main != nil {
				others = append(others, *bi.Main)
			}
			others = append(others, bi.Parallel...)

			var found *ecs.Conflict
		others:
			for _, other := range others {
				for _, otherBorrow := range other.Borrow {
					for _, mine := range c.Borrow {
						if cf := detectConflict(mine, otherBorrow, systemIdOf(other)); cf != nil {
							found = cf
							break others
						}
					}
				}
			}
			if found != nil {
				conflict = found
				break batchScan
			}
			valid = i
		}

		info := systemInfo(c, conflict)
		place(batches, &diag, valid, c.Index, info, notThreadSafe != nil)
	}

	return batches, diag
}

// place inserts (index, info) into the batch at position valid, either
// into the batch's Main slot or appended to its Parallel list, growing
// batches/diag with a fresh batch if valid is past the end.
func place(batches *Batches, diag *[]ecs.BatchInfo, valid int, index int, info ecs.SystemInfo, asMain bool) {
	if valid < len(batches.Parallel) {
		if asMain {
			idx := index
			batches.Parallel[valid].Main = &idx
			(*diag)[valid].Main = &info
		} else {
			batches.Parallel[valid].Parallel = append(batches.Parallel[valid].Parallel, index)
			(*diag)[valid].Parallel = append((*diag)[valid].Parallel, info)
		}
		return
	}
	if asMain {
		idx := index
		batches.Parallel = append(batches.Parallel, ParallelSlot{Main: &idx})
		*diag = append(*diag, ecs.BatchInfo{Main: &info})
	} else {
		batches.Parallel = append(batches.Parallel, ParallelSlot{Parallel: []int{index}})
		*diag = append(*diag, ecs.BatchInfo{Parallel: []ecs.SystemInfo{info}})
	}
}
