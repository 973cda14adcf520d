package executor

import (
	"runtime"

	"oss.nandlabs.io/ecs/config"
)

// capacityKey is the configuration key NewPooledFromConfig reads the
// worker pool's concurrency limit from.
const capacityKey = "ecs.executor.capacity"

// NewPooledFromConfig builds a Pooled executor sized by cfg's
// "ecs.executor.capacity" entry, defaulting to the number of logical CPUs
// when absent — following the teacher's config.Configuration idiom of a
// typed getter with a default rather than a separate presence check.
func NewPooledFromConfig(cfg config.Configuration) (*Pooled, error) {
	capacity, err := cfg.GetAsInt(capacityKey, runtime.NumCPU())
	if err != nil {
		return nil, err
	}
	return NewPooled(capacity)
}
