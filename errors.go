package ecs

import (
	"errors"
	"fmt"

	"oss.nandlabs.io/ecs/errutils"
)

// ErrUnknownWorkload is returned when a WorkloadBuilder references a nested
// workload by label that has not been registered yet.
var ErrUnknownWorkload = errors.New("referenced workload is not registered")

// ErrWorkloadAlreadyExists is returned when registering a workload under a
// label that is already taken.
var ErrWorkloadAlreadyExists = errors.New("workload with this label already exists")

var addErrorTemplate = errutils.NewCustomError("add workload %v: %v")

// AddError wraps a failure to build or register a workload with the label
// it was being added under.
type AddError struct {
	Label Label
	Cause error
}

// NewAddError builds an AddError for the given label and underlying cause.
func NewAddError(label Label, cause error) *AddError {
	return &AddError{Label: label, Cause: cause}
}

func (e *AddError) Error() string {
	return addErrorTemplate.Err(e.Label, e.Cause).Error()
}

// Unwrap exposes the underlying cause for errors.Is/errors.As.
func (e *AddError) Unwrap() error {
	return e.Cause
}

// UniquePresenceError is returned by WorkloadBuilder.CheckUniquesPresent
// when a unique (singleton) storage a system depends on has not been
// registered in the world.
type UniquePresenceError struct {
	Missing BorrowDescriptor
}

func (e *UniquePresenceError) Error() string {
	return fmt.Sprintf("unique storage %q is not present in the world", e.Missing.Name)
}

// RunError wraps a failure observed while running a workload with the
// workload label. System names the failing system when the executor sets
// it; executor.Pooled sets only Label and Cause, leaving System zero.
type RunError struct {
	Label  Label
	System SystemId
	Cause  error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("run workload %v: system %s: %v", e.Label, e.System.Name, e.Cause)
}

// Unwrap exposes the underlying cause for errors.Is/errors.As.
func (e *RunError) Unwrap() error {
	return e.Cause
}
