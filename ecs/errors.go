package ecs

import "github.com/rotisserie/eris"

// Sentinel errors returned by world operations. All of them are matchable
// with errors.Is even when wrapped with call-site context.
var (
	// ErrStaleEntity means the operation referenced an entity whose
	// generation no longer matches its slot: the handle was held past a
	// despawn, or despawned twice.
	ErrStaleEntity = eris.New("stale entity handle")

	// ErrMissingComponent means the entity is live but does not carry the
	// requested component type.
	ErrMissingComponent = eris.New("component not present on entity")

	// ErrResourceNotFound means no resource instance is registered for the
	// requested type.
	ErrResourceNotFound = eris.New("resource not found")

	// ErrDuplicateResource means an insert was attempted while an instance
	// of that resource type already exists. Remove it first to replace.
	ErrDuplicateResource = eris.New("resource type already present")

	// ErrScheduleCycle means the before/after constraints of a schedule are
	// contradictory. Building the execution order fails outright; there is
	// no sane partial order to fall back to.
	ErrScheduleCycle = eris.New("schedule ordering constraints form a cycle")

	// ErrUnknownSchedule means a run or registration referenced a schedule
	// label that was never created.
	ErrUnknownSchedule = eris.New("unknown schedule label")

	// ErrScheduleReentry means a system attempted to run a schedule from
	// within a running schedule. Re-entering the scheduler is disallowed
	// and fails fast.
	ErrScheduleReentry = eris.New("schedule run re-entered from a system")
)
