package ecs

import "reflect"

// System is a unit of per-frame (or per-phase) behavior. User systems
// implement this interface; struct fields of type Query or Res are
// initialized automatically when the system is registered, and custom state
// fields persist between frames.
type System interface {
	Execute(frame *Frame)
}

// SystemFunc adapts a plain function to the System interface.
type SystemFunc func(frame *Frame)

func (f SystemFunc) Execute(frame *Frame) { f(frame) }

// RunCondition is a predicate evaluated immediately before a system would
// run. When it returns false the system is skipped entirely for that
// invocation. A nil condition means always run.
type RunCondition func(w *World) bool

// RunOnce returns a condition that passes on the first evaluation and fails
// forever after, for one-shot setup systems living in a repeating schedule.
func RunOnce() RunCondition {
	ran := false
	return func(*World) bool {
		if ran {
			return false
		}
		ran = true
		return true
	}
}

// ResourceExists returns a condition that passes while a resource of type T
// is registered.
func ResourceExists[T any]() RunCondition {
	return func(w *World) bool {
		return HasResource[T](w)
	}
}

// OnEvent returns a condition that passes when at least one event of type E
// is visible this frame.
func OnEvent[E any]() RunCondition {
	return func(w *World) bool {
		q := queueFor[E](w.events)
		return len(q.current) > 0
	}
}

// Access declares the component and resource types a system reads and
// writes. Recorded so a future scheduler revision can validate disjointness
// and run non-conflicting systems in parallel; not enforced today.
type Access struct {
	Reads  []reflect.Type
	Writes []reflect.Type
}

// SystemOption configures a system at registration time.
type SystemOption func(*systemEntry)

// RunsBefore constrains this system to execute before the named one. A
// constraint naming a system not currently registered is held but inert
// until that system appears.
func RunsBefore(name string) SystemOption {
	return func(e *systemEntry) {
		e.before = append(e.before, name)
	}
}

// RunsAfter constrains this system to execute after the named one.
func RunsAfter(name string) SystemOption {
	return func(e *systemEntry) {
		e.after = append(e.after, name)
	}
}

// WithRunCondition attaches a run condition to the system.
func WithRunCondition(c RunCondition) SystemOption {
	return func(e *systemEntry) {
		e.condition = c
	}
}

// Reads records component or resource types the system reads.
func Reads(types ...reflect.Type) SystemOption {
	return func(e *systemEntry) {
		e.access.Reads = append(e.access.Reads, types...)
	}
}

// Writes records component or resource types the system writes.
func Writes(types ...reflect.Type) SystemOption {
	return func(e *systemEntry) {
		e.access.Writes = append(e.access.Writes, types...)
	}
}
