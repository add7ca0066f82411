package ecs

import (
	"cmp"
	"iter"
	"reflect"
	"slices"
)

// QuerySpec names the component types an entity must carry (Include) and
// must not carry (Exclude) to match. The two sets must be disjoint;
// overlapping sets are a caller error.
type QuerySpec struct {
	Include []reflect.Type
	Exclude []reflect.Type
}

// ComponentType returns the reflect.Type used to key component type T in
// query specs and access sets.
func ComponentType[T any]() reflect.Type {
	return reflect.TypeFor[T]()
}

// Query computes the set of live entities matching spec, snapshotted at the
// instant of the call: mutations made while ranging the result do not feed
// back into it. Results are in ascending slot order.
//
// The candidate walk starts from the smallest included column, then filters
// by the remaining inclusions, the exclusions, and finally liveness.
func (w *World) Query(spec QuerySpec) iter.Seq[Entity] {
	matched := w.queryEntities(spec)
	return func(yield func(Entity) bool) {
		for _, e := range matched {
			if !yield(e) {
				return
			}
		}
	}
}

func (w *World) queryEntities(spec QuerySpec) []Entity {
	for _, t := range spec.Include {
		if slices.Contains(spec.Exclude, t) {
			panic("query includes and excludes the same component type " + t.String())
		}
	}

	exclude := make([]column, 0, len(spec.Exclude))
	for _, t := range spec.Exclude {
		if c, ok := w.store.column(t); ok {
			exclude = append(exclude, c)
		}
	}

	if len(spec.Include) == 0 {
		return w.queryAllEntities(exclude)
	}

	// Every included type must have a column; a type never stored matches
	// nothing.
	include := make([]column, 0, len(spec.Include))
	for _, t := range spec.Include {
		c, ok := w.store.column(t)
		if !ok {
			return nil
		}
		include = append(include, c)
	}

	smallest := include[0]
	for _, c := range include[1:] {
		if c.count() < smallest.count() {
			smallest = c
		}
	}

	matched := make([]Entity, 0, smallest.count())
candidates:
	for _, index := range smallest.owners() {
		for _, c := range include {
			if c != smallest && !c.has(index) {
				continue candidates
			}
		}
		for _, c := range exclude {
			if c.has(index) {
				continue candidates
			}
		}
		if !w.alloc.indexLive(index) {
			continue
		}
		matched = append(matched, w.alloc.entityAt(index))
	}

	slices.SortFunc(matched, func(a, b Entity) int {
		return cmp.Compare(a.Index(), b.Index())
	})
	return matched
}

// queryAllEntities handles the empty-include case: all live entities minus
// the exclusions. Already in slot order, courtesy of the allocator.
func (w *World) queryAllEntities(exclude []column) []Entity {
	matched := make([]Entity, 0, w.alloc.liveCount())
entities:
	for e := range w.alloc.entities() {
		for _, c := range exclude {
			if c.has(e.Index()) {
				continue entities
			}
		}
		matched = append(matched, e)
	}
	return matched
}

// Query gives a system typed access to its matching entities. Declare it as
// a struct field on the system; the scheduler initializes it at
// registration time:
//
//	type MovementSystem struct {
//		Moving ecs.Query[struct {
//			*Position
//			*Velocity
//		}]
//	}
//
// The matching set is recomputed on every Iter call, never cached across
// frames.
type Query[T any] struct {
	view *View[T]
}

// Init wires the query to a world. Called by the scheduler during system
// registration; only needed directly for queries built outside a system.
func (q *Query[T]) Init(w *World) {
	q.view = NewView[T](w)
}

// Iter iterates matching entities with their populated view structs.
func (q *Query[T]) Iter() iter.Seq2[Entity, T] {
	return q.view.Iter()
}

// Values iterates just the populated view structs.
func (q *Query[T]) Values() iter.Seq[T] {
	return q.view.Values()
}

// Get returns the populated view struct for one entity, or nil when it is
// stale or does not match.
func (q *Query[T]) Get(e Entity) *T {
	return q.view.Get(e)
}

// Count returns the number of matching entities.
func (q *Query[T]) Count() int {
	n := 0
	for range q.view.Iter() {
		n++
	}
	return n
}
