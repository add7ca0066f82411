package ecs

import (
	"reflect"
	"sort"
)

type byTypeName []reflect.Type

func (a byTypeName) Len() int           { return len(a) }
func (a byTypeName) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a byTypeName) Less(i, j int) bool { return a[i].String() < a[j].String() }

// componentStore maps component types to their columns. Liveness is the
// allocator's business: the store is only ever consulted with slot indices
// the caller has already generation-checked, except for the despawn sweep.
type componentStore struct {
	columns map[reflect.Type]column
}

func newComponentStore() *componentStore {
	return &componentStore{
		columns: make(map[reflect.Type]column),
	}
}

func (s *componentStore) column(t reflect.Type) (column, bool) {
	c, ok := s.columns[t]
	return c, ok
}

// ensure returns the column for t, creating it with make on first use.
func (s *componentStore) ensure(t reflect.Type, make func() column) column {
	if c, ok := s.columns[t]; ok {
		return c
	}
	c := make()
	s.columns[t] = c
	return c
}

// sweep removes every component attached to the given slot index. Called on
// despawn so that invariant "components exist only for live entities" holds.
func (s *componentStore) sweep(index uint32) {
	for _, c := range s.columns {
		c.removeAny(index)
	}
}

// componentTypes returns all known component types sorted by name, so that
// walks over the store are deterministic.
func (s *componentStore) componentTypes() []reflect.Type {
	types := make([]reflect.Type, 0, len(s.columns))
	for t := range s.columns {
		types = append(types, t)
	}
	sort.Sort(byTypeName(types))
	return types
}

func (s *componentStore) clear() {
	for _, c := range s.columns {
		c.clear()
	}
}
