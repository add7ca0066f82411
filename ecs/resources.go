package ecs

import (
	"reflect"
	"sort"

	"github.com/rotisserie/eris"
)

// resourceRegistry stores at most one instance per type, keyed by the type
// alone. Values are held as *T so a fetched pointer stays valid for the
// lifetime of the instance.
type resourceRegistry struct {
	items map[reflect.Type]any
}

func newResourceRegistry() *resourceRegistry {
	return &resourceRegistry{
		items: make(map[reflect.Type]any),
	}
}

func (r *resourceRegistry) types() []reflect.Type {
	types := make([]reflect.Type, 0, len(r.items))
	for t := range r.items {
		types = append(types, t)
	}
	sort.Sort(byTypeName(types))
	return types
}

func (r *resourceRegistry) clear() {
	clear(r.items)
}

// InsertResource registers v as the singleton instance of its type. Fails
// with ErrDuplicateResource if an instance already exists; callers wanting
// replace semantics must RemoveResource first.
func InsertResource[T any](w *World, v T) error {
	t := reflect.TypeFor[T]()
	if _, ok := w.resources.items[t]; ok {
		return eris.Wrapf(ErrDuplicateResource, "insert %s", t)
	}
	w.resources.items[t] = &v
	return nil
}

// GetResource returns a pointer to the registered instance of T. The
// pointer is mutable; there is no separate read-only accessor.
func GetResource[T any](w *World) (*T, error) {
	t := reflect.TypeFor[T]()
	v, ok := w.resources.items[t]
	if !ok {
		return nil, eris.Wrapf(ErrResourceNotFound, "get %s", t)
	}
	return v.(*T), nil
}

// RemoveResource deletes the instance of T from the registry and returns
// it, or false if none was registered.
func RemoveResource[T any](w *World) (*T, bool) {
	t := reflect.TypeFor[T]()
	v, ok := w.resources.items[t]
	if !ok {
		return nil, false
	}
	delete(w.resources.items, t)
	return v.(*T), true
}

// HasResource reports whether an instance of T is registered.
func HasResource[T any](w *World) bool {
	_, ok := w.resources.items[reflect.TypeFor[T]()]
	return ok
}

// Res provides access to a resource from a system struct field. The
// scheduler initializes Res fields automatically during registration, the
// same way it initializes Query fields.
type Res[T any] struct {
	world *World
}

// Init wires the accessor to a world. Called by the scheduler; only needed
// directly when constructing a Res outside a registered system.
func (r *Res[T]) Init(w *World) {
	r.world = w
}

// Get returns the resource instance, or nil if none is registered.
func (r *Res[T]) Get() *T {
	v, err := GetResource[T](r.world)
	if err != nil {
		return nil
	}
	return v
}

// Exists reports whether the resource is currently registered.
func (r *Res[T]) Exists() bool {
	return HasResource[T](r.world)
}
