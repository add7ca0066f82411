package ecs

import "reflect"

// ComponentRegistry holds storage factories for component types that should
// exist before any value is inserted, such as types only ever matched by
// queries or spawned from generated code. Component types used through the
// generic world operations do not need pre-registration; their columns are
// created lazily at the first insert.
type ComponentRegistry struct {
	factories map[reflect.Type]func() column
	order     []reflect.Type
}

// NewComponentRegistry creates an empty component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() column),
	}
}

// RegisterComponent registers storage for component type T. Registering the
// same type twice is a no-op.
func RegisterComponent[T any](r *ComponentRegistry) {
	t := reflect.TypeFor[T]()
	if _, ok := r.factories[t]; ok {
		return
	}
	r.factories[t] = func() column {
		return newTypedColumn[T]()
	}
	r.order = append(r.order, t)
}

// Types returns the registered component types in registration order.
func (r *ComponentRegistry) Types() []reflect.Type {
	return r.order
}
