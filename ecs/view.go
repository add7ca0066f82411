package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

// iface mirrors the internal memory layout of an interface value.
type iface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}

// View is a typed accessor over entities carrying a specific combination of
// components. The type T must be a struct whose fields are pointers to
// component types; embedded fields are required, and named fields may carry
// an `ecs:"optional"` tag (populated with nil when absent) or an
// `ecs:"exclude"` tag (the entity must not carry that type; the field is
// always nil).
type View[T any] struct {
	world       *World
	types       []reflect.Type
	optional    []bool
	exclude     []bool
	fieldOffset []uintptr
}

// NewView creates a view for the given struct type. Panics if T is not a
// struct of pointer fields or a tag value is unknown.
func NewView[T any](w *World) *View[T] {
	var zero T
	structType := reflect.TypeOf(zero)

	if structType.Kind() != reflect.Struct {
		panic("View type parameter must be a struct")
	}

	v := &View[T]{
		world:       w,
		types:       make([]reflect.Type, 0, structType.NumField()),
		optional:    make([]bool, 0, structType.NumField()),
		exclude:     make([]bool, 0, structType.NumField()),
		fieldOffset: make([]uintptr, 0, structType.NumField()),
	}

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		if field.Type.Kind() != reflect.Ptr {
			panic("View struct fields must be pointer types")
		}

		var isOptional, isExclude bool
		if !field.Anonymous {
			switch tag := field.Tag.Get("ecs"); tag {
			case "":
			case "optional":
				isOptional = true
			case "exclude":
				isExclude = true
			default:
				panic("invalid ecs tag value: \"" + tag + "\" (supported: \"optional\", \"exclude\")")
			}
		}

		v.types = append(v.types, field.Type.Elem())
		v.optional = append(v.optional, isOptional)
		v.exclude = append(v.exclude, isExclude)
		v.fieldOffset = append(v.fieldOffset, field.Offset)
	}

	return v
}

// Init re-targets the view at a world. Called by the scheduler when a
// system struct declares a Query field.
func (v *View[T]) Init(w *World) {
	*v = *NewView[T](w)
}

// fill populates the struct at ptr for the entity's slot index. Returns
// false when a required component is missing or an excluded one is present.
func (v *View[T]) fill(index uint32, ptr *T) bool {
	structPtr := unsafe.Pointer(ptr)

	for i, componentType := range v.types {
		fieldPtr := unsafe.Pointer(uintptr(structPtr) + v.fieldOffset[i])

		c, ok := v.world.store.column(componentType)
		if !ok || !c.has(index) {
			if v.exclude[i] || v.optional[i] {
				*(*unsafe.Pointer)(fieldPtr) = nil
				continue
			}
			return false
		}

		if v.exclude[i] {
			return false
		}

		// Pull the raw pointer out of the interface so the field points at
		// the stored component, not a copy.
		component := c.getAny(index)
		*(*unsafe.Pointer)(fieldPtr) = (*iface)(unsafe.Pointer(&component)).data
	}

	return true
}

// Get returns a populated view struct for the entity, or nil when the
// entity is stale or does not match. The contained pointers are valid until
// the next structural change; do not hold them across mutations.
func (v *View[T]) Get(e Entity) *T {
	if !v.world.alloc.isLive(e) {
		return nil
	}

	var result T
	if !v.fill(e.Index(), &result) {
		return nil
	}
	return &result
}

// requiredTypes returns the component types an entity must carry to match.
func (v *View[T]) requiredTypes() []reflect.Type {
	required := make([]reflect.Type, 0, len(v.types))
	for i, t := range v.types {
		if !v.optional[i] && !v.exclude[i] {
			required = append(required, t)
		}
	}
	return required
}

// excludedTypes returns the component types an entity must not carry.
func (v *View[T]) excludedTypes() []reflect.Type {
	excluded := make([]reflect.Type, 0, len(v.types))
	for i, t := range v.types {
		if v.exclude[i] {
			excluded = append(excluded, t)
		}
	}
	return excluded
}

// Iter iterates all matching entities with their populated view structs.
// The matching set is computed fresh on every call and snapshotted before
// the first yield, so systems may mutate the world while ranging.
func (v *View[T]) Iter() iter.Seq2[Entity, T] {
	matched := v.world.queryEntities(QuerySpec{
		Include: v.requiredTypes(),
		Exclude: v.excludedTypes(),
	})

	return func(yield func(Entity, T) bool) {
		var result T
		for _, e := range matched {
			if !v.fill(e.Index(), &result) {
				continue
			}
			if !yield(e, result) {
				return
			}
		}
	}
}

// Values iterates just the view structs, for callers that do not care which
// entity each one belongs to.
func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range v.Iter() {
			if !yield(value) {
				return
			}
		}
	}
}

// Spawn creates a new entity carrying the components pointed to by data's
// fields. Optional fields left nil are skipped; required fields must be
// set. Component types never seen by this world must be registered first.
func (v *View[T]) Spawn(data T) Entity {
	structPtr := unsafe.Pointer(&data)
	e := v.world.Spawn()

	for i, componentType := range v.types {
		if v.exclude[i] {
			continue
		}

		fieldPtr := unsafe.Pointer(uintptr(structPtr) + v.fieldOffset[i])
		componentPtr := *(*unsafe.Pointer)(fieldPtr)
		if componentPtr == nil {
			if !v.optional[i] {
				panic("required component " + componentType.String() + " is nil in View.Spawn")
			}
			continue
		}

		c := v.world.columnForType(componentType)
		value := reflect.NewAt(componentType, componentPtr).Elem().Interface()
		c.insertAny(e.Index(), value)
	}

	return e
}
