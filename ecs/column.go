package ecs

import (
	"reflect"

	"github.com/kamstrup/intmap"
)

// column is the type-erased face of per-type component storage. The world
// keeps one column per registered component type and consults the entity
// allocator before touching it, so a column itself only knows slot indices.
type column interface {
	insertAny(index uint32, value any) (prev any, replaced bool)
	removeAny(index uint32) (prev any, ok bool)
	getAny(index uint32) any
	has(index uint32) bool
	count() int
	owners() []uint32
	clear()
	componentType() reflect.Type
}

// typedColumn stores one component type densely, with an intmap from entity
// slot index to dense position. Removal swaps the last element into the
// hole, so iteration order is not stable across structural changes.
type typedColumn[T any] struct {
	sparse *intmap.Map[uint32, int]
	dense  []T
	owner  []uint32
}

func newTypedColumn[T any]() *typedColumn[T] {
	return &typedColumn[T]{
		sparse: intmap.New[uint32, int](64),
	}
}

// insert adds or replaces the value for the given slot index, returning the
// previous value when replacing.
func (c *typedColumn[T]) insert(index uint32, value T) (prev T, replaced bool) {
	if pos, ok := c.sparse.Get(index); ok {
		prev = c.dense[pos]
		c.dense[pos] = value
		return prev, true
	}

	c.sparse.Put(index, len(c.dense))
	c.dense = append(c.dense, value)
	c.owner = append(c.owner, index)
	return prev, false
}

// get returns a pointer to the stored value. The pointer is valid until the
// next structural change to this column.
func (c *typedColumn[T]) get(index uint32) (*T, bool) {
	pos, ok := c.sparse.Get(index)
	if !ok {
		return nil, false
	}
	return &c.dense[pos], true
}

// remove deletes the value for the slot index, moving the last dense entry
// into the freed position.
func (c *typedColumn[T]) remove(index uint32) (T, bool) {
	var zero T
	pos, ok := c.sparse.Get(index)
	if !ok {
		return zero, false
	}

	removed := c.dense[pos]
	last := len(c.dense) - 1
	if pos != last {
		c.dense[pos] = c.dense[last]
		c.owner[pos] = c.owner[last]
		c.sparse.Put(c.owner[pos], pos)
	}

	c.dense[last] = zero
	c.dense = c.dense[:last]
	c.owner = c.owner[:last]
	c.sparse.Del(index)
	return removed, true
}

func (c *typedColumn[T]) insertAny(index uint32, value any) (any, bool) {
	var concrete T
	switch v := value.(type) {
	case T:
		concrete = v
	case *T:
		concrete = *v
	default:
		panic("component value has type " + reflect.TypeOf(value).String() +
			", column stores " + c.componentType().String())
	}

	prev, replaced := c.insert(index, concrete)
	if !replaced {
		return nil, false
	}
	return prev, true
}

func (c *typedColumn[T]) removeAny(index uint32) (any, bool) {
	prev, ok := c.remove(index)
	if !ok {
		return nil, false
	}
	return prev, true
}

func (c *typedColumn[T]) getAny(index uint32) any {
	ptr, ok := c.get(index)
	if !ok {
		return nil
	}
	return ptr
}

func (c *typedColumn[T]) has(index uint32) bool {
	_, ok := c.sparse.Get(index)
	return ok
}

func (c *typedColumn[T]) count() int {
	return len(c.dense)
}

// owners returns the slot indices present in this column, in dense order.
// The slice is live storage; callers must not hold it across mutations.
func (c *typedColumn[T]) owners() []uint32 {
	return c.owner
}

func (c *typedColumn[T]) clear() {
	c.sparse.Clear()
	c.dense = c.dense[:0]
	c.owner = c.owner[:0]
}

func (c *typedColumn[T]) componentType() reflect.Type {
	return reflect.TypeFor[T]()
}
