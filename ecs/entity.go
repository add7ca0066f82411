package ecs

import "strconv"

// Entity is a generational handle to a world object. The slot index lives in
// the lower 32 bits and the slot generation in the upper 32 bits, so two
// handles are equal only when both index and generation match.
type Entity uint64

// NewEntity packs a slot index and generation into an Entity.
func NewEntity(index uint32, generation uint32) Entity {
	return Entity(uint64(generation)<<32 | uint64(index))
}

// Index extracts the storage slot index from the entity.
func (e Entity) Index() uint32 {
	return uint32(e & 0xFFFFFFFF)
}

// Generation extracts the slot generation from the entity.
func (e Entity) Generation() uint32 {
	return uint32(e >> 32)
}

func (e Entity) String() string {
	return "e" + strconv.FormatUint(uint64(e.Index()), 10) +
		"v" + strconv.FormatUint(uint64(e.Generation()), 10)
}
