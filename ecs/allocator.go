package ecs

import (
	"container/heap"
	"iter"
)

// indexHeap is a min-heap of free slot indices. Spawn always reuses the
// lowest free index so entity layouts stay dense and deterministic.
type indexHeap []uint32

func (h indexHeap) Len() int           { return len(h) }
func (h indexHeap) Less(i, j int) bool { return h[i] < h[j] }
func (h indexHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *indexHeap) Push(x any) { *h = append(*h, x.(uint32)) }

func (h *indexHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// entityAllocator issues and recycles generational entity handles.
// A slot's generation is bumped when the entity in it is despawned, which
// invalidates every handle that still carries the old generation.
type entityAllocator struct {
	generations []uint32
	alive       []bool
	free        indexHeap
}

func newEntityAllocator() *entityAllocator {
	return &entityAllocator{}
}

// spawn returns a fresh entity, reusing the lowest free slot if one exists.
// The generation of a reused slot was already bumped by the despawn that
// freed it.
func (a *entityAllocator) spawn() Entity {
	if a.free.Len() > 0 {
		index := heap.Pop(&a.free).(uint32)
		a.alive[index] = true
		return NewEntity(index, a.generations[index])
	}

	index := uint32(len(a.generations))
	a.generations = append(a.generations, 0)
	a.alive = append(a.alive, true)
	return NewEntity(index, 0)
}

// despawn invalidates the handle and returns its slot to the free heap.
// Fails with ErrStaleEntity when the handle's generation no longer matches
// the slot (double despawn, or a handle held past a previous despawn).
//
// Generations are 32-bit counters that wrap silently on overflow; after
// 2^32 reuses of a single slot an ancient handle could alias a live entity
// again. That is tolerated: no interactive session gets near that count.
func (a *entityAllocator) despawn(e Entity) error {
	if !a.isLive(e) {
		return ErrStaleEntity
	}

	index := e.Index()
	a.generations[index]++
	a.alive[index] = false
	heap.Push(&a.free, index)
	return nil
}

// isLive reports whether the handle still names the current occupant of its
// slot.
func (a *entityAllocator) isLive(e Entity) bool {
	index := e.Index()
	if index >= uint32(len(a.generations)) {
		return false
	}
	return a.alive[index] && a.generations[index] == e.Generation()
}

// indexLive reports whether the slot at index currently holds a live entity.
func (a *entityAllocator) indexLive(index uint32) bool {
	return index < uint32(len(a.alive)) && a.alive[index]
}

// entityAt rebuilds the live handle for a slot index. Only meaningful when
// indexLive(index) is true.
func (a *entityAllocator) entityAt(index uint32) Entity {
	return NewEntity(index, a.generations[index])
}

// entities iterates all live entities in slot order.
func (a *entityAllocator) entities() iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		for i := range a.generations {
			if !a.alive[i] {
				continue
			}
			if !yield(NewEntity(uint32(i), a.generations[i])) {
				return
			}
		}
	}
}

// liveCount returns the number of currently live entities.
func (a *entityAllocator) liveCount() int {
	return len(a.generations) - a.free.Len()
}

// slotCount returns the total number of slots ever allocated.
func (a *entityAllocator) slotCount() int {
	return len(a.generations)
}

func (a *entityAllocator) reset() {
	a.generations = a.generations[:0]
	a.alive = a.alive[:0]
	a.free = a.free[:0]
}
