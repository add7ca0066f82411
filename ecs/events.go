package ecs

import (
	"iter"
	"reflect"
)

// eventQueue is the type-erased face of a per-type double-buffered queue.
type eventQueue interface {
	advance()
	depths() (current, pending int)
	clear()
	eventType() reflect.Type
}

// typedEventQueue keeps two buffers per event type: current, which readers
// iterate this frame, and next, which collects publishes made during this
// frame. An event published in frame N is invisible during N, visible
// through all of N+1, and discarded at the start of N+2.
type typedEventQueue[E any] struct {
	current []E
	next    []E
}

func (q *typedEventQueue[E]) advance() {
	// The old current backing array is recycled as the new next buffer.
	q.current, q.next = q.next, q.current[:0]
}

func (q *typedEventQueue[E]) depths() (int, int) {
	return len(q.current), len(q.next)
}

func (q *typedEventQueue[E]) clear() {
	q.current = q.current[:0]
	q.next = q.next[:0]
}

func (q *typedEventQueue[E]) eventType() reflect.Type {
	return reflect.TypeFor[E]()
}

// eventBus holds one double-buffered queue per published event type.
type eventBus struct {
	queues map[reflect.Type]eventQueue
}

func newEventBus() *eventBus {
	return &eventBus{
		queues: make(map[reflect.Type]eventQueue),
	}
}

// advance flips every queue at a frame boundary: current is discarded and
// next becomes current. Invoked once per frame by the driver through
// World.AdvanceEvents, never by systems.
func (b *eventBus) advance() {
	for _, q := range b.queues {
		q.advance()
	}
}

func (b *eventBus) clear() {
	for _, q := range b.queues {
		q.clear()
	}
}

func queueFor[E any](b *eventBus) *typedEventQueue[E] {
	t := reflect.TypeFor[E]()
	if q, ok := b.queues[t]; ok {
		return q.(*typedEventQueue[E])
	}
	q := &typedEventQueue[E]{}
	b.queues[t] = q
	return q
}

// Publish appends ev to the pending buffer for E. It becomes visible to
// ReadEvents after the next AdvanceEvents call.
func Publish[E any](w *World, ev E) {
	q := queueFor[E](w.events)
	q.next = append(q.next, ev)
}

// ReadEvents iterates the events of type E visible this frame, in publish
// order. Reading does not consume: every system that asks gets the full
// sequence, and the returned iterator can be ranged more than once.
func ReadEvents[E any](w *World) iter.Seq[*E] {
	q := queueFor[E](w.events)
	return func(yield func(*E) bool) {
		for i := range q.current {
			if !yield(&q.current[i]) {
				return
			}
		}
	}
}
