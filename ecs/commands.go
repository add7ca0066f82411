package ecs

import "reflect"

// Commands buffers structural operations issued while a system iterates, so
// the store a query walked stays intact until the system returns. The
// buffer is flushed after each system completes, making its effects visible
// to the next system in the schedule.
type Commands struct {
	spawns   []spawnCommand
	despawns []Entity
	adds     []addComponentCommand
	removes  []removeComponentCommand
	defers   []func(w *World)
}

func newCommands() *Commands {
	return &Commands{}
}

type spawnCommand struct {
	components []any
}

type addComponentCommand struct {
	entity    Entity
	component any
}

type removeComponentCommand struct {
	entity   Entity
	compType reflect.Type
}

// Spawn queues creation of an entity carrying the given component values.
// Component types must be registered or already in use by this world.
func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, spawnCommand{components: components})
}

// Despawn queues destruction of an entity. A handle gone stale by flush
// time is skipped.
func (c *Commands) Despawn(e Entity) {
	c.despawns = append(c.despawns, e)
}

// AddComponent queues attaching a component value to an entity.
func (c *Commands) AddComponent(e Entity, component any) {
	c.adds = append(c.adds, addComponentCommand{entity: e, component: component})
}

// RemoveComponent queues detaching a component type from an entity.
func (c *Commands) RemoveComponent(e Entity, compType reflect.Type) {
	c.removes = append(c.removes, removeComponentCommand{entity: e, compType: compType})
}

// Defer queues an arbitrary operation against the world.
func (c *Commands) Defer(fn func(w *World)) {
	c.defers = append(c.defers, fn)
}

// flush applies all queued operations in kind order and resets the buffer.
// Operations against handles that went stale earlier in the flush are
// dropped; the despawn already did their work.
func (c *Commands) flush(w *World) {
	for _, e := range c.despawns {
		if err := w.Despawn(e); err != nil {
			w.log.Debug("dropping despawn of stale entity", entityField(e))
		}
	}

	for _, cmd := range c.removes {
		if _, err := w.removeComponentOfType(cmd.entity, cmd.compType); err != nil {
			w.log.Debug("dropping component removal", entityField(cmd.entity))
		}
	}

	for _, cmd := range c.adds {
		if err := w.addComponentValue(cmd.entity, cmd.component); err != nil {
			w.log.Debug("dropping component add for stale entity", entityField(cmd.entity))
		}
	}

	for _, cmd := range c.spawns {
		w.spawnWith(cmd.components...)
	}

	for _, fn := range c.defers {
		fn(w)
	}

	c.spawns = c.spawns[:0]
	c.despawns = c.despawns[:0]
	c.adds = c.adds[:0]
	c.removes = c.removes[:0]
	c.defers = c.defers[:0]
}
