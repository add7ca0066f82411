package ecs

import (
	"iter"
	"reflect"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Standard schedule labels. The platform driver's contract is: run
// ScheduleStartup once, then ScheduleUpdate followed by AdvanceEvents once
// per frame tick, then ScheduleShutdown once before teardown.
const (
	ScheduleStartup  = "startup"
	ScheduleUpdate   = "update"
	ScheduleShutdown = "shutdown"
)

// World is the aggregate façade over entity allocation, component storage,
// resources, events, and schedules. It is an explicit context object owned
// by the frame-loop driver and passed to systems; there is no package-level
// world state.
//
// A World is single-threaded: exactly one RunSchedule may be active at a
// time, and systems must not re-enter the scheduler.
type World struct {
	alloc     *entityAllocator
	store     *componentStore
	resources *resourceRegistry
	events    *eventBus
	registry  *ComponentRegistry
	schedules map[string]*Schedule
	labels    []string
	running   bool
	log       *zap.Logger
}

// Option configures a World at construction.
type Option func(*World)

// WithLogger attaches a structured logger. The world logs stale-handle
// misuse at warn level and schedule lifecycle at debug level. Default is a
// no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(w *World) {
		w.log = l
	}
}

// WithRegistry pre-creates storage for the registry's component types.
// Types used through the generic operations are registered lazily anyway;
// pre-registration matters for types only ever touched through type-erased
// paths (Commands.Spawn, View.Spawn, generated code).
func WithRegistry(r *ComponentRegistry) Option {
	return func(w *World) {
		w.registry = r
	}
}

// New creates an empty world with the standard startup, update, and
// shutdown schedules.
func New(opts ...Option) *World {
	w := &World{
		alloc:     newEntityAllocator(),
		store:     newComponentStore(),
		resources: newResourceRegistry(),
		events:    newEventBus(),
		registry:  NewComponentRegistry(),
		schedules: make(map[string]*Schedule),
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}

	for _, t := range w.registry.Types() {
		w.store.ensure(t, w.registry.factories[t])
	}

	w.AddSchedule(ScheduleStartup)
	w.AddSchedule(ScheduleUpdate)
	w.AddSchedule(ScheduleShutdown)
	return w
}

func entityField(e Entity) zap.Field {
	return zap.Stringer("entity", e)
}

// Spawn creates a new live entity with no components.
func (w *World) Spawn() Entity {
	return w.alloc.spawn()
}

// Despawn destroys the entity: every component it carries is removed, its
// slot generation is bumped so held handles go stale, and the slot is
// recycled for future spawns. Fails with ErrStaleEntity when the handle is
// already stale.
func (w *World) Despawn(e Entity) error {
	if !w.alloc.isLive(e) {
		w.log.Warn("despawn of stale entity handle", entityField(e))
		return eris.Wrapf(ErrStaleEntity, "despawn %s", e)
	}

	w.store.sweep(e.Index())
	return w.alloc.despawn(e)
}

// IsLive reports whether the handle names a currently live entity.
func (w *World) IsLive(e Entity) bool {
	return w.alloc.isLive(e)
}

// EntityCount returns the number of live entities.
func (w *World) EntityCount() int {
	return w.alloc.liveCount()
}

// Entities iterates all live entities in slot order.
func (w *World) Entities() iter.Seq[Entity] {
	return w.alloc.entities()
}

// columnForType resolves the column for a type-erased component access,
// creating it from the registry when possible. Panics for a type this
// world has never seen; type-erased callers must register such types first.
func (w *World) columnForType(t reflect.Type) column {
	if c, ok := w.store.column(t); ok {
		return c
	}
	if factory, ok := w.registry.factories[t]; ok {
		return w.store.ensure(t, factory)
	}
	panic("component type " + t.String() + " not registered")
}

// spawnWith creates an entity carrying the given type-erased component
// values. Pointer values are dereferenced to their component type.
func (w *World) spawnWith(components ...any) Entity {
	e := w.alloc.spawn()
	for _, comp := range components {
		t := reflect.TypeOf(comp)
		if t.Kind() == reflect.Ptr {
			t = t.Elem()
		}
		w.columnForType(t).insertAny(e.Index(), comp)
	}
	return e
}

// addComponentValue is the type-erased add used by command flushes.
func (w *World) addComponentValue(e Entity, component any) error {
	if !w.alloc.isLive(e) {
		return eris.Wrapf(ErrStaleEntity, "add component to %s", e)
	}

	t := reflect.TypeOf(component)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	w.columnForType(t).insertAny(e.Index(), component)
	return nil
}

// removeComponentOfType is the type-erased remove used by command flushes.
func (w *World) removeComponentOfType(e Entity, t reflect.Type) (any, error) {
	if !w.alloc.isLive(e) {
		return nil, eris.Wrapf(ErrStaleEntity, "remove %s from %s", t, e)
	}

	c, ok := w.store.column(t)
	if !ok {
		return nil, eris.Wrapf(ErrMissingComponent, "remove %s from %s", t, e)
	}
	prev, ok := c.removeAny(e.Index())
	if !ok {
		return nil, eris.Wrapf(ErrMissingComponent, "remove %s from %s", t, e)
	}
	return prev, nil
}

// hasComponentOfType reports type-erased component presence on a live
// entity.
func (w *World) hasComponentOfType(e Entity, t reflect.Type) bool {
	if !w.alloc.isLive(e) {
		return false
	}
	c, ok := w.store.column(t)
	return ok && c.has(e.Index())
}

// componentValueOfType returns a pointer (as any) to a live entity's
// component, for reflective consumers like the debug inspector.
func (w *World) componentValueOfType(e Entity, t reflect.Type) any {
	if !w.alloc.isLive(e) {
		return nil
	}
	c, ok := w.store.column(t)
	if !ok {
		return nil
	}
	return c.getAny(e.Index())
}

// ComponentTypes returns every component type this world has storage for,
// sorted by type name.
func (w *World) ComponentTypes() []reflect.Type {
	return w.store.componentTypes()
}

// EntityComponents returns the component types carried by a live entity,
// sorted by type name. Stale handles carry nothing.
func (w *World) EntityComponents(e Entity) []reflect.Type {
	if !w.alloc.isLive(e) {
		return nil
	}
	var types []reflect.Type
	for _, t := range w.store.componentTypes() {
		if c, ok := w.store.column(t); ok && c.has(e.Index()) {
			types = append(types, t)
		}
	}
	return types
}

// ComponentValue returns a pointer, as any, to the entity's component of the
// given type, or nil when absent. For reflective consumers like debug
// tooling; typed code uses GetComponent.
func (w *World) ComponentValue(e Entity, t reflect.Type) any {
	return w.componentValueOfType(e, t)
}

// AddComponent attaches value to the entity, returning the previous value
// when one of the same type was already attached. Fails with ErrStaleEntity
// rather than silently writing into a reused slot.
func AddComponent[T any](w *World, e Entity, value T) (prev *T, err error) {
	if !w.alloc.isLive(e) {
		w.log.Warn("component add on stale entity handle", entityField(e))
		return nil, eris.Wrapf(ErrStaleEntity, "add %s to %s", reflect.TypeFor[T](), e)
	}

	c := ensureColumn[T](w)
	old, replaced := c.insert(e.Index(), value)
	if !replaced {
		return nil, nil
	}
	return &old, nil
}

// RemoveComponent detaches T from the entity and returns the removed value,
// or nil when the live entity did not carry it. Fails with ErrStaleEntity
// for stale handles.
func RemoveComponent[T any](w *World, e Entity) (*T, error) {
	if !w.alloc.isLive(e) {
		w.log.Warn("component removal on stale entity handle", entityField(e))
		return nil, eris.Wrapf(ErrStaleEntity, "remove %s from %s", reflect.TypeFor[T](), e)
	}

	c, ok := w.store.column(reflect.TypeFor[T]())
	if !ok {
		return nil, nil
	}
	removed, ok := c.(*typedColumn[T]).remove(e.Index())
	if !ok {
		return nil, nil
	}
	return &removed, nil
}

// GetComponent returns a pointer to the entity's component of type T. The
// pointer is the mutable view as well; it stays valid until the next
// structural change and must not be held across one. ErrStaleEntity and
// ErrMissingComponent distinguish a dead handle from a live entity lacking
// the component.
func GetComponent[T any](w *World, e Entity) (*T, error) {
	t := reflect.TypeFor[T]()
	if !w.alloc.isLive(e) {
		return nil, eris.Wrapf(ErrStaleEntity, "get %s of %s", t, e)
	}

	c, ok := w.store.column(t)
	if !ok {
		return nil, eris.Wrapf(ErrMissingComponent, "get %s of %s", t, e)
	}
	ptr, ok := c.(*typedColumn[T]).get(e.Index())
	if !ok {
		return nil, eris.Wrapf(ErrMissingComponent, "get %s of %s", t, e)
	}
	return ptr, nil
}

// HasComponent reports whether the live entity carries component type T.
// Stale handles carry nothing.
func HasComponent[T any](w *World, e Entity) bool {
	return w.hasComponentOfType(e, reflect.TypeFor[T]())
}

func ensureColumn[T any](w *World) *typedColumn[T] {
	t := reflect.TypeFor[T]()
	c := w.store.ensure(t, func() column {
		return newTypedColumn[T]()
	})
	return c.(*typedColumn[T])
}

// AddSchedule creates an empty schedule under the label, or returns the
// existing one.
func (w *World) AddSchedule(label string) *Schedule {
	if s, ok := w.schedules[label]; ok {
		return s
	}
	s := newSchedule(label)
	w.schedules[label] = s
	w.labels = append(w.labels, label)
	w.log.Debug("schedule created", zap.String("schedule", label))
	return s
}

// AddSystem registers a system under the given schedule label. Options
// attach ordering constraints, a run condition, and declared access sets.
// Fails with ErrUnknownSchedule for a label never created and with
// ErrScheduleCycle when the new constraints are contradictory (the system
// is not registered in that case).
func (w *World) AddSystem(label, name string, sys System, opts ...SystemOption) error {
	s, ok := w.schedules[label]
	if !ok {
		return eris.Wrapf(ErrUnknownSchedule, "add system %q to %q", name, label)
	}

	entry := &systemEntry{name: name, system: sys}
	for _, opt := range opts {
		opt(entry)
	}

	w.initSystemFields(sys)
	if err := s.add(entry); err != nil {
		w.log.Error("system registration failed", zap.String("schedule", label),
			zap.String("system", name), zap.Error(err))
		return err
	}

	w.log.Debug("system registered", zap.String("schedule", label), zap.String("system", name))
	return nil
}

// RemoveSystem drops the named system from the schedule, invalidating its
// cached execution order. Returns false when the schedule or the system
// does not exist.
func (w *World) RemoveSystem(label, name string) bool {
	s, ok := w.schedules[label]
	if !ok {
		return false
	}
	removed := s.remove(name)
	if removed {
		w.log.Debug("system removed", zap.String("schedule", label), zap.String("system", name))
	}
	return removed
}

// RunSchedule executes the labeled schedule's systems strictly sequentially
// in resolved order. The frame delta is read from the Time resource when
// present. Running a schedule from within a system fails fast with
// ErrScheduleReentry.
func (w *World) RunSchedule(label string) error {
	if w.running {
		return eris.Wrapf(ErrScheduleReentry, "run %q", label)
	}

	s, ok := w.schedules[label]
	if !ok {
		return eris.Wrapf(ErrUnknownSchedule, "run %q", label)
	}

	w.running = true
	defer func() { w.running = false }()

	dt := 0.0
	if t, err := GetResource[Time](w); err == nil {
		dt = t.Delta
	}

	return s.run(w, dt)
}

// AdvanceEvents flips every event queue at the frame boundary: events
// published during the elapsed frame become visible, events visible during
// it are discarded. Called once per frame by the driver, not by systems.
func (w *World) AdvanceEvents() {
	w.events.advance()
}

// initSystemFields initializes Query, View, and Res struct fields on the
// system via reflection, the registration-time counterpart of declaring
// them inline.
func (w *World) initSystemFields(sys System) {
	value := reflect.ValueOf(sys)
	if value.Kind() == reflect.Ptr {
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return
	}

	structType := value.Type()
	for i := 0; i < value.NumField(); i++ {
		field := value.Field(i)
		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}

		typeName := field.Type().Name()
		if !strings.HasPrefix(typeName, "Query[") &&
			!strings.HasPrefix(typeName, "View[") &&
			!strings.HasPrefix(typeName, "Res[") {
			continue
		}

		initMethod := field.Addr().MethodByName("Init")
		if !initMethod.IsValid() {
			panic("Init method not found on field: " + structType.Field(i).Name)
		}
		initMethod.Call([]reflect.Value{reflect.ValueOf(w)})
	}
}

// Clear tears the world down to empty: all entities, components,
// resources, queued events, and schedules are dropped, and the standard
// schedules are recreated. Generation counters reset; handles from before
// a Clear must not be reused.
func (w *World) Clear() {
	w.alloc.reset()
	w.store.clear()
	w.resources.clear()
	w.events.clear()
	w.schedules = make(map[string]*Schedule)
	w.labels = w.labels[:0]
	w.AddSchedule(ScheduleStartup)
	w.AddSchedule(ScheduleUpdate)
	w.AddSchedule(ScheduleShutdown)
}
