package ecs_test

import (
	"reflect"
	"testing"

	"github.com/plus3/worldkit/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// record builds a system that appends its name to a shared trace when run.
func record(trace *[]string, name string) ecs.SystemFunc {
	return func(*ecs.Frame) {
		*trace = append(*trace, name)
	}
}

func TestScheduleRunsInRegistrationOrder(t *testing.T) {
	w := newTestWorld()
	var trace []string

	require.NoError(t, w.AddSystem("update", "a", record(&trace, "a")))
	require.NoError(t, w.AddSystem("update", "b", record(&trace, "b")))
	require.NoError(t, w.AddSystem("update", "c", record(&trace, "c")))

	require.NoError(t, w.RunSchedule("update"))
	assert.Equal(t, []string{"a", "b", "c"}, trace)
}

func TestRunsBeforeOverridesRegistrationOrder(t *testing.T) {
	w := newTestWorld()
	var trace []string

	require.NoError(t, w.AddSystem("update", "render", record(&trace, "render")))
	require.NoError(t, w.AddSystem("update", "physics", record(&trace, "physics"),
		ecs.RunsBefore("render")))

	require.NoError(t, w.RunSchedule("update"))
	assert.Equal(t, []string{"physics", "render"}, trace)
}

func TestRunsAfter(t *testing.T) {
	w := newTestWorld()
	var trace []string

	require.NoError(t, w.AddSystem("update", "input", record(&trace, "input"),
		ecs.RunsAfter("simulate")))
	require.NoError(t, w.AddSystem("update", "simulate", record(&trace, "simulate")))

	require.NoError(t, w.RunSchedule("update"))
	assert.Equal(t, []string{"simulate", "input"}, trace)
}

func TestUnconstrainedTiesBreakByRegistrationOrder(t *testing.T) {
	w := newTestWorld()
	var trace []string

	require.NoError(t, w.AddSystem("update", "z", record(&trace, "z")))
	require.NoError(t, w.AddSystem("update", "m", record(&trace, "m"), ecs.RunsAfter("z")))
	require.NoError(t, w.AddSystem("update", "a", record(&trace, "a")))

	require.NoError(t, w.RunSchedule("update"))

	// z and a are unconstrained relative to each other; z registered first.
	assert.Equal(t, []string{"z", "m", "a"}, trace)
}

func TestScheduleOrderIsDeterministic(t *testing.T) {
	w := newTestWorld()
	var trace []string

	require.NoError(t, w.AddSystem("update", "c", record(&trace, "c"), ecs.RunsAfter("a")))
	require.NoError(t, w.AddSystem("update", "a", record(&trace, "a")))
	require.NoError(t, w.AddSystem("update", "b", record(&trace, "b"), ecs.RunsBefore("c")))

	for i := 0; i < 10; i++ {
		trace = trace[:0]
		require.NoError(t, w.RunSchedule("update"))
		assert.Equal(t, []string{"a", "b", "c"}, trace)
	}
}

func TestCycleRejectedAtRegistration(t *testing.T) {
	w := newTestWorld()
	var trace []string

	require.NoError(t, w.AddSystem("update", "a", record(&trace, "a"), ecs.RunsBefore("b")))
	require.NoError(t, w.AddSystem("update", "b", record(&trace, "b")))

	err := w.AddSystem("update", "c", record(&trace, "c"),
		ecs.RunsAfter("b"), ecs.RunsBefore("a"))
	assert.ErrorIs(t, err, ecs.ErrScheduleCycle)

	// The failed registration rolled back; the schedule still runs.
	require.NoError(t, w.RunSchedule("update"))
	assert.Equal(t, []string{"a", "b"}, trace)
}

func TestSelfCycleRejected(t *testing.T) {
	w := newTestWorld()

	err := w.AddSystem("update", "a", ecs.SystemFunc(func(*ecs.Frame) {}),
		ecs.RunsBefore("a"))
	assert.ErrorIs(t, err, ecs.ErrScheduleCycle)
}

func TestConstraintOnAbsentSystemIsInert(t *testing.T) {
	w := newTestWorld()
	var trace []string

	require.NoError(t, w.AddSystem("update", "a", record(&trace, "a"),
		ecs.RunsAfter("ghost")))

	require.NoError(t, w.RunSchedule("update"))
	assert.Equal(t, []string{"a"}, trace)

	// When the named system appears later, the constraint takes effect.
	require.NoError(t, w.AddSystem("update", "ghost", record(&trace, "ghost")))
	trace = trace[:0]
	require.NoError(t, w.RunSchedule("update"))
	assert.Equal(t, []string{"ghost", "a"}, trace)
}

func TestDuplicateSystemNamePanics(t *testing.T) {
	w := newTestWorld()

	require.NoError(t, w.AddSystem("update", "a", ecs.SystemFunc(func(*ecs.Frame) {})))
	assert.Panics(t, func() {
		w.AddSystem("update", "a", ecs.SystemFunc(func(*ecs.Frame) {}))
	})
}

func TestRemoveSystem(t *testing.T) {
	w := newTestWorld()
	var trace []string

	require.NoError(t, w.AddSystem("update", "a", record(&trace, "a")))
	require.NoError(t, w.AddSystem("update", "b", record(&trace, "b")))

	assert.True(t, w.RemoveSystem("update", "a"))
	assert.False(t, w.RemoveSystem("update", "a"))
	assert.False(t, w.RemoveSystem("nope", "a"))

	require.NoError(t, w.RunSchedule("update"))
	assert.Equal(t, []string{"b"}, trace)
}

func TestUnknownScheduleLabel(t *testing.T) {
	w := newTestWorld()

	err := w.AddSystem("physics", "a", ecs.SystemFunc(func(*ecs.Frame) {}))
	assert.ErrorIs(t, err, ecs.ErrUnknownSchedule)

	err = w.RunSchedule("physics")
	assert.ErrorIs(t, err, ecs.ErrUnknownSchedule)

	// Creating the schedule makes the label valid.
	w.AddSchedule("physics")
	assert.NoError(t, w.AddSystem("physics", "a", ecs.SystemFunc(func(*ecs.Frame) {})))
	assert.NoError(t, w.RunSchedule("physics"))
}

func TestScheduleReentryFails(t *testing.T) {
	w := newTestWorld()

	var reentryErr error
	require.NoError(t, w.AddSystem("update", "reenter", ecs.SystemFunc(func(frame *ecs.Frame) {
		reentryErr = frame.World.RunSchedule("update")
	})))

	require.NoError(t, w.RunSchedule("update"))
	assert.ErrorIs(t, reentryErr, ecs.ErrScheduleReentry)

	// The guard resets once the outer run returns.
	require.NoError(t, w.RunSchedule("update"))
}

func TestRunConditionSkipsSystem(t *testing.T) {
	w := newTestWorld()
	var trace []string

	enabled := false
	require.NoError(t, w.AddSystem("update", "gated", record(&trace, "gated"),
		ecs.WithRunCondition(func(*ecs.World) bool { return enabled })))
	require.NoError(t, w.AddSystem("update", "always", record(&trace, "always")))

	require.NoError(t, w.RunSchedule("update"))
	assert.Equal(t, []string{"always"}, trace)

	enabled = true
	trace = trace[:0]
	require.NoError(t, w.RunSchedule("update"))
	assert.Equal(t, []string{"gated", "always"}, trace)
}

func TestRunOnceCondition(t *testing.T) {
	w := newTestWorld()
	var trace []string

	require.NoError(t, w.AddSystem("update", "setup", record(&trace, "setup"),
		ecs.WithRunCondition(ecs.RunOnce())))

	for i := 0; i < 3; i++ {
		require.NoError(t, w.RunSchedule("update"))
	}
	assert.Equal(t, []string{"setup"}, trace)
}

func TestResourceExistsCondition(t *testing.T) {
	w := newTestWorld()
	var trace []string

	require.NoError(t, w.AddSystem("update", "needsState", record(&trace, "needsState"),
		ecs.WithRunCondition(ecs.ResourceExists[GameState]())))

	require.NoError(t, w.RunSchedule("update"))
	assert.Empty(t, trace)

	require.NoError(t, ecs.InsertResource(w, GameState{}))
	require.NoError(t, w.RunSchedule("update"))
	assert.Equal(t, []string{"needsState"}, trace)
}

func TestOnEventCondition(t *testing.T) {
	w := newTestWorld()
	var trace []string

	require.NoError(t, w.AddSystem("update", "onDamage", record(&trace, "onDamage"),
		ecs.WithRunCondition(ecs.OnEvent[Damage]())))

	require.NoError(t, w.RunSchedule("update"))
	assert.Empty(t, trace)

	ecs.Publish(w, Damage{Amount: 1})
	w.AdvanceEvents()
	require.NoError(t, w.RunSchedule("update"))
	assert.Equal(t, []string{"onDamage"}, trace)

	w.AdvanceEvents()
	require.NoError(t, w.RunSchedule("update"))
	assert.Equal(t, []string{"onDamage"}, trace)
}

func TestScheduleOrderAccessor(t *testing.T) {
	w := newTestWorld()

	s := w.AddSchedule("fixed")
	require.NoError(t, w.AddSystem("fixed", "b", ecs.SystemFunc(func(*ecs.Frame) {}),
		ecs.RunsAfter("a")))
	require.NoError(t, w.AddSystem("fixed", "a", ecs.SystemFunc(func(*ecs.Frame) {})))

	order, err := s.Order()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, order)
}

func TestDeltaTimeFromTimeResource(t *testing.T) {
	w := newTestWorld()

	var dt float64
	require.NoError(t, w.AddSystem("update", "readDt", ecs.SystemFunc(func(frame *ecs.Frame) {
		dt = frame.DeltaTime
	})))

	// Without a Time resource the delta is zero.
	require.NoError(t, w.RunSchedule("update"))
	assert.Equal(t, 0.0, dt)

	require.NoError(t, ecs.InsertResource(w, ecs.Time{Delta: 1.0 / 60.0}))
	require.NoError(t, w.RunSchedule("update"))
	assert.Equal(t, 1.0/60.0, dt)
}

func TestCommandsFlushBetweenSystems(t *testing.T) {
	w := newTestWorld()

	var countInSecond int
	require.NoError(t, w.AddSystem("update", "spawner", ecs.SystemFunc(func(frame *ecs.Frame) {
		frame.Commands.Spawn(Position{X: 1})
		// Deferred: nothing visible inside this system.
		countInSecond = -1
	})))
	require.NoError(t, w.AddSystem("update", "counter", ecs.SystemFunc(func(frame *ecs.Frame) {
		countInSecond = frame.World.EntityCount()
	})))

	require.NoError(t, w.RunSchedule("update"))
	assert.Equal(t, 1, countInSecond)
}

func TestCommandsDespawnDuringIteration(t *testing.T) {
	w := newTestWorld()

	for i := 0; i < 4; i++ {
		spawnWith(t, w, Health{Current: i, Max: 10})
	}

	require.NoError(t, w.AddSystem("update", "reaper", ecs.SystemFunc(func(frame *ecs.Frame) {
		for e := range frame.World.Query(ecs.QuerySpec{
			Include: []reflect.Type{ecs.ComponentType[Health]()},
		}) {
			h, err := ecs.GetComponent[Health](frame.World, e)
			require.NoError(t, err)
			if h.Current < 2 {
				frame.Commands.Despawn(e)
			}
		}
	})))

	require.NoError(t, w.RunSchedule("update"))
	assert.Equal(t, 2, w.EntityCount())
}

func TestCommandsSkipHandlesGoneStale(t *testing.T) {
	w := newTestWorld()

	e := spawnWith(t, w, Position{X: 1})

	require.NoError(t, w.AddSystem("update", "doubleDespawn", ecs.SystemFunc(func(frame *ecs.Frame) {
		frame.Commands.Despawn(e)
		frame.Commands.Despawn(e)
		frame.Commands.AddComponent(e, Velocity{DX: 1})
	})))

	// The duplicate despawn and the add against the now stale handle are
	// dropped silently at flush.
	require.NoError(t, w.RunSchedule("update"))
	assert.False(t, w.IsLive(e))
}

func TestCommandsDefer(t *testing.T) {
	w := newTestWorld()

	ran := false
	require.NoError(t, w.AddSystem("update", "deferrer", ecs.SystemFunc(func(frame *ecs.Frame) {
		frame.Commands.Defer(func(w *ecs.World) {
			ran = true
		})
	})))

	require.NoError(t, w.RunSchedule("update"))
	assert.True(t, ran)
}

func TestMovementIntegration(t *testing.T) {
	w := newTestWorld()

	e := spawnWith(t, w, Position{X: 0, Y: 0}, Velocity{DX: 1, DY: 2})
	require.NoError(t, ecs.InsertResource(w, ecs.Time{Delta: 1.0}))

	require.NoError(t, w.AddSystem("update", "movement", ecs.SystemFunc(func(frame *ecs.Frame) {
		for _, item := range ecs.NewView[struct {
			*Position
			*Velocity
		}](frame.World).Iter() {
			item.Position.X += item.Velocity.DX * float32(frame.DeltaTime)
			item.Position.Y += item.Velocity.DY * float32(frame.DeltaTime)
		}
	})))

	require.NoError(t, w.RunSchedule("update"))

	pos, err := ecs.GetComponent[Position](w, e)
	require.NoError(t, err)
	assert.Equal(t, float32(1), pos.X)
	assert.Equal(t, float32(2), pos.Y)
}

func TestStandardSchedulesExist(t *testing.T) {
	w := ecs.New()

	for _, label := range []string{ecs.ScheduleStartup, ecs.ScheduleUpdate, ecs.ScheduleShutdown} {
		assert.NoError(t, w.AddSystem(label, "probe", ecs.SystemFunc(func(*ecs.Frame) {})))
		assert.NoError(t, w.RunSchedule(label))
	}
}
