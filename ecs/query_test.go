package ecs_test

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/plus3/worldkit/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func spawnWith(t *testing.T, w *ecs.World, components ...any) ecs.Entity {
	t.Helper()
	e := w.Spawn()
	for _, c := range components {
		var err error
		switch v := c.(type) {
		case Position:
			_, err = ecs.AddComponent(w, e, v)
		case Velocity:
			_, err = ecs.AddComponent(w, e, v)
		case Health:
			_, err = ecs.AddComponent(w, e, v)
		case Name:
			_, err = ecs.AddComponent(w, e, v)
		case Frozen:
			_, err = ecs.AddComponent(w, e, v)
		case AI:
			_, err = ecs.AddComponent(w, e, v)
		default:
			t.Fatalf("unhandled component type %T", c)
		}
		require.NoError(t, err)
	}
	return e
}

func collectQuery(w *ecs.World, spec ecs.QuerySpec) []ecs.Entity {
	var out []ecs.Entity
	for e := range w.Query(spec) {
		out = append(out, e)
	}
	return out
}

func TestQueryInclude(t *testing.T) {
	w := newTestWorld()

	moving1 := spawnWith(t, w, Position{X: 1}, Velocity{DX: 1})
	spawnWith(t, w, Position{X: 2})
	moving2 := spawnWith(t, w, Position{X: 3}, Velocity{DX: 3}, Health{Current: 10})
	spawnWith(t, w, Health{Current: 5})

	got := collectQuery(w, ecs.QuerySpec{
		Include: []reflect.Type{ecs.ComponentType[Position](), ecs.ComponentType[Velocity]()},
	})
	assert.Equal(t, []ecs.Entity{moving1, moving2}, got)
}

func TestQueryExclude(t *testing.T) {
	w := newTestWorld()

	active := spawnWith(t, w, Position{X: 1}, Velocity{DX: 1})
	spawnWith(t, w, Position{X: 2}, Velocity{DX: 2}, Frozen{})

	got := collectQuery(w, ecs.QuerySpec{
		Include: []reflect.Type{ecs.ComponentType[Position](), ecs.ComponentType[Velocity]()},
		Exclude: []reflect.Type{ecs.ComponentType[Frozen]()},
	})
	assert.Equal(t, []ecs.Entity{active}, got)
}

func TestQueryEmptyIncludeMatchesAllLive(t *testing.T) {
	w := newTestWorld()

	e1 := spawnWith(t, w, Position{X: 1})
	e2 := w.Spawn()
	dead := w.Spawn()
	require.NoError(t, w.Despawn(dead))

	got := collectQuery(w, ecs.QuerySpec{})
	assert.Equal(t, []ecs.Entity{e1, e2}, got)
}

func TestQueryEmptyIncludeWithExclude(t *testing.T) {
	w := newTestWorld()

	spawnWith(t, w, Frozen{})
	e := w.Spawn()

	got := collectQuery(w, ecs.QuerySpec{
		Exclude: []reflect.Type{ecs.ComponentType[Frozen]()},
	})
	assert.Equal(t, []ecs.Entity{e}, got)
}

func TestQueryUnknownIncludeTypeMatchesNothing(t *testing.T) {
	w := ecs.New()
	e := w.Spawn()
	_, err := ecs.AddComponent(w, e, Position{X: 1})
	require.NoError(t, err)

	// Velocity has never been stored in this world.
	got := collectQuery(w, ecs.QuerySpec{
		Include: []reflect.Type{ecs.ComponentType[Position](), ecs.ComponentType[Velocity]()},
	})
	assert.Empty(t, got)
}

func TestQueryOverlappingIncludeExcludePanics(t *testing.T) {
	w := newTestWorld()

	assert.Panics(t, func() {
		w.Query(ecs.QuerySpec{
			Include: []reflect.Type{ecs.ComponentType[Position]()},
			Exclude: []reflect.Type{ecs.ComponentType[Position]()},
		})
	})
}

func TestQueryResultsAscendBySlot(t *testing.T) {
	w := newTestWorld()

	// Churn so that component insertion order diverges from slot order.
	var entities []ecs.Entity
	for i := 0; i < 20; i++ {
		entities = append(entities, spawnWith(t, w, Position{X: float32(i)}))
	}
	for i := 0; i < 20; i += 2 {
		require.NoError(t, w.Despawn(entities[i]))
	}
	for i := 0; i < 5; i++ {
		spawnWith(t, w, Position{X: float32(100 + i)})
	}

	got := collectQuery(w, ecs.QuerySpec{
		Include: []reflect.Type{ecs.ComponentType[Position]()},
	})
	for i := 1; i < len(got); i++ {
		assert.Less(t, got[i-1].Index(), got[i].Index())
	}
}

func TestQuerySnapshotUnaffectedByMutation(t *testing.T) {
	w := newTestWorld()

	for i := 0; i < 5; i++ {
		spawnWith(t, w, Position{X: float32(i)})
	}

	seen := 0
	for e := range w.Query(ecs.QuerySpec{Include: []reflect.Type{ecs.ComponentType[Position]()}}) {
		seen++
		// Spawning during iteration must not extend this walk.
		spawnWith(t, w, Position{X: 99})
		_ = e
	}
	assert.Equal(t, 5, seen)
}

// Randomized cross-check: entities get arbitrary component subsets and every
// include/exclude combination is verified against a naive per-entity filter.
func TestQueryMatchesNaiveFilter(t *testing.T) {
	w := newTestWorld()
	rng := rand.New(rand.NewSource(7))

	type shape struct {
		pos, vel, health, frozen bool
	}
	shapes := make(map[ecs.Entity]shape)

	for i := 0; i < 500; i++ {
		s := shape{
			pos:    rng.Intn(2) == 0,
			vel:    rng.Intn(2) == 0,
			health: rng.Intn(3) == 0,
			frozen: rng.Intn(4) == 0,
		}
		var comps []any
		if s.pos {
			comps = append(comps, Position{X: float32(i)})
		}
		if s.vel {
			comps = append(comps, Velocity{DX: float32(i)})
		}
		if s.health {
			comps = append(comps, Health{Current: i})
		}
		if s.frozen {
			comps = append(comps, Frozen{})
		}
		shapes[spawnWith(t, w, comps...)] = s
	}

	specs := []struct {
		name    string
		spec    ecs.QuerySpec
		matches func(shape) bool
	}{
		{
			name:    "pos",
			spec:    ecs.QuerySpec{Include: []reflect.Type{ecs.ComponentType[Position]()}},
			matches: func(s shape) bool { return s.pos },
		},
		{
			name: "pos+vel",
			spec: ecs.QuerySpec{Include: []reflect.Type{
				ecs.ComponentType[Position](), ecs.ComponentType[Velocity]()}},
			matches: func(s shape) bool { return s.pos && s.vel },
		},
		{
			name: "pos+vel-frozen",
			spec: ecs.QuerySpec{
				Include: []reflect.Type{ecs.ComponentType[Position](), ecs.ComponentType[Velocity]()},
				Exclude: []reflect.Type{ecs.ComponentType[Frozen]()},
			},
			matches: func(s shape) bool { return s.pos && s.vel && !s.frozen },
		},
		{
			name: "health-pos-vel",
			spec: ecs.QuerySpec{
				Include: []reflect.Type{ecs.ComponentType[Health]()},
				Exclude: []reflect.Type{ecs.ComponentType[Position](), ecs.ComponentType[Velocity]()},
			},
			matches: func(s shape) bool { return s.health && !s.pos && !s.vel },
		},
	}

	for _, tc := range specs {
		t.Run(tc.name, func(t *testing.T) {
			want := make(map[ecs.Entity]bool)
			for e, s := range shapes {
				if tc.matches(s) {
					want[e] = true
				}
			}

			got := collectQuery(w, tc.spec)
			assert.Equal(t, len(want), len(got))
			for _, e := range got {
				assert.True(t, want[e], "entity %s should not match", e)
			}
		})
	}
}

func TestQueryFieldInitializedByScheduler(t *testing.T) {
	w := newTestWorld()

	spawnWith(t, w, Position{X: 1}, Velocity{DX: 2})
	spawnWith(t, w, Position{X: 3})

	sys := &countingQuerySystem{}
	require.NoError(t, w.AddSystem("update", "counting", sys))
	require.NoError(t, w.RunSchedule("update"))

	assert.Equal(t, 1, sys.LastCount)
}

type countingQuerySystem struct {
	Moving ecs.Query[struct {
		*Position
		*Velocity
	}]
	LastCount int
}

func (s *countingQuerySystem) Execute(frame *ecs.Frame) {
	s.LastCount = s.Moving.Count()
}
