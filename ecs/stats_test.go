package ecs_test

import (
	"testing"

	"github.com/plus3/worldkit/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectStats(t *testing.T) {
	w := newTestWorld()

	spawnWith(t, w, Position{X: 1}, Velocity{DX: 1})
	spawnWith(t, w, Position{X: 2})
	dead := w.Spawn()
	require.NoError(t, w.Despawn(dead))

	require.NoError(t, ecs.InsertResource(w, GameState{}))
	ecs.Publish(w, Damage{Amount: 1})
	ecs.Publish(w, Damage{Amount: 2})
	w.AdvanceEvents()
	ecs.Publish(w, Damage{Amount: 3})

	require.NoError(t, w.AddSystem("update", "move", ecs.SystemFunc(func(*ecs.Frame) {})))
	require.NoError(t, w.AddSystem("update", "skipped", ecs.SystemFunc(func(*ecs.Frame) {}),
		ecs.WithRunCondition(func(*ecs.World) bool { return false })))
	require.NoError(t, w.RunSchedule("update"))
	require.NoError(t, w.RunSchedule("update"))

	stats := w.CollectStats()

	assert.Equal(t, 2, stats.EntityCount)
	assert.Equal(t, 3, stats.SlotCount)
	assert.Equal(t, 2, stats.ComponentCount[ecs.ComponentType[Position]()])
	assert.Equal(t, 1, stats.ComponentCount[ecs.ComponentType[Velocity]()])
	assert.Contains(t, stats.ResourceTypes, ecs.ComponentType[GameState]())

	depth := stats.EventDepths[ecs.ComponentType[Damage]()]
	assert.Equal(t, 2, depth.Visible)
	assert.Equal(t, 1, depth.Pending)

	var update *ecs.ScheduleStats
	for i := range stats.Schedules {
		if stats.Schedules[i].Label == ecs.ScheduleUpdate {
			update = &stats.Schedules[i]
		}
	}
	require.NotNil(t, update)
	require.Len(t, update.Systems, 2)

	move := update.Systems[0]
	assert.Equal(t, "move", move.Name)
	assert.Equal(t, int64(2), move.ExecutionCount)
	assert.Equal(t, int64(0), move.SkipCount)
	assert.LessOrEqual(t, move.MinDuration, move.MaxDuration)
	assert.GreaterOrEqual(t, move.AvgDuration, move.MinDuration)

	skipped := update.Systems[1]
	assert.Equal(t, int64(0), skipped.ExecutionCount)
	assert.Equal(t, int64(2), skipped.SkipCount)

	// The per-schedule accessor reports the same timing records.
	assert.Equal(t, *update, w.AddSchedule(ecs.ScheduleUpdate).Stats())
}

func TestStatsSnapshotIsDetached(t *testing.T) {
	w := newTestWorld()
	spawnWith(t, w, Position{X: 1})

	stats := w.CollectStats()
	stats.ComponentCount[ecs.ComponentType[Position]()] = 99

	assert.Equal(t, 1, w.CollectStats().ComponentCount[ecs.ComponentType[Position]()])
}
