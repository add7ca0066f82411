package ecs

import (
	"reflect"
	"time"
)

// WorldStats is a point-in-time snapshot of world occupancy and scheduler
// timing, for debug overlays and stress reports.
type WorldStats struct {
	EntityCount    int
	SlotCount      int
	ComponentCount map[reflect.Type]int
	ResourceTypes  []reflect.Type
	EventDepths    map[reflect.Type]EventDepth
	Schedules      []ScheduleStats
}

// EventDepth reports queue occupancy for one event type: events visible to
// readers this frame and events buffered for the next.
type EventDepth struct {
	Visible int
	Pending int
}

// ScheduleStats aggregates per-system timing for one schedule, in execution
// order.
type ScheduleStats struct {
	Label   string
	Systems []SystemStats
}

// SystemStats is the timing record for one system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	SkipCount      int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
}

// CollectStats snapshots the world. The snapshot is detached; mutating it
// does not touch the world.
func (w *World) CollectStats() WorldStats {
	stats := WorldStats{
		EntityCount:    w.alloc.liveCount(),
		SlotCount:      w.alloc.slotCount(),
		ComponentCount: make(map[reflect.Type]int),
		ResourceTypes:  w.resources.types(),
		EventDepths:    make(map[reflect.Type]EventDepth),
	}

	for _, t := range w.store.componentTypes() {
		c, _ := w.store.column(t)
		stats.ComponentCount[t] = c.count()
	}

	for t, q := range w.events.queues {
		visible, pending := q.depths()
		stats.EventDepths[t] = EventDepth{Visible: visible, Pending: pending}
	}

	for _, label := range w.labels {
		stats.Schedules = append(stats.Schedules, w.schedules[label].collectStats())
	}
	return stats
}

// Stats snapshots per-system timing for this schedule alone, without the
// world-wide occupancy counters CollectStats carries.
func (s *Schedule) Stats() ScheduleStats {
	return s.collectStats()
}

// collectStats snapshots per-system timing in execution order. Systems in a
// schedule whose order is invalid (pending rebuild after a removal) are
// reported in registration order instead.
func (s *Schedule) collectStats() ScheduleStats {
	out := ScheduleStats{Label: s.label}

	indices := s.order
	if !s.orderValid {
		indices = make([]int, len(s.entries))
		for i := range indices {
			indices[i] = i
		}
	}

	for _, i := range indices {
		entry := s.entries[i]
		st := SystemStats{
			Name:           entry.name,
			ExecutionCount: entry.stats.executionCount,
			SkipCount:      entry.stats.skipCount,
			MaxDuration:    entry.stats.maxDuration,
			LastDuration:   entry.stats.lastDuration,
		}
		if entry.stats.executionCount > 0 {
			st.MinDuration = entry.stats.minDuration
			st.AvgDuration = entry.stats.totalDuration / time.Duration(entry.stats.executionCount)
		}
		out.Systems = append(out.Systems, st)
	}
	return out
}
