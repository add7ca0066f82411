package ecs

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

type systemEntry struct {
	name      string
	system    System
	condition RunCondition
	before    []string
	after     []string
	access    Access
	stats     systemStatsInternal
}

type systemStatsInternal struct {
	executionCount int64
	skipCount      int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// Schedule is a named, ordered collection of systems. Registration order
// plus explicit before/after constraints induce a single deterministic
// execution sequence, resolved by a stable topological sort. Contradictory
// constraints make the schedule invalid at registration time, never at run
// time.
type Schedule struct {
	label      string
	entries    []*systemEntry
	order      []int
	orderValid bool
}

func newSchedule(label string) *Schedule {
	return &Schedule{label: label}
}

// Label returns the schedule's name.
func (s *Schedule) Label() string {
	return s.label
}

// Len returns the number of registered systems.
func (s *Schedule) Len() int {
	return len(s.entries)
}

func (s *Schedule) find(name string) int {
	for i, e := range s.entries {
		if e.name == name {
			return i
		}
	}
	return -1
}

// add registers the entry and eagerly resolves the execution order so a
// constraint cycle surfaces at the add that introduced it. On cycle the
// entry is rolled back, leaving the schedule as it was.
func (s *Schedule) add(entry *systemEntry) error {
	if s.find(entry.name) >= 0 {
		panic("system " + entry.name + " already registered in schedule " + s.label)
	}

	entry.stats.minDuration = time.Duration(1<<63 - 1)
	s.entries = append(s.entries, entry)

	if err := s.buildOrder(); err != nil {
		s.entries = s.entries[:len(s.entries)-1]
		s.orderValid = false
		return err
	}
	return nil
}

// remove drops the named system and invalidates the cached order, forcing a
// rebuild before the next run.
func (s *Schedule) remove(name string) bool {
	i := s.find(name)
	if i < 0 {
		return false
	}
	s.entries = append(s.entries[:i], s.entries[i+1:]...)
	s.orderValid = false
	return true
}

// buildOrder resolves the execution sequence with a stable Kahn topological
// sort: among systems whose constraints are satisfied, the one registered
// earliest runs first. Constraints naming systems not present are inert.
func (s *Schedule) buildOrder() error {
	n := len(s.entries)
	indegree := make([]int, n)
	successors := make([][]int, n)

	addEdge := func(from, to int) {
		successors[from] = append(successors[from], to)
		indegree[to]++
	}

	for i, e := range s.entries {
		for _, name := range e.before {
			if j := s.find(name); j >= 0 {
				addEdge(i, j)
			}
		}
		for _, name := range e.after {
			if j := s.find(name); j >= 0 {
				addEdge(j, i)
			}
		}
	}

	order := make([]int, 0, n)
	done := make([]bool, n)
	for len(order) < n {
		picked := -1
		for i := 0; i < n; i++ {
			if !done[i] && indegree[i] == 0 {
				picked = i
				break
			}
		}
		if picked < 0 {
			var stuck []string
			for i, e := range s.entries {
				if !done[i] {
					stuck = append(stuck, e.name)
				}
			}
			return eris.Wrapf(ErrScheduleCycle, "schedule %q: %s", s.label, strings.Join(stuck, ", "))
		}

		done[picked] = true
		order = append(order, picked)
		for _, succ := range successors[picked] {
			indegree[succ]--
		}
	}

	s.order = order
	s.orderValid = true
	return nil
}

// run executes the schedule's systems in resolved order, evaluating each
// run condition just before its system and flushing deferred commands after
// each system returns.
func (s *Schedule) run(w *World, dt float64) error {
	if !s.orderValid {
		if err := s.buildOrder(); err != nil {
			return err
		}
	}

	frame := newFrame(dt, w)

	for _, i := range s.order {
		entry := s.entries[i]

		if entry.condition != nil && !entry.condition(w) {
			entry.stats.skipCount++
			continue
		}

		start := time.Now()
		entry.system.Execute(frame)
		duration := time.Since(start)

		stats := &entry.stats
		stats.executionCount++
		stats.lastDuration = duration
		stats.totalDuration += duration
		if duration < stats.minDuration {
			stats.minDuration = duration
		}
		if duration > stats.maxDuration {
			stats.maxDuration = duration
		}

		frame.Commands.flush(w)
	}

	return nil
}

// Order returns the resolved system names in execution order. The order is
// rebuilt first if a removal invalidated it.
func (s *Schedule) Order() ([]string, error) {
	if !s.orderValid {
		if err := s.buildOrder(); err != nil {
			return nil, err
		}
	}
	names := make([]string, len(s.order))
	for i, idx := range s.order {
		names[i] = s.entries[idx].name
	}
	return names, nil
}
