package debugui

import (
	"github.com/plus3/worldkit/ecs"
)

type EntityBrowserComponent struct {
	cache              *EntityBrowserCache
	selectedEntity     ecs.Entity
	hasSelection       bool
	filterText         string
	maxEntitiesPerPage int
	currentPage        int
}

type ComponentInspectorComponent struct {
	selectedEntity ecs.Entity
	hasSelection   bool
}

type ScheduleViewerComponent struct {
	sortColumn    int
	sortAscending bool
}

type PerformanceStatsComponent struct {
	historyFrames int
	frameHistory  []float32
	frameIndex    int
}

type QueryDebuggerComponent struct {
	includedTypes map[string]bool
	excludedTypes map[string]bool
	cache         *QueryDebuggerCache
}
