package debugui

import "github.com/plus3/worldkit/ecs"

// SpawnDebugUI creates one entity per debug panel. Pair with an ImguiItem
// render loop or call each panel's Render directly from a system.
func SpawnDebugUI(w *ecs.World) {
	browser := NewEntityBrowserComponent(100)
	inspector := NewComponentInspectorComponent()
	viewer := NewScheduleViewerComponent()
	perf := NewPerformanceStatsComponent(120)
	query := NewQueryDebuggerComponent()

	e := w.Spawn()
	ecs.AddComponent(w, e, browser)
	e = w.Spawn()
	ecs.AddComponent(w, e, inspector)
	e = w.Spawn()
	ecs.AddComponent(w, e, viewer)
	e = w.Spawn()
	ecs.AddComponent(w, e, perf)
	e = w.Spawn()
	ecs.AddComponent(w, e, query)
}

func RegisterDebugUIComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[EntityBrowserComponent](registry)
	ecs.RegisterComponent[ComponentInspectorComponent](registry)
	ecs.RegisterComponent[ScheduleViewerComponent](registry)
	ecs.RegisterComponent[PerformanceStatsComponent](registry)
	ecs.RegisterComponent[QueryDebuggerComponent](registry)
	ecs.RegisterComponent[ImguiItem](registry)
	ecs.RegisterComponent[ImguiInputState](registry)
}
