package debugui

import (
	"fmt"
	"sort"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/worldkit/ecs"
)

func NewScheduleViewerComponent() ScheduleViewerComponent {
	return ScheduleViewerComponent{
		sortColumn:    0,
		sortAscending: true,
	}
}

func (sv *ScheduleViewerComponent) Render(w *ecs.World) {
	if !imgui.BeginV("Schedule Viewer", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	stats := w.CollectStats()

	for _, schedule := range stats.Schedules {
		if !imgui.TreeNodeStr(fmt.Sprintf("%s (%d systems)", schedule.Label, len(schedule.Systems))) {
			continue
		}

		systems := make([]ecs.SystemStats, len(schedule.Systems))
		copy(systems, schedule.Systems)
		sv.sortSystems(systems)

		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable
		if imgui.BeginTableV("Systems##"+schedule.Label, 6, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Order")
			imgui.TableSetupColumn("System")
			imgui.TableSetupColumn("Runs")
			imgui.TableSetupColumn("Min")
			imgui.TableSetupColumn("Max")
			imgui.TableSetupColumn("Avg")
			imgui.TableHeadersRow()

			sortSpecs := imgui.TableGetSortSpecs()
			if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
				spec := sortSpecs.Specs()
				sv.sortColumn = int(spec.ColumnIndex())
				sv.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
				sv.sortSystems(systems)
				sortSpecs.SetSpecsDirty(false)
			}

			for i, sys := range systems {
				imgui.TableNextRow()

				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", i))

				imgui.TableNextColumn()
				imgui.Text(sys.Name)

				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d (%d skipped)", sys.ExecutionCount, sys.SkipCount))

				imgui.TableNextColumn()
				imgui.Text(sys.MinDuration.Round(time.Microsecond).String())

				imgui.TableNextColumn()
				imgui.Text(sys.MaxDuration.Round(time.Microsecond).String())

				imgui.TableNextColumn()
				imgui.Text(sys.AvgDuration.Round(time.Microsecond).String())
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}

func (sv *ScheduleViewerComponent) sortSystems(systems []ecs.SystemStats) {
	// Column 0 is the resolved execution order, which is the incoming order.
	if sv.sortColumn == 0 && sv.sortAscending {
		return
	}

	sort.SliceStable(systems, func(i, j int) bool {
		a, b := systems[i], systems[j]
		var less bool

		switch sv.sortColumn {
		case 1:
			less = a.Name < b.Name
		case 2:
			less = a.ExecutionCount < b.ExecutionCount
		case 3:
			less = a.MinDuration < b.MinDuration
		case 4:
			less = a.MaxDuration < b.MaxDuration
		case 5:
			less = a.AvgDuration < b.AvgDuration
		default:
			return false
		}

		if !sv.sortAscending {
			return !less
		}
		return less
	})
}
