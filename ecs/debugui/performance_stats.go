package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/worldkit/ecs"
)

func NewPerformanceStatsComponent(historyFrames int) PerformanceStatsComponent {
	return PerformanceStatsComponent{
		historyFrames: historyFrames,
		frameHistory:  make([]float32, historyFrames),
		frameIndex:    0,
	}
}

func (ps *PerformanceStatsComponent) Render(w *ecs.World, deltaTime float32) {
	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	ps.frameHistory[ps.frameIndex] = deltaTime * 1000.0
	ps.frameIndex = (ps.frameIndex + 1) % ps.historyFrames

	stats := w.CollectStats()

	imgui.Text(fmt.Sprintf("Live Entities: %d", stats.EntityCount))
	imgui.Text(fmt.Sprintf("Allocated Slots: %d", stats.SlotCount))
	imgui.Text(fmt.Sprintf("Component Types: %d", len(stats.ComponentCount)))
	imgui.Text(fmt.Sprintf("Resources: %d", len(stats.ResourceTypes)))

	var avgFrameTime float32
	for _, ft := range ps.frameHistory {
		avgFrameTime += ft
	}
	avgFrameTime /= float32(ps.historyFrames)

	imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avgFrameTime, 1000.0/avgFrameTime))

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &ps.frameHistory[0], int32(len(ps.frameHistory)))

	if imgui.TreeNodeStr("Component Storage") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("ComponentStatsTable", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Component Type")
			imgui.TableSetupColumn("Count")
			imgui.TableHeadersRow()

			for _, t := range w.ComponentTypes() {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(t.String())
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", stats.ComponentCount[t]))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("System Timings") {
		for _, schedule := range stats.Schedules {
			if !imgui.TreeNodeStr(schedule.Label) {
				continue
			}

			const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
			if imgui.BeginTableV("SystemTable##"+schedule.Label, 5, tableFlags, imgui.NewVec2(0, 0), 0) {
				imgui.TableSetupColumn("System")
				imgui.TableSetupColumn("Runs")
				imgui.TableSetupColumn("Skips")
				imgui.TableSetupColumn("Avg")
				imgui.TableSetupColumn("Last")
				imgui.TableHeadersRow()

				for _, sys := range schedule.Systems {
					imgui.TableNextRow()
					imgui.TableNextColumn()
					imgui.Text(sys.Name)
					imgui.TableNextColumn()
					imgui.Text(fmt.Sprintf("%d", sys.ExecutionCount))
					imgui.TableNextColumn()
					imgui.Text(fmt.Sprintf("%d", sys.SkipCount))
					imgui.TableNextColumn()
					imgui.Text(sys.AvgDuration.Round(time.Microsecond).String())
					imgui.TableNextColumn()
					imgui.Text(sys.LastDuration.Round(time.Microsecond).String())
				}

				imgui.EndTable()
			}
			imgui.TreePop()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Event Queues") {
		for t, depth := range stats.EventDepths {
			imgui.BulletText(fmt.Sprintf("%s: %d visible, %d pending", t, depth.Visible, depth.Pending))
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Resource Details") {
		for _, resourceType := range stats.ResourceTypes {
			imgui.BulletText(resourceType.String())
		}
		imgui.TreePop()
	}

	imgui.End()
}

type FrameTimer struct {
	lastFrameTime time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{
		lastFrameTime: time.Now(),
	}
}

func (ft *FrameTimer) GetDeltaTime() float32 {
	now := time.Now()
	delta := float32(now.Sub(ft.lastFrameTime).Seconds())
	ft.lastFrameTime = now
	return delta
}
