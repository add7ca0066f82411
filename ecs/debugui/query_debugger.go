package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/worldkit/ecs"
)

type QueryDebuggerCache struct {
	componentTypes []string
	lastTypeCount  int
}

func NewQueryDebuggerComponent() QueryDebuggerComponent {
	return QueryDebuggerComponent{
		includedTypes: make(map[string]bool),
		excludedTypes: make(map[string]bool),
		cache: &QueryDebuggerCache{
			lastTypeCount: -1,
		},
	}
}

func (qd *QueryDebuggerComponent) Render(w *ecs.World) {
	if !imgui.BeginV("Query Debugger", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	qd.rebuildCacheIfNeeded(w)

	imgui.Text("Component Types (include / exclude):")
	imgui.Separator()

	if imgui.Button("Clear All") {
		qd.includedTypes = make(map[string]bool)
		qd.excludedTypes = make(map[string]bool)
	}

	for _, compType := range qd.cache.componentTypes {
		included := qd.includedTypes[compType]
		if imgui.Checkbox("##inc"+compType, &included) {
			if included {
				qd.includedTypes[compType] = true
				delete(qd.excludedTypes, compType)
			} else {
				delete(qd.includedTypes, compType)
			}
		}
		imgui.SameLine()

		excluded := qd.excludedTypes[compType]
		if imgui.Checkbox("##exc"+compType, &excluded) {
			if excluded {
				qd.excludedTypes[compType] = true
				delete(qd.includedTypes, compType)
			} else {
				delete(qd.excludedTypes, compType)
			}
		}
		imgui.SameLine()
		imgui.Text(compType)
	}

	imgui.Separator()

	typeMap := make(map[string]reflect.Type)
	for _, t := range w.ComponentTypes() {
		typeMap[t.String()] = t
	}

	spec := ecs.QuerySpec{}
	for typeName := range qd.includedTypes {
		if t, ok := typeMap[typeName]; ok {
			spec.Include = append(spec.Include, t)
		}
	}
	for typeName := range qd.excludedTypes {
		if t, ok := typeMap[typeName]; ok {
			spec.Exclude = append(spec.Exclude, t)
		}
	}

	if len(spec.Include) == 0 && len(spec.Exclude) == 0 {
		imgui.Text("No component types selected")
		imgui.End()
		return
	}

	matching := make([]ecs.Entity, 0)
	for e := range w.Query(spec) {
		matching = append(matching, e)
	}

	imgui.Text(fmt.Sprintf("Matching Entities: %d", len(matching)))

	if imgui.TreeNodeStr("Matches") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("QueryMatchTable", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Entity")
			imgui.TableSetupColumn("Components")
			imgui.TableHeadersRow()

			for _, e := range matching {
				imgui.TableNextRow()

				imgui.TableSetColumnIndex(0)
				imgui.Text(e.String())

				imgui.TableSetColumnIndex(1)
				types := w.EntityComponents(e)
				names := make([]string, len(types))
				for i, t := range types {
					names[i] = t.String()
				}
				imgui.Text(fmt.Sprintf("%v", names))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}

func (qd *QueryDebuggerComponent) rebuildCacheIfNeeded(w *ecs.World) {
	currentTypeCount := len(w.ComponentTypes())
	if qd.cache.lastTypeCount != currentTypeCount {
		qd.cache.componentTypes = nil
		qd.cache.lastTypeCount = currentTypeCount
	}

	if qd.cache.componentTypes == nil {
		qd.rebuildCache(w)
	}
}

func (qd *QueryDebuggerComponent) rebuildCache(w *ecs.World) {
	types := w.ComponentTypes()
	qd.cache.componentTypes = make([]string, 0, len(types))
	for _, t := range types {
		qd.cache.componentTypes = append(qd.cache.componentTypes, t.String())
	}
}
