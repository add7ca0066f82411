// Package debugui provides immediate-mode GUI integration for world-driven
// applications using Dear ImGui. It manages ImGui rendering and input state
// through components, resources, and a system.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/worldkit/ecs"
)

// ImguiItem is a component that holds a Dear ImGui render function.
// Attach this to entities that should render ImGui widgets each frame.
type ImguiItem struct {
	Render func()
}

// ImguiInputState tracks Dear ImGui's input capture state as a resource.
// Use this to determine if ImGui is consuming mouse or keyboard input.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem queries all ImguiItem components and defers their render
// functions. It also updates the ImguiInputState resource with current input
// capture state.
type ImguiSystem struct {
	Items      ecs.Query[struct{ *ImguiItem }]
	InputState ecs.Res[ImguiInputState]
}

// Execute updates input state and queues all ImGui render functions for
// execution after this system's command flush.
func (i *ImguiSystem) Execute(frame *ecs.Frame) {
	if state := i.InputState.Get(); state != nil {
		state.WantCaptureMouse = imgui.CurrentIO().WantCaptureMouse()
		state.WantCaptureKeyboard = imgui.CurrentIO().WantCaptureKeyboard()
	}

	for item := range i.Items.Values() {
		render := item.ImguiItem.Render
		frame.Commands.Defer(func(*ecs.World) {
			render()
		})
	}
}
