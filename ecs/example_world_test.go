package ecs_test

import (
	"fmt"

	"github.com/plus3/worldkit/ecs"
)

// ExampleWorld demonstrates the frame-loop contract: register systems,
// run the update schedule once per tick, and advance events at each frame
// boundary.
func ExampleWorld() {
	w := ecs.New()

	e := w.Spawn()
	ecs.AddComponent(w, e, Position{X: 0, Y: 0})
	ecs.AddComponent(w, e, Velocity{DX: 1, DY: 2})

	ecs.InsertResource(w, ecs.Time{Delta: 1.0})

	w.AddSystem(ecs.ScheduleUpdate, "movement", ecs.SystemFunc(func(frame *ecs.Frame) {
		for _, item := range ecs.NewView[struct {
			*Position
			*Velocity
		}](frame.World).Iter() {
			item.Position.X += item.Velocity.DX * float32(frame.DeltaTime)
			item.Position.Y += item.Velocity.DY * float32(frame.DeltaTime)
		}
	}))

	for tick := 0; tick < 3; tick++ {
		w.RunSchedule(ecs.ScheduleUpdate)
		w.AdvanceEvents()
	}

	pos, _ := ecs.GetComponent[Position](w, e)
	fmt.Printf("Position after 3 ticks: (%.0f, %.0f)\n", pos.X, pos.Y)

	// Output:
	// Position after 3 ticks: (3, 6)
}

// ExamplePublish demonstrates the two-frame event window: events published
// during one frame are visible to every reader throughout the next.
func ExamplePublish() {
	w := ecs.New()

	ecs.Publish(w, Damage{Amount: 25})
	fmt.Println("visible this frame:", len(collectDamage(w)))

	w.AdvanceEvents()
	fmt.Println("visible next frame:", len(collectDamage(w)))

	w.AdvanceEvents()
	fmt.Println("visible after that:", len(collectDamage(w)))

	// Output:
	// visible this frame: 0
	// visible next frame: 1
	// visible after that: 0
}

func collectDamage(w *ecs.World) []Damage {
	var out []Damage
	for ev := range ecs.ReadEvents[Damage](w) {
		out = append(out, *ev)
	}
	return out
}

// ExampleWorld_despawn demonstrates generational handles: a handle held past
// a despawn never aliases the entity that reuses the slot.
func ExampleWorld_despawn() {
	w := ecs.New()

	old := w.Spawn()
	w.Despawn(old)

	fresh := w.Spawn()
	fmt.Println("same slot:", old.Index() == fresh.Index())
	fmt.Println("old handle live:", w.IsLive(old))
	fmt.Println("fresh handle live:", w.IsLive(fresh))

	// Output:
	// same slot: true
	// old handle live: false
	// fresh handle live: true
}

// ExampleWorld_AddSystem demonstrates declarative ordering: constraints, not
// registration order, decide when a system runs.
func ExampleWorld_AddSystem() {
	w := ecs.New()

	w.AddSystem(ecs.ScheduleUpdate, "render", ecs.SystemFunc(func(*ecs.Frame) {
		fmt.Println("render")
	}))
	w.AddSystem(ecs.ScheduleUpdate, "physics", ecs.SystemFunc(func(*ecs.Frame) {
		fmt.Println("physics")
	}), ecs.RunsBefore("render"))

	w.RunSchedule(ecs.ScheduleUpdate)

	// Output:
	// physics
	// render
}
