package ecs

// Time is the conventional resource carrying the frame delta in seconds.
// The driver (or a timing system) keeps it current; RunSchedule reads it to
// populate Frame.DeltaTime and tolerates its absence.
type Time struct {
	Delta float64
}

// Frame is the context handed to every system during one schedule run.
type Frame struct {
	DeltaTime float64
	World     *World
	Commands  *Commands
}

func newFrame(dt float64, w *World) *Frame {
	return &Frame{
		DeltaTime: dt,
		World:     w,
		Commands:  newCommands(),
	}
}
