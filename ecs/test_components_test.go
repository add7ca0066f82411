package ecs_test

import "github.com/plus3/worldkit/ecs"

// Common test component types
type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

type Name struct {
	Value string
}

type Health struct {
	Current int
	Max     int
}

type PlayerController struct{}

type AI struct {
	State int
}

type Frozen struct{}

// Custom primitive types for testing non-pointer components
type Score int32
type Tag string
type Temperature float64

type Inventory struct {
	Items []string
}
type Stats struct {
	Attributes map[string]int
}

// Test event types
type Collision struct {
	A, B ecs.Entity
}

type Damage struct {
	Target ecs.Entity
	Amount int
}

// Test resource types
type GameState struct {
	Paused bool
	Level  int
}

type FrameCounter struct {
	Frames int
}

func newTestRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Name](registry)
	ecs.RegisterComponent[Health](registry)
	ecs.RegisterComponent[PlayerController](registry)
	ecs.RegisterComponent[AI](registry)
	ecs.RegisterComponent[Frozen](registry)
	ecs.RegisterComponent[Score](registry)
	ecs.RegisterComponent[Tag](registry)
	ecs.RegisterComponent[Temperature](registry)
	ecs.RegisterComponent[Inventory](registry)
	ecs.RegisterComponent[Stats](registry)
	return registry
}

func newTestWorld() *ecs.World {
	return ecs.New(ecs.WithRegistry(newTestRegistry()))
}

func ptr[T any](v T) *T {
	return &v
}
