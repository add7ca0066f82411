// Command stressgen emits the generated components and systems file used by
// the world-stress harness. Rerun it to change the stress surface:
//
//	stressgen -components 24 -systems 8 -out cmd/world-stress/generated.go
package main

import (
	"bytes"
	"flag"
	"log"
	"os"
	"text/template"

	"golang.org/x/tools/imports"
)

type templateData struct {
	ComponentCount int
	Components     []int
	MutSystems     []mutSystem
	SystemCount    int
}

// mutSystem pairs a system index with the two component types it mutates.
type mutSystem struct {
	Index int
	CompA int
	CompB int
}

const fileTemplate = `// Code generated by stressgen; DO NOT EDIT.

package main

import (
	"math/rand"

	"github.com/plus3/worldkit/ecs"
)

const (
	GeneratedComponentCount = {{.ComponentCount}}
	GeneratedSystemCount    = {{.SystemCount}}
)

{{range .Components}}type Component{{.}} struct{ A, B float64 }
{{end}}
type StressEvent struct {
	Payload int64
}

func RegisterAllGeneratedComponents(r *ecs.ComponentRegistry) {
{{range .Components}}	ecs.RegisterComponent[Component{{.}}](r)
{{end}}}

func addGeneratedComponent(w *ecs.World, e ecs.Entity, index int, rng *rand.Rand) {
	a, b := rng.Float64(), rng.Float64()
	switch index {
{{range .Components}}	case {{.}}:
		ecs.AddComponent(w, e, Component{{.}}{A: a, B: b})
{{end}}	}
}

// SpawnRandomEntity creates an entity with numComponents distinct generated
// component types.
func SpawnRandomEntity(w *ecs.World, rng *rand.Rand, numComponents int) ecs.Entity {
	e := w.Spawn()
	for _, index := range rng.Perm(GeneratedComponentCount)[:numComponents] {
		addGeneratedComponent(w, e, index, rng)
	}
	return e
}

// PublishRandomEvent feeds the event-driven system.
func PublishRandomEvent(w *ecs.World, rng *rand.Rand) {
	ecs.Publish(w, StressEvent{Payload: rng.Int63()})
}

{{range .MutSystems}}
type GeneratedSystem{{.Index}} struct {
	Entities ecs.Query[struct {
		*Component{{.CompA}}
		*Component{{.CompB}}
	}]
}

func (s *GeneratedSystem{{.Index}}) Execute(frame *ecs.Frame) {
	for item := range s.Entities.Values() {
		item.Component{{.CompA}}.A += item.Component{{.CompB}}.B * frame.DeltaTime
		item.Component{{.CompB}}.A += item.Component{{.CompA}}.B * frame.DeltaTime
	}
}
{{end}}
type GeneratedSystem{{.DrainIndex}} struct {
	Drained int64
}

func (s *GeneratedSystem{{.DrainIndex}}) Execute(frame *ecs.Frame) {
	for ev := range ecs.ReadEvents[StressEvent](frame.World) {
		s.Drained += ev.Payload % 2
	}
}

func RegisterAllGeneratedSystems(w *ecs.World) error {
{{range .MutSystems}}	if err := w.AddSystem(ecs.ScheduleUpdate, "generated{{.Index}}", &GeneratedSystem{{.Index}}{}); err != nil {
		return err
	}
{{end}}	if err := w.AddSystem(ecs.ScheduleUpdate, "generated{{.DrainIndex}}", &GeneratedSystem{{.DrainIndex}}{}); err != nil {
		return err
	}
	return nil
}
`

func main() {
	componentCount := flag.Int("components", 24, "Number of component types to generate.")
	systemCount := flag.Int("systems", 8, "Number of systems to generate (the last drains events).")
	out := flag.String("out", "cmd/world-stress/generated.go", "Output file path.")
	flag.Parse()

	if *componentCount < 2 {
		log.Fatal("need at least 2 components")
	}
	if *systemCount < 2 {
		log.Fatal("need at least 2 systems")
	}

	data := struct {
		templateData
		DrainIndex int
	}{
		templateData: templateData{
			ComponentCount: *componentCount,
			SystemCount:    *systemCount,
		},
		DrainIndex: *systemCount - 1,
	}
	for i := 0; i < *componentCount; i++ {
		data.Components = append(data.Components, i)
	}
	// Each mutating system touches a disjoint-ish component pair, spread
	// across the type space so most columns see traffic.
	for i := 0; i < *systemCount-1; i++ {
		data.MutSystems = append(data.MutSystems, mutSystem{
			Index: i,
			CompA: (3 * i) % *componentCount,
			CompB: (3*i + 1) % *componentCount,
		})
	}

	tmpl, err := template.New("generated").Parse(fileTemplate)
	if err != nil {
		log.Fatalf("parse template: %v", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		log.Fatalf("execute template: %v", err)
	}

	formatted, err := imports.Process(*out, buf.Bytes(), nil)
	if err != nil {
		log.Fatalf("format generated code: %v", err)
	}

	if err := os.WriteFile(*out, formatted, 0o644); err != nil {
		log.Fatalf("write %s: %v", *out, err)
	}

	log.Printf("wrote %s (%d components, %d systems)", *out, *componentCount, *systemCount)
}
