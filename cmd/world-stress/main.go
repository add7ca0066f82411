package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"

	"github.com/plus3/worldkit/ecs"
)

func main() {
	scenarioPath := flag.String("scenario", "", "Path to a YAML scenario file. Flags override its values.")
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	entityCount := flag.Int("entities", 10000, "The initial number of entities to create.")
	churnPerFrame := flag.Int("churn", 0, "Entities to despawn and respawn each frame.")
	eventsPerFrame := flag.Int("events", 0, "Events to publish each frame.")
	profileMode := flag.String("profile", "", "Profiling mode: cpu, mem, or empty for none.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	scenario := DefaultScenario()
	if *scenarioPath != "" {
		loaded, err := LoadScenario(*scenarioPath)
		if err != nil {
			log.Fatalf("Failed to load scenario: %v", err)
		}
		scenario = loaded
	}
	scenario.ApplyFlags(flag.CommandLine, *duration, *entityCount, *churnPerFrame, *eventsPerFrame, *profileMode)

	switch scenario.Profile {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
	case "":
	default:
		log.Fatalf("Unknown profile mode %q", scenario.Profile)
	}

	log.Println("Starting world stress test...")

	// 1. Set up the registry and world, with the generated components and
	// systems wired into the update schedule.
	registry := ecs.NewComponentRegistry()
	RegisterAllGeneratedComponents(registry)
	world := ecs.New(ecs.WithRegistry(registry))
	if err := RegisterAllGeneratedSystems(world); err != nil {
		log.Fatalf("Failed to register systems: %v", err)
	}
	if err := ecs.InsertResource(world, ecs.Time{}); err != nil {
		log.Fatalf("Failed to insert time resource: %v", err)
	}

	// 2. Populate the world with initial entities.
	rng := rand.New(rand.NewSource(scenario.Seed))
	log.Printf("Populating world with %d entities...\n", scenario.Entities)
	entities := make([]ecs.Entity, 0, scenario.Entities)
	for i := 0; i < scenario.Entities; i++ {
		// Spawn an entity with 1 to 5 random components
		numComponents := rng.Intn(5) + 1
		entities = append(entities, SpawnRandomEntity(world, rng, numComponents))
	}
	log.Println("Population complete.")

	// 3. Run the simulation loop.
	report := &Report{
		Duration:       scenario.Duration,
		Entities:       scenario.Entities,
		ChurnPerFrame:  scenario.ChurnPerFrame,
		EventsPerFrame: scenario.EventsPerFrame,
		Components:     GeneratedComponentCount,
		Systems:        GeneratedSystemCount,
		GCPauseMetrics: *gcPauseMetrics,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running simulation for %s...\n", scenario.Duration)
	ctx, cancel := context.WithTimeout(context.Background(), scenario.Duration)
	defer cancel()

	startTime := time.Now()
	var totalUpdates int64
	lastFrameTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			deltaTime := time.Since(lastFrameTime)
			lastFrameTime = time.Now()

			timeRes, err := ecs.GetResource[ecs.Time](world)
			if err != nil {
				log.Fatalf("Time resource vanished: %v", err)
			}
			timeRes.Delta = deltaTime.Seconds()

			updateStart := time.Now()
			if err := world.RunSchedule(ecs.ScheduleUpdate); err != nil {
				log.Fatalf("Schedule run failed: %v", err)
			}
			world.AdvanceEvents()
			updateDuration := time.Since(updateStart)

			for i := 0; i < scenario.ChurnPerFrame && len(entities) > 0; i++ {
				victim := rng.Intn(len(entities))
				if err := world.Despawn(entities[victim]); err != nil {
					log.Fatalf("Churn despawn failed: %v", err)
				}
				entities[victim] = SpawnRandomEntity(world, rng, rng.Intn(5)+1)
			}

			for i := 0; i < scenario.EventsPerFrame; i++ {
				PublishRandomEvent(world, rng)
			}

			report.UpdateTime.Samples = append(report.UpdateTime.Samples, updateDuration)
			totalUpdates++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TotalUpdates = totalUpdates
	report.UpdateTime.Finalize()
	report.WorldStats = world.CollectStats()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Simulation finished.")

	// 4. Generate the report to the console.
	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")

	log.Println("Stress test complete.")
}
