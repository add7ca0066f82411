package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Scenario is a stress-run configuration. Values from a YAML file are the
// base; any flag set explicitly on the command line overrides its field.
type Scenario struct {
	Duration       time.Duration `yaml:"duration"`
	Entities       int           `yaml:"entities"`
	ChurnPerFrame  int           `yaml:"churn_per_frame"`
	EventsPerFrame int           `yaml:"events_per_frame"`
	Profile        string        `yaml:"profile"`
	Seed           int64         `yaml:"seed"`
}

func DefaultScenario() *Scenario {
	return &Scenario{
		Duration: 10 * time.Second,
		Entities: 10000,
		Seed:     1,
	}
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}

	s := DefaultScenario()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if s.Entities < 0 || s.ChurnPerFrame < 0 || s.EventsPerFrame < 0 {
		return nil, fmt.Errorf("scenario %s: counts must not be negative", path)
	}
	return s, nil
}

// ApplyFlags overrides scenario fields with any flag the user set
// explicitly.
func (s *Scenario) ApplyFlags(fs *flag.FlagSet, duration time.Duration, entities, churn, events int, profileMode string) {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "duration":
			s.Duration = duration
		case "entities":
			s.Entities = entities
		case "churn":
			s.ChurnPerFrame = churn
		case "events":
			s.EventsPerFrame = events
		case "profile":
			s.Profile = profileMode
		}
	})
}
