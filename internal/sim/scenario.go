package sim

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario describes a simulation run: what to spawn, which processors to attach, and how many
// dispatch passes to make.
type Scenario struct {
	Log        LogConfig         `yaml:"log"`
	Passes     int               `yaml:"passes"`
	Spawn      []SpawnGroup      `yaml:"spawn"`
	Processors []ProcessorConfig `yaml:"processors"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

type Vec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// SpawnGroup creates Count entities holding the listed components. Position, Velocity and Health
// seed the initial values of those components.
type SpawnGroup struct {
	Count      int      `yaml:"count"`
	Components []string `yaml:"components"`
	Position   Vec      `yaml:"position"`
	Velocity   Vec      `yaml:"velocity"`
	Health     int      `yaml:"health"`
}

type ProcessorConfig struct {
	Name     string `yaml:"name"`
	Priority int    `yaml:"priority"`
}

// LoadScenario decodes and validates a YAML scenario.
func LoadScenario(r io.Reader) (*Scenario, error) {
	var s Scenario
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to decode scenario: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func LoadScenarioFile(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadScenario(f)
}

func (s *Scenario) Validate() error {
	if s.Passes < 0 {
		return fmt.Errorf("passes must not be negative, got %d", s.Passes)
	}
	for i, group := range s.Spawn {
		if group.Count < 0 {
			return fmt.Errorf("spawn group %d: count must not be negative, got %d", i, group.Count)
		}
		seen := make(map[string]bool, len(group.Components))
		for _, name := range group.Components {
			if _, ok := componentKinds[name]; !ok {
				return fmt.Errorf("spawn group %d: unknown component %q", i, name)
			}
			if seen[name] {
				return fmt.Errorf("spawn group %d: component %q listed twice", i, name)
			}
			seen[name] = true
		}
	}
	for _, p := range s.Processors {
		if _, ok := processorKinds[p.Name]; !ok {
			return fmt.Errorf("unknown processor %q", p.Name)
		}
	}
	return nil
}
