package sim

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/TheBitDrifter/depot"
)

// Simulation owns a world populated from a Scenario.
type Simulation struct {
	world    depot.World
	logger   *zap.Logger
	scenario *Scenario
	runID    uuid.UUID
}

type Report struct {
	RunID    uuid.UUID
	Passes   int
	Entities int
}

// New registers the scenario's components and processors and spawns its entities.
func New(scenario *Scenario, logger *zap.Logger) (*Simulation, error) {
	s := &Simulation{
		world:    depot.Factory.NewWorld(),
		scenario: scenario,
		runID:    uuid.New(),
	}
	s.logger = logger.With(zap.Stringer("run", s.runID))

	for _, name := range componentOrder {
		bit, err := s.world.RegisterComponent(componentKinds[name].typ)
		if err != nil {
			return nil, fmt.Errorf("failed to register component %s: %w", name, err)
		}
		s.logger.Debug("component registered", zap.String("component", name), zap.Stringer("bit", bit))
	}

	for i, group := range scenario.Spawn {
		for n := 0; n < group.Count; n++ {
			components := make([]any, 0, len(group.Components))
			for _, name := range group.Components {
				components = append(components, componentKinds[name].new(group))
			}
			if _, err := s.world.CreateEntity(components...); err != nil {
				return nil, fmt.Errorf("failed to spawn group %d: %w", i, err)
			}
		}
	}

	for _, p := range scenario.Processors {
		kind := processorKinds[p.Name]
		if _, err := s.world.RegisterProcessor(kind.ctor, p.Priority, kind.types...); err != nil {
			return nil, fmt.Errorf("failed to register processor %s: %w", p.Name, err)
		}
	}

	s.logger.Info("simulation ready",
		zap.Int("entities", s.world.EntityCount()),
		zap.Int("processors", len(scenario.Processors)),
	)
	return s, nil
}

func (s *Simulation) World() depot.World {
	return s.world
}

// Run makes the scenario's dispatch passes, stopping early if ctx is cancelled.
func (s *Simulation) Run(ctx context.Context) (Report, error) {
	report := Report{RunID: s.runID}
	for pass := 0; pass < s.scenario.Passes; pass++ {
		if err := ctx.Err(); err != nil {
			report.Entities = s.world.EntityCount()
			return report, err
		}
		if err := s.world.Process(); err != nil {
			report.Entities = s.world.EntityCount()
			return report, fmt.Errorf("pass %d: %w", pass, err)
		}
		report.Passes++
		s.logger.Debug("pass complete",
			zap.Int("pass", pass),
			zap.Int("entities", s.world.EntityCount()),
		)
	}
	report.Entities = s.world.EntityCount()
	s.logger.Info("simulation finished",
		zap.Int("passes", report.Passes),
		zap.Int("entities", report.Entities),
	)
	return report, nil
}
