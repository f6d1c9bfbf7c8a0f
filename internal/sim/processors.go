package sim

import (
	"github.com/TheBitDrifter/depot"
)

// Movement integrates velocity into position.
type Movement struct{}

func (m *Movement) Process(_ depot.EntityID, components ...any) error {
	pos := components[0].(*Position)
	vel := components[1].(*Velocity)
	pos.X += vel.X
	pos.Y += vel.Y
	return nil
}

// Decay drains one point of health per pass and despawns entities that run out.
type Decay struct {
	world depot.World
}

func (d *Decay) Process(id depot.EntityID, components ...any) error {
	hp := components[0].(*Health)
	hp.Current--
	if hp.Current <= 0 {
		return d.world.EnqueueRemoveEntity(id)
	}
	return nil
}

type processorKind struct {
	ctor  depot.ProcessorConstructor
	types []depot.ComponentType
}

var processorKinds = map[string]processorKind{
	"movement": {
		ctor:  func(depot.World) depot.Processor { return &Movement{} },
		types: []depot.ComponentType{position, velocity},
	},
	"decay": {
		ctor:  func(w depot.World) depot.Processor { return &Decay{world: w} },
		types: []depot.ComponentType{health},
	},
}
