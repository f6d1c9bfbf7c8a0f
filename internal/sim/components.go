package sim

import (
	"github.com/google/uuid"

	"github.com/TheBitDrifter/depot"
)

type Position struct {
	X, Y float64
}

type Velocity struct {
	X, Y float64
}

type Health struct {
	Current, Max int
}

// Tag gives an entity a stable identity independent of its depot id.
type Tag struct {
	ID uuid.UUID
}

var (
	position = depot.FactoryNewComponent[*Position]()
	velocity = depot.FactoryNewComponent[*Velocity]()
	health   = depot.FactoryNewComponent[*Health]()
	tag      = depot.FactoryNewComponent[*Tag]()
)

type componentKind struct {
	typ depot.ComponentType
	new func(SpawnGroup) any
}

var componentKinds = map[string]componentKind{
	"position": {position, func(g SpawnGroup) any { return &Position{X: g.Position.X, Y: g.Position.Y} }},
	"velocity": {velocity, func(g SpawnGroup) any { return &Velocity{X: g.Velocity.X, Y: g.Velocity.Y} }},
	"health":   {health, func(g SpawnGroup) any { return &Health{Current: g.Health, Max: g.Health} }},
	"tag":      {tag, func(SpawnGroup) any { return &Tag{ID: uuid.New()} }},
}

// componentOrder is the order components are registered with the world.
var componentOrder = []string{"position", "velocity", "health", "tag"}
